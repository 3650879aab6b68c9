package repository

import (
	"database/sql"

	"gitlab.com/open-soft/go-oco-bot/src/model"
)

type TradeLogStorageInterface interface {
	Create(entry model.TradeLogEntry) (*int64, error)
}

// TradeLogRepository is an insert-only journal of order placements and
// trade outcomes. Nothing is ever read back during a trade.
type TradeLogRepository struct {
	DB *sql.DB
}

func (repo *TradeLogRepository) Create(entry model.TradeLogEntry) (*int64, error) {
	res, err := repo.DB.Exec(`
		INSERT INTO trade_log SET
			symbol = ?,
			side = ?,
			type = ?,
			external_id = ?,
			price = ?,
			quantity = ?,
			status = ?,
			created_at = ?
	`,
		entry.Symbol,
		entry.Side,
		entry.Type,
		entry.OrderId,
		entry.Price,
		entry.Quantity,
		entry.Status,
		entry.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	lastId, err := res.LastInsertId()

	if err != nil {
		return nil, err
	}

	return &lastId, nil
}
