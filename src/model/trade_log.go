package model

import (
	"github.com/shopspring/decimal"
)

// TradeLogEntry is one row of the insert-only trade journal.
type TradeLogEntry struct {
	Id        int64
	Symbol    string
	Side      string
	Type      string
	OrderId   int64
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Status    string
	CreatedAt string
}
