package model

import (
	"github.com/shopspring/decimal"
)

// TradeRequest is the caller supplied option bundle for one bracket trade.
// Nil pointer means the option was not given. BuyPrice may be exactly zero,
// which requests an immediate market entry.
type TradeRequest struct {
	Pair           string
	Amount         decimal.Decimal
	BuyPrice       *decimal.Decimal
	BuyLimitPrice  *decimal.Decimal
	CancelPrice    *decimal.Decimal
	StopPrice      *decimal.Decimal
	StopLimitPrice *decimal.Decimal
	TargetPrice    *decimal.Decimal
	ScaleOutAmount *decimal.Decimal
	NonBnbFees     bool
}

func (r *TradeRequest) HasBuy() bool {
	return r.BuyPrice != nil
}

func (r *TradeRequest) HasStop() bool {
	return r.StopPrice != nil
}

func (r *TradeRequest) HasTarget() bool {
	return r.TargetPrice != nil
}
