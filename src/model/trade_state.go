package model

import (
	"github.com/shopspring/decimal"
)

// TradeState is the engine's mutable core: the normalized trade parameters
// plus the live order ids. Created when a trade starts, mutated by the entry
// and exit event handlers, thrown away when the trade resolves.
type TradeState struct {
	Symbol     string
	Rules      SymbolTradingRules
	NonBnbFees bool

	Amount         decimal.Decimal
	ScaleOutAmount decimal.Decimal

	BuyPrice       *decimal.Decimal
	BuyLimitPrice  decimal.Decimal
	CancelPrice    *decimal.Decimal
	StopPrice      *decimal.Decimal
	StopLimitPrice decimal.Decimal
	TargetPrice    *decimal.Decimal

	StopSellAmount   decimal.Decimal
	TargetSellAmount decimal.Decimal
	// SplitAmount is the part of the stop quantity protected outside the
	// bracket when the caller scales out (StopSellAmount - TargetSellAmount
	// at exit start).
	SplitAmount decimal.Decimal

	IsLimitEntry bool
	IsStopEntry  bool

	EntryOrderId     int64
	StopOrderId      int64
	TargetOrderId    int64
	RemainderOrderId int64
}

func (s *TradeState) HasBuy() bool {
	return s.BuyPrice != nil
}

func (s *TradeState) HasStop() bool {
	return s.StopPrice != nil
}

func (s *TradeState) HasTarget() bool {
	return s.TargetPrice != nil
}

func (s *TradeState) HasCancelPrice() bool {
	return s.CancelPrice != nil
}

func (s *TradeState) IsScaleOut() bool {
	return s.ScaleOutAmount.IsPositive() && s.ScaleOutAmount.LessThan(s.Amount)
}
