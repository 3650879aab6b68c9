package model

import (
	"github.com/shopspring/decimal"
)

const OrderStatusNew = "NEW"
const OrderStatusPartiallyFilled = "PARTIALLY_FILLED"
const OrderStatusFilled = "FILLED"
const OrderStatusCanceled = "CANCELED"
const OrderStatusRejected = "REJECTED"
const OrderStatusExpired = "EXPIRED"

const OrderSideBuy = "BUY"
const OrderSideSell = "SELL"

const OrderTypeMarket = "MARKET"
const OrderTypeLimit = "LIMIT"
const OrderTypeStopLossLimit = "STOP_LOSS_LIMIT"

type OrderFill struct {
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"qty"`
	Commission      decimal.Decimal `json:"commission"`
	CommissionAsset string          `json:"commissionAsset"`
}

type BinanceOrder struct {
	OrderId             int64           `json:"orderId"`
	OrderListId         int64           `json:"orderListId"`
	Symbol              string          `json:"symbol"`
	TransactTime        int64           `json:"transactTime"`
	Price               decimal.Decimal `json:"price"`
	OrigQty             decimal.Decimal `json:"origQty"`
	ExecutedQty         decimal.Decimal `json:"executedQty"`
	CummulativeQuoteQty decimal.Decimal `json:"cummulativeQuoteQty"`
	Status              string          `json:"status"`
	Type                string          `json:"type"`
	Side                string          `json:"side"`
	WorkingTime         int64           `json:"workingTime"`
	Fills               []OrderFill     `json:"fills"`
}

func (b *BinanceOrder) IsBuy() bool {
	return b.Side == OrderSideBuy
}

func (b *BinanceOrder) IsSell() bool {
	return b.Side == OrderSideSell
}

func (b *BinanceOrder) IsNew() bool {
	return b.Status == OrderStatusNew
}

func (b *BinanceOrder) IsPartiallyFilled() bool {
	return b.Status == OrderStatusPartiallyFilled
}

func (b *BinanceOrder) IsFilled() bool {
	return b.Status == OrderStatusFilled
}

func (b *BinanceOrder) IsCanceled() bool {
	return b.Status == OrderStatusCanceled
}

func (b *BinanceOrder) IsExpired() bool {
	return b.Status == OrderStatusExpired || b.Status == "EXPIRED_IN_MATCH"
}

// IsTerminal reports whether the order can no longer transition on the exchange.
func (b *BinanceOrder) IsTerminal() bool {
	return !b.IsNew() && !b.IsPartiallyFilled()
}

// FirstCommissionAsset returns the commission asset of the first fill,
// empty when the response carries no fill detail.
func (b *BinanceOrder) FirstCommissionAsset() string {
	if len(b.Fills) == 0 {
		return ""
	}

	return b.Fills[0].CommissionAsset
}
