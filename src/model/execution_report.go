package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimestampMilli int64

func (t TimestampMilli) Value() int64 {
	return int64(t)
}

func (t TimestampMilli) ToTime() time.Time {
	return time.Unix(0, t.Value()*int64(time.Millisecond))
}

const EventTypeExecutionReport = "executionReport"
const EventTypeAggTrade = "aggTrade"

// Trade is one aggTrade stream event.
type Trade struct {
	EventType        string          `json:"e"`
	EventTime        TimestampMilli  `json:"E"`
	AggregateTradeId int64           `json:"a"`
	Symbol           string          `json:"s"`
	Price            decimal.Decimal `json:"p"`
	Quantity         decimal.Decimal `json:"q"`
	IsBuyerMaker     bool            `json:"m"`
	Timestamp        TimestampMilli  `json:"T"`
}

func (c *Trade) IsSell() bool {
	return c.IsBuyerMaker == true
}

func (c *Trade) IsBuy() bool {
	return c.IsBuyerMaker == false
}

// ExecutionReport is one user data stream order update.
type ExecutionReport struct {
	EventType        string          `json:"e"`
	EventTime        TimestampMilli  `json:"E"`
	Symbol           string          `json:"s"`
	Side             string          `json:"S"`
	OrderType        string          `json:"o"`
	OrderId          int64           `json:"i"`
	OrderListId      int64           `json:"g"`
	OrderStatus      string          `json:"X"`
	RejectReason     string          `json:"r"`
	LastTradePrice   decimal.Decimal `json:"L"`
	LastTradeQty     decimal.Decimal `json:"l"`
	TotalTradeQty    decimal.Decimal `json:"z"`
	CommissionAmount decimal.Decimal `json:"n"`
	CommissionAsset  string          `json:"N"`
	TransactionTime  TimestampMilli  `json:"T"`
}

func (e *ExecutionReport) IsExecutionReport() bool {
	return e.EventType == EventTypeExecutionReport
}

func (e *ExecutionReport) IsNew() bool {
	return e.OrderStatus == OrderStatusNew
}

func (e *ExecutionReport) IsPartiallyFilled() bool {
	return e.OrderStatus == OrderStatusPartiallyFilled
}

func (e *ExecutionReport) IsFilled() bool {
	return e.OrderStatus == OrderStatusFilled
}

func (e *ExecutionReport) IsCanceled() bool {
	return e.OrderStatus == OrderStatusCanceled
}

func (e *ExecutionReport) IsExpired() bool {
	return e.OrderStatus == OrderStatusExpired || e.OrderStatus == "EXPIRED_IN_MATCH"
}

func (e *ExecutionReport) IsTerminal() bool {
	return !e.IsNew() && !e.IsPartiallyFilled()
}
