package model

import (
	"github.com/shopspring/decimal"
)

const CommissionAssetBnb = "BNB"

// OrderRequest is one outbound order. Price is required for LIMIT and
// STOP_LOSS_LIMIT, StopPrice only for STOP_LOSS_LIMIT.
type OrderRequest struct {
	Symbol    string
	Side      string
	Type      string
	Quantity  decimal.Decimal
	Price     *decimal.Decimal
	StopPrice *decimal.Decimal
}

// OcoOrderRequest is one outbound one-cancels-the-other order list:
// a LIMIT_MAKER leg at Price and a STOP_LOSS_LIMIT leg at StopPrice/StopLimitPrice.
type OcoOrderRequest struct {
	Symbol         string
	Side           string
	Quantity       decimal.Decimal
	Price          decimal.Decimal
	StopPrice      decimal.Decimal
	StopLimitPrice decimal.Decimal
}

type OcoOrderLeg struct {
	Symbol  string `json:"symbol"`
	OrderId int64  `json:"orderId"`
}

type OcoOrder struct {
	OrderListId     int64          `json:"orderListId"`
	Symbol          string         `json:"symbol"`
	ListOrderStatus string         `json:"listOrderStatus"`
	Orders          []OcoOrderLeg  `json:"orders"`
	OrderReports    []BinanceOrder `json:"orderReports"`
}

func (o *OcoOrder) LegIds() []int64 {
	ids := make([]int64, 0, len(o.Orders))

	for _, leg := range o.Orders {
		ids = append(ids, leg.OrderId)
	}

	return ids
}
