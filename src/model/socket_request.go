package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type SocketRequest struct {
	Id     string         `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

type SocketStreamsRequest struct {
	Id     int64    `json:"id"`
	Method string   `json:"method"`
	Params []string `json:"params"`
}

type Error struct {
	Code    int64  `json:"code"`
	Message string `json:"msg"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetMessage() string {
	return e.Message
}

// IsUnknownOrder matches the response class Binance returns for a cancel
// that lost the race against a terminal transition (-2011).
func (e *Error) IsUnknownOrder() bool {
	return e.Code == -2011 || strings.Contains(e.Message, "Unknown order sent")
}

func (e *Error) IsApiKeyOrPermissions() bool {
	return strings.Contains(e.Message, "Invalid API-key, IP, or permissions for action")
}

type BinanceOrderResponse struct {
	Id     string       `json:"id"`
	Status int64        `json:"status"`
	Result BinanceOrder `json:"result"`
	Error  *Error       `json:"error"`
}

type OcoOrderResponse struct {
	Id     string   `json:"id"`
	Status int64    `json:"status"`
	Result OcoOrder `json:"result"`
	Error  *Error   `json:"error"`
}

type EmptyResponse struct {
	Id     string `json:"id"`
	Status int64  `json:"status"`
	Error  *Error `json:"error"`
}

type BinanceExchangeInfoResponse struct {
	Id     string       `json:"id"`
	Status int64        `json:"status"`
	Result ExchangeInfo `json:"result"`
	Error  *Error       `json:"error"`
}

type TickerPrice struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

type TickerPriceResponse struct {
	Id     string      `json:"id"`
	Status int64       `json:"status"`
	Result TickerPrice `json:"result"`
	Error  *Error      `json:"error"`
}

type AvgPrice struct {
	Mins  int64           `json:"mins"`
	Price decimal.Decimal `json:"price"`
}

type AvgPriceResponse struct {
	Id     string   `json:"id"`
	Status int64    `json:"status"`
	Result AvgPrice `json:"result"`
	Error  *Error   `json:"error"`
}

type Balance struct {
	Asset  string          `json:"asset"`
	Free   decimal.Decimal `json:"free"`
	Locked decimal.Decimal `json:"locked"`
}

type AccountStatus struct {
	Balances []Balance `json:"balances"`
}

type AccountStatusResponse struct {
	Id     string        `json:"id"`
	Status int64         `json:"status"`
	Result AccountStatus `json:"result"`
	Error  *Error        `json:"error"`
}

type CommissionRates struct {
	Maker decimal.Decimal `json:"maker"`
	Taker decimal.Decimal `json:"taker"`
}

type AccountCommission struct {
	Symbol             string          `json:"symbol"`
	StandardCommission CommissionRates `json:"standardCommission"`
}

type AccountCommissionResponse struct {
	Id     string            `json:"id"`
	Status int64             `json:"status"`
	Result AccountCommission `json:"result"`
	Error  *Error            `json:"error"`
}

type UserDataStreamStart struct {
	ListenKey string `json:"listenKey"`
}

type UserDataStreamStartResponse struct {
	Id     string              `json:"id"`
	Status int64               `json:"status"`
	Result UserDataStreamStart `json:"result"`
	Error  *Error              `json:"error"`
}
