package model

import (
	"github.com/shopspring/decimal"
)

const BinanceExchangeFilterTypePrice = "PRICE_FILTER"
const BinanceExchangeFilterTypeLotSize = "LOT_SIZE"
const BinanceExchangeFilterTypeNotional = "NOTIONAL"
const BinanceExchangeFilterTypeMinNotional = "MIN_NOTIONAL"
const BinanceExchangeFilterTypePercentPrice = "PERCENT_PRICE"
const BinanceExchangeFilterTypePercentPriceBySide = "PERCENT_PRICE_BY_SIDE"

type ExchangeFilter struct {
	FilterType        string           `json:"filterType"`
	MinPrice          *decimal.Decimal `json:"minPrice"`
	MaxPrice          *decimal.Decimal `json:"maxPrice"`
	TickSize          *decimal.Decimal `json:"tickSize"`
	MinQuantity       *decimal.Decimal `json:"minQty"`
	MaxQuantity       *decimal.Decimal `json:"maxQty"`
	StepSize          *decimal.Decimal `json:"stepSize"`
	MinNotional       *decimal.Decimal `json:"minNotional"`
	MaxNotional       *decimal.Decimal `json:"maxNotional"`
	MultiplierUp      *decimal.Decimal `json:"multiplierUp"`
	MultiplierDown    *decimal.Decimal `json:"multiplierDown"`
	BidMultiplierUp   *decimal.Decimal `json:"bidMultiplierUp"`
	AskMultiplierDown *decimal.Decimal `json:"askMultiplierDown"`
}

type ExchangeSymbol struct {
	Symbol             string           `json:"symbol"`
	Status             string           `json:"status"`
	BaseAsset          string           `json:"baseAsset"`
	QuoteAsset         string           `json:"quoteAsset"`
	BaseAssetPrecision int              `json:"baseAssetPrecision"`
	QuotePrecision     int              `json:"quotePrecision"`
	Filters            []ExchangeFilter `json:"filters"`
}

func (e *ExchangeSymbol) IsTrading() bool {
	return e.Status == "TRADING"
}

type ExchangeInfo struct {
	Timezone   string           `json:"timezone"`
	ServerTime int64            `json:"serverTime"`
	Symbols    []ExchangeSymbol `json:"symbols"`
}

// SymbolTradingRules is the flattened per-symbol filter set a trade is
// validated against. Fetched once per trade, read-only afterwards.
type SymbolTradingRules struct {
	Symbol         string
	StepSize       decimal.Decimal
	MinQuantity    decimal.Decimal
	TickSize       decimal.Decimal
	MinPrice       decimal.Decimal
	MinNotional    decimal.Decimal
	MultiplierUp   decimal.Decimal
	MultiplierDown decimal.Decimal
	QuoteAsset     string
	QuotePrecision int
}
