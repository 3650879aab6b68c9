package exchange_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-oco-bot/src/model"
	"gitlab.com/open-soft/go-oco-bot/src/service/exchange"
)

func ref(value string) *decimal.Decimal {
	parsed := decimal.RequireFromString(value)

	return &parsed
}

func TestGetTradingRulesFlattensFilters(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	binanceMock.On("GetExchangeInfo", "BNBUSDT").Return(&model.ExchangeSymbol{
		Symbol:         "BNBUSDT",
		Status:         "TRADING",
		BaseAsset:      "BNB",
		QuoteAsset:     "USDT",
		QuotePrecision: 8,
		Filters: []model.ExchangeFilter{
			{
				FilterType:  model.BinanceExchangeFilterTypeLotSize,
				StepSize:    ref("0.01"),
				MinQuantity: ref("0.01"),
			},
			{
				FilterType: model.BinanceExchangeFilterTypePrice,
				TickSize:   ref("0.1"),
				MinPrice:   ref("0.1"),
			},
			{
				FilterType:  model.BinanceExchangeFilterTypeNotional,
				MinNotional: ref("10"),
			},
			{
				FilterType:     model.BinanceExchangeFilterTypePercentPrice,
				MultiplierUp:   ref("1.3"),
				MultiplierDown: ref("0.7"),
			},
		},
	}, nil)

	resolver := exchange.SymbolResolver{Binance: binanceMock}

	rules, err := resolver.GetTradingRules("BNBUSDT")

	assertion.Nil(err)
	assertion.Equal("BNBUSDT", rules.Symbol)
	assertion.Equal("USDT", rules.QuoteAsset)
	assertion.Equal("0.01", rules.StepSize.String())
	assertion.Equal("0.01", rules.MinQuantity.String())
	assertion.Equal("0.1", rules.TickSize.String())
	assertion.Equal("0.1", rules.MinPrice.String())
	assertion.Equal("10", rules.MinNotional.String())
	assertion.Equal("1.3", rules.MultiplierUp.String())
	assertion.Equal("0.7", rules.MultiplierDown.String())
}

func TestGetTradingRulesUsesSidedPercentBand(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	binanceMock.On("GetExchangeInfo", "ETHUSDT").Return(&model.ExchangeSymbol{
		Symbol:     "ETHUSDT",
		QuoteAsset: "USDT",
		Filters: []model.ExchangeFilter{
			{
				FilterType:  model.BinanceExchangeFilterTypeLotSize,
				StepSize:    ref("0.001"),
				MinQuantity: ref("0.001"),
			},
			{
				FilterType: model.BinanceExchangeFilterTypePrice,
				TickSize:   ref("0.01"),
				MinPrice:   ref("0.01"),
			},
			{
				FilterType:        model.BinanceExchangeFilterTypePercentPriceBySide,
				BidMultiplierUp:   ref("1.2"),
				AskMultiplierDown: ref("0.8"),
			},
		},
	}, nil)

	resolver := exchange.SymbolResolver{Binance: binanceMock}

	rules, err := resolver.GetTradingRules("ETHUSDT")

	assertion.Nil(err)
	assertion.Equal("1.2", rules.MultiplierUp.String())
	assertion.Equal("0.8", rules.MultiplierDown.String())
}

func TestGetTradingRulesDefaultsPercentBand(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	binanceMock.On("GetExchangeInfo", "BNBBTC").Return(&model.ExchangeSymbol{
		Symbol:     "BNBBTC",
		QuoteAsset: "BTC",
		Filters: []model.ExchangeFilter{
			{
				FilterType:  model.BinanceExchangeFilterTypeLotSize,
				StepSize:    ref("0.01"),
				MinQuantity: ref("0.01"),
			},
			{
				FilterType: model.BinanceExchangeFilterTypePrice,
				TickSize:   ref("0.0000001"),
				MinPrice:   ref("0.0000001"),
			},
		},
	}, nil)

	resolver := exchange.SymbolResolver{Binance: binanceMock}

	rules, err := resolver.GetTradingRules("BNBBTC")

	assertion.Nil(err)
	assertion.Equal("5", rules.MultiplierUp.String())
	assertion.Equal("0.2", rules.MultiplierDown.String())
}

func TestGetTradingRulesRejectsIncompleteFilters(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	binanceMock.On("GetExchangeInfo", "BNBBTC").Return(&model.ExchangeSymbol{
		Symbol:     "BNBBTC",
		QuoteAsset: "BTC",
		Filters:    []model.ExchangeFilter{},
	}, nil)

	resolver := exchange.SymbolResolver{Binance: binanceMock}

	_, err := resolver.GetTradingRules("BNBBTC")
	assertion.ErrorContains(err, "incomplete trading filters")
}

func TestGetFreeBalance(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	binanceMock.On("GetAccountStatus").Return(&model.AccountStatus{
		Balances: []model.Balance{
			{Asset: "BTC", Free: decimal.RequireFromString("0.5"), Locked: decimal.Zero},
			{Asset: "USDT", Free: decimal.RequireFromString("1000"), Locked: decimal.RequireFromString("50")},
		},
	}, nil)

	resolver := exchange.SymbolResolver{Binance: binanceMock}

	balance, err := resolver.GetFreeBalance("USDT")
	assertion.Nil(err)
	assertion.Equal("1000", balance.String())

	balance, err = resolver.GetFreeBalance("XRP")
	assertion.Nil(err)
	assertion.Equal("0", balance.String())
}
