package exchange_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-oco-bot/src/model"
	"gitlab.com/open-soft/go-oco-bot/src/service/exchange"
	"gitlab.com/open-soft/go-oco-bot/src/utils"
)

func usdtRules() model.SymbolTradingRules {
	return model.SymbolTradingRules{
		Symbol:         "ETHUSDT",
		QuoteAsset:     "USDT",
		StepSize:       decimal.RequireFromString("0.001"),
		MinQuantity:    decimal.RequireFromString("0.001"),
		TickSize:       decimal.RequireFromString("0.01"),
		MinPrice:       decimal.RequireFromString("0.01"),
		MinNotional:    decimal.RequireFromString("10"),
		MultiplierUp:   decimal.RequireFromString("5"),
		MultiplierDown: decimal.RequireFromString("0.2"),
	}
}

func TestDeriveBuyLimitPriceCappedByBalance(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	resolverMock := new(SymbolResolverMock)

	// balance 2000 over 2 units caps at 1000, tighter than the band cap
	resolverMock.On("GetFreeBalance", "USDT").Return(decimal.RequireFromString("2000"), nil)
	binanceMock.On("GetAveragePrice", "ETHUSDT").Return(decimal.RequireFromString("1500"), nil)

	calculator := exchange.PriceCalculator{
		Binance:        binanceMock,
		SymbolResolver: resolverMock,
		Formatter:      &utils.Formatter{},
	}

	price, err := calculator.DeriveBuyLimitPrice(usdtRules(), decimal.RequireFromString("2"))

	assertion.Nil(err)
	assertion.Equal("999.99", price.String())
}

func TestDeriveBuyLimitPriceCappedByPercentBand(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	resolverMock := new(SymbolResolverMock)

	resolverMock.On("GetFreeBalance", "USDT").Return(decimal.RequireFromString("1000000"), nil)
	binanceMock.On("GetAveragePrice", "ETHUSDT").Return(decimal.RequireFromString("1500"), nil)

	calculator := exchange.PriceCalculator{
		Binance:        binanceMock,
		SymbolResolver: resolverMock,
		Formatter:      &utils.Formatter{},
	}

	price, err := calculator.DeriveBuyLimitPrice(usdtRules(), decimal.RequireFromString("2"))

	assertion.Nil(err)
	// 1500 * 5 minus one tick
	assertion.Equal("7499.99", price.String())
}

func TestDeriveStopLimitPriceBoundedByPercentBand(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	resolverMock := new(SymbolResolverMock)

	binanceMock.On("GetAveragePrice", "ETHUSDT").Return(decimal.RequireFromString("1500"), nil)

	calculator := exchange.PriceCalculator{
		Binance:        binanceMock,
		SymbolResolver: resolverMock,
		Formatter:      &utils.Formatter{},
	}

	price, err := calculator.DeriveStopLimitPrice(usdtRules(), decimal.RequireFromString("2"))

	assertion.Nil(err)
	// 1500 * 0.2 plus one tick beats minPrice and minNotional/quantity
	assertion.Equal("300.01", price.String())
}

func TestDeriveStopLimitPriceBoundedByMinNotional(t *testing.T) {
	assertion := assert.New(t)

	binanceMock := new(ExchangeAPIMock)
	resolverMock := new(SymbolResolverMock)

	binanceMock.On("GetAveragePrice", "ETHUSDT").Return(decimal.RequireFromString("1"), nil)

	calculator := exchange.PriceCalculator{
		Binance:        binanceMock,
		SymbolResolver: resolverMock,
		Formatter:      &utils.Formatter{},
	}

	// 10 / 0.002 = 5000 dominates the band floor of 0.2
	price, err := calculator.DeriveStopLimitPrice(usdtRules(), decimal.RequireFromString("0.002"))

	assertion.Nil(err)
	assertion.Equal("5000.01", price.String())
}
