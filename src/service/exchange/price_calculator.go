package exchange

import (
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-oco-bot/src/client"
	"gitlab.com/open-soft/go-oco-bot/src/model"
	"gitlab.com/open-soft/go-oco-bot/src/utils"
)

type PriceCalculatorInterface interface {
	DeriveBuyLimitPrice(rules model.SymbolTradingRules, amount decimal.Decimal) (decimal.Decimal, error)
	DeriveStopLimitPrice(rules model.SymbolTradingRules, stopQuantity decimal.Decimal) (decimal.Decimal, error)
}

// PriceCalculator derives the limit prices the caller did not give
// explicitly, keeping the resulting orders affordable and inside the
// exchange's percent price band.
type PriceCalculator struct {
	Binance        client.ExchangeAPIInterface
	SymbolResolver SymbolResolverInterface
	Formatter      *utils.Formatter
}

// DeriveBuyLimitPrice returns the default limit price of a stop-triggered
// entry: the lesser of what the quote balance affords for the amount and
// the upper percent price band, one tick below.
func (c *PriceCalculator) DeriveBuyLimitPrice(rules model.SymbolTradingRules, amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := c.SymbolResolver.GetFreeBalance(rules.QuoteAsset)
	if err != nil {
		return decimal.Zero, err
	}

	averagePrice, err := c.Binance.GetAveragePrice(rules.Symbol)
	if err != nil {
		return decimal.Zero, err
	}

	maxAvailablePrice := balance.Div(amount)
	maxPercentPrice := averagePrice.Mul(rules.MultiplierUp)

	return c.Formatter.RoundTicks(
		c.Formatter.Min(maxAvailablePrice, maxPercentPrice).Sub(rules.TickSize),
		rules.TickSize,
	), nil
}

// DeriveStopLimitPrice returns the default limit price of a stop loss exit:
// the greatest of the minimum price, the lower percent price band and the
// minimum notional price for the stop quantity, one tick above. The order
// cannot then be rejected for leaving the band or the notional floor.
func (c *PriceCalculator) DeriveStopLimitPrice(rules model.SymbolTradingRules, stopQuantity decimal.Decimal) (decimal.Decimal, error) {
	averagePrice, err := c.Binance.GetAveragePrice(rules.Symbol)
	if err != nil {
		return decimal.Zero, err
	}

	minPercentPrice := averagePrice.Mul(rules.MultiplierDown)
	minNotionalPrice := rules.MinNotional.Div(stopQuantity)

	return c.Formatter.RoundTicks(
		c.Formatter.Max(rules.MinPrice, minPercentPrice, minNotionalPrice).Add(rules.TickSize),
		rules.TickSize,
	), nil
}
