package exchange

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-oco-bot/src/client"
	"gitlab.com/open-soft/go-oco-bot/src/model"
)

type SymbolResolverInterface interface {
	GetTradingRules(symbol string) (model.SymbolTradingRules, error)
	GetFreeBalance(asset string) (decimal.Decimal, error)
}

// SymbolResolver is a thin read-through over the exchange metadata
// endpoints. No caching: every trade fetches fresh filters and balances.
type SymbolResolver struct {
	Binance client.ExchangeAPIInterface
}

func (r *SymbolResolver) GetTradingRules(symbol string) (model.SymbolTradingRules, error) {
	exchangeSymbol, err := r.Binance.GetExchangeInfo(symbol)
	if err != nil {
		return model.SymbolTradingRules{}, err
	}

	rules := model.SymbolTradingRules{
		Symbol:         symbol,
		QuoteAsset:     exchangeSymbol.QuoteAsset,
		QuotePrecision: exchangeSymbol.QuotePrecision,
		// exchange defaults when no PERCENT_PRICE filter is configured
		MultiplierUp:   decimal.NewFromInt(5),
		MultiplierDown: decimal.RequireFromString("0.2"),
	}

	for _, filter := range exchangeSymbol.Filters {
		switch filter.FilterType {
		case model.BinanceExchangeFilterTypeLotSize:
			if filter.StepSize != nil {
				rules.StepSize = *filter.StepSize
			}
			if filter.MinQuantity != nil {
				rules.MinQuantity = *filter.MinQuantity
			}
		case model.BinanceExchangeFilterTypePrice:
			if filter.TickSize != nil {
				rules.TickSize = *filter.TickSize
			}
			if filter.MinPrice != nil {
				rules.MinPrice = *filter.MinPrice
			}
		case model.BinanceExchangeFilterTypeNotional, model.BinanceExchangeFilterTypeMinNotional:
			if filter.MinNotional != nil {
				rules.MinNotional = *filter.MinNotional
			}
		case model.BinanceExchangeFilterTypePercentPrice:
			if filter.MultiplierUp != nil {
				rules.MultiplierUp = *filter.MultiplierUp
			}
			if filter.MultiplierDown != nil {
				rules.MultiplierDown = *filter.MultiplierDown
			}
		case model.BinanceExchangeFilterTypePercentPriceBySide:
			// buys are bounded upwards by the bid band, sells downwards by the ask band
			if filter.BidMultiplierUp != nil {
				rules.MultiplierUp = *filter.BidMultiplierUp
			}
			if filter.AskMultiplierDown != nil {
				rules.MultiplierDown = *filter.AskMultiplierDown
			}
		}
	}

	if rules.StepSize.IsZero() || rules.TickSize.IsZero() {
		return model.SymbolTradingRules{}, errors.New(fmt.Sprintf("[%s] incomplete trading filters", symbol))
	}

	return rules, nil
}

func (r *SymbolResolver) GetFreeBalance(asset string) (decimal.Decimal, error) {
	accountStatus, err := r.Binance.GetAccountStatus()
	if err != nil {
		return decimal.Zero, err
	}

	for _, balance := range accountStatus.Balances {
		if balance.Asset == asset {
			return balance.Free, nil
		}
	}

	return decimal.Zero, nil
}
