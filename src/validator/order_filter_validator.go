package validator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-oco-bot/src/model"
)

// OrderFilterValidator catches orders the exchange would reject for
// violating the symbol's LOT_SIZE, PRICE_FILTER or NOTIONAL filter.
type OrderFilterValidator struct {
}

func (v *OrderFilterValidator) ValidateQuantity(rules model.SymbolTradingRules, quantity decimal.Decimal) error {
	if quantity.LessThan(rules.MinQuantity) {
		return errors.New(fmt.Sprintf(
			"[%s] quantity %s does not meet minimum order quantity %s",
			rules.Symbol,
			quantity.String(),
			rules.MinQuantity.String(),
		))
	}

	return nil
}

func (v *OrderFilterValidator) ValidateOrder(rules model.SymbolTradingRules, quantity decimal.Decimal, price decimal.Decimal) error {
	if err := v.ValidateQuantity(rules, quantity); err != nil {
		return err
	}

	if price.LessThan(rules.MinPrice) {
		return errors.New(fmt.Sprintf(
			"[%s] price %s does not meet minimum order price %s",
			rules.Symbol,
			price.String(),
			rules.MinPrice.String(),
		))
	}

	if quantity.Mul(price).LessThan(rules.MinNotional) {
		return errors.New(fmt.Sprintf(
			"[%s] order value %s does not meet minimum order value %s",
			rules.Symbol,
			quantity.Mul(price).String(),
			rules.MinNotional.String(),
		))
	}

	return nil
}
