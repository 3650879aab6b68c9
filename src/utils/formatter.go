package utils

import (
	"github.com/shopspring/decimal"
)

type Formatter struct {
}

// RoundStep rounds a quantity down to the nearest multiple of the symbol's
// lot step size. Already aligned quantities come back unchanged.
func (m *Formatter) RoundStep(quantity decimal.Decimal, stepSize decimal.Decimal) decimal.Decimal {
	if stepSize.IsZero() {
		return quantity
	}

	return quantity.Div(stepSize).Floor().Mul(stepSize)
}

// RoundTicks rounds a price down to the nearest multiple of the symbol's
// price tick size.
func (m *Formatter) RoundTicks(price decimal.Decimal, tickSize decimal.Decimal) decimal.Decimal {
	if tickSize.IsZero() {
		return price
	}

	return price.Div(tickSize).Floor().Mul(tickSize)
}

func (m *Formatter) Min(first decimal.Decimal, second decimal.Decimal) decimal.Decimal {
	return decimal.Min(first, second)
}

func (m *Formatter) Max(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	return decimal.Max(first, rest...)
}
