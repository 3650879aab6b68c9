package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-oco-bot/src/model"
	"gitlab.com/open-soft/go-oco-bot/src/validator"
)

func bnbRules() model.SymbolTradingRules {
	return model.SymbolTradingRules{
		Symbol:      "BNBBTC",
		StepSize:    decimal.RequireFromString("0.01"),
		MinQuantity: decimal.RequireFromString("0.01"),
		TickSize:    decimal.RequireFromString("0.0000001"),
		MinPrice:    decimal.RequireFromString("0.0000001"),
		MinNotional: decimal.RequireFromString("0.0001"),
	}
}

func TestValidateQuantity(t *testing.T) {
	assertion := assert.New(t)
	filterValidator := validator.OrderFilterValidator{}

	assertion.Nil(filterValidator.ValidateQuantity(bnbRules(), decimal.RequireFromString("0.01")))

	err := filterValidator.ValidateQuantity(bnbRules(), decimal.RequireFromString("0.009"))
	assertion.ErrorContains(err, "does not meet minimum order quantity")
}

func TestValidateOrder(t *testing.T) {
	assertion := assert.New(t)
	filterValidator := validator.OrderFilterValidator{}

	assertion.Nil(filterValidator.ValidateOrder(
		bnbRules(),
		decimal.RequireFromString("1"),
		decimal.RequireFromString("0.002"),
	))

	err := filterValidator.ValidateOrder(
		bnbRules(),
		decimal.RequireFromString("1"),
		decimal.RequireFromString("0.00000001"),
	)
	assertion.ErrorContains(err, "does not meet minimum order price")

	err = filterValidator.ValidateOrder(
		bnbRules(),
		decimal.RequireFromString("0.01"),
		decimal.RequireFromString("0.001"),
	)
	assertion.ErrorContains(err, "does not meet minimum order value")
}
