package validator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-oco-bot/src/model"
)

// TradeRequestValidator checks a raw TradeRequest before any exchange call
// is made. The first violated rule wins.
type TradeRequestValidator struct {
}

func (v *TradeRequestValidator) Validate(request model.TradeRequest) error {
	if request.Pair == "" {
		return errors.New("pair is required")
	}

	if !request.Amount.IsPositive() {
		return errors.New("amount is required and must be positive")
	}

	if !request.HasBuy() && !request.HasStop() && !request.HasTarget() {
		return errors.New("at least one of buyPrice, stopPrice or targetPrice is required")
	}

	if request.BuyPrice != nil && request.BuyPrice.IsNegative() {
		return errors.New("buyPrice must not be negative")
	}

	if err := v.validatePositive("buyLimitPrice", request.BuyLimitPrice); err != nil {
		return err
	}

	if err := v.validatePositive("cancelPrice", request.CancelPrice); err != nil {
		return err
	}

	if err := v.validatePositive("stopPrice", request.StopPrice); err != nil {
		return err
	}

	if err := v.validatePositive("stopLimitPrice", request.StopLimitPrice); err != nil {
		return err
	}

	if err := v.validatePositive("targetPrice", request.TargetPrice); err != nil {
		return err
	}

	if err := v.validatePositive("scaleOutAmount", request.ScaleOutAmount); err != nil {
		return err
	}

	if request.HasStop() && request.HasBuy() && request.BuyPrice.IsPositive() {
		if request.StopPrice.GreaterThanOrEqual(*request.BuyPrice) {
			return errors.New("stopPrice must be less than buyPrice")
		}
	}

	if request.HasTarget() && request.HasStop() && request.TargetPrice.LessThanOrEqual(*request.StopPrice) {
		return errors.New("targetPrice must be greater than stopPrice")
	}

	if request.HasTarget() && request.HasBuy() && request.TargetPrice.LessThanOrEqual(*request.BuyPrice) {
		return errors.New("targetPrice must be greater than buyPrice")
	}

	if request.BuyLimitPrice != nil && !request.HasBuy() {
		return errors.New("buyLimitPrice requires buyPrice")
	}

	if request.CancelPrice != nil && !request.HasBuy() {
		return errors.New("cancelPrice requires buyPrice")
	}

	if request.StopLimitPrice != nil && !request.HasStop() {
		return errors.New("stopLimitPrice requires stopPrice")
	}

	if request.ScaleOutAmount != nil {
		if !request.HasTarget() {
			return errors.New("scaleOutAmount requires targetPrice")
		}

		if request.ScaleOutAmount.GreaterThanOrEqual(request.Amount) {
			return errors.New("scaleOutAmount must be less than amount")
		}
	}

	return nil
}

func (v *TradeRequestValidator) validatePositive(field string, value *decimal.Decimal) error {
	if value != nil && !value.IsPositive() {
		return errors.New(fmt.Sprintf("%s must be positive", field))
	}

	return nil
}
