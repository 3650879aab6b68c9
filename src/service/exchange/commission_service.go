package exchange

import (
	"log"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-oco-bot/src/client"
	"gitlab.com/open-soft/go-oco-bot/src/model"
	"gitlab.com/open-soft/go-oco-bot/src/utils"
)

type CommissionServiceInterface interface {
	AdjustSellAmounts(state *model.TradeState, commissionAsset string) error
}

// CommissionService reduces the sell quantities by the trading fee taken
// out of the bought asset. When the fee was paid in BNB (and the caller
// did not force non-BNB accounting) the bought quantity is untouched.
type CommissionService struct {
	Binance   client.ExchangeAPIInterface
	Formatter *utils.Formatter
}

func (c *CommissionService) AdjustSellAmounts(state *model.TradeState, commissionAsset string) error {
	if commissionAsset == model.CommissionAssetBnb && !state.NonBnbFees {
		return nil
	}

	tradeFee, err := c.Binance.GetTradeFee(state.Symbol)
	if err != nil {
		log.Printf("[%s] could not pull trade fee: %s", state.Symbol, err.Error())

		return err
	}

	factor := decimal.NewFromInt(1).Sub(tradeFee.Maker)

	state.StopSellAmount = c.Formatter.RoundStep(state.StopSellAmount.Mul(factor), state.Rules.StepSize)
	state.TargetSellAmount = c.Formatter.RoundStep(state.TargetSellAmount.Mul(factor), state.Rules.StepSize)

	log.Printf(
		"[%s] sell amounts adjusted for %s commission: stop %s, target %s",
		state.Symbol,
		commissionAsset,
		state.StopSellAmount.String(),
		state.TargetSellAmount.String(),
	)

	return nil
}
