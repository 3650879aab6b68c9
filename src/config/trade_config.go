package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-oco-bot/src/model"
	"gopkg.in/yaml.v3"
)

type tradeConfig struct {
	Pair           string `yaml:"pair"`
	Amount         string `yaml:"amount"`
	BuyPrice       string `yaml:"buyPrice"`
	BuyLimitPrice  string `yaml:"buyLimitPrice"`
	CancelPrice    string `yaml:"cancelPrice"`
	StopPrice      string `yaml:"stopPrice"`
	StopLimitPrice string `yaml:"stopLimitPrice"`
	TargetPrice    string `yaml:"targetPrice"`
	ScaleOutAmount string `yaml:"scaleOutAmount"`
	NonBnbFees     bool   `yaml:"nonBnbFees"`
}

// LoadTradeRequest reads the trade definition from the yaml file named by
// TRADE_CONFIG, or from plain environment variables when it is unset.
func LoadTradeRequest() (model.TradeRequest, error) {
	raw := tradeConfig{}

	if path := os.Getenv("TRADE_CONFIG"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return model.TradeRequest{}, err
		}

		if err := yaml.Unmarshal(content, &raw); err != nil {
			return model.TradeRequest{}, err
		}
	} else {
		raw.Pair = os.Getenv("PAIR")
		raw.Amount = os.Getenv("AMOUNT")
		raw.BuyPrice = os.Getenv("BUY_PRICE")
		raw.BuyLimitPrice = os.Getenv("BUY_LIMIT_PRICE")
		raw.CancelPrice = os.Getenv("CANCEL_PRICE")
		raw.StopPrice = os.Getenv("STOP_PRICE")
		raw.StopLimitPrice = os.Getenv("STOP_LIMIT_PRICE")
		raw.TargetPrice = os.Getenv("TARGET_PRICE")
		raw.ScaleOutAmount = os.Getenv("SCALE_OUT_AMOUNT")

		if value := os.Getenv("NON_BNB_FEES"); value != "" {
			nonBnbFees, err := strconv.ParseBool(value)
			if err != nil {
				return model.TradeRequest{}, errors.New(fmt.Sprintf("NON_BNB_FEES: %s", err.Error()))
			}

			raw.NonBnbFees = nonBnbFees
		}
	}

	return buildTradeRequest(raw)
}

func buildTradeRequest(raw tradeConfig) (model.TradeRequest, error) {
	request := model.TradeRequest{
		Pair:       raw.Pair,
		NonBnbFees: raw.NonBnbFees,
	}

	if raw.Amount != "" {
		amount, err := decimal.NewFromString(raw.Amount)
		if err != nil {
			return model.TradeRequest{}, errors.New(fmt.Sprintf("amount: %s", err.Error()))
		}

		request.Amount = amount
	}

	fields := []struct {
		name   string
		value  string
		target **decimal.Decimal
	}{
		{"buyPrice", raw.BuyPrice, &request.BuyPrice},
		{"buyLimitPrice", raw.BuyLimitPrice, &request.BuyLimitPrice},
		{"cancelPrice", raw.CancelPrice, &request.CancelPrice},
		{"stopPrice", raw.StopPrice, &request.StopPrice},
		{"stopLimitPrice", raw.StopLimitPrice, &request.StopLimitPrice},
		{"targetPrice", raw.TargetPrice, &request.TargetPrice},
		{"scaleOutAmount", raw.ScaleOutAmount, &request.ScaleOutAmount},
	}

	for _, field := range fields {
		if field.value == "" {
			continue
		}

		parsed, err := decimal.NewFromString(field.value)
		if err != nil {
			return model.TradeRequest{}, errors.New(fmt.Sprintf("%s: %s", field.name, err.Error()))
		}

		*field.target = &parsed
	}

	return request, nil
}
