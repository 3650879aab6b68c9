package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-oco-bot/src/config"
)

func TestLoadTradeRequestFromEnv(t *testing.T) {
	assertion := assert.New(t)

	t.Setenv("TRADE_CONFIG", "")
	t.Setenv("PAIR", "BNBUSDT")
	t.Setenv("AMOUNT", "2")
	t.Setenv("BUY_PRICE", "0.002")
	t.Setenv("BUY_LIMIT_PRICE", "")
	t.Setenv("CANCEL_PRICE", "")
	t.Setenv("STOP_LIMIT_PRICE", "")
	t.Setenv("STOP_PRICE", "0.001")
	t.Setenv("TARGET_PRICE", "0.003")
	t.Setenv("SCALE_OUT_AMOUNT", "1")
	t.Setenv("NON_BNB_FEES", "true")

	request, err := config.LoadTradeRequest()

	assertion.Nil(err)
	assertion.Equal("BNBUSDT", request.Pair)
	assertion.Equal("2", request.Amount.String())
	assertion.Equal("0.002", request.BuyPrice.String())
	assertion.Nil(request.BuyLimitPrice)
	assertion.Equal("0.001", request.StopPrice.String())
	assertion.Equal("0.003", request.TargetPrice.String())
	assertion.Equal("1", request.ScaleOutAmount.String())
	assertion.True(request.NonBnbFees)
}

func TestLoadTradeRequestFromYamlFile(t *testing.T) {
	assertion := assert.New(t)

	content := `
pair: ETHUSDT
amount: "3"
buyPrice: "0"
stopPrice: "1400"
stopLimitPrice: "1390"
targetPrice: "1600"
`
	path := filepath.Join(t.TempDir(), "trade.yaml")
	assertion.Nil(os.WriteFile(path, []byte(content), 0644))

	t.Setenv("TRADE_CONFIG", path)

	request, err := config.LoadTradeRequest()

	assertion.Nil(err)
	assertion.Equal("ETHUSDT", request.Pair)
	assertion.Equal("3", request.Amount.String())
	assertion.Equal("0", request.BuyPrice.String())
	assertion.Equal("1400", request.StopPrice.String())
	assertion.Equal("1390", request.StopLimitPrice.String())
	assertion.Equal("1600", request.TargetPrice.String())
	assertion.False(request.NonBnbFees)
}

func TestLoadTradeRequestRejectsBrokenNumbers(t *testing.T) {
	assertion := assert.New(t)

	t.Setenv("TRADE_CONFIG", "")
	t.Setenv("PAIR", "BNBUSDT")
	t.Setenv("AMOUNT", "not-a-number")

	_, err := config.LoadTradeRequest()
	assertion.ErrorContains(err, "amount")

	t.Setenv("AMOUNT", "1")
	t.Setenv("BUY_PRICE", "abc")

	_, err = config.LoadTradeRequest()
	assertion.ErrorContains(err, "buyPrice")
}
