package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gitlab.com/open-soft/go-oco-bot/src/client"
	"gitlab.com/open-soft/go-oco-bot/src/repository"
	"gitlab.com/open-soft/go-oco-bot/src/service/exchange"
	"gitlab.com/open-soft/go-oco-bot/src/utils"
	"gitlab.com/open-soft/go-oco-bot/src/validator"
)

type Container struct {
	Binance       *client.Binance
	TradeExecutor *exchange.TradeExecutor
}

func InitServiceContainer() Container {
	binance := client.Binance{
		ApiKey:       os.Getenv("BINANCE_API_KEY"),
		ApiSecret:    os.Getenv("BINANCE_API_SECRET"),
		StreamDsn:    os.Getenv("BINANCE_STREAM_DSN"),
		Channel:      make(chan []byte),
		SocketWriter: make(chan []byte),
		WaitMode:     false,
		Connected:    false,
		Lock:         &sync.Mutex{},
	}

	formatter := utils.Formatter{}

	symbolResolver := exchange.SymbolResolver{
		Binance: &binance,
	}

	priceCalculator := exchange.PriceCalculator{
		Binance:        &binance,
		SymbolResolver: &symbolResolver,
		Formatter:      &formatter,
	}

	commissionService := exchange.CommissionService{
		Binance:   &binance,
		Formatter: &formatter,
	}

	// the journal is optional, trades run fine without a database
	var tradeLog repository.TradeLogStorageInterface
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			log.Fatal(fmt.Sprintf("MySQL can't connect: %s", err.Error()))
		}

		db.SetMaxIdleConns(8)
		db.SetMaxOpenConns(8)
		db.SetConnMaxLifetime(time.Minute)

		tradeLog = &repository.TradeLogRepository{
			DB: db,
		}
	}

	tradeExecutor := exchange.TradeExecutor{
		Binance:           &binance,
		SymbolResolver:    &symbolResolver,
		PriceCalculator:   &priceCalculator,
		CommissionService: &commissionService,
		RequestValidator:  &validator.TradeRequestValidator{},
		FilterValidator:   &validator.OrderFilterValidator{},
		Formatter:         &formatter,
		TimeService:       &utils.TimeHelper{},
		TradeLog:          tradeLog,
	}

	return Container{
		Binance:       &binance,
		TradeExecutor: &tradeExecutor,
	}
}
