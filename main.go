package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gitlab.com/open-soft/go-oco-bot/src/config"
)

func main() {
	pwd, _ := os.Getwd()
	if _, err := os.Stat(fmt.Sprintf("%s/.env", pwd)); err == nil {
		log.Println(".env is found, loading variables...")
		err = godotenv.Load()
		if err != nil {
			log.Println(err)
		}
	}

	request, err := config.LoadTradeRequest()
	if err != nil {
		log.Fatal(err)
	}

	container := config.InitServiceContainer()
	container.Binance.Connect(os.Getenv("BINANCE_WS_DSN"))

	// SIGINT or SIGTERM while the entry order is unfilled cancels it
	// before the process goes down
	err = container.TradeExecutor.Execute(request, func(cancel func()) {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

		go func() {
			<-interrupt
			cancel()
			os.Exit(130)
		}()
	})
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("[%s] trade complete", request.Pair)
}
