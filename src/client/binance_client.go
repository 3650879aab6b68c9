package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	uuid2 "github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-oco-bot/src/model"
)

type ExchangeAPIInterface interface {
	GetExchangeInfo(symbol string) (*model.ExchangeSymbol, error)
	GetAveragePrice(symbol string) (decimal.Decimal, error)
	GetLastPrice(symbol string) (decimal.Decimal, error)
	GetAccountStatus() (*model.AccountStatus, error)
	GetTradeFee(symbol string) (model.CommissionRates, error)
	PlaceOrder(order model.OrderRequest) (model.BinanceOrder, error)
	TestOrder(order model.OrderRequest) error
	PlaceOcoOrder(order model.OcoOrderRequest) (model.OcoOrder, error)
	HasOcoSupport() bool
	CancelOrder(symbol string, orderId int64) (model.BinanceOrder, error)
	QueryOrder(symbol string, orderId int64) (model.BinanceOrder, error)
	SubscribeTrades(symbol string, handler func(trade model.Trade)) (func(), error)
	SubscribeExecutionReports(handler func(report model.ExecutionReport)) (func(), error)
}

type Binance struct {
	ApiKey    string
	ApiSecret string
	StreamDsn string

	connection   *websocket.Conn
	Channel      chan []byte
	SocketWriter chan []byte

	WaitMode  bool
	Connected bool
	Lock      *sync.Mutex
}

func (b *Binance) IsWaitingMode() bool {
	b.Lock.Lock()
	isWaiting := b.WaitMode
	b.Lock.Unlock()

	return isWaiting
}

func (b *Binance) SetWaitingMode(isEnabled bool) {
	b.Lock.Lock()
	b.WaitMode = isEnabled
	b.Lock.Unlock()
}

func (b *Binance) CheckWait() {
	for {
		if !b.IsWaitingMode() {
			break
		}
	}
}

func (b *Binance) Connect(address string) {
	connection, _, err := websocket.DefaultDialer.Dial(address, nil)
	if err != nil {
		b.Connected = false
		log.Printf("Binance WS [%s]: %s, wait and reconnect...", address, err.Error())
		time.Sleep(time.Second * 10)
		b.Connect(address)
		return
	}

	// reader channel
	go func() {
		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				log.Println("read: ", err)

				_ = connection.Close()
				b.Connected = false
				log.Printf("Binance WS, wait and reconnect...")
				time.Sleep(time.Second * 10)
				b.Connect(address)
				return
			}

			b.Channel <- message
		}
	}()

	// writer channel
	go func() {
		for {
			serialized := <-b.SocketWriter
			_ = b.connection.WriteMessage(websocket.TextMessage, serialized)
		}
	}()

	b.connection = connection
	b.Connected = true
	b.connection.SetPingHandler(nil)
}

func (b *Binance) socketRequest(req model.SocketRequest, channel chan []byte) {
	b.CheckWait()

	go func(req model.SocketRequest) {
		for {
			msg := <-b.Channel

			if strings.Contains(string(msg), "Too much request weight used") {
				b.SetWaitingMode(true)

				log.Printf(
					"[%s] Socket error [%s]: %s, wait 1 min and retry...",
					req.Method,
					req.Id,
					string(msg),
				)

				time.Sleep(time.Minute)
				serialized, _ := json.Marshal(req)
				b.SetWaitingMode(false)

				b.SocketWriter <- serialized
				log.Printf("[%s] retried...", req.Id)

				continue
			}

			if strings.Contains(string(msg), req.Id) {
				channel <- msg
				return
			}

			b.Channel <- msg
		}
	}(req)

	serialized, _ := json.Marshal(req)
	b.SocketWriter <- serialized
}

func (b *Binance) GetExchangeInfo(symbol string) (*model.ExchangeSymbol, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "exchangeInfo",
		Params: make(map[string]any),
	}
	socketRequest.Params["symbols"] = []string{symbol}
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.BinanceExchangeInfoResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return nil, response.Error
	}

	for _, exchangeSymbol := range response.Result.Symbols {
		if exchangeSymbol.Symbol == symbol {
			return &exchangeSymbol, nil
		}
	}

	return nil, errors.New(fmt.Sprintf("could not pull exchange info for %s", symbol))
}

func (b *Binance) GetAveragePrice(symbol string) (decimal.Decimal, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "avgPrice",
		Params: make(map[string]any),
	}
	socketRequest.Params["symbol"] = symbol
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.AvgPriceResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return decimal.Zero, response.Error
	}

	return response.Result.Price, nil
}

func (b *Binance) GetLastPrice(symbol string) (decimal.Decimal, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "ticker.price",
		Params: make(map[string]any),
	}
	socketRequest.Params["symbol"] = symbol
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.TickerPriceResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return decimal.Zero, response.Error
	}

	return response.Result.Price, nil
}

func (b *Binance) GetAccountStatus() (*model.AccountStatus, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "account.status",
		Params: make(map[string]any),
	}
	socketRequest.Params["apiKey"] = b.ApiKey
	socketRequest.Params["timestamp"] = time.Now().Unix() * 1000
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.AccountStatusResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return nil, response.Error
	}

	return &response.Result, nil
}

func (b *Binance) GetTradeFee(symbol string) (model.CommissionRates, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "account.commission",
		Params: make(map[string]any),
	}
	socketRequest.Params["apiKey"] = b.ApiKey
	socketRequest.Params["symbol"] = symbol
	socketRequest.Params["timestamp"] = time.Now().Unix() * 1000
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.AccountCommissionResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return model.CommissionRates{}, response.Error
	}

	return response.Result.StandardCommission, nil
}

func (b *Binance) PlaceOrder(order model.OrderRequest) (model.BinanceOrder, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "order.place",
		Params: b.orderParams(order),
	}
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.BinanceOrderResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		log.Printf("[%s] %s %s order: %s", order.Symbol, order.Side, order.Type, response.Error.GetMessage())

		return model.BinanceOrder{}, response.Error
	}

	return response.Result, nil
}

func (b *Binance) TestOrder(order model.OrderRequest) error {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "order.test",
		Params: b.orderParams(order),
	}
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.EmptyResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return response.Error
	}

	return nil
}

func (b *Binance) PlaceOcoOrder(order model.OcoOrderRequest) (model.OcoOrder, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "orderList.place",
		Params: make(map[string]any),
	}
	socketRequest.Params["symbol"] = order.Symbol
	socketRequest.Params["side"] = order.Side
	socketRequest.Params["quantity"] = order.Quantity.String()
	socketRequest.Params["price"] = order.Price.String()
	socketRequest.Params["stopPrice"] = order.StopPrice.String()
	socketRequest.Params["stopLimitPrice"] = order.StopLimitPrice.String()
	socketRequest.Params["stopLimitTimeInForce"] = "GTC"
	socketRequest.Params["newOrderRespType"] = "FULL"
	socketRequest.Params["apiKey"] = b.ApiKey
	socketRequest.Params["timestamp"] = time.Now().Unix() * 1000
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.OcoOrderResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		log.Printf("[%s] OCO %s order: %s", order.Symbol, order.Side, response.Error.GetMessage())

		return model.OcoOrder{}, response.Error
	}

	return response.Result, nil
}

// HasOcoSupport reports the exchange-native one-cancels-the-other capability.
// Binance spot has orderList.place, so the manual stop/target race is only a
// fallback for API flavours without it.
func (b *Binance) HasOcoSupport() bool {
	return true
}

func (b *Binance) CancelOrder(symbol string, orderId int64) (model.BinanceOrder, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "order.cancel",
		Params: make(map[string]any),
	}
	socketRequest.Params["apiKey"] = b.ApiKey
	socketRequest.Params["orderId"] = orderId
	socketRequest.Params["symbol"] = symbol
	socketRequest.Params["timestamp"] = time.Now().Unix() * 1000
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.BinanceOrderResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return model.BinanceOrder{}, response.Error
	}

	return response.Result, nil
}

func (b *Binance) QueryOrder(symbol string, orderId int64) (model.BinanceOrder, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "order.status",
		Params: make(map[string]any),
	}
	socketRequest.Params["apiKey"] = b.ApiKey
	socketRequest.Params["orderId"] = orderId
	socketRequest.Params["symbol"] = symbol
	socketRequest.Params["timestamp"] = time.Now().Unix() * 1000
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.BinanceOrderResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return model.BinanceOrder{}, response.Error
	}

	return response.Result, nil
}

func (b *Binance) UserDataStreamStart() (model.UserDataStreamStart, error) {
	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "userDataStream.start",
		Params: make(map[string]any),
	}
	socketRequest.Params["apiKey"] = b.ApiKey
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.UserDataStreamStartResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return model.UserDataStreamStart{}, response.Error
	}

	return response.Result, nil
}

// SubscribeTrades opens a market data connection for the symbol's aggTrade
// stream and invokes the handler for every trade until the returned
// unsubscribe function is called.
func (b *Binance) SubscribeTrades(symbol string, handler func(trade model.Trade)) (func(), error) {
	eventChannel := make(chan []byte)
	done := make(chan struct{})
	stream := fmt.Sprintf("%s@aggTrade", strings.ToLower(symbol))
	connection := Listen(b.StreamDsn, eventChannel, []string{stream}, 1, done)

	go func() {
		for {
			select {
			case <-done:
				return
			case message := <-eventChannel:
				var trade model.Trade
				json.Unmarshal(message, &trade)

				if trade.EventType != model.EventTypeAggTrade {
					continue
				}

				handler(trade)
			}
		}
	}()

	return func() {
		close(done)
		_ = connection.Close()
	}, nil
}

// SubscribeExecutionReports starts a user data stream and invokes the handler
// for every execution report until the returned unsubscribe function is called.
func (b *Binance) SubscribeExecutionReports(handler func(report model.ExecutionReport)) (func(), error) {
	userDataStream, err := b.UserDataStreamStart()
	if err != nil {
		return nil, err
	}

	eventChannel := make(chan []byte)
	done := make(chan struct{})
	address := fmt.Sprintf("%s/%s", strings.TrimRight(b.StreamDsn, "/"), userDataStream.ListenKey)
	connection := Listen(address, eventChannel, []string{}, 1, done)

	go func() {
		for {
			select {
			case <-done:
				return
			case message := <-eventChannel:
				var report model.ExecutionReport
				json.Unmarshal(message, &report)

				if !report.IsExecutionReport() {
					continue
				}

				handler(report)
			}
		}
	}()

	return func() {
		close(done)
		_ = connection.Close()
	}, nil
}

func (b *Binance) orderParams(order model.OrderRequest) map[string]any {
	params := make(map[string]any)
	params["symbol"] = order.Symbol
	params["side"] = order.Side
	params["type"] = order.Type
	params["quantity"] = order.Quantity.String()
	params["newOrderRespType"] = "FULL"

	if order.Price != nil {
		params["price"] = order.Price.String()
	}

	if order.StopPrice != nil {
		params["stopPrice"] = order.StopPrice.String()
	}

	// MARKET orders have no time in force
	if order.Type != model.OrderTypeMarket {
		params["timeInForce"] = "GTC"
	}

	params["apiKey"] = b.ApiKey
	params["timestamp"] = time.Now().Unix() * 1000

	return params
}

func (b *Binance) signature(params map[string]any) string {
	parts := make([]string, 0)

	keys := make([]string, 0, len(params))

	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, params[key]))
	}

	mac := hmac.New(sha256.New, []byte(b.ApiSecret))
	mac.Write([]byte(strings.Join(parts, "&")))
	signingKey := fmt.Sprintf("%x", mac.Sum(nil))

	return signingKey
}
