package exchange_test

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-oco-bot/src/model"
)

type ExchangeAPIMock struct {
	mock.Mock

	mu             sync.Mutex
	tradeHandlers  []func(trade model.Trade)
	reportHandlers []func(report model.ExecutionReport)
}

func (m *ExchangeAPIMock) GetExchangeInfo(symbol string) (*model.ExchangeSymbol, error) {
	args := m.Called(symbol)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.ExchangeSymbol), args.Error(1)
}

func (m *ExchangeAPIMock) GetAveragePrice(symbol string) (decimal.Decimal, error) {
	args := m.Called(symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *ExchangeAPIMock) GetLastPrice(symbol string) (decimal.Decimal, error) {
	args := m.Called(symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *ExchangeAPIMock) GetAccountStatus() (*model.AccountStatus, error) {
	args := m.Called()

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.AccountStatus), args.Error(1)
}

func (m *ExchangeAPIMock) GetTradeFee(symbol string) (model.CommissionRates, error) {
	args := m.Called(symbol)
	return args.Get(0).(model.CommissionRates), args.Error(1)
}

func (m *ExchangeAPIMock) PlaceOrder(order model.OrderRequest) (model.BinanceOrder, error) {
	args := m.Called(order)
	return args.Get(0).(model.BinanceOrder), args.Error(1)
}

func (m *ExchangeAPIMock) TestOrder(order model.OrderRequest) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *ExchangeAPIMock) PlaceOcoOrder(order model.OcoOrderRequest) (model.OcoOrder, error) {
	args := m.Called(order)
	return args.Get(0).(model.OcoOrder), args.Error(1)
}

func (m *ExchangeAPIMock) HasOcoSupport() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *ExchangeAPIMock) CancelOrder(symbol string, orderId int64) (model.BinanceOrder, error) {
	args := m.Called(symbol, orderId)
	return args.Get(0).(model.BinanceOrder), args.Error(1)
}

func (m *ExchangeAPIMock) QueryOrder(symbol string, orderId int64) (model.BinanceOrder, error) {
	args := m.Called(symbol, orderId)
	return args.Get(0).(model.BinanceOrder), args.Error(1)
}

func (m *ExchangeAPIMock) SubscribeTrades(symbol string, handler func(trade model.Trade)) (func(), error) {
	args := m.Called(symbol)

	m.mu.Lock()
	m.tradeHandlers = append(m.tradeHandlers, handler)
	m.mu.Unlock()

	return func() {}, args.Error(0)
}

func (m *ExchangeAPIMock) SubscribeExecutionReports(handler func(report model.ExecutionReport)) (func(), error) {
	args := m.Called()

	m.mu.Lock()
	m.reportHandlers = append(m.reportHandlers, handler)
	m.mu.Unlock()

	return func() {}, args.Error(0)
}

// EmitTrade delivers a trade stream event to every subscribed handler,
// waiting for the subscription to appear first.
func (m *ExchangeAPIMock) EmitTrade(trade model.Trade) {
	for _, handler := range m.waitForTradeHandlers() {
		handler(trade)
	}
}

// EmitReport delivers a user data stream event to every subscribed handler,
// waiting for the subscription to appear first.
func (m *ExchangeAPIMock) EmitReport(report model.ExecutionReport) {
	for _, handler := range m.waitForReportHandlers() {
		handler(report)
	}
}

func (m *ExchangeAPIMock) waitForTradeHandlers() []func(trade model.Trade) {
	for i := 0; i < 2000; i++ {
		m.mu.Lock()
		handlers := append([]func(trade model.Trade){}, m.tradeHandlers...)
		m.mu.Unlock()

		if len(handlers) > 0 {
			return handlers
		}

		time.Sleep(time.Millisecond)
	}

	return nil
}

func (m *ExchangeAPIMock) waitForReportHandlers() []func(report model.ExecutionReport) {
	for i := 0; i < 2000; i++ {
		m.mu.Lock()
		handlers := append([]func(report model.ExecutionReport){}, m.reportHandlers...)
		m.mu.Unlock()

		if len(handlers) > 0 {
			return handlers
		}

		time.Sleep(time.Millisecond)
	}

	return nil
}

type SymbolResolverMock struct {
	mock.Mock
}

func (m *SymbolResolverMock) GetTradingRules(symbol string) (model.SymbolTradingRules, error) {
	args := m.Called(symbol)
	return args.Get(0).(model.SymbolTradingRules), args.Error(1)
}

func (m *SymbolResolverMock) GetFreeBalance(asset string) (decimal.Decimal, error) {
	args := m.Called(asset)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type PriceCalculatorMock struct {
	mock.Mock
}

func (m *PriceCalculatorMock) DeriveBuyLimitPrice(rules model.SymbolTradingRules, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(rules, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *PriceCalculatorMock) DeriveStopLimitPrice(rules model.SymbolTradingRules, stopQuantity decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(rules, stopQuantity)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type CommissionServiceMock struct {
	mock.Mock
}

func (m *CommissionServiceMock) AdjustSellAmounts(state *model.TradeState, commissionAsset string) error {
	args := m.Called(state, commissionAsset)
	return args.Error(0)
}

type TradeLogMock struct {
	mock.Mock

	mu      sync.Mutex
	entries []model.TradeLogEntry
}

func (m *TradeLogMock) Create(entry model.TradeLogEntry) (*int64, error) {
	m.mu.Lock()
	m.entries = append(m.entries, entry)
	id := int64(len(m.entries))
	m.mu.Unlock()

	return &id, nil
}

func (m *TradeLogMock) Entries() []model.TradeLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.TradeLogEntry{}, m.entries...)
}
