package exchange

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-oco-bot/src/client"
	"gitlab.com/open-soft/go-oco-bot/src/model"
	"gitlab.com/open-soft/go-oco-bot/src/repository"
	"gitlab.com/open-soft/go-oco-bot/src/utils"
	"gitlab.com/open-soft/go-oco-bot/src/validator"
)

// cancelGuard is the at-most-one-concurrent-cancel latch. Two triggers
// firing close together (trade stream and exit hook, or trade stream and
// execution report) must issue at most one cancel call to the exchange.
type cancelGuard struct {
	mutex        sync.Mutex
	isCancelling bool
}

func (g *cancelGuard) tryAcquire() bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.isCancelling {
		return false
	}

	g.isCancelling = true

	return true
}

func (g *cancelGuard) release() {
	g.mutex.Lock()
	g.isCancelling = false
	g.mutex.Unlock()
}

type cancelOutcome int

const (
	// cancelDone: the exchange accepted the cancel
	cancelDone cancelOutcome = iota
	// cancelBusy: another cancel holds the latch, nothing was sent
	cancelBusy
	// cancelGone: the order reached a terminal status first and the
	// exchange no longer knows it as open. A benign race loss.
	cancelGone
)

// TradeExecutor drives one bracket trade through its whole lifecycle:
// entry placement, fill detection, commission adjustment and the
// stop/target exit legs.
type TradeExecutor struct {
	Binance           client.ExchangeAPIInterface
	SymbolResolver    SymbolResolverInterface
	PriceCalculator   PriceCalculatorInterface
	CommissionService CommissionServiceInterface
	RequestValidator  *validator.TradeRequestValidator
	FilterValidator   *validator.OrderFilterValidator
	Formatter         *utils.Formatter
	TimeService       utils.TimeServiceInterface
	TradeLog          repository.TradeLogStorageInterface
}

// Execute runs one bracket trade to terminal resolution and returns nil on
// a successful final fill. exitHook, when given, is invoked once after (or
// in lieu of) entry placement with a callback that cancels a still-unfilled
// entry order.
func (m *TradeExecutor) Execute(request model.TradeRequest, exitHook func(cancel func())) error {
	if err := m.RequestValidator.Validate(request); err != nil {
		return err
	}

	rules, err := m.SymbolResolver.GetTradingRules(request.Pair)
	if err != nil {
		return err
	}

	state, err := m.prepareState(request, rules)
	if err != nil {
		return err
	}

	guard := &cancelGuard{}

	if state.HasBuy() {
		if err := m.executeEntry(state, guard, exitHook); err != nil {
			m.journalOutcome(state, err)

			return err
		}
	} else if exitHook != nil {
		// sell-only trade: no entry order to abort
		exitHook(func() {})
	}

	err = m.superviseExits(state, guard)
	m.journalOutcome(state, err)

	return err
}

// prepareState normalizes the request against the symbol's trading rules,
// derives missing limit prices and rejects orders the exchange would
// refuse, before any capital is committed.
func (m *TradeExecutor) prepareState(request model.TradeRequest, rules model.SymbolTradingRules) (*model.TradeState, error) {
	state := &model.TradeState{
		Symbol:     request.Pair,
		Rules:      rules,
		NonBnbFees: request.NonBnbFees,
	}

	state.Amount = m.Formatter.RoundStep(request.Amount, rules.StepSize)
	if err := m.FilterValidator.ValidateQuantity(rules, state.Amount); err != nil {
		return nil, err
	}

	if request.ScaleOutAmount != nil {
		state.ScaleOutAmount = m.Formatter.RoundStep(*request.ScaleOutAmount, rules.StepSize)
		if err := m.FilterValidator.ValidateQuantity(rules, state.ScaleOutAmount); err != nil {
			return nil, err
		}
	}

	state.StopSellAmount = state.Amount
	state.TargetSellAmount = state.Amount
	if state.ScaleOutAmount.IsPositive() {
		state.TargetSellAmount = state.ScaleOutAmount
	}

	if request.HasBuy() {
		buyPrice := m.Formatter.RoundTicks(*request.BuyPrice, rules.TickSize)
		state.BuyPrice = &buyPrice

		if buyPrice.IsPositive() {
			if err := m.FilterValidator.ValidateOrder(rules, state.Amount, buyPrice); err != nil {
				return nil, err
			}

			if request.BuyLimitPrice != nil {
				state.BuyLimitPrice = m.Formatter.RoundTicks(*request.BuyLimitPrice, rules.TickSize)
			} else {
				derived, err := m.PriceCalculator.DeriveBuyLimitPrice(rules, state.Amount)
				if err != nil {
					return nil, err
				}

				state.BuyLimitPrice = derived
			}
		}
	}

	if request.CancelPrice != nil {
		cancelPrice := m.Formatter.RoundTicks(*request.CancelPrice, rules.TickSize)
		state.CancelPrice = &cancelPrice
	}

	if request.HasStop() {
		stopPrice := m.Formatter.RoundTicks(*request.StopPrice, rules.TickSize)
		state.StopPrice = &stopPrice

		// the smaller leg is placed first after a scale out split, so it
		// is the binding constraint for the exchange filters
		minStopSellAmount := state.StopSellAmount
		if !state.StopSellAmount.Sub(state.TargetSellAmount).IsZero() {
			minStopSellAmount = m.Formatter.RoundStep(
				m.Formatter.Min(state.TargetSellAmount, state.StopSellAmount.Sub(state.TargetSellAmount)),
				rules.StepSize,
			)
		}

		if request.StopLimitPrice != nil {
			state.StopLimitPrice = m.Formatter.RoundTicks(*request.StopLimitPrice, rules.TickSize)
		} else {
			derived, err := m.PriceCalculator.DeriveStopLimitPrice(rules, minStopSellAmount)
			if err != nil {
				return nil, err
			}

			state.StopLimitPrice = derived
		}

		if err := m.FilterValidator.ValidateOrder(rules, minStopSellAmount, state.StopLimitPrice); err != nil {
			return nil, err
		}

		if request.HasBuy() || request.HasTarget() {
			stopLimitPrice := state.StopLimitPrice
			if err := m.Binance.TestOrder(model.OrderRequest{
				Symbol:    state.Symbol,
				Side:      model.OrderSideSell,
				Type:      model.OrderTypeStopLossLimit,
				Quantity:  minStopSellAmount,
				Price:     &stopLimitPrice,
				StopPrice: state.StopPrice,
			}); err != nil {
				return nil, err
			}
		}
	}

	if request.HasTarget() {
		targetPrice := m.Formatter.RoundTicks(*request.TargetPrice, rules.TickSize)
		state.TargetPrice = &targetPrice

		if err := m.FilterValidator.ValidateOrder(rules, state.TargetSellAmount, targetPrice); err != nil {
			return nil, err
		}

		if request.HasBuy() || request.HasStop() {
			if err := m.Binance.TestOrder(model.OrderRequest{
				Symbol:   state.Symbol,
				Side:     model.OrderSideSell,
				Type:     model.OrderTypeLimit,
				Quantity: state.TargetSellAmount,
				Price:    state.TargetPrice,
			}); err != nil {
				return nil, err
			}
		}
	}

	return state, nil
}

func (m *TradeExecutor) executeEntry(state *model.TradeState, guard *cancelGuard, exitHook func(cancel func())) error {
	response, err := m.placeEntryOrder(state)
	if err != nil {
		return err
	}

	state.EntryOrderId = response.OrderId
	m.journalOrder(response)
	log.Printf("[%s] BUY order placed #%d (%s)", state.Symbol, response.OrderId, response.Status)

	entryDone := make(chan struct{})
	defer close(entryDone)

	if exitHook != nil {
		exitHook(func() {
			select {
			case <-entryDone:
				return
			default:
			}

			log.Printf("[%s] exit hook fired, cancelling BUY order #%d", state.Symbol, state.EntryOrderId)
			_, _ = m.cancelOrder(guard, state.Symbol, state.EntryOrderId)
		})
	}

	commissionAsset := response.FirstCommissionAsset()

	if !response.IsFilled() {
		commissionAsset, err = m.waitForEntryFill(state, guard)
		if err != nil {
			return err
		}
	}

	if commissionAsset == "" {
		// the order status poll path carries no fill fee detail
		commissionAsset = model.CommissionAssetBnb
	}

	log.Printf("[%s] BUY order #%d filled, commission asset: %s", state.Symbol, state.EntryOrderId, commissionAsset)

	if state.HasStop() || state.HasTarget() {
		return m.CommissionService.AdjustSellAmounts(state, commissionAsset)
	}

	return nil
}

func (m *TradeExecutor) placeEntryOrder(state *model.TradeState) (model.BinanceOrder, error) {
	if state.BuyPrice.IsZero() {
		log.Printf("[%s] placing MARKET BUY for %s", state.Symbol, state.Amount.String())

		return m.Binance.PlaceOrder(model.OrderRequest{
			Symbol:   state.Symbol,
			Side:     model.OrderSideBuy,
			Type:     model.OrderTypeMarket,
			Quantity: state.Amount,
		})
	}

	currentPrice, err := m.Binance.GetLastPrice(state.Symbol)
	if err != nil {
		return model.BinanceOrder{}, err
	}

	log.Printf("[%s] price: %s", state.Symbol, currentPrice.String())

	if state.BuyPrice.GreaterThan(currentPrice) {
		state.IsStopEntry = true

		limitPrice := state.BuyLimitPrice
		if limitPrice.IsZero() {
			limitPrice = *state.BuyPrice
		}

		log.Printf(
			"[%s] placing BUY STOP (trigger: %s, limit: %s) for %s",
			state.Symbol,
			state.BuyPrice.String(),
			limitPrice.String(),
			state.Amount.String(),
		)

		return m.Binance.PlaceOrder(model.OrderRequest{
			Symbol:    state.Symbol,
			Side:      model.OrderSideBuy,
			Type:      model.OrderTypeStopLossLimit,
			Quantity:  state.Amount,
			Price:     &limitPrice,
			StopPrice: state.BuyPrice,
		})
	}

	state.IsLimitEntry = true

	log.Printf("[%s] placing BUY LIMIT at %s for %s", state.Symbol, state.BuyPrice.String(), state.Amount.String())

	return m.Binance.PlaceOrder(model.OrderRequest{
		Symbol:   state.Symbol,
		Side:     model.OrderSideBuy,
		Type:     model.OrderTypeLimit,
		Quantity: state.Amount,
		Price:    state.BuyPrice,
	})
}

type entryResolution struct {
	commissionAsset string
	err             error
}

// waitForEntryFill blocks until the entry order reaches a terminal status,
// observed by whichever of three racing signals fires first: the execution
// report stream, the trade stream's cancel price watch, or a single order
// status poll covering events missed before the subscriptions were live.
func (m *TradeExecutor) waitForEntryFill(state *model.TradeState, guard *cancelGuard) (string, error) {
	resolution := make(chan entryResolution, 1)
	resolve := func(res entryResolution) {
		select {
		case resolution <- res:
		default:
		}
	}

	unsubscribeReports, err := m.Binance.SubscribeExecutionReports(func(report model.ExecutionReport) {
		if report.OrderId != state.EntryOrderId {
			return
		}

		log.Printf("[%s] %s %s ORDER #%d (%s)", report.Symbol, report.Side, report.OrderType, report.OrderId, report.OrderStatus)

		if !report.IsTerminal() {
			return
		}

		if !report.IsFilled() {
			resolve(entryResolution{err: model.OrderTerminatedError{
				OrderId: report.OrderId,
				Status:  report.OrderStatus,
				Reason:  report.RejectReason,
			}})

			return
		}

		resolve(entryResolution{commissionAsset: report.CommissionAsset})
	})
	if err != nil {
		return "", err
	}
	defer unsubscribeReports()

	if state.HasCancelPrice() {
		unsubscribeTrades, subErr := m.Binance.SubscribeTrades(state.Symbol, func(trade model.Trade) {
			breached := (state.IsStopEntry && trade.Price.LessThanOrEqual(*state.CancelPrice)) ||
				(state.IsLimitEntry && trade.Price.GreaterThanOrEqual(*state.CancelPrice))

			if !breached {
				return
			}

			outcome, cancelErr := m.cancelOrder(guard, state.Symbol, state.EntryOrderId)
			if cancelErr != nil {
				resolve(entryResolution{err: cancelErr})

				return
			}

			if outcome == cancelDone {
				resolve(entryResolution{err: model.OrderTerminatedError{
					OrderId: state.EntryOrderId,
					Status:  model.OrderStatusCanceled,
					Reason:  fmt.Sprintf("cancel price %s hit", state.CancelPrice.String()),
				}})
			}
			// cancelGone and cancelBusy: the entry reached a terminal
			// status on its own, the report stream or poll settles it
		})
		if subErr != nil {
			return "", subErr
		}
		defer unsubscribeTrades()
	}

	go func() {
		order, queryErr := m.Binance.QueryOrder(state.Symbol, state.EntryOrderId)
		if queryErr != nil {
			log.Printf("[%s] BUY order #%d poll failed: %s", state.Symbol, state.EntryOrderId, queryErr.Error())

			return
		}

		if order.IsFilled() {
			resolve(entryResolution{commissionAsset: ""})

			return
		}

		if order.IsTerminal() {
			resolve(entryResolution{err: model.OrderTerminatedError{
				OrderId: order.OrderId,
				Status:  order.Status,
			}})
		}
	}()

	res := <-resolution

	return res.commissionAsset, res.err
}

// superviseExits places the configured exit leg(s) and blocks until one of
// them fills. With both legs configured it prefers the exchange-native OCO
// order list and falls back to manually racing a stop order against the
// target via the trade stream.
func (m *TradeExecutor) superviseExits(state *model.TradeState, guard *cancelGuard) error {
	if !state.HasStop() && !state.HasTarget() {
		return nil
	}

	resolution := make(chan error, 1)
	resolve := func(err error) {
		select {
		case resolution <- err:
		default:
		}
	}

	var raceMutex sync.Mutex
	liveOrders := make(map[int64]bool)
	ocoLegs := make(map[int64]bool)

	watchOrder := func(orderId int64, isOcoLeg bool) {
		raceMutex.Lock()
		liveOrders[orderId] = true
		if isOcoLeg {
			ocoLegs[orderId] = true
		}
		raceMutex.Unlock()

		// catch up in case the fill raced the subscription. Only FILLED
		// settles here: a cancelled or expired order may be one we replaced
		// ourselves, those transitions belong to the report stream
		go func() {
			order, err := m.Binance.QueryOrder(state.Symbol, orderId)
			if err != nil {
				log.Printf("[%s] order #%d poll failed: %s", state.Symbol, orderId, err.Error())

				return
			}

			if order.IsFilled() {
				resolve(nil)
			}
		}()
	}

	unwatchOrder := func(orderId int64) bool {
		raceMutex.Lock()
		defer raceMutex.Unlock()

		if !liveOrders[orderId] {
			return false
		}

		delete(liveOrders, orderId)

		return true
	}

	unsubscribeReports, err := m.Binance.SubscribeExecutionReports(func(report model.ExecutionReport) {
		raceMutex.Lock()
		isLive := liveOrders[report.OrderId]
		isOcoLeg := ocoLegs[report.OrderId]
		raceMutex.Unlock()

		// stale events for orders we cancelled ourselves are dropped here
		if !isLive {
			return
		}

		log.Printf("[%s] %s %s ORDER #%d (%s)", report.Symbol, report.Side, report.OrderType, report.OrderId, report.OrderStatus)

		if !report.IsTerminal() {
			return
		}

		if report.IsFilled() {
			resolve(nil)

			return
		}

		if isOcoLeg && report.IsExpired() {
			// the sibling leg filled or triggered and the exchange expired
			// this one, the sibling's own report settles the trade
			raceMutex.Lock()
			delete(liveOrders, report.OrderId)
			remaining := len(liveOrders)
			raceMutex.Unlock()

			if remaining == 0 {
				resolve(model.OrderTerminatedError{
					OrderId: report.OrderId,
					Status:  report.OrderStatus,
					Reason:  report.RejectReason,
				})
			}

			return
		}

		resolve(model.OrderTerminatedError{
			OrderId: report.OrderId,
			Status:  report.OrderStatus,
			Reason:  report.RejectReason,
		})
	})
	if err != nil {
		return err
	}
	defer unsubscribeReports()

	if state.HasStop() && state.HasTarget() {
		if state.TargetSellAmount.LessThan(state.StopSellAmount) {
			// scale out: lock in protection on the remainder before the
			// bracket goes up
			state.SplitAmount = m.Formatter.RoundStep(state.StopSellAmount.Sub(state.TargetSellAmount), state.Rules.StepSize)

			remainderOrder, placeErr := m.placeStopOrder(state, state.SplitAmount)
			if placeErr != nil {
				return placeErr
			}

			state.RemainderOrderId = remainderOrder.OrderId
			state.StopSellAmount = state.TargetSellAmount
			watchOrder(remainderOrder.OrderId, false)
		}

		if m.Binance.HasOcoSupport() {
			ocoOrder, placeErr := m.placeOcoOrder(state, state.StopSellAmount)
			if placeErr != nil {
				return placeErr
			}

			for _, legId := range ocoOrder.LegIds() {
				watchOrder(legId, true)
			}
		} else {
			stopOrder, placeErr := m.placeStopOrder(state, state.StopSellAmount)
			if placeErr != nil {
				return placeErr
			}

			state.StopOrderId = stopOrder.OrderId
			watchOrder(stopOrder.OrderId, false)

			unsubscribeTrades, subErr := m.Binance.SubscribeTrades(state.Symbol, func(trade model.Trade) {
				m.raceStopTarget(state, guard, trade, watchOrder, unwatchOrder, resolve)
			})
			if subErr != nil {
				return subErr
			}
			defer unsubscribeTrades()
		}
	} else if state.HasStop() {
		stopOrder, placeErr := m.placeStopOrder(state, state.StopSellAmount)
		if placeErr != nil {
			return placeErr
		}

		state.StopOrderId = stopOrder.OrderId
		watchOrder(stopOrder.OrderId, false)
	} else {
		targetOrder, placeErr := m.placeTargetOrder(state, state.TargetSellAmount)
		if placeErr != nil {
			return placeErr
		}

		state.TargetOrderId = targetOrder.OrderId
		watchOrder(targetOrder.OrderId, false)
	}

	return <-resolution
}

// raceStopTarget is the manual one-cancels-the-other fallback: at most one
// bracket leg is live at a time, and a trade price crossing the opposite
// trigger cancels the live leg and places the other. Trade stream events
// arrive sequentially, so the order ids on state are only touched here.
func (m *TradeExecutor) raceStopTarget(
	state *model.TradeState,
	guard *cancelGuard,
	trade model.Trade,
	watchOrder func(orderId int64, isOcoLeg bool),
	unwatchOrder func(orderId int64) bool,
	resolve func(err error),
) {
	if state.StopOrderId != 0 && state.TargetOrderId == 0 && trade.Price.GreaterThanOrEqual(*state.TargetPrice) {
		log.Printf("[%s] target price %s hit, cancelling STOP order #%d", state.Symbol, state.TargetPrice.String(), state.StopOrderId)

		if !unwatchOrder(state.StopOrderId) {
			return
		}

		outcome, err := m.cancelOrder(guard, state.Symbol, state.StopOrderId)
		if err != nil {
			resolve(err)

			return
		}

		switch outcome {
		case cancelBusy:
			watchOrder(state.StopOrderId, false)

			return
		case cancelGone:
			m.settleFromStatus(state, state.StopOrderId, resolve)

			return
		}

		state.StopOrderId = 0

		targetOrder, err := m.placeTargetOrder(state, state.TargetSellAmount)
		if err != nil {
			resolve(err)

			return
		}

		state.TargetOrderId = targetOrder.OrderId
		watchOrder(targetOrder.OrderId, false)

		// re-establish the split remainder protection if it was folded
		// into the cancelled stop earlier
		if state.SplitAmount.IsPositive() && state.RemainderOrderId == 0 {
			remainderOrder, err := m.placeStopOrder(state, state.SplitAmount)
			if err != nil {
				resolve(err)

				return
			}

			state.RemainderOrderId = remainderOrder.OrderId
			state.StopSellAmount = state.TargetSellAmount
			watchOrder(remainderOrder.OrderId, false)
		}

		return
	}

	if state.TargetOrderId != 0 && state.StopOrderId == 0 && trade.Price.LessThanOrEqual(*state.StopPrice) {
		log.Printf("[%s] stop price %s hit, cancelling TARGET order #%d", state.Symbol, state.StopPrice.String(), state.TargetOrderId)

		if !unwatchOrder(state.TargetOrderId) {
			return
		}

		outcome, err := m.cancelOrder(guard, state.Symbol, state.TargetOrderId)
		if err != nil {
			resolve(err)

			return
		}

		switch outcome {
		case cancelBusy:
			watchOrder(state.TargetOrderId, false)

			return
		case cancelGone:
			m.settleFromStatus(state, state.TargetOrderId, resolve)

			return
		}

		state.TargetOrderId = 0

		// restore the previously split remainder into the new stop order
		quantity := state.TargetSellAmount
		if state.SplitAmount.IsPositive() && state.RemainderOrderId != 0 && unwatchOrder(state.RemainderOrderId) {
			outcome, err = m.cancelOrder(guard, state.Symbol, state.RemainderOrderId)
			if err != nil {
				resolve(err)

				return
			}

			switch outcome {
			case cancelDone:
				state.RemainderOrderId = 0
				quantity = quantity.Add(state.SplitAmount)
			case cancelBusy:
				watchOrder(state.RemainderOrderId, false)
			case cancelGone:
				m.settleFromStatus(state, state.RemainderOrderId, resolve)

				return
			}
		}

		stopOrder, err := m.placeStopOrder(state, quantity)
		if err != nil {
			resolve(err)

			return
		}

		state.StopOrderId = stopOrder.OrderId
		state.StopSellAmount = quantity
		watchOrder(stopOrder.OrderId, false)
	}
}

// settleFromStatus resolves the trade from the final status of an order a
// cancel lost against.
func (m *TradeExecutor) settleFromStatus(state *model.TradeState, orderId int64, resolve func(err error)) {
	order, err := m.Binance.QueryOrder(state.Symbol, orderId)
	if err != nil {
		resolve(err)

		return
	}

	if order.IsFilled() {
		resolve(nil)

		return
	}

	resolve(model.OrderTerminatedError{OrderId: orderId, Status: order.Status})
}

func (m *TradeExecutor) cancelOrder(guard *cancelGuard, symbol string, orderId int64) (cancelOutcome, error) {
	if !guard.tryAcquire() {
		return cancelBusy, nil
	}
	defer guard.release()

	_, err := m.Binance.CancelOrder(symbol, orderId)
	if err != nil {
		var apiError *model.Error
		if errors.As(err, &apiError) && apiError.IsUnknownOrder() {
			log.Printf("[%s] cancel #%d lost the race: %s", symbol, orderId, apiError.GetMessage())

			return cancelGone, nil
		}

		return cancelBusy, err
	}

	log.Printf("[%s] order #%d cancelled", symbol, orderId)

	return cancelDone, nil
}

func (m *TradeExecutor) placeStopOrder(state *model.TradeState, quantity decimal.Decimal) (model.BinanceOrder, error) {
	limitPrice := state.StopLimitPrice
	if limitPrice.IsZero() {
		limitPrice = *state.StopPrice
	}

	log.Printf(
		"[%s] placing SELL STOP (stop: %s, limit: %s) for %s",
		state.Symbol,
		state.StopPrice.String(),
		limitPrice.String(),
		quantity.String(),
	)

	order, err := m.Binance.PlaceOrder(model.OrderRequest{
		Symbol:    state.Symbol,
		Side:      model.OrderSideSell,
		Type:      model.OrderTypeStopLossLimit,
		Quantity:  quantity,
		Price:     &limitPrice,
		StopPrice: state.StopPrice,
	})
	if err != nil {
		return model.BinanceOrder{}, err
	}

	log.Printf("[%s] SELL order placed #%d", state.Symbol, order.OrderId)
	m.journalOrder(order)

	return order, nil
}

func (m *TradeExecutor) placeTargetOrder(state *model.TradeState, quantity decimal.Decimal) (model.BinanceOrder, error) {
	log.Printf("[%s] placing SELL TARGET (limit: %s) for %s", state.Symbol, state.TargetPrice.String(), quantity.String())

	order, err := m.Binance.PlaceOrder(model.OrderRequest{
		Symbol:   state.Symbol,
		Side:     model.OrderSideSell,
		Type:     model.OrderTypeLimit,
		Quantity: quantity,
		Price:    state.TargetPrice,
	})
	if err != nil {
		return model.BinanceOrder{}, err
	}

	log.Printf("[%s] SELL order placed #%d", state.Symbol, order.OrderId)
	m.journalOrder(order)

	return order, nil
}

func (m *TradeExecutor) placeOcoOrder(state *model.TradeState, quantity decimal.Decimal) (model.OcoOrder, error) {
	stopLimitPrice := state.StopLimitPrice
	if stopLimitPrice.IsZero() {
		stopLimitPrice = *state.StopPrice
	}

	log.Printf(
		"[%s] placing SELL OCO (target: %s, stop: %s, limit: %s) for %s",
		state.Symbol,
		state.TargetPrice.String(),
		state.StopPrice.String(),
		stopLimitPrice.String(),
		quantity.String(),
	)

	ocoOrder, err := m.Binance.PlaceOcoOrder(model.OcoOrderRequest{
		Symbol:         state.Symbol,
		Side:           model.OrderSideSell,
		Quantity:       quantity,
		Price:          *state.TargetPrice,
		StopPrice:      *state.StopPrice,
		StopLimitPrice: stopLimitPrice,
	})
	if err != nil {
		return model.OcoOrder{}, err
	}

	log.Printf("[%s] SELL order list placed #%d", state.Symbol, ocoOrder.OrderListId)

	for _, report := range ocoOrder.OrderReports {
		m.journalOrder(report)
	}

	return ocoOrder, nil
}

func (m *TradeExecutor) journalOrder(order model.BinanceOrder) {
	if m.TradeLog == nil {
		return
	}

	_, err := m.TradeLog.Create(model.TradeLogEntry{
		Symbol:    order.Symbol,
		Side:      order.Side,
		Type:      order.Type,
		OrderId:   order.OrderId,
		Price:     order.Price,
		Quantity:  order.OrigQty,
		Status:    order.Status,
		CreatedAt: m.TimeService.GetNowDateTimeString(),
	})
	if err != nil {
		log.Printf("[%s] can't journal order #%d: %s", order.Symbol, order.OrderId, err.Error())
	}
}

func (m *TradeExecutor) journalOutcome(state *model.TradeState, tradeErr error) {
	if m.TradeLog == nil {
		return
	}

	status := "RESOLVED"
	if tradeErr != nil {
		status = "FAILED"
	}

	_, err := m.TradeLog.Create(model.TradeLogEntry{
		Symbol:    state.Symbol,
		Type:      "TRADE",
		Status:    status,
		CreatedAt: m.TimeService.GetNowDateTimeString(),
	})
	if err != nil {
		log.Printf("[%s] can't journal trade outcome: %s", state.Symbol, err.Error())
	}
}
