package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/indicator"
	"github.com/quantfold/replay/pkg/utility"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Engine replays a pre-loaded, finite tick sequence through a single
// synchronous loop. It is the sole owner of the account and the indicator
// set; given the same ticks and the same order calls, a run is fully
// reproducible. The cursor only moves forward, one tick per Step.
type Engine struct {
	logger  *zap.Logger
	account *Account

	ticks  []common.Tick
	cursor int

	// Indicators are evaluated in registration order. Chained indicators
	// always read the prior step's value of their input, never the
	// same-step one.
	names      []string
	indicators map[string]*indicator.Indicator

	lastPrice      map[string]fixed.Point
	orderIdCounter common.OrderId

	onTick          TickHandler
	onTrade         TradeHandler
	onEquity        EquityHandler
	onOrderRejected OrderRejectedHandler
}

func New(logger *zap.Logger, ticks []common.Tick, startingCash fixed.Point, options ...Option) *Engine {
	e := &Engine{
		logger:     logger,
		account:    NewAccount(startingCash),
		ticks:      ticks,
		indicators: make(map[string]*indicator.Indicator),
		lastPrice:  make(map[string]fixed.Point),
	}

	for _, option := range options {
		option(e)
	}

	return e
}

func (e *Engine) Account() *Account {
	return e.account
}

// Cursor is the index of the next tick to be processed.
func (e *Engine) Cursor() int {
	return e.cursor
}

func (e *Engine) TickCount() int {
	return len(e.ticks)
}

// CurrentTick is the tick the next Step will process.
func (e *Engine) CurrentTick() (common.Tick, error) {
	if e.cursor >= len(e.ticks) {
		return common.Tick{}, ErrSequenceExhausted
	}
	return e.ticks[e.cursor], nil
}

// RegisterIndicator adds a named indicator. The input must be either the
// price token or the name of an already registered indicator; forward
// references are rejected, which also rules out cycles and pins the
// evaluation order to the registration order.
func (e *Engine) RegisterIndicator(name string, ind *indicator.Indicator) error {
	if name == "" || name == indicator.InputPrice {
		return fmt.Errorf("indicator name %q is reserved", name)
	}
	if _, exists := e.indicators[name]; exists {
		return fmt.Errorf("indicator %q is already registered", name)
	}
	if input := ind.Input(); input != indicator.InputPrice {
		if _, exists := e.indicators[input]; !exists {
			return fmt.Errorf("indicator %q input %q is not registered", name, input)
		}
	}

	e.names = append(e.names, name)
	e.indicators[name] = ind
	return nil
}

// IndicatorValue returns the latest value of a registered indicator, or
// false while the indicator is not ready or unknown.
func (e *Engine) IndicatorValue(name string) (float64, bool) {
	ind, ok := e.indicators[name]
	if !ok {
		return 0, false
	}
	return ind.Value()
}

// PlaceOrder submits a signed-lot trade request for the asset, resolved
// synchronously against the current tick's quote: buys fill at the ask,
// sells at the bid. The executed order stays on the account until the next
// Step's reconciliation converts it into a position fill. Rejected orders
// are logged and discarded without touching the ledger.
func (e *Engine) PlaceOrder(asset string, lots int64) error {
	tick, err := e.CurrentTick()
	if err != nil {
		return err
	}

	e.orderIdCounter++
	order := common.Order{
		Id:        e.orderIdCounter,
		State:     common.OrderStatePending,
		Asset:     asset,
		Lots:      lots,
		RunID:     utility.GetRunID(),
		TimeStamp: tick.TimeStamp,
	}

	if lots == 0 {
		e.rejectOrder(order, "zero lots")
		return fmt.Errorf("%w: zero lots", ErrOrderRejected)
	}

	price := tick.Ask
	if lots < 0 {
		price = tick.Bid
	}

	cost, err := price.MulInt64Checked(lots)
	if err != nil {
		return fmt.Errorf("order cost at tick %d: %w", e.cursor, err)
	}
	if cost.Gt(e.account.cash) {
		e.rejectOrder(order, "insufficient cash")
		return ErrInsufficientCash
	}

	order.State = common.OrderStateExecuted
	order.CostBasis = price
	e.account.orders = append(e.account.orders, order)
	return nil
}

// Step processes exactly one tick: indicators first, then the price record,
// then order reconciliation, then the cursor advance. Calling Step past the
// end of the sequence reports ErrSequenceExhausted and does nothing.
func (e *Engine) Step() error {
	tick, err := e.CurrentTick()
	if err != nil {
		return err
	}

	e.updateIndicators(tick)

	e.lastPrice[tick.Asset] = tick.Mid()

	if err := e.reconcileOrders(tick); err != nil {
		return fmt.Errorf("reconcile at tick %d: %w", e.cursor, err)
	}

	e.cursor++

	if e.onTick != nil {
		e.onTick(tick)
	}
	if e.onEquity != nil {
		equity, err := e.Equity()
		if err != nil {
			return fmt.Errorf("equity at tick %d: %w", e.cursor-1, err)
		}
		e.onEquity(equity)
	}
	return nil
}

// Equity is cash plus the mark-to-market value of all open positions. A
// position whose asset has no recorded price yet is marked at its own cost
// basis, so equity is meaningful immediately after a fill.
func (e *Engine) Equity() (fixed.Point, error) {
	equity := e.account.cash

	// Deterministic summation order regardless of map layout.
	assets := slices.Sorted(maps.Keys(e.account.portfolio))

	for _, asset := range assets {
		position := e.account.portfolio[asset]

		mark, ok := e.lastPrice[asset]
		if !ok {
			mark = position.CostBasis
		}

		value, err := mark.MulInt64Checked(position.Lots)
		if err != nil {
			return fixed.Zero, fmt.Errorf("marking %s: %w", asset, err)
		}
		equity, err = equity.AddChecked(value)
		if err != nil {
			return fixed.Zero, fmt.Errorf("marking %s: %w", asset, err)
		}
	}

	return equity, nil
}

// LastPrice is the most recent recorded midpoint for the asset.
func (e *Engine) LastPrice(asset string) (fixed.Point, bool) {
	price, ok := e.lastPrice[asset]
	return price, ok
}

// updateIndicators runs every indicator exactly once for the tick. All
// values are snapshotted first, so an indicator consuming another indicator
// samples its input as of the previous step.
func (e *Engine) updateIndicators(tick common.Tick) {
	type snapshot struct {
		value float64
		ok    bool
	}

	snapshots := make(map[string]snapshot, len(e.names))
	for name, ind := range e.indicators {
		value, ok := ind.Value()
		snapshots[name] = snapshot{value, ok}
	}

	mid, _ := tick.Mid().Float64()

	for _, name := range e.names {
		ind := e.indicators[name]
		if ind.Input() == indicator.InputPrice {
			ind.Observe(mid, true)
			continue
		}
		s := snapshots[ind.Input()]
		ind.Observe(s.value, s.ok)
	}
}

// reconcileOrders converts executed orders into account fills and drops
// rejected ones. Pending orders stay untouched. A fill failing on cash is a
// rejection, not a fault; an arithmetic error aborts the step.
func (e *Engine) reconcileOrders(tick common.Tick) error {
	remaining := make([]common.Order, 0, len(e.account.orders))

	for _, order := range e.account.orders {
		switch order.State {
		case common.OrderStatePending:
			remaining = append(remaining, order)

		case common.OrderStateRejected:
			e.logger.Info("discarding rejected order",
				zap.Int64("order_id", order.Id),
				zap.String("asset", order.Asset))

		case common.OrderStateExecuted:
			trade := common.Trade{
				OrderId:   order.Id,
				Asset:     order.Asset,
				Lots:      order.Lots,
				CostBasis: order.CostBasis,
				RunID:     order.RunID,
				TimeStamp: tick.TimeStamp,
			}

			if err := e.account.applyFill(trade); err != nil {
				if errors.Is(err, ErrInsufficientCash) {
					e.rejectOrder(order, "insufficient cash")
					continue
				}
				return fmt.Errorf("order %d: %w", order.Id, err)
			}

			if e.onTrade != nil {
				e.onTrade(trade)
			}
		}
	}

	e.account.orders = remaining
	return nil
}

func (e *Engine) rejectOrder(order common.Order, reason string) {
	order.State = common.OrderStateRejected
	e.logger.Warn("order rejected",
		zap.Int64("order_id", order.Id),
		zap.String("asset", order.Asset),
		zap.Int64("lots", order.Lots),
		zap.String("reason", reason))

	if e.onOrderRejected != nil {
		e.onOrderRejected(order, reason)
	}
}
