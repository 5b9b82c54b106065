package engine

import (
	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Handlers are plain synchronous callbacks invoked inline from the step
// loop. There is no event bus and no background dispatch: replay must stay
// deterministic, so observers run to completion before the simulation moves
// on.
type (
	TickHandler          func(common.Tick)
	TradeHandler         func(common.Trade)
	EquityHandler        func(fixed.Point)
	OrderRejectedHandler func(common.Order, string)
)

type Option func(*Engine)

func WithTickHandler(h TickHandler) Option {
	return func(e *Engine) {
		e.onTick = h
	}
}

func WithTradeHandler(h TradeHandler) Option {
	return func(e *Engine) {
		e.onTrade = h
	}
}

func WithEquityHandler(h EquityHandler) Option {
	return func(e *Engine) {
		e.onEquity = h
	}
}

func WithOrderRejectedHandler(h OrderRejectedHandler) Option {
	return func(e *Engine) {
		e.onOrderRejected = h
	}
}
