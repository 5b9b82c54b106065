package middleware

import (
	"go.uber.org/zap"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/engine"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

type MonitorFlags uint8

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorTicks
	MonitorTrades
	MonitorEquity
	MonitorOrdersRejected
)

// Monitor logs the events it is configured for and passes them on. Purely
// synchronous, it adds no buffering between the engine and the wrapped
// handler.
type Monitor struct {
	logger *zap.Logger
	flags  MonitorFlags
}

func NewMonitor(logger *zap.Logger, flags MonitorFlags) *Monitor {
	return &Monitor{
		logger: logger,
		flags:  flags,
	}
}

func (m *Monitor) WithTick(handler engine.TickHandler) engine.TickHandler {
	return func(tick common.Tick) {
		if m.flags&MonitorTicks != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.Any("tick", tick))
		}
		if handler != nil {
			handler(tick)
		}
	}
}

func (m *Monitor) WithTrade(handler engine.TradeHandler) engine.TradeHandler {
	return func(trade common.Trade) {
		if m.flags&MonitorTrades != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.Any("trade", trade))
		}
		if handler != nil {
			handler(trade)
		}
	}
}

func (m *Monitor) WithEquity(handler engine.EquityHandler) engine.EquityHandler {
	return func(equity fixed.Point) {
		if m.flags&MonitorEquity != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.String("equity", equity.String()))
		}
		if handler != nil {
			handler(equity)
		}
	}
}

func (m *Monitor) WithOrderRejected(handler engine.OrderRejectedHandler) engine.OrderRejectedHandler {
	return func(order common.Order, reason string) {
		if m.flags&MonitorOrdersRejected != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event", zap.Any("order_rejected", order), zap.String("reason", reason))
		}
		if handler != nil {
			handler(order, reason)
		}
	}
}
