package middleware

import (
	"go.uber.org/zap"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/engine"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Telemetry counts events flowing through the handler chain.
type Telemetry struct {
	logger *zap.Logger

	tickEventCounter          int64
	tradeEventCounter         int64
	equityEventCounter        int64
	orderRejectedEventCounter int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithTick(handler engine.TickHandler) engine.TickHandler {
	return func(tick common.Tick) {
		t.tickEventCounter++
		if handler != nil {
			handler(tick)
		}
	}
}

func (t *Telemetry) WithTrade(handler engine.TradeHandler) engine.TradeHandler {
	return func(trade common.Trade) {
		t.tradeEventCounter++
		if handler != nil {
			handler(trade)
		}
	}
}

func (t *Telemetry) WithEquity(handler engine.EquityHandler) engine.EquityHandler {
	return func(equity fixed.Point) {
		t.equityEventCounter++
		if handler != nil {
			handler(equity)
		}
	}
}

func (t *Telemetry) WithOrderRejected(handler engine.OrderRejectedHandler) engine.OrderRejectedHandler {
	return func(order common.Order, reason string) {
		t.orderRejectedEventCounter++
		if handler != nil {
			handler(order, reason)
		}
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("telemetry statistics",
		zap.Int64("tick_events", t.tickEventCounter),
		zap.Int64("trade_events", t.tradeEventCounter),
		zap.Int64("equity_events", t.equityEventCounter),
		zap.Int64("order_rejected_events", t.orderRejectedEventCounter))
}
