package backtest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/engine"
)

// Strategy is invoked once per tick, before the engine processes it, and may
// place orders through the engine. Signal generation itself is out of scope
// here; Hold is the placeholder used when no strategy is supplied.
type Strategy interface {
	OnTick(e *engine.Engine, tick common.Tick)
}

// Hold is the do-nothing strategy.
type Hold struct{}

func (Hold) OnTick(*engine.Engine, common.Tick) {}

// Runner drives the engine through the whole tick sequence, one synchronous
// step at a time, feeding the audit as it goes.
type Runner struct {
	logger   *zap.Logger
	engine   *engine.Engine
	strategy Strategy
	audit    *Audit
}

func NewRunner(logger *zap.Logger, e *engine.Engine, strategy Strategy, audit *Audit) *Runner {
	if strategy == nil {
		strategy = Hold{}
	}
	return &Runner{
		logger:   logger,
		engine:   e,
		strategy: strategy,
		audit:    audit,
	}
}

// Run steps the engine to exhaustion. The simulation terminates naturally
// when the cursor reaches the end of the sequence; cancellation only applies
// between steps, never inside one.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tick, err := r.engine.CurrentTick()
		if errors.Is(err, engine.ErrSequenceExhausted) {
			return nil
		}

		r.strategy.OnTick(r.engine, tick)

		if err := r.engine.Step(); err != nil {
			return fmt.Errorf("run aborted: %w", err)
		}

		if r.audit != nil {
			equity, err := r.engine.Equity()
			if err != nil {
				return fmt.Errorf("run aborted: %w", err)
			}
			r.audit.AddSnapshot(r.engine.Account().Cash(), equity, tick.TimeStamp)
		}
	}
}
