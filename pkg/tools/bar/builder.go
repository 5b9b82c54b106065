package bar

import (
	"maps"
	"slices"
	"time"

	"github.com/quantfold/replay/pkg/common"
)

type Handler func(common.Bar)

// Builder aggregates midpoint prices into fixed-period OHLC bars, one bar in
// construction per asset. A bar is emitted when the first tick of the next
// period arrives; Flush emits whatever is still under construction.
type Builder struct {
	period time.Duration
	onBar  Handler

	inConstruction map[string]common.Bar
}

func NewBuilder(period time.Duration, onBar Handler) *Builder {
	if period <= 0 {
		panic("bar period must be positive")
	}
	return &Builder{
		period:         period,
		onBar:          onBar,
		inConstruction: make(map[string]common.Bar),
	}
}

// OnTick matches the engine's tick handler signature so the builder can sit
// anywhere in the observer chain.
func (b *Builder) OnTick(tick common.Tick) {
	price := tick.Mid()

	current, ok := b.inConstruction[tick.Asset]
	if ok && tick.TimeStamp.Before(current.OpenTime.Add(b.period)) {
		if price.Gt(current.High) {
			current.High = price
		}
		if price.Lt(current.Low) {
			current.Low = price
		}
		current.Close = price
		current.TimeStamp = tick.TimeStamp
		b.inConstruction[tick.Asset] = current
		return
	}

	if ok {
		b.emit(current)
	}

	b.inConstruction[tick.Asset] = common.Bar{
		Asset:     tick.Asset,
		Period:    b.period,
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
		OpenTime:  tick.TimeStamp.Truncate(b.period),
		TimeStamp: tick.TimeStamp,
	}
}

// Flush emits all bars still in construction, in asset order.
func (b *Builder) Flush() {
	for _, asset := range slices.Sorted(maps.Keys(b.inConstruction)) {
		b.emit(b.inConstruction[asset])
		delete(b.inConstruction, asset)
	}
}

func (b *Builder) emit(bar common.Bar) {
	if b.onBar != nil {
		b.onBar(bar)
	}
}
