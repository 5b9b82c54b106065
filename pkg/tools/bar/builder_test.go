package bar

import (
	"testing"
	"time"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

func tick(asset, bid, ask string, second int) common.Tick {
	return common.Tick{
		Asset:     asset,
		Bid:       fixed.MustParse(bid),
		Ask:       fixed.MustParse(ask),
		TimeStamp: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC).Add(time.Duration(second) * time.Second),
	}
}

func TestBarBuilder_PanicsOnZeroPeriod(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for non-positive period")
		}
	}()
	NewBuilder(0, nil)
}

func TestBarBuilder_AggregatesWithinPeriod(t *testing.T) {
	var bars []common.Bar
	builder := NewBuilder(time.Minute, func(b common.Bar) {
		bars = append(bars, b)
	})

	builder.OnTick(tick("EURUSD", "10", "10", 0))
	builder.OnTick(tick("EURUSD", "14", "14", 10))
	builder.OnTick(tick("EURUSD", "8", "8", 20))
	builder.OnTick(tick("EURUSD", "12", "12", 30))
	builder.Flush()

	if len(bars) != 1 {
		t.Fatalf("bars = %d; want 1", len(bars))
	}
	b := bars[0]
	if !b.Open.Eq(fixed.Ten) || !b.High.Eq(fixed.MustParse("14")) ||
		!b.Low.Eq(fixed.MustParse("8")) || !b.Close.Eq(fixed.MustParse("12")) {
		t.Errorf("OHLC = %s/%s/%s/%s; want 10/14/8/12", b.Open, b.High, b.Low, b.Close)
	}
}

func TestBarBuilder_EmitsOnPeriodRollover(t *testing.T) {
	var bars []common.Bar
	builder := NewBuilder(time.Minute, func(b common.Bar) {
		bars = append(bars, b)
	})

	builder.OnTick(tick("EURUSD", "10", "10", 0))
	builder.OnTick(tick("EURUSD", "11", "11", 59))
	builder.OnTick(tick("EURUSD", "12", "12", 60))

	if len(bars) != 1 {
		t.Fatalf("bars = %d; want 1 emitted at rollover", len(bars))
	}
	if !bars[0].Close.Eq(fixed.MustParse("11")) {
		t.Errorf("closed bar close = %s; want 11", bars[0].Close)
	}

	builder.Flush()
	if len(bars) != 2 {
		t.Fatalf("bars after flush = %d; want 2", len(bars))
	}
	if !bars[1].Open.Eq(fixed.MustParse("12")) {
		t.Errorf("new bar open = %s; want 12", bars[1].Open)
	}
}

func TestBarBuilder_UsesMidpoint(t *testing.T) {
	var bars []common.Bar
	builder := NewBuilder(time.Minute, func(b common.Bar) {
		bars = append(bars, b)
	})

	builder.OnTick(tick("EURUSD", "1.0", "1.2", 0))
	builder.Flush()

	if len(bars) != 1 {
		t.Fatalf("bars = %d; want 1", len(bars))
	}
	if !bars[0].Open.Eq(fixed.MustParse("1.1")) {
		t.Errorf("open = %s; want midpoint 1.1", bars[0].Open)
	}
}

func TestBarBuilder_TracksAssetsIndependently(t *testing.T) {
	var bars []common.Bar
	builder := NewBuilder(time.Minute, func(b common.Bar) {
		bars = append(bars, b)
	})

	builder.OnTick(tick("EURUSD", "10", "10", 0))
	builder.OnTick(tick("GBPUSD", "20", "20", 1))
	builder.Flush()

	if len(bars) != 2 {
		t.Fatalf("bars = %d; want 2", len(bars))
	}
	// Flush emits in asset order.
	if bars[0].Asset != "EURUSD" || bars[1].Asset != "GBPUSD" {
		t.Errorf("flush order = %s, %s; want EURUSD, GBPUSD", bars[0].Asset, bars[1].Asset)
	}
}
