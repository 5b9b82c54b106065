package common

import (
	"time"

	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Tick is one timestamped bid/ask quote for an asset. Ticks are loaded once
// and never mutated afterwards. Bid <= Ask is assumed, not enforced.
type Tick struct {
	Asset     string      `json:"asset"`
	Bid       fixed.Point `json:"bid"`
	Ask       fixed.Point `json:"ask"`
	TimeStamp time.Time   `json:"ts"`
}

// Mid is the canonical price sample for indicators.
func (t Tick) Mid() fixed.Point {
	return t.Bid.Add(t.Ask).DivInt(2)
}
