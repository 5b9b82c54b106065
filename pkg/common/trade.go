package common

import (
	"time"

	"github.com/quantfold/replay/pkg/utility"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Trade is one settled fill as recorded in the account's append-only trade
// log. Lots and CostBasis are the fill's own values, not the resulting
// position average.
type Trade struct {
	OrderId   OrderId     `json:"order_id"`
	Asset     string      `json:"asset"`
	Lots      int64       `json:"lots"`
	CostBasis fixed.Point `json:"cost_basis"`

	RunID     utility.RunID `json:"rid,omitempty"`
	TimeStamp time.Time     `json:"ts"`
}

// Cost is the cash debited by the fill, cost basis times lots. Negative for
// sells, which credit cash.
func (t Trade) Cost() (fixed.Point, error) {
	return t.CostBasis.MulInt64Checked(t.Lots)
}
