package common

import (
	"time"

	"github.com/quantfold/replay/pkg/utility"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

type OrderState int
type OrderId = int64

const (
	OrderStatePending OrderState = iota
	OrderStateExecuted
	OrderStateRejected
)

func (s OrderState) String() string {
	switch s {
	case OrderStatePending:
		return "pending"
	case OrderStateExecuted:
		return "executed"
	case OrderStateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Order is an in-flight trade request. Lots is signed: positive buys,
// negative sells. CostBasis is set once the order executes and carries the
// fill price until reconciliation converts the order into a position fill.
type Order struct {
	Id        OrderId     `json:"id"`
	State     OrderState  `json:"state"`
	Asset     string      `json:"asset"`
	Lots      int64       `json:"lots"`
	CostBasis fixed.Point `json:"cost_basis"`

	RunID     utility.RunID `json:"rid,omitempty"`
	TimeStamp time.Time     `json:"ts"`
}
