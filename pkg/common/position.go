package common

import (
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Position is an open holding. Lots is signed: positive is long, negative is
// short. CostBasis is the lot-weighted average price at which the current
// lots were acquired. A position with zero lots must never exist in a
// portfolio; it is removed the instant its lot count reaches zero.
type Position struct {
	Asset     string      `json:"asset"`
	Lots      int64       `json:"lots"`
	CostBasis fixed.Point `json:"cost_basis"`
}

func (p Position) IsLong() bool {
	return p.Lots > 0
}

func (p Position) IsShort() bool {
	return p.Lots < 0
}
