package engine

import "errors"

var (
	// ErrInsufficientCash rejects an order whose cost exceeds available
	// cash. Recoverable, the ledger is left untouched.
	ErrInsufficientCash = errors.New("insufficient cash")

	// ErrSequenceExhausted reports a step or order past the end of the tick
	// sequence. Recoverable, no further steps are performed.
	ErrSequenceExhausted = errors.New("tick sequence exhausted")

	// ErrOrderRejected reports an order rejected at submission for a reason
	// other than cash, e.g. zero lots.
	ErrOrderRejected = errors.New("order rejected")
)
