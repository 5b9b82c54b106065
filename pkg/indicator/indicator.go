package indicator

import (
	"github.com/quantfold/replay/pkg/utility/circular"
)

// InputPrice is the literal input token naming the raw midpoint price of the
// current tick. Any other input string names another registered indicator,
// sampled from its previous-step value.
const InputPrice = "price"

type Kind int

const (
	KindMovingAverage Kind = iota
	KindMomentum
)

func (k Kind) String() string {
	switch k {
	case KindMovingAverage:
		return "moving_average"
	case KindMomentum:
		return "momentum"
	default:
		return "unknown"
	}
}

// sample is one observation in the window. A sample may be absent when the
// upstream indicator had no value yet; absent samples occupy a window slot
// but are skipped by the computations.
type sample struct {
	value   float64
	present bool
}

// Indicator is a closed tagged variant over the supported rolling
// computations. Indicator values are plain float64: derived statistics
// tolerate float imprecision, unlike the decimal ledger.
type Indicator struct {
	kind   Kind
	length int
	input  string
	window *circular.Buffer[sample]
}

func NewMovingAverage(length int, input string) *Indicator {
	return newIndicator(KindMovingAverage, length, input)
}

func NewMomentum(length int, input string) *Indicator {
	return newIndicator(KindMomentum, length, input)
}

func newIndicator(kind Kind, length int, input string) *Indicator {
	if length < 1 {
		panic("indicator length must be at least 1")
	}
	return &Indicator{
		kind:   kind,
		length: length,
		input:  input,
		window: circular.NewBuffer[sample](length),
	}
}

func (i *Indicator) Kind() Kind    { return i.kind }
func (i *Indicator) Length() int   { return i.length }
func (i *Indicator) Input() string { return i.input }

// Observe pushes one observation for the current step. Present must be false
// when the upstream input had no value; the slot still counts against the
// window length so chained indicators stay aligned in time.
func (i *Indicator) Observe(value float64, present bool) {
	i.window.Push(sample{value: value, present: present})
}

// Value returns the current value, or false while the indicator is not
// ready. Not-ready is an expected state, never an error.
func (i *Indicator) Value() (float64, bool) {
	switch i.kind {
	case KindMovingAverage:
		return i.movingAverage()
	case KindMomentum:
		return i.momentum()
	default:
		panic("unknown indicator kind")
	}
}

// movingAverage is the arithmetic mean of present samples. Absent samples
// are skipped, not treated as zero.
func (i *Indicator) movingAverage() (float64, bool) {
	var sum float64
	var count int
	i.window.Each(func(s sample) {
		if s.present {
			sum += s.value
			count++
		}
	})
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// momentum is oldest minus newest over the present samples in the window.
func (i *Indicator) momentum() (float64, bool) {
	newest, oldest := 0.0, 0.0
	found := false
	for idx := 0; idx < i.window.Len(); idx++ {
		s := i.window.At(idx)
		if !s.present {
			continue
		}
		if !found {
			newest = s.value
			found = true
		}
		oldest = s.value
	}
	if !found {
		return 0, false
	}
	return oldest - newest, true
}
