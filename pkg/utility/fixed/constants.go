package fixed

import "github.com/govalues/decimal"

var (
	NegOne  = Point{decimal.MustNew(-1, 0)}
	Zero    = Point{decimal.MustNew(0, 0)}
	One     = Point{decimal.MustNew(1, 0)}
	Two     = Point{decimal.MustNew(2, 0)}
	Ten     = Point{decimal.MustNew(10, 0)}
	Hundred = Point{decimal.MustNew(100, 0)}
)
