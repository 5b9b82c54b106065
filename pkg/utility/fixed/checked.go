package fixed

import (
	"github.com/govalues/decimal"
)

// Checked arithmetic for ledger code. Monetary state must never be derived
// from an operation whose overflow was swallowed, so every fallible decimal
// operation is surfaced as an error instead of a panic.

func (p Point) AddChecked(o Point) (Point, error) {
	v, err := p.v.Add(o.v)
	if err != nil {
		return Point{}, err
	}
	return Point{v}, nil
}

func (p Point) SubChecked(o Point) (Point, error) {
	v, err := p.v.Sub(o.v)
	if err != nil {
		return Point{}, err
	}
	return Point{v}, nil
}

func (p Point) MulChecked(o Point) (Point, error) {
	v, err := p.v.Mul(o.v)
	if err != nil {
		return Point{}, err
	}
	return Point{v}, nil
}

func (p Point) DivChecked(o Point) (Point, error) {
	v, err := p.v.Quo(o.v)
	if err != nil {
		return Point{}, err
	}
	return Point{v}, nil
}

func (p Point) MulInt64Checked(o int64) (Point, error) {
	d, err := decimal.New(o, 0)
	if err != nil {
		return Point{}, err
	}
	v, err := p.v.Mul(d)
	if err != nil {
		return Point{}, err
	}
	return Point{v}, nil
}

func (p Point) DivInt64Checked(o int64) (Point, error) {
	d, err := decimal.New(o, 0)
	if err != nil {
		return Point{}, err
	}
	v, err := p.v.Quo(d)
	if err != nil {
		return Point{}, err
	}
	return Point{v}, nil
}
