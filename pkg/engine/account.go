package engine

import (
	"fmt"
	"maps"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Account is the ledger: cash, open positions keyed by asset, the
// append-only trade log and the in-flight orders. All monetary arithmetic
// goes through checked decimal operations; a fill either applies completely
// or leaves the ledger untouched.
type Account struct {
	cash      fixed.Point
	portfolio map[string]common.Position
	trades    []common.Trade
	orders    []common.Order
}

func NewAccount(startingCash fixed.Point) *Account {
	return &Account{
		cash:      startingCash,
		portfolio: make(map[string]common.Position),
	}
}

func (a *Account) Cash() fixed.Point {
	return a.cash
}

func (a *Account) Position(asset string) (common.Position, bool) {
	position, ok := a.portfolio[asset]
	return position, ok
}

// Portfolio returns a copy of the open positions.
func (a *Account) Portfolio() map[string]common.Position {
	out := make(map[string]common.Position, len(a.portfolio))
	maps.Copy(out, a.portfolio)
	return out
}

func (a *Account) Trades() []common.Trade {
	return a.trades
}

func (a *Account) Orders() []common.Order {
	return a.orders
}

// applyFill settles one executed order against the ledger. The fill is
// rejected without any state change when its cost exceeds available cash;
// that is the only validation performed, there is no margin or borrow check.
// New cash, lots and cost basis are all computed before anything is
// committed, so an arithmetic fault cannot leave a half-applied fill behind.
func (a *Account) applyFill(trade common.Trade) error {
	cost, err := trade.Cost()
	if err != nil {
		return fmt.Errorf("fill cost: %w", err)
	}

	if cost.Gt(a.cash) {
		return ErrInsufficientCash
	}

	newCash, err := a.cash.SubChecked(cost)
	if err != nil {
		return fmt.Errorf("cash debit: %w", err)
	}

	position, exists := a.portfolio[trade.Asset]
	newLots := position.Lots + trade.Lots

	var newBasis fixed.Point
	if exists && newLots != 0 {
		// Lot-weighted average of the existing position and the new fill.
		existingEquity, err := position.CostBasis.MulInt64Checked(position.Lots)
		if err != nil {
			return fmt.Errorf("position equity: %w", err)
		}
		totalEquity, err := existingEquity.AddChecked(cost)
		if err != nil {
			return fmt.Errorf("combined equity: %w", err)
		}
		newBasis, err = totalEquity.DivInt64Checked(newLots)
		if err != nil {
			return fmt.Errorf("cost basis: %w", err)
		}
	} else {
		newBasis = trade.CostBasis
	}

	if newLots == 0 {
		// Fully closed, the zero-lot position must not linger in the
		// portfolio. Cash and trade log effects still apply.
		delete(a.portfolio, trade.Asset)
	} else {
		a.portfolio[trade.Asset] = common.Position{
			Asset:     trade.Asset,
			Lots:      newLots,
			CostBasis: newBasis,
		}
	}

	a.cash = newCash
	a.trades = append(a.trades, trade)
	return nil
}
