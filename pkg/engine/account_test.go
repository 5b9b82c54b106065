package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

func fill(asset string, lots int64, costBasis string) common.Trade {
	return common.Trade{
		Asset:     asset,
		Lots:      lots,
		CostBasis: fixed.MustParse(costBasis),
		TimeStamp: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestAccount_FirstFillCreatesPosition(t *testing.T) {
	account := NewAccount(fixed.MustParse("10000"))

	if err := account.applyFill(fill("EURUSD", 3, "1.25")); err != nil {
		t.Fatalf("applyFill: %v", err)
	}

	position, ok := account.Position("EURUSD")
	if !ok {
		t.Fatal("expected position after first fill")
	}
	if position.Lots != 3 || !position.CostBasis.Eq(fixed.MustParse("1.25")) {
		t.Errorf("position = %d lots @ %s; want 3 @ 1.25", position.Lots, position.CostBasis)
	}
	if want := fixed.MustParse("9996.25"); !account.Cash().Eq(want) {
		t.Errorf("cash = %s; want %s", account.Cash(), want)
	}
	if len(account.Trades()) != 1 {
		t.Errorf("trade log has %d entries; want 1", len(account.Trades()))
	}
}

func TestAccount_WeightedAverageCostBasis(t *testing.T) {
	tests := []struct {
		name      string
		fills     []common.Trade
		wantLots  int64
		wantBasis string
		wantCash  string
	}{
		{
			name:      "two buys average",
			fills:     []common.Trade{fill("EURUSD", 1, "10"), fill("EURUSD", 1, "20")},
			wantLots:  2,
			wantBasis: "15",
			wantCash:  "9970",
		},
		{
			name:      "lot weighted",
			fills:     []common.Trade{fill("EURUSD", 3, "10"), fill("EURUSD", 1, "30")},
			wantLots:  4,
			wantBasis: "15",
			wantCash:  "9940",
		},
		{
			name:      "partial close keeps average",
			fills:     []common.Trade{fill("EURUSD", 4, "10"), fill("EURUSD", -2, "10")},
			wantLots:  2,
			wantBasis: "10",
			wantCash:  "9980",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewAccount(fixed.MustParse("10000"))
			for _, f := range tt.fills {
				if err := account.applyFill(f); err != nil {
					t.Fatalf("applyFill: %v", err)
				}
			}

			position, ok := account.Position("EURUSD")
			if !ok {
				t.Fatal("expected open position")
			}
			if position.Lots != tt.wantLots {
				t.Errorf("lots = %d; want %d", position.Lots, tt.wantLots)
			}
			if !position.CostBasis.Eq(fixed.MustParse(tt.wantBasis)) {
				t.Errorf("cost basis = %s; want %s", position.CostBasis, tt.wantBasis)
			}
			if !account.Cash().Eq(fixed.MustParse(tt.wantCash)) {
				t.Errorf("cash = %s; want %s", account.Cash(), tt.wantCash)
			}
		})
	}
}

func TestAccount_FullCloseRemovesPosition(t *testing.T) {
	account := NewAccount(fixed.MustParse("10000"))

	// Open at the ask, close at the bid: the round trip costs the spread.
	if err := account.applyFill(fill("EURUSD", 5, "1.2002")); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := account.applyFill(fill("EURUSD", -5, "1.2000")); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, ok := account.Position("EURUSD"); ok {
		t.Error("zero-lot position must be removed from the portfolio")
	}
	if want := fixed.MustParse("9999.999"); !account.Cash().Eq(want) {
		t.Errorf("cash = %s; want %s (pre-trade minus captured spread)", account.Cash(), want)
	}
	if len(account.Trades()) != 2 {
		t.Errorf("trade log has %d entries; want 2", len(account.Trades()))
	}
}

func TestAccount_InsufficientCashLeavesStateUnchanged(t *testing.T) {
	account := NewAccount(fixed.MustParse("100"))

	err := account.applyFill(fill("EURUSD", 10, "50"))
	if !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("err = %v; want ErrInsufficientCash", err)
	}

	if !account.Cash().Eq(fixed.MustParse("100")) {
		t.Errorf("cash = %s; want 100", account.Cash())
	}
	if len(account.Portfolio()) != 0 {
		t.Error("portfolio must stay empty after a rejected fill")
	}
	if len(account.Trades()) != 0 {
		t.Error("trade log must stay empty after a rejected fill")
	}
}

func TestAccount_SellCreditIsNeverRejected(t *testing.T) {
	account := NewAccount(fixed.Zero)

	// A sell has negative cost, it credits cash.
	if err := account.applyFill(fill("EURUSD", -2, "5")); err != nil {
		t.Fatalf("applyFill: %v", err)
	}
	if !account.Cash().Eq(fixed.Ten) {
		t.Errorf("cash = %s; want 10", account.Cash())
	}

	position, ok := account.Position("EURUSD")
	if !ok || position.Lots != -2 {
		t.Errorf("expected short position of -2 lots, got %+v (ok=%v)", position, ok)
	}
}

func TestAccount_CashDecreasesBySumOfFillCosts(t *testing.T) {
	account := NewAccount(fixed.MustParse("10000"))

	fills := []common.Trade{
		fill("EURUSD", 2, "1.5"),
		fill("EURUSD", 3, "2.5"),
		fill("EURUSD", -1, "2"),
	}

	total := fixed.Zero
	for _, f := range fills {
		cost, err := f.Cost()
		if err != nil {
			t.Fatalf("cost: %v", err)
		}
		total = total.Add(cost)
		if err := account.applyFill(f); err != nil {
			t.Fatalf("applyFill: %v", err)
		}
	}

	want := fixed.MustParse("10000").Sub(total)
	if !account.Cash().Eq(want) {
		t.Errorf("cash = %s; want %s", account.Cash(), want)
	}
}
