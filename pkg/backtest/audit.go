package backtest

import (
	"time"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

type accountSnapshot struct {
	cash   fixed.Point
	equity fixed.Point
	t      time.Time
}

// Audit collects account snapshots and settled trades over a run. Snapshots
// closer together than the minimum interval are skipped to keep long
// high-frequency runs bounded.
type Audit struct {
	minSnapshotInterval time.Duration

	accountSnapshots []accountSnapshot
	trades           []common.Trade
	rejectedOrders   int
}

func NewAudit(minSnapshotInterval time.Duration) *Audit {
	return &Audit{
		minSnapshotInterval: minSnapshotInterval,
	}
}

func (a *Audit) AddSnapshot(cash, equity fixed.Point, t time.Time) {
	if len(a.accountSnapshots) == 0 ||
		t.Sub(a.accountSnapshots[len(a.accountSnapshots)-1].t) >= a.minSnapshotInterval {
		a.accountSnapshots = append(a.accountSnapshots, accountSnapshot{cash, equity, t})
	}
}

func (a *Audit) AddTrade(trade common.Trade) {
	a.trades = append(a.trades, trade)
}

func (a *Audit) AddRejectedOrder(common.Order, string) {
	a.rejectedOrders++
}

// GenerateReport condenses the collected snapshots into run metrics. It is
// meaningful only after at least one snapshot was recorded.
func (a *Audit) GenerateReport() Report {
	report := Report{
		TotalTrades:    len(a.trades),
		RejectedOrders: a.rejectedOrders,
	}

	if len(a.accountSnapshots) == 0 {
		return report
	}

	first := a.accountSnapshots[0]
	last := a.accountSnapshots[len(a.accountSnapshots)-1]

	report.StartDate = first.t
	report.EndDate = last.t
	report.InitialEquity = first.equity
	report.FinalEquity = last.equity

	if first.equity.Gt(fixed.Zero) {
		report.TotalProfit = last.equity.Div(first.equity).Sub(fixed.One).Mul(fixed.Hundred).Rescale(2)
	}

	// Max drawdown over the equity curve.
	maxEquity := first.equity
	for _, snapshot := range a.accountSnapshots {
		if snapshot.equity.Gt(maxEquity) {
			maxEquity = snapshot.equity
		}
		if maxEquity.Gt(fixed.Zero) {
			drawdown := maxEquity.Sub(snapshot.equity).Div(maxEquity)
			if drawdown.Gt(report.MaxDrawdown) {
				report.MaxDrawdown = drawdown
			}
		}
	}
	report.MaxDrawdown = report.MaxDrawdown.Mul(fixed.Hundred).Rescale(2)

	// Snapshot-to-snapshot returns feed the risk ratios.
	var returns []fixed.Point
	for i := 1; i < len(a.accountSnapshots); i++ {
		prev := a.accountSnapshots[i-1].equity
		if prev.IsZero() {
			continue
		}
		returns = append(returns, a.accountSnapshots[i].equity.Div(prev).Sub(fixed.One))
	}
	report.SharpeRatio = fixed.SharpeRatio(returns, fixed.Zero)
	report.SortinoRatio = fixed.SortinoRatio(returns, fixed.Zero)

	return report
}
