package backtest

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quantfold/replay/pkg/utility/fixed"
)

type Report struct {
	StartDate     time.Time
	EndDate       time.Time
	InitialEquity fixed.Point
	FinalEquity   fixed.Point

	TotalProfit fixed.Point
	MaxDrawdown fixed.Point

	TotalTrades    int
	RejectedOrders int

	SharpeRatio  fixed.Point
	SortinoRatio fixed.Point
}

func (report Report) Print(logger *zap.Logger) {
	logger.Info("performance report",
		zap.Time("start_date", report.StartDate),
		zap.Time("end_date", report.EndDate),
		zap.String("initial_equity", report.InitialEquity.String()),
		zap.String("final_equity", report.FinalEquity.String()),
		zap.String("total_profit", fmt.Sprintf("%s%%", report.TotalProfit.String())),
		zap.String("max_drawdown", fmt.Sprintf("%s%%", report.MaxDrawdown.String())))

	logger.Info("trade statistics",
		zap.Int("total_trades", report.TotalTrades),
		zap.Int("rejected_orders", report.RejectedOrders))

	logger.Info("risk metrics",
		zap.String("sharpe_ratio", report.SharpeRatio.String()),
		zap.String("sortino_ratio", report.SortinoRatio.String()))
}
