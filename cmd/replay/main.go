package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/quantfold/replay/internal/dbg"
	"github.com/quantfold/replay/pkg/backtest"
	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/datasource/csvtick"
	"github.com/quantfold/replay/pkg/datasource/duckdb"
	"github.com/quantfold/replay/pkg/datasource/historical"
	"github.com/quantfold/replay/pkg/engine"
	"github.com/quantfold/replay/pkg/middleware"
	"github.com/quantfold/replay/pkg/tools/bar"
	"github.com/quantfold/replay/pkg/utility"
)

const Version = "0.1.0"

func main() {
	configPath := flag.String("config", "replay.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := dbg.NewLogger(cfg.Log.Development)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info(fmt.Sprintf("replay %s", Version), zap.String("run_id", utility.GetRunID().String()))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ticks, err := loadTicks(ctx, cfg)
	if err != nil {
		logger.Fatal("error loading ticks", zap.Error(err))
	}
	if len(ticks) == 0 {
		logger.Fatal("tick source is empty",
			zap.String("driver", cfg.Source.Driver), zap.String("path", cfg.Source.Path))
	}
	logger.Info("ticks loaded", zap.Int("count", len(ticks)))

	flags, err := cfg.monitorFlags()
	if err != nil {
		logger.Fatal("error reading monitor configuration", zap.Error(err))
	}

	// Create
	monitor := middleware.NewMonitor(logger, flags)
	telemetry := middleware.NewTelemetry(logger)
	audit := backtest.NewAudit(cfg.Run.SnapshotInterval.Duration)

	var onTick engine.TickHandler
	var barBuilder *bar.Builder
	if cfg.Run.BarPeriod.Duration > 0 {
		barBuilder = bar.NewBuilder(cfg.Run.BarPeriod.Duration, func(b common.Bar) {
			logger.Debug("bar", zap.Any("bar", b))
		})
		onTick = barBuilder.OnTick
	}

	// Initialize
	eng := engine.New(logger, ticks, cfg.Run.StartingCash,
		engine.WithTickHandler(telemetry.WithTick(monitor.WithTick(onTick))),
		engine.WithTradeHandler(telemetry.WithTrade(monitor.WithTrade(audit.AddTrade))),
		engine.WithEquityHandler(telemetry.WithEquity(monitor.WithEquity(nil))),
		engine.WithOrderRejectedHandler(telemetry.WithOrderRejected(monitor.WithOrderRejected(audit.AddRejectedOrder))))

	for _, ic := range cfg.Indicators {
		if err := eng.RegisterIndicator(ic.Name, ic.build()); err != nil {
			logger.Fatal("error registering indicator", zap.Error(err))
		}
	}

	// Execute the replay
	runner := backtest.NewRunner(logger, eng, backtest.Hold{}, audit)
	if err := runner.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("error during replay", zap.Error(err))
		}
	}

	if barBuilder != nil {
		barBuilder.Flush()
	}
	telemetry.PrintStatistics()
	audit.GenerateReport().Print(logger)
}

func loadTicks(ctx context.Context, cfg *Config) ([]common.Tick, error) {
	switch cfg.Source.Driver {
	case DriverCsv:
		return csvtick.NewReader(cfg.Source.Path).ReadAll()
	case DriverBinary:
		source := historical.NewSource[historical.BinaryTick](cfg.Source.Path)
		if err := source.Open(); err != nil {
			return nil, err
		}
		defer source.Close()
		reader := historical.NewTickReader(source, cfg.Source.Asset, cfg.Source.From, cfg.Source.To)
		return reader.ReadAll()
	case DriverDuckDb:
		reader := duckdb.NewReader(cfg.Source.Path)
		if err := reader.Connect(); err != nil {
			return nil, err
		}
		defer reader.Close()
		return reader.LoadTicks(ctx, cfg.Source.Asset, cfg.Source.From, cfg.Source.To)
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Source.Driver)
	}
}
