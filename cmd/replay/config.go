package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/quantfold/replay/pkg/indicator"
	"github.com/quantfold/replay/pkg/middleware"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

const (
	DriverCsv    = "csv"
	DriverBinary = "binary"
	DriverDuckDb = "duckdb"
)

type Config struct {
	Log        LogConfig         `toml:"log"`
	Source     SourceConfig      `toml:"source"`
	Run        RunConfig         `toml:"run"`
	Indicators []IndicatorConfig `toml:"indicators"`
}

type LogConfig struct {
	Development bool `toml:"development"`
	// Monitor selects which events the monitor middleware logs.
	// Accepted values: ticks, trades, equity, orders_rejected, all.
	Monitor []string `toml:"monitor"`
}

type SourceConfig struct {
	Driver string `toml:"driver"`
	// Path is the tick file for csv and binary drivers, or the database
	// path for the duckdb driver.
	Path  string    `toml:"path"`
	Asset string    `toml:"asset"`
	From  time.Time `toml:"from"`
	To    time.Time `toml:"to"`
}

type RunConfig struct {
	StartingCash     fixed.Point `toml:"starting_cash"`
	SnapshotInterval duration    `toml:"snapshot_interval"`
	// BarPeriod enables OHLC bar aggregation when set.
	BarPeriod duration `toml:"bar_period"`
}

type IndicatorConfig struct {
	Name   string `toml:"name"`
	Kind   string `toml:"kind"`
	Length int    `toml:"length"`
	Input  string `toml:"input"`
}

// duration lets plain "5m" style strings be used in the toml file.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Development: true,
		},
		Source: SourceConfig{
			Driver: DriverCsv,
		},
		Run: RunConfig{
			StartingCash: fixed.MustParse("10000"),
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to load configuration %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Source.Driver {
	case DriverCsv:
	case DriverBinary, DriverDuckDb:
		if cfg.Source.Asset == "" {
			return fmt.Errorf("source driver %q requires an asset", cfg.Source.Driver)
		}
		if !cfg.Source.From.Before(cfg.Source.To) {
			return fmt.Errorf("source time range [%s, %s] is empty",
				cfg.Source.From.Format(time.RFC3339), cfg.Source.To.Format(time.RFC3339))
		}
	default:
		return fmt.Errorf("unknown source driver %q", cfg.Source.Driver)
	}

	if cfg.Source.Path == "" {
		return fmt.Errorf("source path is required")
	}
	if cfg.Run.StartingCash.IsNeg() || cfg.Run.StartingCash.IsZero() {
		return fmt.Errorf("starting cash must be positive, got %s", cfg.Run.StartingCash)
	}

	for idx := range cfg.Indicators {
		ic := &cfg.Indicators[idx]
		if ic.Name == "" {
			return fmt.Errorf("indicator %d has no name", idx)
		}
		if ic.Kind != "moving_average" && ic.Kind != "momentum" {
			return fmt.Errorf("indicator %q has unknown kind %q", ic.Name, ic.Kind)
		}
		if ic.Length < 1 {
			return fmt.Errorf("indicator %q length must be at least 1, got %d", ic.Name, ic.Length)
		}
		if ic.Input == "" {
			ic.Input = indicator.InputPrice
		}
	}
	return nil
}

func (cfg *Config) monitorFlags() (middleware.MonitorFlags, error) {
	var flags middleware.MonitorFlags
	for _, name := range cfg.Log.Monitor {
		switch name {
		case "ticks":
			flags |= middleware.MonitorTicks
		case "trades":
			flags |= middleware.MonitorTrades
		case "equity":
			flags |= middleware.MonitorEquity
		case "orders_rejected":
			flags |= middleware.MonitorOrdersRejected
		case "all":
			flags |= middleware.MonitorAll
		default:
			return 0, fmt.Errorf("unknown monitor event %q", name)
		}
	}
	return flags, nil
}

func (ic IndicatorConfig) build() *indicator.Indicator {
	if ic.Kind == "momentum" {
		return indicator.NewMomentum(ic.Length, ic.Input)
	}
	return indicator.NewMovingAverage(ic.Length, ic.Input)
}
