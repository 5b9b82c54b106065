package common

import (
	"time"

	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Bar is an OHLC aggregate of midpoint prices over a fixed period.
type Bar struct {
	Asset  string        `json:"asset"`
	Period time.Duration `json:"period"`

	Open  fixed.Point `json:"open"`
	High  fixed.Point `json:"high"`
	Low   fixed.Point `json:"low"`
	Close fixed.Point `json:"close"`

	OpenTime  time.Time `json:"open_time"`
	TimeStamp time.Time `json:"ts"`
}
