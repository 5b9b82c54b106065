package csvtick

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Record shape: Date, Time, Asset, Bid, Ask. Date is YYYY/MM/DD, time is
// HH:MM:SS with an optional fraction, bid/ask are decimal strings.
const timeStampLayout = "2006/01/02 15:04:05"

type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{
		path: path,
	}
}

// ReadAll loads the whole file into an ordered tick sequence.
func (r *Reader) ReadAll() ([]common.Tick, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("unable to open tick file %q: %w", r.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	ticks, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", r.path, err)
	}
	return ticks, nil
}

func Parse(r io.Reader) ([]common.Tick, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 5
	reader.TrimLeadingSpace = true

	var ticks []common.Tick
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		row++

		// Optional header row.
		if row == 1 && strings.EqualFold(record[0], "Date") {
			continue
		}

		tick, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		if len(ticks) > 0 && tick.TimeStamp.Before(ticks[len(ticks)-1].TimeStamp) {
			return nil, fmt.Errorf("row %d: timestamp %s is out of order", row, tick.TimeStamp)
		}

		ticks = append(ticks, tick)
	}

	return ticks, nil
}

func parseRecord(record []string) (common.Tick, error) {
	ts, err := time.Parse(timeStampLayout, record[0]+" "+record[1])
	if err != nil {
		return common.Tick{}, fmt.Errorf("timestamp: %w", err)
	}

	asset := strings.TrimSpace(record[2])
	if asset == "" {
		return common.Tick{}, fmt.Errorf("empty asset")
	}

	bid, err := fixed.Parse(record[3])
	if err != nil {
		return common.Tick{}, fmt.Errorf("bid %q: %w", record[3], err)
	}
	ask, err := fixed.Parse(record[4])
	if err != nil {
		return common.Tick{}, fmt.Errorf("ask %q: %w", record[4], err)
	}

	return common.Tick{
		Asset:     asset,
		Bid:       bid,
		Ask:       ask,
		TimeStamp: ts,
	}, nil
}
