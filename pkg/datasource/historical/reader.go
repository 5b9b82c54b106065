package historical

import (
	"errors"
	"fmt"
	"time"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// BinaryTick is the on-disk record layout: nanosecond timestamp and float
// quotes. The asset is implied by the file, not stored per record.
type BinaryTick struct {
	TimeStamp int64
	Bid       float64
	Ask       float64
}

func (bt BinaryTick) ToTick(asset string) common.Tick {
	return common.Tick{
		Asset:     asset,
		Bid:       fixed.FromFloat64(bt.Bid),
		Ask:       fixed.FromFloat64(bt.Ask),
		TimeStamp: time.Unix(0, bt.TimeStamp),
	}
}

// TickReader loads the ticks of one asset within a time range. Records are
// assumed sorted by timestamp, which allows a binary search for the start.
type TickReader struct {
	source *Source[BinaryTick]
	asset  string
	from   int64
	to     int64
}

func NewTickReader(source *Source[BinaryTick], asset string, from, to time.Time) *TickReader {
	return &TickReader{
		source: source,
		asset:  asset,
		from:   from.UnixNano(),
		to:     to.UnixNano(),
	}
}

func (t *TickReader) ReadAll() ([]common.Tick, error) {
	start, err := t.lookupStartIndex()
	if err != nil {
		return nil, err
	}

	var ticks []common.Tick
	for idx := start; ; idx++ {
		record, err := t.source.ReadAt(idx)
		if errors.Is(err, ErrEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx, err)
		}
		if record.TimeStamp > t.to {
			break
		}
		ticks = append(ticks, record.ToTick(t.asset))
	}

	return ticks, nil
}

func (t *TickReader) lookupStartIndex() (int64, error) {
	count, err := t.source.Len()
	if err != nil {
		return 0, fmt.Errorf("record count: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("data source is empty")
	}

	low := int64(0)
	high := count - 1

	for low <= high {
		mid := (low + high) / 2

		record, err := t.source.ReadAt(mid)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", mid, err)
		}

		if record.TimeStamp < t.from {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if low >= count {
		return 0, fmt.Errorf("no record with timestamp >= %d", t.from)
	}
	return low, nil
}
