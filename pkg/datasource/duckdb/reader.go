package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/quantfold/replay/pkg/common"
	"github.com/quantfold/replay/pkg/utility/fixed"
)

// Reader loads tick sequences from a duckdb database. The expected schema is
// a `ticks` table with ts, asset, bid and ask columns; bid/ask are read as
// text so the decimal values survive unrounded.
type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

func (r *Reader) LoadTicks(ctx context.Context, asset string, from, to time.Time) ([]common.Tick, error) {
	const query = `SELECT ts, CAST(bid AS VARCHAR), CAST(ask AS VARCHAR)
		FROM ticks WHERE asset = ? AND ts BETWEEN ? AND ? ORDER BY ts`

	rows, err := r.db.QueryContext(ctx, query, asset, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying ticks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ticks []common.Tick
	for rows.Next() {
		var ts time.Time
		var bidText, askText string

		if err := rows.Scan(&ts, &bidText, &askText); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(ticks), err)
		}

		bid, err := fixed.Parse(bidText)
		if err != nil {
			return nil, fmt.Errorf("row %d bid %q: %w", len(ticks), bidText, err)
		}
		ask, err := fixed.Parse(askText)
		if err != nil {
			return nil, fmt.Errorf("row %d ask %q: %w", len(ticks), askText, err)
		}

		ticks = append(ticks, common.Tick{
			Asset:     asset,
			Bid:       bid,
			Ask:       ask,
			TimeStamp: ts,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return ticks, nil
}
