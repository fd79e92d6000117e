// Package cleaner implements the basic cleaning stage that runs before
// validation: drop price outliers, normalize the review date column, and
// drop rows outside the geographic bound box.
package cleaner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/stayflow-labs/dataguard/pkg/check/rules"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

// Options holds the cleaning parameters.
type Options struct {
	MinPrice    float64
	MaxPrice    float64
	PriceColumn string
	DateColumn  string
	LonColumn   string
	LatColumn   string

	// Bound box; zero values mean the default NYC box.
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// applyDefaults fills unset option fields.
func (o *Options) applyDefaults() {
	if o.PriceColumn == "" {
		o.PriceColumn = "price"
	}
	if o.DateColumn == "" {
		o.DateColumn = "last_review"
	}
	if o.LonColumn == "" {
		o.LonColumn = "longitude"
	}
	if o.LatColumn == "" {
		o.LatColumn = "latitude"
	}
	if o.LonMin == 0 && o.LonMax == 0 {
		o.LonMin, o.LonMax = rules.DefaultLonMin, rules.DefaultLonMax
	}
	if o.LatMin == 0 && o.LatMax == 0 {
		o.LatMin, o.LatMax = rules.DefaultLatMin, rules.DefaultLatMax
	}
}

// Stats reports what the cleaning stage did.
type Stats struct {
	RowsIn       int
	RowsOut      int
	DroppedPrice int
	DroppedGeo   int
}

// Clean returns a cleaned copy of the dataset. The input table is never
// modified. Rows with a null or out-of-range price are dropped first, then
// the date column is normalized to a timestamp, then rows outside the bound
// box are dropped.
func Clean(ds *table.Table, opts Options, logger *slog.Logger) (*table.Table, Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts.applyDefaults()

	stats := Stats{RowsIn: ds.NumRows()}

	// Price outliers
	price, err := ds.NumericColumn(opts.PriceColumn)
	if err != nil {
		return nil, stats, err
	}
	keep := make([]bool, ds.NumRows())
	for i := range keep {
		if price.IsNull(i) {
			continue
		}
		v := price.Float(i)
		keep[i] = v >= opts.MinPrice && v <= opts.MaxPrice
	}
	out, err := ds.Filter(keep)
	if err != nil {
		return nil, stats, err
	}
	stats.DroppedPrice = stats.RowsIn - out.NumRows()
	logger.Debug("dropped price outliers",
		"column", opts.PriceColumn,
		"min", opts.MinPrice,
		"max", opts.MaxPrice,
		"dropped", stats.DroppedPrice)

	// Date normalization
	out, err = normalizeDate(out, opts.DateColumn)
	if err != nil {
		return nil, stats, err
	}

	// Geographic bounds
	lon, err := out.NumericColumn(opts.LonColumn)
	if err != nil {
		return nil, stats, err
	}
	lat, err := out.NumericColumn(opts.LatColumn)
	if err != nil {
		return nil, stats, err
	}
	keep = make([]bool, out.NumRows())
	for i := range keep {
		if lon.IsNull(i) || lat.IsNull(i) {
			continue
		}
		lo, la := lon.Float(i), lat.Float(i)
		keep[i] = lo >= opts.LonMin && lo <= opts.LonMax && la >= opts.LatMin && la <= opts.LatMax
	}
	before := out.NumRows()
	out, err = out.Filter(keep)
	if err != nil {
		return nil, stats, err
	}
	stats.DroppedGeo = before - out.NumRows()
	stats.RowsOut = out.NumRows()
	logger.Debug("dropped out-of-bounds rows", "dropped", stats.DroppedGeo)

	return out, stats, nil
}

// normalizeDate converts a string date column to a timestamp column,
// preserving nulls. A column already typed as timestamp passes through.
func normalizeDate(ds *table.Table, name string) (*table.Table, error) {
	col, ok := ds.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if col.Type() == table.TypeTimestamp {
		return ds, nil
	}
	if col.Type() != table.TypeString && col.Type() != table.TypeCategorical {
		return nil, fmt.Errorf("column %q is %s, cannot normalize to timestamp", name, col.Type())
	}

	times := make([]time.Time, col.Len())
	nulls := make([]bool, col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			nulls[i] = true
			continue
		}
		ts, err := table.ParseTimestamp(col.Value(i))
		if err != nil {
			return nil, fmt.Errorf("row %d, column %q: %w", i+1, name, err)
		}
		times[i] = ts
	}
	return ds.ReplaceColumn(table.NewTimestampColumn(name, times, nulls))
}
