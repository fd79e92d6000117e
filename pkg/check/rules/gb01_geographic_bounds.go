package rules

import (
	"fmt"

	"github.com/stayflow-labs/dataguard/pkg/check"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

// Default bound box: properties in and around NYC.
const (
	DefaultLonMin = -74.25
	DefaultLonMax = -73.50
	DefaultLatMin = 40.5
	DefaultLatMax = 41.2
)

func init() {
	check.Register(check.Def{
		ID:          "GB01",
		Name:        "geographic_bounds",
		Group:       "bounds",
		Description: "Every coordinate pair must lie inside the bound box",
		Run:         checkGeographicBounds,
		ConfigKeys:  []string{"lon_column", "lat_column", "lon_range", "lat_range"},
	})
}

type geographicBoundsParams struct {
	LonColumn string    `mapstructure:"lon_column"`
	LatColumn string    `mapstructure:"lat_column"`
	LonRange  []float64 `mapstructure:"lon_range"`
	LatRange  []float64 `mapstructure:"lat_range"`
}

// checkGeographicBounds counts rows whose (lon, lat) falls outside the two
// closed intervals. Both coordinates must be in range at once; a null
// coordinate is a violation, a row without a position is not inside the box.
func checkGeographicBounds(ds, _ *table.Table, opts map[string]any) (check.Outcome, error) {
	def, _ := check.GetByName("geographic_bounds")

	params := geographicBoundsParams{
		LonColumn: "longitude",
		LatColumn: "latitude",
	}
	if err := check.DecodeOptions(opts, &params); err != nil {
		return check.Outcome{}, err
	}
	lonMin, lonMax, err := rangeOrDefault("lon_range", params.LonRange, DefaultLonMin, DefaultLonMax)
	if err != nil {
		return check.Outcome{}, err
	}
	latMin, latMax, err := rangeOrDefault("lat_range", params.LatRange, DefaultLatMin, DefaultLatMax)
	if err != nil {
		return check.Outcome{}, err
	}

	lon, err := ds.NumericColumn(params.LonColumn)
	if err != nil {
		return check.Outcome{}, err
	}
	lat, err := ds.NumericColumn(params.LatColumn)
	if err != nil {
		return check.Outcome{}, err
	}

	violations := 0
	for i := 0; i < ds.NumRows(); i++ {
		if lon.IsNull(i) || lat.IsNull(i) {
			violations++
			continue
		}
		lo, la := lon.Float(i), lat.Float(i)
		if lo < lonMin || lo > lonMax || la < latMin || la > latMax {
			violations++
		}
	}

	box := fmt.Sprintf("lon [%g, %g], lat [%g, %g]", lonMin, lonMax, latMin, latMax)
	if violations == 0 {
		return check.Pass(def, fmt.Sprintf("all %d rows inside %s", ds.NumRows(), box), nil), nil
	}
	return check.Fail(def, fmt.Sprintf("%d rows outside %s", violations, box), map[string]any{
		"violations": violations,
		"lon_range":  []float64{lonMin, lonMax},
		"lat_range":  []float64{latMin, latMax},
	}), nil
}

func rangeOrDefault(key string, r []float64, defMin, defMax float64) (float64, float64, error) {
	switch len(r) {
	case 0:
		return defMin, defMax, nil
	case 2:
		if r[0] > r[1] {
			return 0, 0, fmt.Errorf("%s min %g is greater than max %g", key, r[0], r[1])
		}
		return r[0], r[1], nil
	default:
		return 0, 0, fmt.Errorf("%s must have exactly two entries, got %d", key, len(r))
	}
}
