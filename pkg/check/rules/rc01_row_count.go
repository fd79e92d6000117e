package rules

import (
	"fmt"

	"github.com/stayflow-labs/dataguard/pkg/check"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

// Default production row-count bounds. The interval is open: a dataset with
// exactly DefaultMinRows rows fails.
const (
	DefaultMinRows = 15000
	DefaultMaxRows = 1000000
)

func init() {
	check.Register(check.Def{
		ID:          "RC01",
		Name:        "row_count_bounds",
		Group:       "bounds",
		Description: "Row count must lie inside an open interval",
		Run:         checkRowCountBounds,
		ConfigKeys:  []string{"min", "max"},
	})
}

type rowCountBoundsParams struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

func checkRowCountBounds(ds, _ *table.Table, opts map[string]any) (check.Outcome, error) {
	def, _ := check.GetByName("row_count_bounds")

	params := rowCountBoundsParams{Min: DefaultMinRows, Max: DefaultMaxRows}
	if err := check.DecodeOptions(opts, &params); err != nil {
		return check.Outcome{}, err
	}
	if params.Min >= params.Max {
		return check.Outcome{}, fmt.Errorf("min %d must be less than max %d", params.Min, params.Max)
	}

	n := ds.NumRows()
	details := map[string]any{"rows": n, "min": params.Min, "max": params.Max}
	if n > params.Min && n < params.Max {
		return check.Pass(def, fmt.Sprintf("row count %d inside (%d, %d)", n, params.Min, params.Max), details), nil
	}
	return check.Fail(def, fmt.Sprintf("row count %d outside open interval (%d, %d)", n, params.Min, params.Max), details), nil
}
