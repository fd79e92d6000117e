package rules

import (
	"fmt"
	"math"

	"github.com/stayflow-labs/dataguard/pkg/check"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

func init() {
	check.Register(check.Def{
		ID:          "NR01",
		Name:        "numeric_range",
		Group:       "bounds",
		Description: "All values of a column must lie inside a closed interval",
		Run:         checkNumericRange,
		ConfigKeys:  []string{"column", "min", "max"},
	})
}

type numericRangeParams struct {
	Column string   `mapstructure:"column"`
	Min    *float64 `mapstructure:"min"`
	Max    *float64 `mapstructure:"max"`
}

// checkNumericRange verifies that every non-null value of the column lies in
// [min, max], bounds inclusive. Its usual role is re-verifying that an
// upstream cleaning stage's stated filter was actually applied.
func checkNumericRange(ds, _ *table.Table, opts map[string]any) (check.Outcome, error) {
	def, _ := check.GetByName("numeric_range")

	var params numericRangeParams
	if err := check.DecodeOptions(opts, &params); err != nil {
		return check.Outcome{}, err
	}
	if params.Column == "" {
		return check.Outcome{}, fmt.Errorf("column is required")
	}
	if params.Min == nil || params.Max == nil {
		return check.Outcome{}, fmt.Errorf("min and max are required")
	}
	minV, maxV := *params.Min, *params.Max
	if minV > maxV {
		return check.Outcome{}, fmt.Errorf("min %g is greater than max %g", minV, maxV)
	}

	col, err := ds.NumericColumn(params.Column)
	if err != nil {
		return check.Outcome{}, err
	}

	outside := 0
	obsMin, obsMax := math.Inf(1), math.Inf(-1)
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		v := col.Float(i)
		if v < obsMin {
			obsMin = v
		}
		if v > obsMax {
			obsMax = v
		}
		if v < minV || v > maxV {
			outside++
		}
	}

	details := map[string]any{"column": params.Column, "min": minV, "max": maxV, "outside": outside}
	if outside == 0 {
		return check.Pass(def, fmt.Sprintf("all %s values inside [%g, %g]", params.Column, minV, maxV), details), nil
	}
	msg := fmt.Sprintf("%d %s values outside [%g, %g] (observed min %g, max %g)",
		outside, params.Column, minV, maxV, obsMin, obsMax)
	details["observed_min"] = obsMin
	details["observed_max"] = obsMax
	return check.Fail(def, msg, details), nil
}
