package rules

import (
	"fmt"

	"github.com/stayflow-labs/dataguard/pkg/check"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

func init() {
	check.Register(check.Def{
		ID:          "SC01",
		Name:        "schema_shape",
		Group:       "schema",
		Description: "Column names must match the expected sequence, in order",
		Run:         checkSchemaShape,
		Halting:     true,
		ConfigKeys:  []string{"expected_columns"},
	})
}

type schemaShapeParams struct {
	ExpectedColumns []string `mapstructure:"expected_columns"`
}

// checkSchemaShape compares the dataset's column names position by position
// against the expected sequence. Set equality is not enough: a permutation
// of the expected columns fails.
func checkSchemaShape(ds, _ *table.Table, opts map[string]any) (check.Outcome, error) {
	def, _ := check.GetByName("schema_shape")

	var params schemaShapeParams
	if err := check.DecodeOptions(opts, &params); err != nil {
		return check.Outcome{}, err
	}
	if len(params.ExpectedColumns) == 0 {
		return check.Outcome{}, fmt.Errorf("expected_columns is required")
	}

	actual := ds.ColumnNames()
	details := map[string]any{
		"expected": params.ExpectedColumns,
		"actual":   actual,
	}

	if len(actual) != len(params.ExpectedColumns) {
		msg := fmt.Sprintf("expected %d columns, got %d (expected %v, got %v)",
			len(params.ExpectedColumns), len(actual), params.ExpectedColumns, actual)
		return check.Fail(def, msg, details), nil
	}
	for i, want := range params.ExpectedColumns {
		if actual[i] != want {
			msg := fmt.Sprintf("column %d is %q, want %q (expected %v, got %v)",
				i, actual[i], want, params.ExpectedColumns, actual)
			return check.Fail(def, msg, details), nil
		}
	}

	return check.Pass(def, fmt.Sprintf("%d columns in expected order", len(actual)), nil), nil
}
