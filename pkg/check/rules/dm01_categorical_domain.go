package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stayflow-labs/dataguard/pkg/check"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

func init() {
	check.Register(check.Def{
		ID:          "DM01",
		Name:        "categorical_domain",
		Group:       "domain",
		Description: "Distinct values of a column must equal the expected label set",
		Run:         checkCategoricalDomain,
		ConfigKeys:  []string{"column", "expected_values"},
	})
}

type categoricalDomainParams struct {
	Column         string   `mapstructure:"column"`
	ExpectedValues []string `mapstructure:"expected_values"`
}

// checkCategoricalDomain requires exact set equality between the distinct
// non-null values observed in the column and the expected label set. Both a
// missing label and an unseen label are violations.
func checkCategoricalDomain(ds, _ *table.Table, opts map[string]any) (check.Outcome, error) {
	def, _ := check.GetByName("categorical_domain")

	var params categoricalDomainParams
	if err := check.DecodeOptions(opts, &params); err != nil {
		return check.Outcome{}, err
	}
	if params.Column == "" {
		return check.Outcome{}, fmt.Errorf("column is required")
	}
	if len(params.ExpectedValues) == 0 {
		return check.Outcome{}, fmt.Errorf("expected_values is required")
	}

	col, err := ds.StringColumn(params.Column)
	if err != nil {
		return check.Outcome{}, err
	}

	expected := make(map[string]struct{}, len(params.ExpectedValues))
	for _, v := range params.ExpectedValues {
		expected[v] = struct{}{}
	}

	var missing, unexpected []string
	observed := col.Levels()
	observedSet := make(map[string]struct{}, len(observed))
	for _, v := range observed {
		observedSet[v] = struct{}{}
		if _, ok := expected[v]; !ok {
			unexpected = append(unexpected, v)
		}
	}
	for v := range expected {
		if _, ok := observedSet[v]; !ok {
			missing = append(missing, v)
		}
	}
	sort.Strings(missing)

	if len(missing) == 0 && len(unexpected) == 0 {
		return check.Pass(def, fmt.Sprintf("%s has exactly the %d expected values", params.Column, len(expected)), nil), nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %v", missing))
	}
	if len(unexpected) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected %v", unexpected))
	}
	msg := fmt.Sprintf("%s value set differs from expected: %s", params.Column, strings.Join(parts, ", "))
	return check.Fail(def, msg, map[string]any{
		"column":     params.Column,
		"missing":    missing,
		"unexpected": unexpected,
	}), nil
}
