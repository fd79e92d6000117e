package rules

import (
	"fmt"

	"github.com/stayflow-labs/dataguard/pkg/check"
	"github.com/stayflow-labs/dataguard/pkg/stats"
	"github.com/stayflow-labs/dataguard/pkg/table"
)

// DefaultKLThreshold is the maximum allowed divergence when the config does
// not tune the sensitivity knob.
const DefaultKLThreshold = 0.2

func init() {
	check.Register(check.Def{
		ID:             "DS01",
		Name:           "distribution_similarity",
		Group:          "drift",
		Description:    "Categorical distribution must stay close to the reference dataset (KL, base 2)",
		Run:            checkDistributionSimilarity,
		NeedsReference: true,
		ConfigKeys:     []string{"column", "kl_threshold"},
	})
}

type distributionSimilarityParams struct {
	Column      string  `mapstructure:"column"`
	KLThreshold float64 `mapstructure:"kl_threshold"`
}

// checkDistributionSimilarity compares the empirical category frequencies of
// a column between the dataset and the reference dataset. The two
// distributions are aligned over the sorted union of their labels, with a
// label missing on one side contributing a zero count there. A zero count in
// the reference where the dataset count is nonzero makes the divergence
// undefined, which surfaces as an evaluation error rather than a fail.
//
// Divergence exactly zero passes at any threshold, including zero; otherwise
// the threshold is a strict upper bound.
func checkDistributionSimilarity(ds, ref *table.Table, opts map[string]any) (check.Outcome, error) {
	def, _ := check.GetByName("distribution_similarity")

	params := distributionSimilarityParams{KLThreshold: DefaultKLThreshold}
	if err := check.DecodeOptions(opts, &params); err != nil {
		return check.Outcome{}, err
	}
	if params.Column == "" {
		return check.Outcome{}, fmt.Errorf("column is required")
	}
	if params.KLThreshold < 0 {
		return check.Outcome{}, fmt.Errorf("kl_threshold must be non-negative, got %g", params.KLThreshold)
	}

	dsCol, err := ds.StringColumn(params.Column)
	if err != nil {
		return check.Outcome{}, err
	}
	refCol, err := ref.StringColumn(params.Column)
	if err != nil {
		return check.Outcome{}, fmt.Errorf("reference dataset: %w", err)
	}

	_, p, q := stats.AlignCounts(dsCol.ValueCounts(), refCol.ValueCounts())
	div, err := stats.KLDivergence(p, q)
	if err != nil {
		return check.Outcome{}, err
	}

	details := map[string]any{
		"column":     params.Column,
		"divergence": div,
		"threshold":  params.KLThreshold,
	}
	msg := fmt.Sprintf("%s KL divergence %.6g (threshold %g)", params.Column, div, params.KLThreshold)
	if div == 0 || div < params.KLThreshold {
		return check.Pass(def, msg, details), nil
	}
	return check.Fail(def, msg, details), nil
}
