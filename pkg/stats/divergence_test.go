package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKLDivergenceIdentical(t *testing.T) {
	tests := []struct {
		name string
		p    []float64
	}{
		{name: "uniform", p: []float64{1, 1, 1, 1}},
		{name: "skewed", p: []float64{10, 3, 1}},
		{name: "single category", p: []float64{42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			div, err := KLDivergence(tt.p, tt.p)
			require.NoError(t, err)
			assert.Zero(t, div)
		})
	}
}

func TestKLDivergenceScaleInvariant(t *testing.T) {
	// Raw counts are normalized, so proportional distributions are identical.
	p := []float64{5, 10, 25}
	q := []float64{10, 20, 50}
	div, err := KLDivergence(p, q)
	require.NoError(t, err)
	assert.Zero(t, div)
}

func TestKLDivergenceKnownValue(t *testing.T) {
	// D(P||Q) for P=(1/2,1/2), Q=(1/4,3/4):
	// 0.5*log2(2) + 0.5*log2(2/3) = 0.5 - 0.5*log2(3) + 0.5 ~ 0.2075
	div, err := KLDivergence([]float64{1, 1}, []float64{1, 3})
	require.NoError(t, err)
	want := 1 - 0.5*math.Log2(3)
	assert.InDelta(t, want, div, 1e-12)
}

func TestKLDivergenceNonNegative(t *testing.T) {
	tests := []struct {
		name string
		p, q []float64
	}{
		{name: "close", p: []float64{100, 101, 99}, q: []float64{100, 100, 100}},
		{name: "far", p: []float64{1, 0, 0}, q: []float64{1, 1, 1}},
		{name: "target missing category", p: []float64{0, 5, 5}, q: []float64{2, 4, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			div, err := KLDivergence(tt.p, tt.q)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, div, 0.0)
		})
	}
}

func TestKLDivergenceUndefined(t *testing.T) {
	// Reference has zero mass where the target does not.
	_, err := KLDivergence([]float64{1, 1}, []float64{2, 0})
	assert.ErrorIs(t, err, ErrUndefinedDivergence)
}

func TestKLDivergenceZeroTermConvention(t *testing.T) {
	// A zero target entry contributes nothing even where the reference is
	// zero too, once it is aligned out by a positive reference elsewhere.
	div, err := KLDivergence([]float64{0, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, div, 1e-12) // log2(2) = 1
}

func TestKLDivergenceErrors(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := KLDivergence([]float64{1}, []float64{1, 2})
		assert.Error(t, err)
	})
	t.Run("empty distribution", func(t *testing.T) {
		_, err := KLDivergence([]float64{0, 0}, []float64{1, 1})
		assert.ErrorIs(t, err, ErrEmptyDistribution)
	})
	t.Run("negative weight", func(t *testing.T) {
		_, err := KLDivergence([]float64{-1, 2}, []float64{1, 1})
		assert.Error(t, err)
	})
}

func TestAlignCounts(t *testing.T) {
	target := map[string]int{"Brooklyn": 3, "Queens": 1}
	reference := map[string]int{"Bronx": 2, "Brooklyn": 4}

	labels, p, q := AlignCounts(target, reference)

	assert.Equal(t, []string{"Bronx", "Brooklyn", "Queens"}, labels)
	assert.Equal(t, []float64{0, 3, 1}, p)
	assert.Equal(t, []float64{2, 4, 0}, q)
}
