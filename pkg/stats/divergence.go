// Package stats provides the statistical distance used by the drift check.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Sentinel errors for divergence evaluation.
var (
	// ErrUndefinedDivergence is returned when the reference distribution has
	// zero mass at a point where the target distribution does not. The KL
	// divergence is infinite there and must be surfaced to the caller rather
	// than propagated as Inf or NaN.
	ErrUndefinedDivergence = errors.New("divergence undefined: reference has zero mass where target is nonzero")

	// ErrEmptyDistribution is returned when a distribution has no mass at all.
	ErrEmptyDistribution = errors.New("distribution has zero total mass")
)

// KLDivergence computes the Kullback-Leibler divergence, base 2, between two
// aligned non-negative weight vectors. Both vectors are normalized to
// probability distributions first, so raw frequency counts are accepted.
//
// The 0*log(0/q) term is defined as 0. The result is non-negative and zero
// exactly when the normalized distributions are identical. KL divergence is
// not symmetric: KLDivergence(p, q) and KLDivergence(q, p) generally differ.
func KLDivergence(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, fmt.Errorf("distributions have %d and %d entries, want equal lengths", len(p), len(q))
	}

	sumP, sumQ := 0.0, 0.0
	for i := range p {
		if p[i] < 0 || q[i] < 0 {
			return 0, fmt.Errorf("negative weight at index %d", i)
		}
		sumP += p[i]
		sumQ += q[i]
	}
	if sumP == 0 || sumQ == 0 {
		return 0, ErrEmptyDistribution
	}

	div := 0.0
	for i := range p {
		pi := p[i] / sumP
		if pi == 0 {
			continue
		}
		qi := q[i] / sumQ
		if qi == 0 {
			return 0, ErrUndefinedDivergence
		}
		div += pi * math.Log2(pi/qi)
	}

	// Floating-point accumulation can leave a tiny negative residue when the
	// distributions are identical.
	if div < 0 {
		div = 0
	}
	return div, nil
}

// AlignCounts aligns two label->count maps over the sorted union of their
// labels. A label absent from one map contributes a zero count on that side.
// The returned slices are index-aligned and suitable for KLDivergence.
func AlignCounts(target, reference map[string]int) (labels []string, p, q []float64) {
	seen := make(map[string]struct{}, len(target)+len(reference))
	for l := range target {
		seen[l] = struct{}{}
	}
	for l := range reference {
		seen[l] = struct{}{}
	}
	labels = make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	p = make([]float64, len(labels))
	q = make([]float64, len(labels))
	for i, l := range labels {
		p[i] = float64(target[l])
		q[i] = float64(reference[l])
	}
	return labels, p, q
}
