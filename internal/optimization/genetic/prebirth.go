package genetic

import "github.com/jenyay/optlib/internal/optimization"

// IntervalPreBirth discards child chromosomes whose genes fall outside the
// configured feasible interval for their dimension, so the population never
// materializes an infeasible individual.
type IntervalPreBirth struct {
	intervals []optimization.Interval
}

// NewIntervalPreBirth creates an IntervalPreBirth. It panics on an empty or
// inverted interval list.
func NewIntervalPreBirth(intervals []optimization.Interval) *IntervalPreBirth {
	optimization.ValidateIntervals(intervals)
	return &IntervalPreBirth{intervals: intervals}
}

// Filter implements PreBirth.
func (f *IntervalPreBirth) Filter(_ *Population[[]float64], children [][]float64) [][]float64 {
	kept := children[:0]
	for _, child := range children {
		if f.feasible(child) {
			kept = append(kept, child)
		}
	}
	return kept
}

func (f *IntervalPreBirth) feasible(chromosomes []float64) bool {
	if len(chromosomes) != len(f.intervals) {
		return false
	}
	for i, gene := range chromosomes {
		if !f.intervals[i].Contains(gene) {
			return false
		}
	}
	return true
}
