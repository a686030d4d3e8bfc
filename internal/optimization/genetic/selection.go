package genetic

import (
	"math"

	"github.com/jenyay/optlib/internal/optimization"
)

// KillNonFinite marks dead every individual whose fitness is NaN or
// infinite.
type KillNonFinite[T any] struct{}

// NewKillNonFinite creates a KillNonFinite selector.
func NewKillNonFinite[T any]() *KillNonFinite[T] { return &KillNonFinite[T]{} }

// Kill implements Selection.
func (*KillNonFinite[T]) Kill(population *Population[T]) {
	for i := 0; i < population.Len(); i++ {
		ind := population.At(i)
		fitness := ind.Fitness()
		if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
			ind.Kill()
		}
	}
}

// LimitPopulation marks dead exactly as many worst-scoring alive individuals
// as needed to bring the alive count down to the configured maximum.
type LimitPopulation[T any] struct {
	maxCount int
}

// NewLimitPopulation creates a LimitPopulation selector. It panics on a zero
// limit: that is a configuration error, not a policy.
func NewLimitPopulation[T any](maxCount int) *LimitPopulation[T] {
	if maxCount == 0 {
		panic("genetic: zero population limit")
	}
	return &LimitPopulation[T]{maxCount: maxCount}
}

// SetLimit replaces the maximum alive count.
func (s *LimitPopulation[T]) SetLimit(maxCount int) { s.maxCount = maxCount }

// Kill implements Selection.
func (s *LimitPopulation[T]) Kill(population *Population[T]) {
	alive := population.LenAlive()
	if alive > s.maxCount {
		KillWorst(population, alive-s.maxCount)
	}
}

// KillWorst marks dead the count worst-scoring alive individuals. It keeps a
// fixed-size kill set: a candidate worse than the least-bad member of a full
// set evicts that member, which selects the strictly worst individuals in
// O(n·count) without a full sort. Goal ordering treats non-finite fitness as
// worse than any finite one.
func KillWorst[T any](population *Population[T], count int) {
	if count <= 0 {
		return
	}

	killList := make([]int, 0, count)
	// Index into killList of its least-bad (lowest-fitness) member.
	bestIndex := 0

	for n := 0; n < population.Len(); n++ {
		ind := population.At(n)
		if !ind.IsAlive() {
			continue
		}

		if len(killList) < count {
			killList = append(killList, n)
			if optimization.CompareGoals(ind.Fitness(), population.At(killList[bestIndex]).Fitness()) < 0 {
				bestIndex = len(killList) - 1
			}
			continue
		}

		if optimization.CompareGoals(ind.Fitness(), population.At(killList[bestIndex]).Fitness()) > 0 {
			killList[bestIndex] = n
			bestIndex = 0
			for m := 1; m < len(killList); m++ {
				if optimization.CompareGoals(population.At(killList[m]).Fitness(), population.At(killList[bestIndex]).Fitness()) < 0 {
					bestIndex = m
				}
			}
		}
	}

	for _, n := range killList {
		population.At(n).Kill()
	}
}

// IntervalSelection marks dead every individual with a gene outside the
// configured feasible interval for its dimension.
type IntervalSelection struct {
	intervals []optimization.Interval
}

// NewIntervalSelection creates an IntervalSelection. It panics on an empty
// or inverted interval list.
func NewIntervalSelection(intervals []optimization.Interval) *IntervalSelection {
	optimization.ValidateIntervals(intervals)
	return &IntervalSelection{intervals: intervals}
}

// Kill implements Selection.
func (s *IntervalSelection) Kill(population *Population[[]float64]) {
	for i := 0; i < population.Len(); i++ {
		ind := population.At(i)
		chromosomes := ind.Chromosomes()
		if len(chromosomes) != len(s.intervals) {
			ind.Kill()
			continue
		}
		for d, gene := range chromosomes {
			if !s.intervals[d].Contains(gene) {
				ind.Kill()
				break
			}
		}
	}
}
