// Package stats aggregates results across repeated optimizer runs. A
// RunLogger attached to an optimizer records every run's outcome and
// per-iteration convergence into a Statistics value; Statistics then answers
// questions over the whole series, such as success rate or the averaged
// convergence curve. Parallel drives many runs across workers and merges
// their records deterministically.
package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/jenyay/optlib/internal/optimization"
)

// Statistics accumulates the outcomes of repeated runs. Each run contributes
// one result (nil for a failed run) and one convergence row holding the best
// solution after every iteration.
type Statistics[T any] struct {
	results     []*optimization.Solution[T]
	convergence [][]*optimization.Solution[T]
}

// NewStatistics creates an empty accumulator.
func NewStatistics[T any]() *Statistics[T] { return &Statistics[T]{} }

// RunCount returns the number of recorded runs.
func (s *Statistics[T]) RunCount() int { return len(s.results) }

// Results returns one entry per run, nil where the run found no solution.
func (s *Statistics[T]) Results() []*optimization.Solution[T] { return s.results }

// Convergence returns one row per run with the best solution after each
// iteration of that run.
func (s *Statistics[T]) Convergence() [][]*optimization.Solution[T] { return s.convergence }

// Merge appends every run recorded in other, preserving order.
func (s *Statistics[T]) Merge(other *Statistics[T]) {
	s.results = append(s.results, other.results...)
	s.convergence = append(s.convergence, other.convergence...)
}

// MinIterations returns the shortest run's iteration count, or zero without
// runs. It bounds the indexes over which runs are comparable.
func (s *Statistics[T]) MinIterations() int {
	if len(s.convergence) == 0 {
		return 0
	}
	min := len(s.convergence[0])
	for _, row := range s.convergence[1:] {
		if len(row) < min {
			min = len(row)
		}
	}
	return min
}

// AverageConvergence returns the mean best goal per iteration index across
// runs, truncated to the shortest run. An index where no run had a solution
// yet yields a nil entry; otherwise the mean runs over the runs that did.
func (s *Statistics[T]) AverageConvergence() []*float64 {
	iterations := s.MinIterations()
	averaged := make([]*float64, iterations)

	for i := 0; i < iterations; i++ {
		sum := 0.0
		count := 0
		for _, row := range s.convergence {
			if row[i] == nil {
				continue
			}
			sum += row[i].Goal
			count++
		}
		if count > 0 {
			mean := sum / float64(count)
			averaged[i] = &mean
		}
	}
	return averaged
}

// SuccessRate returns the fraction of runs whose result satisfies the
// predicate. Failed runs count against the rate. The bool is false without
// recorded runs.
func (s *Statistics[T]) SuccessRate(predicate func(*optimization.Solution[T]) bool) (float64, bool) {
	if len(s.results) == 0 {
		return 0, false
	}
	successes := 0
	for _, result := range s.results {
		if result != nil && predicate(result) {
			successes++
		}
	}
	return float64(successes) / float64(len(s.results)), true
}

// AverageGoal returns the mean goal over the successful runs. The bool is
// false when no run produced a solution.
func (s *Statistics[T]) AverageGoal() (float64, bool) {
	goals := s.goals()
	if len(goals) == 0 {
		return 0, false
	}
	return stat.Mean(goals, nil), true
}

// StdDevGoal returns the sample standard deviation of the goal over the
// successful runs. The bool is false with fewer than two solutions.
func (s *Statistics[T]) StdDevGoal() (float64, bool) {
	goals := s.goals()
	if len(goals) < 2 {
		return 0, false
	}
	return stat.StdDev(goals, nil), true
}

func (s *Statistics[T]) goals() []float64 {
	goals := make([]float64, 0, len(s.results))
	for _, result := range s.results {
		if result != nil {
			goals = append(goals, result.Goal)
		}
	}
	return goals
}

// SolutionWithin builds a success predicate that holds when every parameter
// lies within delta of its expected value.
func SolutionWithin(expected []float64, delta float64) func(*optimization.Solution[[]float64]) bool {
	return func(solution *optimization.Solution[[]float64]) bool {
		if len(solution.Parameters) != len(expected) {
			return false
		}
		for d, want := range expected {
			diff := solution.Parameters[d] - want
			if diff < -delta || diff > delta {
				return false
			}
		}
		return true
	}
}

// GoalWithin builds a success predicate that holds when the goal lies within
// delta of the expected value.
func GoalWithin[T any](expected, delta float64) func(*optimization.Solution[T]) bool {
	return func(solution *optimization.Solution[T]) bool {
		diff := solution.Goal - expected
		return diff >= -delta && diff <= delta
	}
}

// RunLogger records runs into a Statistics as an optimizer observer. Attach
// one to an optimizer's logger list and every FindMin call becomes one
// recorded run.
type RunLogger[T any] struct {
	statistics *Statistics[T]
}

// NewRunLogger creates an observer recording into statistics.
func NewRunLogger[T any](statistics *Statistics[T]) *RunLogger[T] {
	return &RunLogger[T]{statistics: statistics}
}

// Start opens a new convergence row for the run.
func (l *RunLogger[T]) Start(optimization.State[T]) {
	l.statistics.convergence = append(l.statistics.convergence, nil)
}

// Resume implements optimization.Logger.
func (l *RunLogger[T]) Resume(optimization.State[T]) {}

// NextIteration appends the current best solution to the run's convergence
// row.
func (l *RunLogger[T]) NextIteration(state optimization.State[T]) {
	last := len(l.statistics.convergence) - 1
	l.statistics.convergence[last] = append(l.statistics.convergence[last], state.BestSolution())
}

// Finish records the run's result.
func (l *RunLogger[T]) Finish(state optimization.State[T]) {
	l.statistics.results = append(l.statistics.results, state.BestSolution())
}
