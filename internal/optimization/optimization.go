// Package optimization defines the contracts shared by the population-based
// optimizers: solutions, objectives, observable run state, run loggers and
// the goal-value ordering used for best/worst tracking.
package optimization

import "math"

// Solution is the externally reported result of an optimization run: a point
// in the search space together with the goal function value at that point.
type Solution[T any] struct {
	Parameters T
	Goal       float64
}

// Objective is the goal function to minimize. Implementations must be pure
// with respect to the engine: the same point always yields the same value.
// NaN and infinite values are valid outputs and are handled as data, never
// as errors.
type Objective[T any] interface {
	Evaluate(x T) float64
}

// ObjectiveFunc adapts a plain function to the Objective interface.
type ObjectiveFunc[T any] func(x T) float64

// Evaluate calls f(x).
func (f ObjectiveFunc[T]) Evaluate(x T) float64 { return f(x) }

// State is the view of a running algorithm exposed to stop conditions and
// loggers: the best solution found so far (nil if none exists yet) and the
// number of completed iterations.
type State[T any] interface {
	BestSolution() *Solution[T]
	Iteration() int
}

// CompareGoals orders two goal values for minimization. Non-finite values
// (NaN, ±Inf) sort after every finite value, so a non-finite score can never
// win a "best" comparison but always wins a "worst" one. Two non-finite
// values compare equal. Returns -1, 0 or +1.
func CompareGoals(x, y float64) int {
	xf, yf := isFiniteGoal(x), isFiniteGoal(y)
	switch {
	case !xf && !yf:
		return 0
	case xf && !yf:
		return -1
	case !xf && yf:
		return 1
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func isFiniteGoal(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
