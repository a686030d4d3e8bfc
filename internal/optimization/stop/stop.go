// Package stop provides stop conditions for iterative optimizers. A
// condition inspects the optimizer state after every completed iteration and
// decides whether the run may end. Conditions compose with CompositeAny and
// CompositeAll.
package stop

import (
	"time"

	"github.com/jenyay/optlib/internal/optimization"
)

// Condition decides after each completed iteration whether the run may stop.
type Condition[T any] interface {
	CanStop(state optimization.State[T]) bool
}

// MaxIterations stops the run once the iteration counter reaches the
// configured maximum.
type MaxIterations[T any] struct {
	maxIterations int
}

// NewMaxIterations creates a MaxIterations condition.
func NewMaxIterations[T any](maxIterations int) *MaxIterations[T] {
	return &MaxIterations[T]{maxIterations: maxIterations}
}

// CanStop implements Condition.
func (c *MaxIterations[T]) CanStop(state optimization.State[T]) bool {
	return state.Iteration() >= c.maxIterations
}

// Threshold stops the run once the best goal value drops to the configured
// threshold or below. Without a best solution, or with a non-finite best
// goal, the run keeps going.
type Threshold[T any] struct {
	threshold float64
}

// NewThreshold creates a Threshold condition.
func NewThreshold[T any](threshold float64) *Threshold[T] {
	return &Threshold[T]{threshold: threshold}
}

// CanStop implements Condition.
func (c *Threshold[T]) CanStop(state optimization.State[T]) bool {
	best := state.BestSolution()
	if best == nil {
		return false
	}
	// Non-finite goals order after every finite value and never pass.
	return optimization.CompareGoals(best.Goal, c.threshold) <= 0
}

// GoalNotChange stops the run once more than the configured number of
// iterations has passed since the best goal value last changed by more than
// delta. The condition is stateful: it remembers the goal and iteration of
// the last significant change across calls.
type GoalNotChange[T any] struct {
	maxStallIterations int
	delta              float64

	lastGoal   *float64
	changeIter int
}

// NewGoalNotChange creates a GoalNotChange condition. A change smaller than
// or equal to delta does not count as progress.
func NewGoalNotChange[T any](maxStallIterations int, delta float64) *GoalNotChange[T] {
	return &GoalNotChange[T]{
		maxStallIterations: maxStallIterations,
		delta:              delta,
	}
}

// CanStop implements Condition.
func (c *GoalNotChange[T]) CanStop(state optimization.State[T]) bool {
	best := state.BestSolution()
	if best == nil {
		return false
	}

	iteration := state.Iteration()
	// A rewound iteration counter means the optimizer was restarted; the
	// remembered change point is stale and must not make the stall window
	// negative.
	if c.changeIter > iteration {
		c.changeIter = iteration
	}

	if c.lastGoal == nil || abs(best.Goal-*c.lastGoal) > c.delta {
		goal := best.Goal
		c.lastGoal = &goal
		c.changeIter = iteration
		return false
	}

	return iteration-c.changeIter > c.maxStallIterations
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// TimeLimit stops the run once the configured wall-clock duration has
// elapsed since the first CanStop call. The clock restarts with every run:
// a CanStop call on iteration zero or after the deadline fired rearms it.
type TimeLimit[T any] struct {
	limit    time.Duration
	deadline time.Time
}

// NewTimeLimit creates a TimeLimit condition.
func NewTimeLimit[T any](limit time.Duration) *TimeLimit[T] {
	return &TimeLimit[T]{limit: limit}
}

// CanStop implements Condition.
func (c *TimeLimit[T]) CanStop(optimization.State[T]) bool {
	now := time.Now()
	if c.deadline.IsZero() {
		c.deadline = now.Add(c.limit)
		return false
	}
	if now.Before(c.deadline) {
		return false
	}
	c.deadline = time.Time{}
	return true
}

// CompositeAny stops the run as soon as any of its conditions holds.
type CompositeAny[T any] struct {
	conditions []Condition[T]
}

// NewCompositeAny composes conditions with OR semantics. It panics on an
// empty condition list.
func NewCompositeAny[T any](conditions ...Condition[T]) *CompositeAny[T] {
	if len(conditions) == 0 {
		panic("stop: empty condition list")
	}
	return &CompositeAny[T]{conditions: conditions}
}

// CanStop implements Condition. Evaluation short-circuits on the first
// condition that holds.
func (c *CompositeAny[T]) CanStop(state optimization.State[T]) bool {
	for _, condition := range c.conditions {
		if condition.CanStop(state) {
			return true
		}
	}
	return false
}

// CompositeAll stops the run only when all of its conditions hold.
type CompositeAll[T any] struct {
	conditions []Condition[T]
}

// NewCompositeAll composes conditions with AND semantics. It panics on an
// empty condition list.
func NewCompositeAll[T any](conditions ...Condition[T]) *CompositeAll[T] {
	if len(conditions) == 0 {
		panic("stop: empty condition list")
	}
	return &CompositeAll[T]{conditions: conditions}
}

// CanStop implements Condition. Evaluation short-circuits on the first
// condition that does not hold.
func (c *CompositeAll[T]) CanStop(state optimization.State[T]) bool {
	for _, condition := range c.conditions {
		if !condition.CanStop(state) {
			return false
		}
	}
	return true
}
