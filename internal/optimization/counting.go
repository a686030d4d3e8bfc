package optimization

// CountingObjective wraps an Objective and records how many evaluations each
// run performs. Call NextRun before every run; AverageCalls reports the mean
// over all recorded runs. The wrapper is not safe for concurrent use: each
// worker owns its own instance.
type CountingObjective[T any] struct {
	inner Objective[T]
	calls []int
}

// NewCountingObjective wraps objective with per-run call counting.
func NewCountingObjective[T any](objective Objective[T]) *CountingObjective[T] {
	return &CountingObjective[T]{inner: objective}
}

// Evaluate delegates to the wrapped objective and bumps the current run's
// counter.
func (c *CountingObjective[T]) Evaluate(x T) float64 {
	if len(c.calls) == 0 {
		c.calls = append(c.calls, 0)
	}
	c.calls[len(c.calls)-1]++
	return c.inner.Evaluate(x)
}

// NextRun starts a fresh evaluation counter.
func (c *CountingObjective[T]) NextRun() {
	c.calls = append(c.calls, 0)
}

// Calls returns the per-run evaluation counts.
func (c *CountingObjective[T]) Calls() []int {
	return c.calls
}

// AverageCalls returns the mean evaluation count per run. The second result
// is false when no run has been recorded.
func (c *CountingObjective[T]) AverageCalls() (float64, bool) {
	if len(c.calls) == 0 {
		return 0, false
	}
	sum := 0
	for _, n := range c.calls {
		sum += n
	}
	return float64(sum) / float64(len(c.calls)), true
}
