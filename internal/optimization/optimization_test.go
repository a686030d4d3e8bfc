package optimization

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenyay/optlib/internal/logging"
)

func TestCompareGoals(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want int
	}{
		{"less", 1.0, 2.0, -1},
		{"greater", 2.0, 1.0, 1},
		{"equal", 1.5, 1.5, 0},
		{"nan after finite", math.NaN(), 1.0, 1},
		{"finite before nan", 1.0, math.NaN(), -1},
		{"positive infinity after finite", math.Inf(1), 1e300, 1},
		{"negative infinity after finite", math.Inf(-1), -1e300, 1},
		{"two non-finite equal", math.NaN(), math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareGoals(tt.x, tt.y))
		})
	}
}

func TestIntervalContains(t *testing.T) {
	iv := Interval{Min: -1.0, Max: 1.0}

	assert.True(t, iv.Contains(0.0))
	assert.True(t, iv.Contains(-1.0), "bounds are inclusive")
	assert.True(t, iv.Contains(1.0))
	assert.False(t, iv.Contains(1.1))
	assert.False(t, iv.Contains(math.NaN()))
	assert.False(t, iv.Contains(math.Inf(1)))
}

func TestValidateIntervals(t *testing.T) {
	assert.Panics(t, func() { ValidateIntervals(nil) })
	assert.Panics(t, func() { ValidateIntervals([]Interval{{Min: 1, Max: 0}}) })
	assert.Panics(t, func() { ValidateIntervals([]Interval{{Min: 1, Max: 1}}) }, "degenerate interval")
	assert.NotPanics(t, func() { ValidateIntervals(UniformIntervals(3, -1, 1)) })
}

func TestRandomVector(t *testing.T) {
	rng := NewRand(17)
	intervals := []Interval{{Min: -2, Max: -1}, {Min: 10, Max: 20}}

	for i := 0; i < 100; i++ {
		v := RandomVector(rng, intervals)
		require.Len(t, v, 2)
		assert.True(t, intervals[0].Contains(v[0]))
		assert.True(t, intervals[1].Contains(v[1]))
	}
}

func TestNewRandReproducible(t *testing.T) {
	a, b := NewRand(5), NewRand(5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestCountingObjective(t *testing.T) {
	counting := NewCountingObjective[[]float64](ObjectiveFunc[[]float64](func(x []float64) float64 {
		return x[0]
	}))

	_, ok := counting.AverageCalls()
	assert.False(t, ok)

	counting.NextRun()
	counting.Evaluate([]float64{1})
	counting.Evaluate([]float64{2})
	counting.NextRun()
	counting.Evaluate([]float64{3})

	assert.Equal(t, []int{2, 1}, counting.Calls())
	average, ok := counting.AverageCalls()
	require.True(t, ok)
	assert.InDelta(t, 1.5, average, 1e-12)
}

type stubState struct {
	best      *Solution[[]float64]
	iteration int
}

func (s *stubState) BestSolution() *Solution[[]float64] { return s.best }
func (s *stubState) Iteration() int                     { return s.iteration }

func TestResultOnlyLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewResultOnlyLogger(&buf, 2)

	logger.Finish(&stubState{
		best:      &Solution[[]float64]{Parameters: []float64{1.0, 2.0}, Goal: 0.25},
		iteration: 42,
	})

	out := buf.String()
	assert.Contains(t, out, "Solution:")
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "Goal: 0.25")
	assert.Contains(t, out, "Iterations count: 42")
}

func TestResultOnlyLoggerWithoutSolution(t *testing.T) {
	var buf bytes.Buffer
	logger := NewResultOnlyLogger(&buf, 2)

	logger.Finish(&stubState{iteration: 7})
	assert.Contains(t, buf.String(), "Solution not found")
}

func TestProgressLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewProgressLogger[[]float64](logging.New(logging.DebugLevel, &buf), 10)

	logger.Start(&stubState{})
	logger.NextIteration(&stubState{iteration: 5})
	assert.NotContains(t, buf.String(), "iteration finished", "off-stride iterations stay quiet")

	logger.NextIteration(&stubState{
		best:      &Solution[[]float64]{Parameters: []float64{0.5}, Goal: 0.25},
		iteration: 10,
	})
	assert.Contains(t, buf.String(), "iteration finished")
	assert.Contains(t, buf.String(), "best_goal")

	logger.Finish(&stubState{iteration: 10})
	assert.Contains(t, buf.String(), "optimization finished")
}

func TestVerboseLoggerSkipsEmptyState(t *testing.T) {
	var buf bytes.Buffer
	logger := NewVerboseLogger(&buf, 3)

	logger.NextIteration(&stubState{iteration: 1})
	assert.Empty(t, buf.String())

	logger.NextIteration(&stubState{
		best:      &Solution[[]float64]{Parameters: []float64{0.5}, Goal: 0.25},
		iteration: 2,
	})
	assert.Contains(t, buf.String(), "2")
	assert.Contains(t, buf.String(), "0.500")
}
