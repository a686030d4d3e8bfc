package testfunc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParaboloid(t *testing.T) {
	assert.InDelta(t, 0.0, Paraboloid([]float64{1, 2, 3, 4, 5}), 1e-12)
	assert.InDelta(t, 5.0, Paraboloid([]float64{0, 2, 3, 4, 3}), 1e-12)
	assert.InDelta(t, 0.0, Paraboloid(nil), 1e-12)
}

func TestSchwefel(t *testing.T) {
	x := []float64{420.9687, 420.9687, 420.9687}
	assert.InDelta(t, 0.0, Schwefel(x), 1e-3)
}

func TestRastrigin(t *testing.T) {
	assert.InDelta(t, 0.0, Rastrigin([]float64{0, 0, 0, 0}), 1e-12)
	// A displaced point scores strictly worse than the optimum.
	assert.Greater(t, Rastrigin([]float64{0.5, 0.5}), 0.0)
}

func TestRosenbrock(t *testing.T) {
	assert.InDelta(t, 0.0, Rosenbrock([]float64{1, 1, 1, 1}), 1e-12)
	assert.InDelta(t, 1.0, Rosenbrock([]float64{0, 0}), 1e-12)
	assert.InDelta(t, 0.0, Rosenbrock([]float64{5}), 1e-12, "single dimension has no valley terms")
}
