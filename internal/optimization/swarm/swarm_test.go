package swarm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenyay/optlib/internal/optimization"
)

var sphere = optimization.ObjectiveFunc[[]float64](func(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return sum
})

func TestParticleRecords(t *testing.T) {
	p := newParticle([]float64{1, 1}, []float64{0, 0}, 2.0)

	require.NotNil(t, p.PersonalBest())
	assert.Equal(t, 2.0, p.PersonalBest().Goal)
	assert.Equal(t, 2.0, p.PersonalWorst().Goal)

	// An improvement moves the best record and leaves the worst alone.
	copy(p.Coordinates(), []float64{0.5, 0.5})
	p.Renew(sphere)
	assert.Equal(t, 0.5, p.PersonalBest().Goal)
	assert.Equal(t, 2.0, p.PersonalWorst().Goal)

	// A regression moves the worst record and leaves the best alone.
	copy(p.Coordinates(), []float64{3, 0})
	p.Renew(sphere)
	assert.Equal(t, 0.5, p.PersonalBest().Goal)
	assert.Equal(t, 9.0, p.PersonalWorst().Goal)

	// Records hold copies, not the live coordinates.
	assert.Equal(t, []float64{0.5, 0.5}, p.PersonalBest().Parameters)
}

func TestParticleNonFiniteGoalNeverBest(t *testing.T) {
	nanObjective := optimization.ObjectiveFunc[[]float64](func([]float64) float64 {
		return math.NaN()
	})

	p := newParticle([]float64{1}, []float64{0}, math.NaN())
	assert.Nil(t, p.PersonalBest())
	require.NotNil(t, p.PersonalWorst())
	assert.True(t, math.IsNaN(p.PersonalWorst().Goal))

	p.Renew(nanObjective)
	assert.Nil(t, p.PersonalBest())
}

func TestSwarmRecordsMonotone(t *testing.T) {
	s := NewSwarm(sphere)
	s.Populate(
		[][]float64{{1, 0}, {2, 0}, {0, 3}},
		[][]float64{{0, 0}, {0, 0}, {0, 0}},
	)

	require.NotNil(t, s.Best())
	assert.Equal(t, 1.0, s.Best().Goal)
	assert.Equal(t, 9.0, s.Worst().Goal)

	// Moving every particle to a worse position must not degrade the best
	// record.
	for i := 0; i < s.Len(); i++ {
		copy(s.At(i).Coordinates(), []float64{10, 10})
		s.At(i).Renew(sphere)
	}
	s.renewRecords()
	assert.Equal(t, 1.0, s.Best().Goal)
	assert.Equal(t, 200.0, s.Worst().Goal)
}

func TestSwarmPopulateLengthMismatchPanics(t *testing.T) {
	s := NewSwarm(sphere)
	assert.Panics(t, func() {
		s.Populate([][]float64{{1}}, [][]float64{})
	})
}

func TestZeroVelocityInitializer(t *testing.T) {
	velocities := NewZeroVelocityInitializer(3, 2).Velocities()
	require.Len(t, velocities, 3)
	for _, v := range velocities {
		assert.Equal(t, []float64{0, 0}, v)
	}
}

func TestRandomInitializersRespectIntervals(t *testing.T) {
	rng := optimization.NewRand(42)
	intervals := optimization.UniformIntervals(3, -2.0, 5.0)

	coordinates := NewRandomCoordinatesInitializer(20, intervals, rng).Coordinates()
	require.Len(t, coordinates, 20)
	for _, c := range coordinates {
		require.Len(t, c, 3)
		for d, v := range c {
			assert.True(t, intervals[d].Contains(v))
		}
	}
}

func TestCanonicalVelocityCalculatorValidation(t *testing.T) {
	rng := optimization.NewRand(1)

	assert.Panics(t, func() { NewCanonicalVelocityCalculator(0.5, 2.0, 2.0, rng) }, "phi sum too small")
	assert.Panics(t, func() { NewCanonicalVelocityCalculator(1.0, 2.1, 2.1, rng) }, "alpha at upper bound")
	assert.Panics(t, func() { NewCanonicalVelocityCalculator(0.0, 2.1, 2.1, rng) }, "alpha at lower bound")
	assert.NotPanics(t, func() { NewCanonicalVelocityCalculator(0.9, 2.1, 2.1, rng) })
}

func TestClassicVelocityPullsTowardBests(t *testing.T) {
	rng := optimization.NewRand(7)
	s := NewSwarm(sphere)
	s.Populate(
		[][]float64{{0, 0}, {4, 4}},
		[][]float64{{0, 0}, {0, 0}},
	)

	// The global best sits at the origin, so the far particle's velocity
	// must point toward negative coordinates.
	calc := NewClassicVelocityCalculator(0, 2.0, rng)
	velocity := calc.Calculate(s, s.At(1))
	require.Len(t, velocity, 2)
	assert.Less(t, velocity[0], 0.0)
	assert.Less(t, velocity[1], 0.0)
}

func TestLinearInertia(t *testing.T) {
	inertia := NewLinearInertia(0.9, 0.4, 100)

	assert.InDelta(t, 0.9, inertia.Weight(0), 1e-12)
	assert.InDelta(t, 0.65, inertia.Weight(50), 1e-12)
	assert.InDelta(t, 0.4, inertia.Weight(100), 1e-12)
	assert.InDelta(t, 0.4, inertia.Weight(500), 1e-12, "holds the end weight past the span")
}

func TestMaxVelocityAbs(t *testing.T) {
	correct := NewMaxVelocityAbs(5.0)

	short := correct.Process([]float64{1, 1})
	assert.Equal(t, []float64{1, 1}, short)

	long := correct.Process([]float64{30, 40})
	assert.InDelta(t, 3.0, long[0], 1e-12)
	assert.InDelta(t, 4.0, long[1], 1e-12)
}

func TestMaxVelocityDimensions(t *testing.T) {
	correct := NewMaxVelocityDimensions([]float64{1.0, 10.0})

	velocity := correct.Process([]float64{5.0, -20.0})
	assert.Equal(t, []float64{1.0, -10.0}, velocity)
}

func TestMoveToBoundary(t *testing.T) {
	adjust := NewMoveToBoundary(optimization.UniformIntervals(2, -1.0, 1.0))

	coordinates := []float64{-3.5, 0.25}
	adjust.Move(coordinates)
	assert.Equal(t, []float64{-1.0, 0.25}, coordinates)
}

func TestRandomTeleportProbabilityBounds(t *testing.T) {
	rng := optimization.NewRand(1)
	intervals := optimization.UniformIntervals(1, 0.0, 1.0)

	assert.Panics(t, func() { NewRandomTeleport(-1, intervals, rng) })
	assert.Panics(t, func() { NewRandomTeleport(101, intervals, rng) })

	// Zero probability never teleports.
	never := NewRandomTeleport(0, intervals, rng)
	coordinates := []float64{0.5}
	for i := 0; i < 100; i++ {
		never.Move(coordinates)
	}
	assert.Equal(t, []float64{0.5}, coordinates)

	// Full probability always teleports into the intervals.
	always := NewRandomTeleport(100, intervals, rng)
	coordinates = []float64{42.0}
	always.Move(coordinates)
	assert.True(t, intervals[0].Contains(coordinates[0]))
}
