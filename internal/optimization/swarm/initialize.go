package swarm

import (
	"math/rand"

	"github.com/jenyay/optlib/internal/optimization"
)

// CoordinatesInitializer produces the starting positions of a swarm.
type CoordinatesInitializer interface {
	Coordinates() [][]float64
}

// VelocityInitializer produces the starting velocities of a swarm.
type VelocityInitializer interface {
	Velocities() [][]float64
}

// RandomCoordinatesInitializer draws every starting position uniformly from
// the per-dimension intervals.
type RandomCoordinatesInitializer struct {
	count     int
	intervals []optimization.Interval
	rng       *rand.Rand
}

// NewRandomCoordinatesInitializer creates an initializer for count
// particles. It panics on a zero count or an invalid interval list.
func NewRandomCoordinatesInitializer(count int, intervals []optimization.Interval, rng *rand.Rand) *RandomCoordinatesInitializer {
	if count == 0 {
		panic("swarm: zero particle count")
	}
	optimization.ValidateIntervals(intervals)
	return &RandomCoordinatesInitializer{count: count, intervals: intervals, rng: rng}
}

// Coordinates implements CoordinatesInitializer.
func (c *RandomCoordinatesInitializer) Coordinates() [][]float64 {
	coordinates := make([][]float64, 0, c.count)
	for i := 0; i < c.count; i++ {
		coordinates = append(coordinates, optimization.RandomVector(c.rng, c.intervals))
	}
	return coordinates
}

// RandomVelocityInitializer draws every starting velocity uniformly from the
// per-dimension velocity intervals. The intervals are the caller's velocity
// bounds, not the search-space bounds.
type RandomVelocityInitializer struct {
	count     int
	intervals []optimization.Interval
	rng       *rand.Rand
}

// NewRandomVelocityInitializer creates an initializer for count particles.
// It panics on a zero count or an invalid interval list.
func NewRandomVelocityInitializer(count int, intervals []optimization.Interval, rng *rand.Rand) *RandomVelocityInitializer {
	if count == 0 {
		panic("swarm: zero particle count")
	}
	optimization.ValidateIntervals(intervals)
	return &RandomVelocityInitializer{count: count, intervals: intervals, rng: rng}
}

// Velocities implements VelocityInitializer.
func (v *RandomVelocityInitializer) Velocities() [][]float64 {
	velocities := make([][]float64, 0, v.count)
	for i := 0; i < v.count; i++ {
		velocities = append(velocities, optimization.RandomVector(v.rng, v.intervals))
	}
	return velocities
}

// ZeroVelocityInitializer starts every particle at rest.
type ZeroVelocityInitializer struct {
	count     int
	dimension int
}

// NewZeroVelocityInitializer creates an initializer for count particles of
// the given dimensionality.
func NewZeroVelocityInitializer(count, dimension int) *ZeroVelocityInitializer {
	if count == 0 {
		panic("swarm: zero particle count")
	}
	return &ZeroVelocityInitializer{count: count, dimension: dimension}
}

// Velocities implements VelocityInitializer.
func (v *ZeroVelocityInitializer) Velocities() [][]float64 {
	velocities := make([][]float64, 0, v.count)
	for i := 0; i < v.count; i++ {
		velocities = append(velocities, make([]float64, v.dimension))
	}
	return velocities
}
