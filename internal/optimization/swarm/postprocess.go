package swarm

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/jenyay/optlib/internal/optimization"
)

// PostVelocityCalc corrects a freshly calculated velocity before the
// particle moves. Corrections chain in order.
type PostVelocityCalc interface {
	Process(velocity []float64) []float64
}

// PostMove adjusts a particle's position in place after it moved.
// Adjustments chain in order, and also apply to the initial positions
// before the first iteration.
type PostMove interface {
	Move(coordinates []float64)
}

// MaxVelocityAbs caps the Euclidean norm of the velocity, preserving its
// direction.
type MaxVelocityAbs struct {
	max float64
}

// NewMaxVelocityAbs creates the correction. It panics on a non-positive
// cap.
func NewMaxVelocityAbs(max float64) *MaxVelocityAbs {
	if max <= 0 {
		panic("swarm: non-positive velocity cap")
	}
	return &MaxVelocityAbs{max: max}
}

// Process implements PostVelocityCalc.
func (c *MaxVelocityAbs) Process(velocity []float64) []float64 {
	norm := floats.Norm(velocity, 2)
	if norm > c.max {
		floats.Scale(c.max/norm, velocity)
	}
	return velocity
}

// MaxVelocityDimensions caps the velocity independently per dimension.
type MaxVelocityDimensions struct {
	max []float64
}

// NewMaxVelocityDimensions creates the correction. It panics on an empty
// cap list or a non-positive cap.
func NewMaxVelocityDimensions(max []float64) *MaxVelocityDimensions {
	if len(max) == 0 {
		panic("swarm: empty velocity cap list")
	}
	for _, m := range max {
		if m <= 0 {
			panic("swarm: non-positive velocity cap")
		}
	}
	return &MaxVelocityDimensions{max: max}
}

// Process implements PostVelocityCalc.
func (c *MaxVelocityDimensions) Process(velocity []float64) []float64 {
	for d := range velocity {
		if velocity[d] > c.max[d] {
			velocity[d] = c.max[d]
		} else if velocity[d] < -c.max[d] {
			velocity[d] = -c.max[d]
		}
	}
	return velocity
}

// MoveToBoundary clamps every coordinate onto its feasible interval.
type MoveToBoundary struct {
	intervals []optimization.Interval
}

// NewMoveToBoundary creates the adjustment. It panics on an invalid
// interval list.
func NewMoveToBoundary(intervals []optimization.Interval) *MoveToBoundary {
	optimization.ValidateIntervals(intervals)
	return &MoveToBoundary{intervals: intervals}
}

// Move implements PostMove.
func (m *MoveToBoundary) Move(coordinates []float64) {
	for d := range coordinates {
		interval := m.intervals[d]
		if coordinates[d] < interval.Min {
			coordinates[d] = interval.Min
		} else if coordinates[d] > interval.Max {
			coordinates[d] = interval.Max
		}
	}
}

// RandomTeleport relocates the particle to a fresh uniform position with
// the given percent probability, a cheap escape from stagnation.
type RandomTeleport struct {
	probability float64
	intervals   []optimization.Interval
	rng         *rand.Rand
}

// NewRandomTeleport creates the adjustment. It panics if probability lies
// outside [0, 100] or the interval list is invalid.
func NewRandomTeleport(probability float64, intervals []optimization.Interval, rng *rand.Rand) *RandomTeleport {
	if probability < 0 || probability > 100 {
		panic("swarm: teleport probability outside [0, 100]")
	}
	optimization.ValidateIntervals(intervals)
	return &RandomTeleport{probability: probability, intervals: intervals, rng: rng}
}

// Move implements PostMove.
func (m *RandomTeleport) Move(coordinates []float64) {
	if m.rng.Float64()*100 >= m.probability {
		return
	}
	copy(coordinates, optimization.RandomVector(m.rng, m.intervals))
}
