package genetic

import (
	"math/rand"

	"github.com/jenyay/optlib/internal/optimization"
)

// RandomCreator fills the initial generation with chromosomes drawn
// uniformly from a per-dimension interval box.
type RandomCreator struct {
	populationSize int
	intervals      []optimization.Interval
	rng            *rand.Rand
}

// NewRandomCreator creates a creator producing populationSize random
// chromosomes inside intervals. It panics on a zero population size and on
// an empty or inverted interval list: these are construction-time
// configuration errors.
func NewRandomCreator(populationSize int, intervals []optimization.Interval, rng *rand.Rand) *RandomCreator {
	if populationSize == 0 {
		panic("genetic: zero population size")
	}
	optimization.ValidateIntervals(intervals)
	return &RandomCreator{
		populationSize: populationSize,
		intervals:      intervals,
		rng:            rng,
	}
}

// Create returns the chromosomes of the initial generation.
func (c *RandomCreator) Create() [][]float64 {
	chromosomes := make([][]float64, 0, c.populationSize)
	for i := 0; i < c.populationSize; i++ {
		chromosomes = append(chromosomes, optimization.RandomVector(c.rng, c.intervals))
	}
	return chromosomes
}
