package optimization

import (
	"math/rand"
	"strconv"
	"time"
)

// NewRand returns a random source for a stateful operator. A zero seed
// derives the seed from the wall clock; any other seed gives a reproducible
// sequence, which is how tests inject determinism.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Interval is an inclusive per-dimension bound on the search space.
type Interval struct {
	Min float64
	Max float64
}

// Contains reports whether x is finite and lies inside the interval.
func (iv Interval) Contains(x float64) bool {
	return isFiniteGoal(x) && x >= iv.Min && x <= iv.Max
}

// ValidateIntervals panics if the interval list is empty or any interval is
// inverted or degenerate. Interval misconfiguration is a programmer error
// caught at operator construction time, not a runtime condition.
func ValidateIntervals(intervals []Interval) {
	if len(intervals) == 0 {
		panic("optimization: empty interval list")
	}
	for i, iv := range intervals {
		if !(iv.Min < iv.Max) {
			panic("optimization: inverted interval at dimension " + strconv.Itoa(i))
		}
	}
}

// UniformIntervals builds a d-dimensional box with the same bounds in every
// dimension.
func UniformIntervals(d int, min, max float64) []Interval {
	intervals := make([]Interval, d)
	for i := range intervals {
		intervals[i] = Interval{Min: min, Max: max}
	}
	return intervals
}

// RandomVector draws one point uniformly from the box described by
// intervals, bounds inclusive.
func RandomVector(rng *rand.Rand, intervals []Interval) []float64 {
	v := make([]float64, len(intervals))
	for i, iv := range intervals {
		v[i] = iv.Min + rng.Float64()*(iv.Max-iv.Min)
	}
	return v
}
