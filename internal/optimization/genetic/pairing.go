package genetic

import "math/rand"

// RandomPairing selects ⌊len/2⌋ parent pairs uniformly with replacement.
type RandomPairing[T any] struct {
	rng *rand.Rand
}

// NewRandomPairing creates a RandomPairing drawing from rng.
func NewRandomPairing[T any](rng *rand.Rand) *RandomPairing[T] {
	return &RandomPairing[T]{rng: rng}
}

// GetPairs implements Pairing.
func (p *RandomPairing[T]) GetPairs(population *Population[T]) [][]int {
	count := population.Len() / 2
	pairs := make([][]int, 0, count)
	for i := 0; i < count; i++ {
		pairs = append(pairs, []int{
			p.rng.Intn(population.Len()),
			p.rng.Intn(population.Len()),
		})
	}
	return pairs
}

// Tournament selects parents by tournament: every partner must beat a number
// of random challengers. Selection pressure grows with the rounds count; a
// single round is a best-of-two pick.
type Tournament[T any] struct {
	familiesCount int
	partnersCount int
	roundsCount   int
	rng           *rand.Rand
}

// NewTournament creates a Tournament producing familiesCount families of two
// partners with one round each. Use WithPartnersCount and WithRoundsCount to
// adjust.
func NewTournament[T any](familiesCount int, rng *rand.Rand) *Tournament[T] {
	return &Tournament[T]{
		familiesCount: familiesCount,
		partnersCount: 2,
		roundsCount:   1,
		rng:           rng,
	}
}

// WithPartnersCount sets the partners per family. The default is 2.
func (t *Tournament[T]) WithPartnersCount(count int) *Tournament[T] {
	t.partnersCount = count
	return t
}

// WithRoundsCount sets how many challengers every partner must win against.
// The default is 1.
func (t *Tournament[T]) WithRoundsCount(count int) *Tournament[T] {
	t.roundsCount = count
	return t
}

// GetPairs implements Pairing.
func (t *Tournament[T]) GetPairs(population *Population[T]) [][]int {
	pairs := make([][]int, 0, t.familiesCount)
	for i := 0; i < t.familiesCount; i++ {
		family := make([]int, 0, t.partnersCount)
		for j := 0; j < t.partnersCount; j++ {
			incumbent := t.rng.Intn(population.Len())
			for round := 0; round < t.roundsCount; round++ {
				challenger := t.rng.Intn(population.Len())
				if population.At(challenger).Fitness() < population.At(incumbent).Fitness() {
					incumbent = challenger
				}
			}
			family = append(family, incumbent)
		}
		pairs = append(pairs, family)
	}
	return pairs
}
