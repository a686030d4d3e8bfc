// Package genetic implements the generational genetic-algorithm engine: the
// population container, the pluggable operator pipeline (creation, pairing,
// crossover, mutation, pre-birth filtering, selection) and the optimizer
// driving one generation per iteration.
//
// Terms: a "chromosome" is a point in the search space, usually a vector of
// gene values; "fitness" is the goal function value of that point; an
// "individual" is a chromosome together with its fitness; a "generation" is
// one iteration of the algorithm.
package genetic

// Individual is one evaluated point in the search space. Its fitness is the
// objective value computed at insertion time and never recomputed; a changed
// point always enters the population as a new Individual. The alive flag
// marks whether the individual passes into the next generation.
type Individual[T any] struct {
	chromosomes T
	fitness     float64
	alive       bool
}

// Chromosomes returns the individual's point in the search space. Callers
// must not mutate it.
func (ind *Individual[T]) Chromosomes() T { return ind.chromosomes }

// Fitness returns the goal function value for the individual's chromosomes.
func (ind *Individual[T]) Fitness() float64 { return ind.fitness }

// IsAlive reports whether the individual goes into the next generation.
func (ind *Individual[T]) IsAlive() bool { return ind.alive }

// Kill marks the individual dead. Removal is a separate population
// operation so several selectors can compose before anything is dropped.
func (ind *Individual[T]) Kill() { ind.alive = false }
