package genetic

import (
	"github.com/jenyay/optlib/internal/optimization"
)

// Population owns the current generation's individuals and tracks the best
// and worst alive members and the generation counter. It evaluates the
// objective exactly once per inserted chromosome.
//
// Best/worst bookkeeping follows the goal ordering of
// optimization.CompareGoals: a non-finite fitness never becomes the best but
// is always eligible to be the worst, which lets selection target it for
// removal.
type Population[T any] struct {
	objective   optimization.Objective[T]
	individuals []Individual[T]

	best  *Individual[T]
	worst *Individual[T]

	iteration int
}

// NewPopulation creates an empty population at generation 0 that evaluates
// objective on every insertion.
func NewPopulation[T any](objective optimization.Objective[T]) *Population[T] {
	return &Population[T]{objective: objective}
}

// Push evaluates the objective once, constructs a live individual and
// appends it. Best/worst are maintained by comparison against the incumbent,
// so the insert path stays O(1).
func (p *Population[T]) Push(chromosomes T) {
	ind := Individual[T]{
		chromosomes: chromosomes,
		fitness:     p.objective.Evaluate(chromosomes),
		alive:       true,
	}
	p.individuals = append(p.individuals, ind)

	if p.best == nil || optimization.CompareGoals(ind.fitness, p.best.fitness) < 0 {
		best := ind
		p.best = &best
	}
	if p.worst == nil || optimization.CompareGoals(ind.fitness, p.worst.fitness) > 0 {
		worst := ind
		p.worst = &worst
	}
}

// Append pushes every chromosome in the list.
func (p *Population[T]) Append(chromosomes []T) {
	for _, c := range chromosomes {
		p.Push(c)
	}
}

// RemoveDead drops all individuals marked dead and recomputes best/worst
// with a full scan over the survivors.
func (p *Population[T]) RemoveDead() {
	alive := p.individuals[:0]
	for _, ind := range p.individuals {
		if ind.alive {
			alive = append(alive, ind)
		}
	}
	// Let the GC reclaim the tail.
	for i := len(alive); i < len(p.individuals); i++ {
		p.individuals[i] = Individual[T]{}
	}
	p.individuals = alive
	p.rescanBestWorst()
}

func (p *Population[T]) rescanBestWorst() {
	p.best = nil
	p.worst = nil
	for i := range p.individuals {
		ind := &p.individuals[i]
		if p.best == nil || optimization.CompareGoals(ind.fitness, p.best.fitness) < 0 {
			best := *ind
			p.best = &best
		}
		if p.worst == nil || optimization.CompareGoals(ind.fitness, p.worst.fitness) > 0 {
			worst := *ind
			p.worst = &worst
		}
	}
}

// NextIteration advances the generation counter. It does not touch the
// individuals.
func (p *Population[T]) NextIteration() { p.iteration++ }

// Reset removes all individuals and returns to generation 0.
func (p *Population[T]) Reset() {
	p.individuals = p.individuals[:0]
	p.best = nil
	p.worst = nil
	p.iteration = 0
}

// Len returns the count of individuals, dead ones included.
func (p *Population[T]) Len() int { return len(p.individuals) }

// LenAlive returns the count of individuals still marked alive.
func (p *Population[T]) LenAlive() int {
	count := 0
	for i := range p.individuals {
		if p.individuals[i].alive {
			count++
		}
	}
	return count
}

// At returns the individual at index i. The pointer stays valid until the
// next insertion or removal.
func (p *Population[T]) At(i int) *Individual[T] { return &p.individuals[i] }

// Best returns the best alive individual, or nil for an empty population.
func (p *Population[T]) Best() *Individual[T] { return p.best }

// Worst returns the worst alive individual, or nil for an empty population.
func (p *Population[T]) Worst() *Individual[T] { return p.worst }

// Iteration returns the generation number.
func (p *Population[T]) Iteration() int { return p.iteration }

// BestSolution implements optimization.State.
func (p *Population[T]) BestSolution() *optimization.Solution[T] {
	if p.best == nil {
		return nil
	}
	return &optimization.Solution[T]{
		Parameters: p.best.chromosomes,
		Goal:       p.best.fitness,
	}
}
