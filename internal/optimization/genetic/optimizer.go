package genetic

import (
	"github.com/jenyay/optlib/internal/optimization"
	"github.com/jenyay/optlib/internal/optimization/stop"
)

// GeneticOptimizer runs the genetic algorithm. It holds every part of the
// pipeline as an interface value: Creator, Pairing, Cross, Mutation, the
// PreBirth filters, the Selection list, the stop condition and the loggers.
//
// The optimizer keeps its population across calls: FindMin resets it and
// runs to the stop condition, while NextIterations resumes the existing
// population under the current (possibly replaced) stop condition. That is
// the mechanism staged experiments use.
type GeneticOptimizer[T any] struct {
	creator    Creator[T]
	pairing    Pairing[T]
	cross      Cross[T]
	mutation   Mutation[T]
	preBirths  []PreBirth[T]
	selections []Selection[T]
	stop       stop.Condition[T]
	loggers    []optimization.Logger[T]

	population *Population[T]
}

// NewGeneticOptimizer assembles an optimizer from its operator pipeline.
func NewGeneticOptimizer[T any](
	objective optimization.Objective[T],
	stopCondition stop.Condition[T],
	creator Creator[T],
	pairing Pairing[T],
	cross Cross[T],
	mutation Mutation[T],
	selections []Selection[T],
	preBirths []PreBirth[T],
) *GeneticOptimizer[T] {
	return &GeneticOptimizer[T]{
		creator:    creator,
		pairing:    pairing,
		cross:      cross,
		mutation:   mutation,
		preBirths:  preBirths,
		selections: selections,
		stop:       stopCondition,
		population: NewPopulation(objective),
	}
}

// SetLoggers replaces the run observers.
func (g *GeneticOptimizer[T]) SetLoggers(loggers []optimization.Logger[T]) {
	g.loggers = loggers
}

// SetPairing replaces the pairing operator.
func (g *GeneticOptimizer[T]) SetPairing(pairing Pairing[T]) { g.pairing = pairing }

// SetCross replaces the recombination operator.
func (g *GeneticOptimizer[T]) SetCross(cross Cross[T]) { g.cross = cross }

// SetMutation replaces the mutation operator.
func (g *GeneticOptimizer[T]) SetMutation(mutation Mutation[T]) { g.mutation = mutation }

// SetSelections replaces the selection list.
func (g *GeneticOptimizer[T]) SetSelections(selections []Selection[T]) {
	g.selections = selections
}

// SetPreBirths replaces the pre-birth filter list.
func (g *GeneticOptimizer[T]) SetPreBirths(preBirths []PreBirth[T]) {
	g.preBirths = preBirths
}

// SetStopCondition replaces the stop condition, typically between FindMin
// and NextIterations.
func (g *GeneticOptimizer[T]) SetStopCondition(condition stop.Condition[T]) {
	g.stop = condition
}

// Population exposes the optimizer's population, mainly for observers and
// tests.
func (g *GeneticOptimizer[T]) Population() *Population[T] { return g.population }

// FindMin resets the population, creates the initial generation and runs the
// algorithm to its stop condition. It returns nil when no individual
// survived to the end of the run.
func (g *GeneticOptimizer[T]) FindMin() *optimization.Solution[T] {
	g.population.Reset()
	g.population.Append(g.creator.Create())

	for _, l := range g.loggers {
		l.Start(g.population)
	}

	return g.NextIterations()
}

// NextIterations drives the existing population through additional
// generations until the current stop condition fires. The stop condition is
// evaluated after a completed generation, so at least one generation runs
// per call.
func (g *GeneticOptimizer[T]) NextIterations() *optimization.Solution[T] {
	for _, l := range g.loggers {
		l.Resume(g.population)
	}

	for {
		g.runGeneration()
		if g.stop.CanStop(g.population) {
			break
		}
	}

	for _, l := range g.loggers {
		l.Finish(g.population)
	}

	return g.population.BestSolution()
}

// runGeneration advances the population by one full generation: pairing and
// crossing produce children, mutation and pre-birth filters transform them,
// survivors are inserted, selections cull the population and the iteration
// counter advances.
func (g *GeneticOptimizer[T]) runGeneration() {
	children := g.runPairing()

	for i, child := range children {
		children[i] = g.mutation.Mutate(child)
	}

	for _, preBirth := range g.preBirths {
		children = preBirth.Filter(g.population, children)
	}

	g.population.Append(children)

	for _, selection := range g.selections {
		selection.Kill(g.population)
	}
	g.population.RemoveDead()

	g.population.NextIteration()

	for _, l := range g.loggers {
		l.NextIteration(g.population)
	}
}

func (g *GeneticOptimizer[T]) runPairing() []T {
	pairs := g.pairing.GetPairs(g.population)

	children := make([]T, 0, len(pairs))
	for _, pair := range pairs {
		parents := make([]T, 0, len(pair))
		for _, index := range pair {
			parents = append(parents, g.population.At(index).Chromosomes())
		}
		children = append(children, g.cross.Cross(parents)...)
	}
	return children
}
