package main

import (
	"fmt"

	"github.com/jenyay/optlib/internal/optimization"
	"github.com/jenyay/optlib/internal/optimization/genetic"
	"github.com/jenyay/optlib/internal/optimization/stats"
	"github.com/jenyay/optlib/internal/optimization/stop"
	"github.com/jenyay/optlib/internal/optimization/swarm"
	"github.com/jenyay/optlib/internal/optimization/testfunc"
)

// optimizerOptions are the flags shared by the run and stats commands.
type optimizerOptions struct {
	algorithm  string
	function   string
	dimension  int
	iterations int
	population int
	seed       int64
	threshold  float64
}

func (o *optimizerOptions) validate() error {
	if o.algorithm != "genetic" && o.algorithm != "swarm" {
		return fmt.Errorf("unknown algorithm %q (want genetic or swarm)", o.algorithm)
	}
	if _, ok := testfunc.ByName(o.function); !ok {
		return fmt.Errorf("unknown function %q (want one of %v)", o.function, testfunc.Names())
	}
	if o.dimension <= 0 {
		return fmt.Errorf("dimension must be positive")
	}
	return nil
}

type optimizer interface {
	stats.Runner[[]float64]
	NextIterations() *optimization.Solution[[]float64]
	SetLoggers(loggers []optimization.Logger[[]float64])
}

// buildOptimizer assembles an optimizer from the flags. The seed offset
// keeps parallel workers on distinct random sequences.
func buildOptimizer(o *optimizerOptions, seedOffset int64) optimizer {
	bench, _ := testfunc.ByName(o.function)
	objective := optimization.ObjectiveFunc[[]float64](bench.Func)
	intervals := optimization.UniformIntervals(o.dimension, bench.Min, bench.Max)

	seed := int64(0)
	if o.seed != 0 {
		seed = o.seed + seedOffset
	}
	rng := optimization.NewRand(seed)

	conditions := []stop.Condition[[]float64]{
		stop.NewMaxIterations[[]float64](o.iterations),
	}
	if o.threshold > 0 {
		conditions = append(conditions, stop.NewThreshold[[]float64](o.threshold))
	}
	stopCondition := stop.NewCompositeAny(conditions...)

	if o.algorithm == "swarm" {
		velocityBounds := make([]optimization.Interval, len(intervals))
		for d, iv := range intervals {
			span := iv.Max - iv.Min
			velocityBounds[d] = optimization.Interval{Min: -span, Max: span}
		}
		return swarm.NewParticleSwarmOptimizer(
			objective,
			stopCondition,
			swarm.NewRandomCoordinatesInitializer(o.population, intervals, rng),
			swarm.NewRandomVelocityInitializer(o.population, velocityBounds, rng),
			swarm.NewInertiaVelocityCalculator(
				swarm.NewLinearInertia(0.9, 0.4, o.iterations), 1.8, 1.8, rng),
			[]swarm.PostVelocityCalc{swarm.NewMaxVelocityAbs((bench.Max - bench.Min) / 2)},
			[]swarm.PostMove{swarm.NewMoveToBoundary(intervals)},
		)
	}

	return genetic.NewGeneticOptimizer[[]float64](
		objective,
		stopCondition,
		genetic.NewRandomCreator(o.population, intervals, rng),
		genetic.NewTournament[[]float64](o.population, rng).WithRoundsCount(2),
		genetic.NewVecCrossAllGenes(genetic.NewFloatCrossExp(rng)),
		genetic.NewVecMutation(15.0, genetic.NewBitwiseMutation(3, rng), rng),
		[]genetic.Selection[[]float64]{
			genetic.NewKillNonFinite[[]float64](),
			genetic.NewIntervalSelection(intervals),
			genetic.NewLimitPopulation[[]float64](o.population),
		},
		[]genetic.PreBirth[[]float64]{genetic.NewIntervalPreBirth(intervals)},
	)
}
