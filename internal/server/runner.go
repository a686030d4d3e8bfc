package server

import (
	"github.com/jenyay/optlib/internal/optimization"
	"github.com/jenyay/optlib/internal/optimization/genetic"
	"github.com/jenyay/optlib/internal/optimization/stats"
	"github.com/jenyay/optlib/internal/optimization/stop"
	"github.com/jenyay/optlib/internal/optimization/swarm"
	"github.com/jenyay/optlib/internal/optimization/testfunc"
)

// Algorithms accepted by the experiments API.
const (
	AlgorithmGenetic = "genetic"
	AlgorithmSwarm   = "swarm"
)

// buildRunner assembles one worker's optimizer for an experiment. Each
// worker gets its own random source; a nonzero request seed makes the whole
// experiment reproducible.
func buildRunner(req *ExperimentRequest, worker int, statistics *stats.Statistics[[]float64], cancel stop.Condition[[]float64]) stats.Runner[[]float64] {
	bench, _ := testfunc.ByName(req.Function)
	intervals := optimization.UniformIntervals(req.Dimension, bench.Min, bench.Max)

	seed := int64(0)
	if req.Seed != 0 {
		seed = req.Seed + int64(worker)
	}
	rng := optimization.NewRand(seed)

	stopCondition := stop.NewCompositeAny(
		stop.NewMaxIterations[[]float64](req.MaxIterations),
		cancel,
	)
	loggers := []optimization.Logger[[]float64]{stats.NewRunLogger(statistics)}

	switch req.Algorithm {
	case AlgorithmSwarm:
		velocityBounds := make([]optimization.Interval, len(intervals))
		for d, iv := range intervals {
			span := iv.Max - iv.Min
			velocityBounds[d] = optimization.Interval{Min: -span, Max: span}
		}

		optimizer := swarm.NewParticleSwarmOptimizer(
			optimization.ObjectiveFunc[[]float64](bench.Func),
			stopCondition,
			swarm.NewRandomCoordinatesInitializer(req.PopulationSize, intervals, rng),
			swarm.NewRandomVelocityInitializer(req.PopulationSize, velocityBounds, rng),
			swarm.NewInertiaVelocityCalculator(
				swarm.NewLinearInertia(0.9, 0.4, req.MaxIterations), 1.8, 1.8, rng),
			[]swarm.PostVelocityCalc{swarm.NewMaxVelocityAbs((bench.Max - bench.Min) / 2)},
			[]swarm.PostMove{swarm.NewMoveToBoundary(intervals)},
		)
		optimizer.SetLoggers(loggers)
		return optimizer

	default:
		optimizer := genetic.NewGeneticOptimizer[[]float64](
			optimization.ObjectiveFunc[[]float64](bench.Func),
			stopCondition,
			genetic.NewRandomCreator(req.PopulationSize, intervals, rng),
			genetic.NewTournament[[]float64](req.PopulationSize, rng).WithRoundsCount(2),
			genetic.NewVecCrossAllGenes(genetic.NewFloatCrossExp(rng)),
			genetic.NewVecMutation(15.0, genetic.NewBitwiseMutation(3, rng), rng),
			[]genetic.Selection[[]float64]{
				genetic.NewKillNonFinite[[]float64](),
				genetic.NewIntervalSelection(intervals),
				genetic.NewLimitPopulation[[]float64](req.PopulationSize),
			},
			[]genetic.PreBirth[[]float64]{genetic.NewIntervalPreBirth(intervals)},
		)
		optimizer.SetLoggers(loggers)
		return optimizer
	}
}
