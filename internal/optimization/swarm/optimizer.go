package swarm

import (
	"github.com/jenyay/optlib/internal/optimization"
	"github.com/jenyay/optlib/internal/optimization/stop"
)

// ParticleSwarmOptimizer runs particle swarm optimization. Like the genetic
// optimizer it keeps its swarm across calls: FindMin rebuilds the swarm and
// runs to the stop condition, NextIterations resumes the existing swarm
// under the current stop condition.
type ParticleSwarmOptimizer struct {
	coordinatesInit CoordinatesInitializer
	velocityInit    VelocityInitializer
	velocityCalc    VelocityCalculator
	postVelocity    []PostVelocityCalc
	postMove        []PostMove
	stop            stop.Condition[[]float64]
	loggers         []optimization.Logger[[]float64]

	swarm *Swarm
}

// NewParticleSwarmOptimizer assembles an optimizer from its pipeline.
func NewParticleSwarmOptimizer(
	objective optimization.Objective[[]float64],
	stopCondition stop.Condition[[]float64],
	coordinatesInit CoordinatesInitializer,
	velocityInit VelocityInitializer,
	velocityCalc VelocityCalculator,
	postVelocity []PostVelocityCalc,
	postMove []PostMove,
) *ParticleSwarmOptimizer {
	return &ParticleSwarmOptimizer{
		coordinatesInit: coordinatesInit,
		velocityInit:    velocityInit,
		velocityCalc:    velocityCalc,
		postVelocity:    postVelocity,
		postMove:        postMove,
		stop:            stopCondition,
		swarm:           NewSwarm(objective),
	}
}

// SetLoggers replaces the run observers.
func (o *ParticleSwarmOptimizer) SetLoggers(loggers []optimization.Logger[[]float64]) {
	o.loggers = loggers
}

// SetStopCondition replaces the stop condition, typically between FindMin
// and NextIterations.
func (o *ParticleSwarmOptimizer) SetStopCondition(condition stop.Condition[[]float64]) {
	o.stop = condition
}

// SetVelocityCalculator replaces the velocity rule.
func (o *ParticleSwarmOptimizer) SetVelocityCalculator(calc VelocityCalculator) {
	o.velocityCalc = calc
}

// SetPostVelocityCalcs replaces the velocity correction chain.
func (o *ParticleSwarmOptimizer) SetPostVelocityCalcs(corrections []PostVelocityCalc) {
	o.postVelocity = corrections
}

// SetPostMoves replaces the post-move adjustment chain.
func (o *ParticleSwarmOptimizer) SetPostMoves(adjustments []PostMove) {
	o.postMove = adjustments
}

// Swarm exposes the optimizer's swarm, mainly for observers and tests.
func (o *ParticleSwarmOptimizer) Swarm() *Swarm { return o.swarm }

// FindMin rebuilds the swarm from the initializers and runs the algorithm
// to its stop condition. It returns nil when no particle ever scored a
// finite goal.
func (o *ParticleSwarmOptimizer) FindMin() *optimization.Solution[[]float64] {
	o.renewSwarm()

	for _, l := range o.loggers {
		l.Start(o.swarm)
	}

	return o.NextIterations()
}

// NextIterations drives the existing swarm through additional iterations
// until the current stop condition fires. The condition is evaluated after
// a completed iteration, so at least one iteration runs per call.
func (o *ParticleSwarmOptimizer) NextIterations() *optimization.Solution[[]float64] {
	for _, l := range o.loggers {
		l.Resume(o.swarm)
	}

	for {
		o.runIteration()
		if o.stop.CanStop(o.swarm) {
			break
		}
	}

	for _, l := range o.loggers {
		l.Finish(o.swarm)
	}

	return o.swarm.BestSolution()
}

// renewSwarm resets the swarm and populates it from the initializers. The
// post-move adjustments also apply to the starting positions, so the swarm
// never materializes an infeasible particle.
func (o *ParticleSwarmOptimizer) renewSwarm() {
	o.swarm.Reset()

	coordinates := o.coordinatesInit.Coordinates()
	for _, c := range coordinates {
		for _, adjust := range o.postMove {
			adjust.Move(c)
		}
	}

	o.swarm.Populate(coordinates, o.velocityInit.Velocities())
}

// runIteration sweeps the swarm once: every particle gets a new corrected
// velocity, moves, is adjusted and re-evaluated; then the global records
// and the iteration counter advance. Velocities are calculated against the
// records of the previous sweep.
func (o *ParticleSwarmOptimizer) runIteration() {
	for i := 0; i < o.swarm.Len(); i++ {
		p := o.swarm.At(i)

		velocity := o.velocityCalc.Calculate(o.swarm, p)
		for _, correct := range o.postVelocity {
			velocity = correct.Process(velocity)
		}
		p.SetVelocity(velocity)

		p.Move()
		for _, adjust := range o.postMove {
			adjust.Move(p.Coordinates())
		}
		p.Renew(o.swarm.Objective())
	}

	o.swarm.renewRecords()
	o.swarm.NextIteration()

	for _, l := range o.loggers {
		l.NextIteration(o.swarm)
	}
}
