package swarm

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/jenyay/optlib/internal/optimization"
)

// VelocityCalculator produces a particle's next velocity from the swarm's
// and the particle's records. The returned slice is freshly allocated.
type VelocityCalculator interface {
	Calculate(s *Swarm, p *Particle) []float64
}

// addAttraction adds k*(target - x) to velocity. A nil target contributes
// nothing: the record does not exist yet.
func addAttraction(velocity, coordinates []float64, target *optimization.Solution[[]float64], k float64) {
	if target == nil {
		return
	}
	for d := range velocity {
		velocity[d] += k * (target.Parameters[d] - coordinates[d])
	}
}

// addRepulsion adds k*(x - target) to velocity, pushing away from target.
func addRepulsion(velocity, coordinates []float64, target *optimization.Solution[[]float64], k float64) {
	if target == nil {
		return
	}
	for d := range velocity {
		velocity[d] += k * (coordinates[d] - target.Parameters[d])
	}
}

// ClassicVelocityCalculator is the original update rule: the previous
// velocity plus random attractions toward the personal and global bests.
type ClassicVelocityCalculator struct {
	phiPersonal float64
	phiGlobal   float64
	rng         *rand.Rand
}

// NewClassicVelocityCalculator creates the rule with the given attraction
// coefficients.
func NewClassicVelocityCalculator(phiPersonal, phiGlobal float64, rng *rand.Rand) *ClassicVelocityCalculator {
	return &ClassicVelocityCalculator{phiPersonal: phiPersonal, phiGlobal: phiGlobal, rng: rng}
}

// Calculate implements VelocityCalculator.
func (c *ClassicVelocityCalculator) Calculate(s *Swarm, p *Particle) []float64 {
	velocity := make([]float64, len(p.Velocity()))
	copy(velocity, p.Velocity())

	addAttraction(velocity, p.Coordinates(), p.PersonalBest(), c.phiPersonal*c.rng.Float64())
	addAttraction(velocity, p.Coordinates(), s.Best(), c.phiGlobal*c.rng.Float64())
	return velocity
}

// CanonicalVelocityCalculator is the constriction-factor update rule. The
// whole classic update is scaled by the factor
//
//	chi = 2*alpha / |2 - phi - sqrt(phi^2 - 4*phi)|, phi = phiPersonal + phiGlobal
//
// which guarantees convergence for phi > 4 and 0 < alpha < 1.
type CanonicalVelocityCalculator struct {
	chi         float64
	phiPersonal float64
	phiGlobal   float64
	rng         *rand.Rand
}

// NewCanonicalVelocityCalculator creates the rule. It panics unless
// phiPersonal+phiGlobal > 4 and 0 < alpha < 1: outside that region the
// constriction factor loses its convergence guarantee.
func NewCanonicalVelocityCalculator(alpha, phiPersonal, phiGlobal float64, rng *rand.Rand) *CanonicalVelocityCalculator {
	phi := phiPersonal + phiGlobal
	if phi <= 4 {
		panic("swarm: canonical rule needs phiPersonal+phiGlobal > 4")
	}
	if alpha <= 0 || alpha >= 1 {
		panic("swarm: canonical rule needs alpha in (0, 1)")
	}
	chi := 2 * alpha / math.Abs(2-phi-math.Sqrt(phi*phi-4*phi))
	return &CanonicalVelocityCalculator{
		chi:         chi,
		phiPersonal: phiPersonal,
		phiGlobal:   phiGlobal,
		rng:         rng,
	}
}

// Calculate implements VelocityCalculator.
func (c *CanonicalVelocityCalculator) Calculate(s *Swarm, p *Particle) []float64 {
	velocity := make([]float64, len(p.Velocity()))
	copy(velocity, p.Velocity())

	addAttraction(velocity, p.Coordinates(), p.PersonalBest(), c.phiPersonal*c.rng.Float64())
	addAttraction(velocity, p.Coordinates(), s.Best(), c.phiGlobal*c.rng.Float64())
	floats.Scale(c.chi, velocity)
	return velocity
}

// NegativeReinforcementVelocityCalculator extends the classic rule with
// repulsion from the personal and global worst positions, so particles flee
// known bad regions as well as chase good ones.
type NegativeReinforcementVelocityCalculator struct {
	phiBestPersonal  float64
	phiBestGlobal    float64
	phiWorstPersonal float64
	phiWorstGlobal   float64
	rng              *rand.Rand
}

// NewNegativeReinforcementVelocityCalculator creates the rule with separate
// coefficients for the two attractions and the two repulsions.
func NewNegativeReinforcementVelocityCalculator(
	phiBestPersonal, phiBestGlobal, phiWorstPersonal, phiWorstGlobal float64,
	rng *rand.Rand,
) *NegativeReinforcementVelocityCalculator {
	return &NegativeReinforcementVelocityCalculator{
		phiBestPersonal:  phiBestPersonal,
		phiBestGlobal:    phiBestGlobal,
		phiWorstPersonal: phiWorstPersonal,
		phiWorstGlobal:   phiWorstGlobal,
		rng:              rng,
	}
}

// Calculate implements VelocityCalculator.
func (c *NegativeReinforcementVelocityCalculator) Calculate(s *Swarm, p *Particle) []float64 {
	velocity := make([]float64, len(p.Velocity()))
	copy(velocity, p.Velocity())

	addAttraction(velocity, p.Coordinates(), p.PersonalBest(), c.phiBestPersonal*c.rng.Float64())
	addAttraction(velocity, p.Coordinates(), s.Best(), c.phiBestGlobal*c.rng.Float64())
	addRepulsion(velocity, p.Coordinates(), p.PersonalWorst(), c.phiWorstPersonal*c.rng.Float64())
	addRepulsion(velocity, p.Coordinates(), s.Worst(), c.phiWorstGlobal*c.rng.Float64())
	return velocity
}

// Inertia yields the inertia weight for an iteration.
type Inertia interface {
	Weight(iteration int) float64
}

// ConstInertia is a fixed inertia weight.
type ConstInertia struct {
	weight float64
}

// NewConstInertia creates a fixed weight.
func NewConstInertia(weight float64) *ConstInertia { return &ConstInertia{weight: weight} }

// Weight implements Inertia.
func (i *ConstInertia) Weight(int) float64 { return i.weight }

// LinearInertia interpolates the weight linearly from start to end over
// maxIterations, then holds end.
type LinearInertia struct {
	start         float64
	end           float64
	maxIterations int
}

// NewLinearInertia creates a linearly decaying weight. It panics on a zero
// iteration span.
func NewLinearInertia(start, end float64, maxIterations int) *LinearInertia {
	if maxIterations == 0 {
		panic("swarm: zero inertia iteration span")
	}
	return &LinearInertia{start: start, end: end, maxIterations: maxIterations}
}

// Weight implements Inertia.
func (i *LinearInertia) Weight(iteration int) float64 {
	if iteration >= i.maxIterations {
		return i.end
	}
	t := float64(iteration) / float64(i.maxIterations)
	return i.start + (i.end-i.start)*t
}

// InertiaVelocityCalculator is the classic rule with the previous velocity
// scaled by an iteration-dependent inertia weight.
type InertiaVelocityCalculator struct {
	inertia     Inertia
	phiPersonal float64
	phiGlobal   float64
	rng         *rand.Rand
}

// NewInertiaVelocityCalculator creates the rule.
func NewInertiaVelocityCalculator(inertia Inertia, phiPersonal, phiGlobal float64, rng *rand.Rand) *InertiaVelocityCalculator {
	return &InertiaVelocityCalculator{
		inertia:     inertia,
		phiPersonal: phiPersonal,
		phiGlobal:   phiGlobal,
		rng:         rng,
	}
}

// Calculate implements VelocityCalculator.
func (c *InertiaVelocityCalculator) Calculate(s *Swarm, p *Particle) []float64 {
	velocity := make([]float64, len(p.Velocity()))
	copy(velocity, p.Velocity())
	floats.Scale(c.inertia.Weight(s.Iteration()), velocity)

	addAttraction(velocity, p.Coordinates(), p.PersonalBest(), c.phiPersonal*c.rng.Float64())
	addAttraction(velocity, p.Coordinates(), s.Best(), c.phiGlobal*c.rng.Float64())
	return velocity
}
