// Package swarm implements particle swarm optimization. A swarm of
// particles moves through the search space; every particle remembers its
// personal best and worst positions, and the swarm tracks the global best
// and worst found so far. Velocity rules, velocity corrections and post-move
// adjustments are pluggable, in the same spirit as the genetic package's
// operator pipeline.
package swarm

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/jenyay/optlib/internal/optimization"
)

// Particle is a single member of the swarm. Coordinates and velocity have
// the dimensionality of the search space. The personal records hold copies
// of the coordinates, so later moves do not disturb them.
type Particle struct {
	coordinates []float64
	velocity    []float64
	goal        float64

	personalBest  *optimization.Solution[[]float64]
	personalWorst *optimization.Solution[[]float64]
}

func newParticle(coordinates, velocity []float64, goal float64) Particle {
	p := Particle{
		coordinates: coordinates,
		velocity:    velocity,
		goal:        goal,
	}
	p.renewPersonalRecords()
	return p
}

// Coordinates returns the particle's current position. The slice is live:
// post-move adjusters mutate it in place.
func (p *Particle) Coordinates() []float64 { return p.coordinates }

// Velocity returns the particle's current velocity.
func (p *Particle) Velocity() []float64 { return p.velocity }

// Goal returns the objective value at the current position.
func (p *Particle) Goal() float64 { return p.goal }

// PersonalBest returns the best position this particle has visited, or nil
// while every visited position scored non-finite.
func (p *Particle) PersonalBest() *optimization.Solution[[]float64] { return p.personalBest }

// PersonalWorst returns the worst position this particle has visited.
func (p *Particle) PersonalWorst() *optimization.Solution[[]float64] { return p.personalWorst }

// SetVelocity replaces the particle's velocity.
func (p *Particle) SetVelocity(velocity []float64) { p.velocity = velocity }

// Move shifts the position by the current velocity.
func (p *Particle) Move() {
	floats.Add(p.coordinates, p.velocity)
}

// Renew re-evaluates the objective at the current position and folds the
// result into the personal records.
func (p *Particle) Renew(objective optimization.Objective[[]float64]) {
	p.goal = objective.Evaluate(p.coordinates)
	p.renewPersonalRecords()
}

func (p *Particle) renewPersonalRecords() {
	finite := !math.IsNaN(p.goal) && !math.IsInf(p.goal, 0)
	if finite && (p.personalBest == nil || optimization.CompareGoals(p.goal, p.personalBest.Goal) < 0) {
		p.personalBest = p.snapshot()
	}
	if p.personalWorst == nil || optimization.CompareGoals(p.goal, p.personalWorst.Goal) > 0 {
		p.personalWorst = p.snapshot()
	}
}

func (p *Particle) snapshot() *optimization.Solution[[]float64] {
	coordinates := make([]float64, len(p.coordinates))
	copy(coordinates, p.coordinates)
	return &optimization.Solution[[]float64]{Parameters: coordinates, Goal: p.goal}
}
