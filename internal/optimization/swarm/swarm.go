package swarm

import "github.com/jenyay/optlib/internal/optimization"

// Swarm owns the particles and the global records. Membership is fixed for
// the lifetime of a run: particles move, they are never culled. The global
// best and worst are monotone over a run, updated by incumbent comparison
// after every sweep.
type Swarm struct {
	objective optimization.Objective[[]float64]

	particles []Particle
	best      *optimization.Solution[[]float64]
	worst     *optimization.Solution[[]float64]
	iteration int
}

// NewSwarm creates an empty swarm evaluating goals with objective.
func NewSwarm(objective optimization.Objective[[]float64]) *Swarm {
	return &Swarm{objective: objective}
}

// Reset drops all particles and records and rewinds the iteration counter.
func (s *Swarm) Reset() {
	s.particles = nil
	s.best = nil
	s.worst = nil
	s.iteration = 0
}

// Populate fills the swarm with one particle per coordinate vector,
// evaluating each. Coordinates and velocities pair up by index and must
// have equal length.
func (s *Swarm) Populate(coordinates, velocities [][]float64) {
	if len(coordinates) != len(velocities) {
		panic("swarm: coordinate and velocity counts differ")
	}
	s.particles = make([]Particle, 0, len(coordinates))
	for i := range coordinates {
		goal := s.objective.Evaluate(coordinates[i])
		s.particles = append(s.particles, newParticle(coordinates[i], velocities[i], goal))
	}
	s.renewRecords()
}

// Len returns the particle count.
func (s *Swarm) Len() int { return len(s.particles) }

// At returns the particle at index i.
func (s *Swarm) At(i int) *Particle { return &s.particles[i] }

// Objective returns the swarm's objective.
func (s *Swarm) Objective() optimization.Objective[[]float64] { return s.objective }

// Best returns the best solution found over the whole run, or nil before
// any particle scored a finite goal.
func (s *Swarm) Best() *optimization.Solution[[]float64] { return s.best }

// Worst returns the worst solution found over the whole run.
func (s *Swarm) Worst() *optimization.Solution[[]float64] { return s.worst }

// NextIteration advances the iteration counter.
func (s *Swarm) NextIteration() { s.iteration++ }

// Iteration returns the completed iteration count.
func (s *Swarm) Iteration() int { return s.iteration }

// BestSolution returns the best solution found so far, or nil.
func (s *Swarm) BestSolution() *optimization.Solution[[]float64] { return s.best }

// renewRecords folds the particles' personal records into the global ones.
// Personal bests are nil until a particle scores a finite goal, so a
// non-finite goal never becomes the global best; the worst record accepts
// any goal.
func (s *Swarm) renewRecords() {
	for i := range s.particles {
		p := &s.particles[i]
		if pb := p.PersonalBest(); pb != nil {
			if s.best == nil || optimization.CompareGoals(pb.Goal, s.best.Goal) < 0 {
				s.best = pb
			}
		}
		if pw := p.PersonalWorst(); pw != nil {
			if s.worst == nil || optimization.CompareGoals(pw.Goal, s.worst.Goal) > 0 {
				s.worst = pw
			}
		}
	}
}
