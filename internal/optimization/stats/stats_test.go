package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenyay/optlib/internal/optimization"
	"github.com/jenyay/optlib/internal/optimization/stop"
	"github.com/jenyay/optlib/internal/optimization/swarm"
	"github.com/jenyay/optlib/internal/optimization/testfunc"
)

func solution(goal float64, parameters ...float64) *optimization.Solution[[]float64] {
	return &optimization.Solution[[]float64]{Parameters: parameters, Goal: goal}
}

func recordRun(s *Statistics[[]float64], bests ...*optimization.Solution[[]float64]) {
	s.convergence = append(s.convergence, bests)
	if len(bests) > 0 {
		s.results = append(s.results, bests[len(bests)-1])
	} else {
		s.results = append(s.results, nil)
	}
}

func TestMergePreservesOrder(t *testing.T) {
	first := NewStatistics[[]float64]()
	recordRun(first, solution(1.0, 0))

	second := NewStatistics[[]float64]()
	recordRun(second, solution(2.0, 0))
	recordRun(second, solution(3.0, 0))

	first.Merge(second)
	require.Equal(t, 3, first.RunCount())
	assert.Equal(t, 1.0, first.Results()[0].Goal)
	assert.Equal(t, 2.0, first.Results()[1].Goal)
	assert.Equal(t, 3.0, first.Results()[2].Goal)
	assert.Len(t, first.Convergence(), 3)
}

func TestMinIterations(t *testing.T) {
	s := NewStatistics[[]float64]()
	assert.Equal(t, 0, s.MinIterations())

	recordRun(s, solution(3.0, 0), solution(2.0, 0), solution(1.0, 0))
	recordRun(s, solution(5.0, 0), solution(4.0, 0))
	assert.Equal(t, 2, s.MinIterations())
}

func TestAverageConvergence(t *testing.T) {
	s := NewStatistics[[]float64]()
	recordRun(s, solution(4.0, 0), solution(2.0, 0), solution(1.0, 0))
	recordRun(s, nil, solution(6.0, 0))

	averaged := s.AverageConvergence()
	require.Len(t, averaged, 2, "truncated to the shortest run")

	// First index: only the first run has a solution.
	require.NotNil(t, averaged[0])
	assert.InDelta(t, 4.0, *averaged[0], 1e-12)

	require.NotNil(t, averaged[1])
	assert.InDelta(t, 4.0, *averaged[1], 1e-12)
}

func TestAverageConvergenceAllNilIndex(t *testing.T) {
	s := NewStatistics[[]float64]()
	recordRun(s, nil, solution(2.0, 0))
	recordRun(s, nil, solution(4.0, 0))

	averaged := s.AverageConvergence()
	require.Len(t, averaged, 2)
	assert.Nil(t, averaged[0])
	require.NotNil(t, averaged[1])
	assert.InDelta(t, 3.0, *averaged[1], 1e-12)
}

func TestSuccessRate(t *testing.T) {
	s := NewStatistics[[]float64]()
	_, ok := s.SuccessRate(GoalWithin[[]float64](0, 1.0))
	assert.False(t, ok, "no runs recorded")

	recordRun(s, solution(0.5, 0))
	recordRun(s, solution(10.0, 0))
	recordRun(s)

	rate, ok := s.SuccessRate(GoalWithin[[]float64](0, 1.0))
	require.True(t, ok)
	assert.InDelta(t, 1.0/3.0, rate, 1e-12, "failed runs count against the rate")
}

func TestSolutionWithin(t *testing.T) {
	predicate := SolutionWithin([]float64{1, 2}, 0.1)

	assert.True(t, predicate(solution(0, 1.05, 1.95)))
	assert.False(t, predicate(solution(0, 1.5, 2.0)))
	assert.False(t, predicate(solution(0, 1.0)), "dimension mismatch fails")
}

func TestAverageAndStdDevGoal(t *testing.T) {
	s := NewStatistics[[]float64]()
	_, ok := s.AverageGoal()
	assert.False(t, ok)

	recordRun(s, solution(2.0, 0))
	_, ok = s.StdDevGoal()
	assert.False(t, ok, "standard deviation needs two solutions")

	recordRun(s, solution(4.0, 0))
	recordRun(s)

	average, ok := s.AverageGoal()
	require.True(t, ok)
	assert.InDelta(t, 3.0, average, 1e-12, "failed runs are excluded")

	stddev, ok := s.StdDevGoal()
	require.True(t, ok)
	assert.InDelta(t, 1.4142135, stddev, 1e-6)
}

func TestRunLoggerRecordsRuns(t *testing.T) {
	statistics := NewStatistics[[]float64]()
	logger := NewRunLogger(statistics)

	state := &staticState{best: solution(1.0, 0), iteration: 1}
	logger.Start(state)
	logger.NextIteration(state)
	state.best = solution(0.5, 0)
	logger.NextIteration(state)
	logger.Finish(state)

	require.Equal(t, 1, statistics.RunCount())
	assert.Equal(t, 0.5, statistics.Results()[0].Goal)
	require.Len(t, statistics.Convergence()[0], 2)
	assert.Equal(t, 1.0, statistics.Convergence()[0][0].Goal)
}

type staticState struct {
	best      *optimization.Solution[[]float64]
	iteration int
}

func (s *staticState) BestSolution() *optimization.Solution[[]float64] { return s.best }
func (s *staticState) Iteration() int                                  { return s.iteration }

func TestParallelRunsAllTrials(t *testing.T) {
	const (
		trials  = 12
		workers = 4
	)

	statistics := Parallel(trials, workers, func(worker int, s *Statistics[[]float64]) Runner[[]float64] {
		rng := optimization.NewRand(int64(worker) + 1)
		intervals := optimization.UniformIntervals(2, -10.0, 10.0)

		optimizer := swarm.NewParticleSwarmOptimizer(
			optimization.ObjectiveFunc[[]float64](testfunc.Paraboloid),
			stop.NewMaxIterations[[]float64](60),
			swarm.NewRandomCoordinatesInitializer(40, intervals, rng),
			swarm.NewZeroVelocityInitializer(40, 2),
			swarm.NewInertiaVelocityCalculator(swarm.NewConstInertia(0.7), 1.5, 1.5, rng),
			[]swarm.PostVelocityCalc{swarm.NewMaxVelocityAbs(4.0)},
			[]swarm.PostMove{swarm.NewMoveToBoundary(intervals)},
		)
		optimizer.SetLoggers([]optimization.Logger[[]float64]{NewRunLogger(s)})
		return optimizer
	})

	require.Equal(t, trials, statistics.RunCount())
	assert.Len(t, statistics.Convergence(), trials)
	for _, row := range statistics.Convergence() {
		assert.Len(t, row, 60)
	}

	rate, ok := statistics.SuccessRate(SolutionWithin([]float64{1, 2}, 0.5))
	require.True(t, ok)
	assert.Greater(t, rate, 0.5)
}

func TestParallelEdgeCases(t *testing.T) {
	empty := Parallel(0, 4, func(int, *Statistics[[]float64]) Runner[[]float64] {
		t.Fatal("factory must not run without trials")
		return nil
	})
	assert.Equal(t, 0, empty.RunCount())

	// More workers than trials still runs every trial exactly once.
	statistics := Parallel(2, 8, func(worker int, s *Statistics[[]float64]) Runner[[]float64] {
		rng := optimization.NewRand(int64(worker) + 1)
		intervals := optimization.UniformIntervals(1, -1.0, 1.0)
		optimizer := swarm.NewParticleSwarmOptimizer(
			optimization.ObjectiveFunc[[]float64](testfunc.Paraboloid),
			stop.NewMaxIterations[[]float64](1),
			swarm.NewRandomCoordinatesInitializer(5, intervals, rng),
			swarm.NewZeroVelocityInitializer(5, 1),
			swarm.NewClassicVelocityCalculator(1.0, 1.0, rng),
			nil,
			nil,
		)
		optimizer.SetLoggers([]optimization.Logger[[]float64]{NewRunLogger(s)})
		return optimizer
	})
	assert.Equal(t, 2, statistics.RunCount())
}
