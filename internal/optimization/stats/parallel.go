package stats

import (
	"sync"

	"github.com/jenyay/optlib/internal/optimization"
)

// Runner is one optimizer run. Both optimizers satisfy it.
type Runner[T any] interface {
	FindMin() *optimization.Solution[T]
}

// Parallel performs trials optimizer runs spread over workers goroutines and
// returns the merged statistics. The factory is called once per worker with
// the worker's index and a private Statistics; it must build a runner whose
// loggers record into that Statistics, typically through a RunLogger, and may
// use the index to derive distinct random seeds. Worker results merge in
// worker index order, so the outcome is deterministic for deterministic
// runners.
func Parallel[T any](trials, workers int, factory func(worker int, s *Statistics[T]) Runner[T]) *Statistics[T] {
	if trials <= 0 {
		return NewStatistics[T]()
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}

	perWorker := make([]*Statistics[T], workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		share := trials / workers
		if w < trials%workers {
			share++
		}

		statistics := NewStatistics[T]()
		perWorker[w] = statistics

		wg.Add(1)
		go func(worker, share int, statistics *Statistics[T]) {
			defer wg.Done()
			runner := factory(worker, statistics)
			for i := 0; i < share; i++ {
				runner.FindMin()
			}
		}(w, share, statistics)
	}
	wg.Wait()

	merged := NewStatistics[T]()
	for _, statistics := range perWorker {
		merged.Merge(statistics)
	}
	return merged
}
