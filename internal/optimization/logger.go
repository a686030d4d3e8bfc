package optimization

import (
	"fmt"
	"io"
	"time"

	"github.com/jenyay/optlib/internal/logging"
)

// Logger observes run boundaries and per-iteration progress. It is
// side-effect only: no engine state depends on it. Embed BaseLogger to
// implement any subset of the callbacks.
type Logger[T any] interface {
	// Start fires once after the population or swarm has been initialized.
	Start(state State[T])
	// Resume fires before the generational loop, on fresh and resumed runs.
	Resume(state State[T])
	// NextIteration fires at the end of every completed iteration.
	NextIteration(state State[T])
	// Finish fires once the stop condition ends the run.
	Finish(state State[T])
}

// BaseLogger is a no-op Logger for embedding.
type BaseLogger[T any] struct{}

func (BaseLogger[T]) Start(State[T])         {}
func (BaseLogger[T]) Resume(State[T])        {}
func (BaseLogger[T]) NextIteration(State[T]) {}
func (BaseLogger[T]) Finish(State[T])        {}

// VerboseLogger writes the iteration number, the best point and its goal
// value after every iteration.
type VerboseLogger struct {
	BaseLogger[[]float64]

	w         io.Writer
	precision int
}

// NewVerboseLogger creates a VerboseLogger writing to w with the given
// number of digits after the decimal point.
func NewVerboseLogger(w io.Writer, precision int) *VerboseLogger {
	return &VerboseLogger{w: w, precision: precision}
}

func (l *VerboseLogger) NextIteration(state State[[]float64]) {
	best := state.BestSolution()
	if best == nil {
		return
	}
	fmt.Fprintf(l.w, "%-8d", state.Iteration())
	for _, x := range best.Parameters {
		fmt.Fprintf(l.w, "  %-20.*f", l.precision, x)
	}
	fmt.Fprintf(l.w, "  %20.*f\n", l.precision, best.Goal)
}

// ResultOnlyLogger writes the final solution and iteration count once the
// run finishes.
type ResultOnlyLogger struct {
	BaseLogger[[]float64]

	w         io.Writer
	precision int
}

// NewResultOnlyLogger creates a ResultOnlyLogger writing to w.
func NewResultOnlyLogger(w io.Writer, precision int) *ResultOnlyLogger {
	return &ResultOnlyLogger{w: w, precision: precision}
}

func (l *ResultOnlyLogger) Finish(state State[[]float64]) {
	best := state.BestSolution()
	if best == nil {
		fmt.Fprintln(l.w, "Solution not found")
	} else {
		fmt.Fprintln(l.w, "Solution:")
		for _, x := range best.Parameters {
			fmt.Fprintf(l.w, "  %.*f\n", l.precision, x)
		}
		fmt.Fprintf(l.w, "\nGoal: %.*f\n", l.precision, best.Goal)
	}
	fmt.Fprintf(l.w, "Iterations count: %d\n", state.Iteration())
}

// TimeLogger reports the wall-clock duration of a run.
type TimeLogger[T any] struct {
	BaseLogger[T]

	w     io.Writer
	start time.Time
}

// NewTimeLogger creates a TimeLogger writing to w.
func NewTimeLogger[T any](w io.Writer) *TimeLogger[T] {
	return &TimeLogger[T]{w: w}
}

func (l *TimeLogger[T]) Resume(State[T]) { l.start = time.Now() }

func (l *TimeLogger[T]) Finish(State[T]) {
	fmt.Fprintf(l.w, "Time elapsed: %d ms\n", time.Since(l.start).Milliseconds())
}

// ProgressLogger forwards run progress to the structured service logger.
// The every parameter throttles per-iteration records; 0 disables them.
type ProgressLogger[T any] struct {
	log   *logging.Logger
	every int
}

// NewProgressLogger creates a ProgressLogger emitting through log.
func NewProgressLogger[T any](log *logging.Logger, every int) *ProgressLogger[T] {
	return &ProgressLogger[T]{log: log, every: every}
}

func (l *ProgressLogger[T]) Start(state State[T]) {
	l.log.Info("optimization started")
}

func (l *ProgressLogger[T]) Resume(state State[T]) {
	if state.Iteration() > 0 {
		l.log.Info("optimization resumed", map[string]interface{}{
			"iteration": state.Iteration(),
		})
	}
}

func (l *ProgressLogger[T]) NextIteration(state State[T]) {
	if l.every <= 0 || state.Iteration()%l.every != 0 {
		return
	}
	fields := map[string]interface{}{"iteration": state.Iteration()}
	if best := state.BestSolution(); best != nil {
		fields["best_goal"] = best.Goal
	}
	l.log.Debug("iteration finished", fields)
}

func (l *ProgressLogger[T]) Finish(state State[T]) {
	fields := map[string]interface{}{"iterations": state.Iteration()}
	if best := state.BestSolution(); best != nil {
		fields["best_goal"] = best.Goal
	} else {
		fields["failed"] = true
	}
	l.log.Info("optimization finished", fields)
}
