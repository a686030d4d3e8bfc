// Package server exposes the optimization engines over HTTP. An experiment
// is a batch of repeated optimizer runs on a benchmark function; the server
// starts experiments asynchronously, aggregates their statistics and serves
// progress and results.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/jenyay/optlib/internal/config"
	"github.com/jenyay/optlib/internal/errors"
	"github.com/jenyay/optlib/internal/logging"
	"github.com/jenyay/optlib/internal/optimization"
	"github.com/jenyay/optlib/internal/optimization/stats"
	"github.com/jenyay/optlib/internal/optimization/testfunc"
)

// Experiment statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ExperimentRequest is the body of POST /api/v1/experiments. Zero values
// fall back to the server's configured defaults.
type ExperimentRequest struct {
	// Algorithm is "genetic" or "swarm".
	Algorithm string `json:"algorithm"`
	// Function names a benchmark: paraboloid, schwefel, rastrigin or
	// rosenbrock.
	Function  string `json:"function"`
	Dimension int    `json:"dimension"`

	Trials         int   `json:"trials,omitempty"`
	Workers        int   `json:"workers,omitempty"`
	MaxIterations  int   `json:"max_iterations,omitempty"`
	PopulationSize int   `json:"population_size,omitempty"`
	Seed           int64 `json:"seed,omitempty"`

	// GoalThreshold marks a run successful when its goal falls to the
	// threshold or below. Without it the summary carries no success rate.
	GoalThreshold *float64 `json:"goal_threshold,omitempty"`
}

// Summary aggregates a finished experiment.
type Summary struct {
	Runs           int        `json:"runs"`
	MinIterations  int        `json:"min_iterations"`
	BestGoal       *float64   `json:"best_goal,omitempty"`
	BestParameters []float64  `json:"best_parameters,omitempty"`
	AverageGoal    *float64   `json:"average_goal,omitempty"`
	StdDevGoal     *float64   `json:"stddev_goal,omitempty"`
	SuccessRate    *float64   `json:"success_rate,omitempty"`
	Convergence    []*float64 `json:"convergence,omitempty"`
}

// Experiment tracks one batch of runs from submission to completion.
type Experiment struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Request   ExperimentRequest `json:"request"`
	StartTime time.Time         `json:"start_time"`
	EndTime   *time.Time        `json:"end_time,omitempty"`
	Summary   *Summary          `json:"summary,omitempty"`

	cancelled *atomic.Bool
}

// cancelCondition lets the HTTP layer stop an experiment's runs early.
type cancelCondition struct {
	flag *atomic.Bool
}

func (c cancelCondition) CanStop(optimization.State[[]float64]) bool {
	return c.flag.Load()
}

type metrics struct {
	started   prometheus.Counter
	completed *prometheus.CounterVec
	duration  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		started: factory.NewCounter(prometheus.CounterOpts{
			Name: "optlib_experiments_started_total",
			Help: "Experiments accepted for execution.",
		}),
		completed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "optlib_experiments_finished_total",
			Help: "Experiments finished, labeled by terminal status.",
		}, []string{"status"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "optlib_experiment_duration_seconds",
			Help:    "Wall-clock duration of whole experiments.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
}

// Server runs experiments and serves their state.
type Server struct {
	cfg     *config.Config
	logger  *logging.Logger
	zlog    *zap.Logger
	metrics *metrics

	mu          sync.RWMutex
	experiments map[string]*Experiment

	wg sync.WaitGroup
}

// NewServer creates a server. The registerer receives the experiment
// metrics; pass a fresh prometheus.NewRegistry in tests.
func NewServer(cfg *config.Config, logger *logging.Logger, reg prometheus.Registerer) *Server {
	return &Server{
		cfg:         cfg,
		logger:      logger,
		zlog:        logging.NewZapLogger(logger),
		metrics:     newMetrics(reg),
		experiments: make(map[string]*Experiment),
	}
}

// RegisterRoutes mounts the experiments API.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/experiments", s.handleCreate)
		r.Get("/experiments", s.handleList)
		r.Get("/experiments/{id}", s.handleGet)
		r.Delete("/experiments/{id}", s.handleCancel)
	})
}

// Close cancels running experiments and waits for them to drain.
func (s *Server) Close() error {
	s.mu.Lock()
	for _, exp := range s.experiments {
		exp.cancelled.Store(true)
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req ExperimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, errors.Invalidf("server", "create experiment", "malformed request body: %v", err))
		return
	}

	s.applyDefaults(&req)
	if err := validateRequest(&req); err != nil {
		s.respondError(w, err)
		return
	}

	exp := &Experiment{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Request:   req,
		StartTime: time.Now().UTC(),
		cancelled: new(atomic.Bool),
	}

	s.mu.Lock()
	s.experiments[exp.ID] = exp
	s.mu.Unlock()

	s.metrics.started.Inc()
	s.logger.Info("experiment accepted", map[string]interface{}{
		"experiment_id": exp.ID,
		"algorithm":     req.Algorithm,
		"function":      req.Function,
		"trials":        req.Trials,
	})

	s.wg.Add(1)
	go s.runExperiment(exp)

	s.respondJSON(w, http.StatusAccepted, s.snapshot(exp))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	list := make([]Experiment, 0, len(s.experiments))
	for _, exp := range s.experiments {
		list = append(list, *exp)
	}
	s.mu.RUnlock()

	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	exp, ok := s.experiments[id]
	var snap Experiment
	if ok {
		snap = *exp
	}
	s.mu.RUnlock()

	if !ok {
		s.respondError(w, errors.NotFoundf("server", "get experiment", "no experiment %q", id))
		return
	}
	s.respondJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	exp, ok := s.experiments[id]
	if ok {
		exp.cancelled.Store(true)
	}
	s.mu.Unlock()

	if !ok {
		s.respondError(w, errors.NotFoundf("server", "cancel experiment", "no experiment %q", id))
		return
	}

	s.logger.Info("experiment cancellation requested", map[string]interface{}{
		"experiment_id": id,
	})
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cancellation requested"})
}

func (s *Server) applyDefaults(req *ExperimentRequest) {
	if req.Trials <= 0 {
		req.Trials = s.cfg.Optimization.Trials
	}
	if req.Workers <= 0 {
		req.Workers = s.cfg.Optimization.Workers
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = s.cfg.Optimization.MaxIterations
	}
	if req.PopulationSize <= 0 {
		req.PopulationSize = s.cfg.Optimization.PopulationSize
	}
	if req.Dimension <= 0 {
		req.Dimension = 2
	}
}

func validateRequest(req *ExperimentRequest) error {
	if req.Algorithm != AlgorithmGenetic && req.Algorithm != AlgorithmSwarm {
		return errors.Invalidf("server", "create experiment", "unknown algorithm %q", req.Algorithm)
	}
	if _, ok := testfunc.ByName(req.Function); !ok {
		return errors.Invalidf("server", "create experiment", "unknown function %q", req.Function)
	}
	return nil
}

// runExperiment executes the batch and publishes the summary.
func (s *Server) runExperiment(exp *Experiment) {
	defer s.wg.Done()

	s.setStatus(exp, StatusRunning)
	start := time.Now()

	statistics := stats.Parallel(exp.Request.Trials, exp.Request.Workers,
		func(worker int, st *stats.Statistics[[]float64]) stats.Runner[[]float64] {
			return buildRunner(&exp.Request, worker, st, cancelCondition{flag: exp.cancelled})
		})

	summary := summarize(statistics, exp.Request.GoalThreshold)
	elapsed := time.Since(start)

	status := StatusCompleted
	if exp.cancelled.Load() {
		status = StatusCancelled
	}

	now := time.Now().UTC()
	s.mu.Lock()
	exp.Status = status
	exp.EndTime = &now
	exp.Summary = summary
	s.mu.Unlock()

	s.metrics.completed.WithLabelValues(status).Inc()
	s.metrics.duration.Observe(elapsed.Seconds())

	fields := []zap.Field{
		zap.String("experiment_id", exp.ID),
		zap.String("status", status),
		zap.Int("runs", summary.Runs),
		zap.Duration("elapsed", elapsed),
	}
	if summary.BestGoal != nil {
		fields = append(fields, zap.Float64("best_goal", *summary.BestGoal))
	}
	s.zlog.Info("experiment finished", fields...)
}

func (s *Server) setStatus(exp *Experiment, status string) {
	s.mu.Lock()
	exp.Status = status
	s.mu.Unlock()
}

func (s *Server) snapshot(exp *Experiment) Experiment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *exp
}

func summarize(statistics *stats.Statistics[[]float64], threshold *float64) *Summary {
	summary := &Summary{
		Runs:          statistics.RunCount(),
		MinIterations: statistics.MinIterations(),
		Convergence:   statistics.AverageConvergence(),
	}

	var best *optimization.Solution[[]float64]
	for _, result := range statistics.Results() {
		if result == nil {
			continue
		}
		if best == nil || optimization.CompareGoals(result.Goal, best.Goal) < 0 {
			best = result
		}
	}
	if best != nil {
		summary.BestGoal = &best.Goal
		summary.BestParameters = best.Parameters
	}

	if average, ok := statistics.AverageGoal(); ok {
		summary.AverageGoal = &average
	}
	if stddev, ok := statistics.StdDevGoal(); ok {
		summary.StdDevGoal = &stddev
	}
	if threshold != nil {
		reached := func(solution *optimization.Solution[[]float64]) bool {
			return optimization.CompareGoals(solution.Goal, *threshold) <= 0
		}
		if rate, ok := statistics.SuccessRate(reached); ok {
			summary.SuccessRate = &rate
		}
	}
	return summary
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encoding failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.KindOf(err) {
	case errors.Invalid:
		status = http.StatusBadRequest
	case errors.NotFound:
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{"error": err.Error()})
	} else {
		s.logger.Warn("request rejected", map[string]interface{}{"error": err.Error()})
	}
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
