package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/stockflow/internal/config"
	"github.com/san-kum/stockflow/internal/metrics"
	"github.com/san-kum/stockflow/internal/sysdyn"
)

type Experiment struct {
	ID        string
	def       *config.Definition
	registry  *Registry
	logger    *slog.Logger
	workers   int
	observers []sysdyn.Observer
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func WithWorkers(n int) Option {
	return func(e *Experiment) { e.workers = n }
}

// WithObserver attaches an extra observer to every run.
func WithObserver(o sysdyn.Observer) Option {
	return func(e *Experiment) { e.observers = append(e.observers, o) }
}

func New(def *config.Definition, reg *Registry, opts ...Option) *Experiment {
	e := &Experiment{
		ID:       uuid.NewString(),
		def:      def,
		registry: reg,
		logger:   slog.Default(),
		workers:  1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Experiment) Definition() *config.Definition { return e.def }

// Result is the outcome of a single run.
type Result struct {
	ID         string
	Model      string
	Run        config.RunConfig
	Trajectory *sysdyn.Trajectory
	Final      map[string]float64
	Metrics    map[string]float64
	Steps      int
	Elapsed    time.Duration
}

// Run validates the definition, builds a fresh model and executes it.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := config.Validate(e.def); err != nil {
		return nil, err
	}

	m, err := Build(e.def, e.registry,
		sysdyn.WithLogger(e.logger),
		sysdyn.WithWorkers(e.workers),
	)
	if err != nil {
		return nil, err
	}

	rec := sysdyn.NewRecorder(m.StockNames())
	m.AddObserver(rec)
	ms := metrics.Default()
	for _, mt := range ms {
		m.AddObserver(mt)
	}
	for _, o := range e.observers {
		m.AddObserver(o)
	}

	run := e.def.Run
	e.logger.Info("running model", "id", e.ID, "model", e.def.Name,
		"start", run.Start, "end", run.End, "step", run.Step)

	start := time.Now()
	if err := m.Execute(ctx, run.Start, run.End, run.Step); err != nil {
		return nil, fmt.Errorf("running %s: %w", e.def.Name, err)
	}
	elapsed := time.Since(start)

	traj := rec.Trajectory()
	result := &Result{
		ID:         e.ID,
		Model:      e.def.Name,
		Run:        run,
		Trajectory: traj,
		Final:      make(map[string]float64, len(traj.Names)),
		Metrics:    make(map[string]float64, len(ms)),
		Steps:      len(traj.Times) - 1,
		Elapsed:    elapsed,
	}
	for _, s := range m.Stocks() {
		result.Final[s.Name()] = s.Value()
	}
	for _, mt := range ms {
		result.Metrics[mt.Name()] = mt.Value()
	}

	e.logger.Info("run complete", "id", e.ID, "steps", result.Steps, "elapsed", elapsed)
	return result, nil
}
