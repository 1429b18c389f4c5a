package sysdyn

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Model owns stocks and flows and advances them in fixed time steps.
type Model struct {
	name      string
	stocks    []*Stock
	index     map[*Stock]int
	flows     []*Flow
	time      float64
	workers   int
	observers []Observer
	logger    *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithWorkers evaluates flows on up to n goroutines per step.
func WithWorkers(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(m *Model) { m.AddObserver(o) }
}

func New(name string, opts ...Option) *Model {
	m := &Model{
		name:      name,
		stocks:    make([]*Stock, 0),
		index:     make(map[*Stock]int),
		flows:     make([]*Flow, 0),
		workers:   1,
		observers: make([]Observer, 0),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Name() string        { return m.name }
func (m *Model) SetName(name string) { m.name = name }
func (m *Model) Time() float64       { return m.time }
func (m *Model) SetTime(t float64)   { m.time = t }

func (m *Model) AddObserver(o Observer) { m.observers = append(m.observers, o) }

// AddStock registers s. Registering the same stock twice is a no-op.
func (m *Model) AddStock(s *Stock) {
	if s == nil {
		return
	}
	if _, ok := m.index[s]; ok {
		return
	}
	m.index[s] = len(m.stocks)
	m.stocks = append(m.stocks, s)
}

func (m *Model) AddFlow(f *Flow) {
	if f == nil {
		return
	}
	m.flows = append(m.flows, f)
}

// CreateStock creates and registers a new stock.
func (m *Model) CreateStock(name string, value float64) *Stock {
	s := NewStock(name, value)
	m.AddStock(s)
	return s
}

// CreateFlow creates and registers a new flow.
func (m *Model) CreateFlow(name string, eq Equation, source, destination *Stock) *Flow {
	f := NewFlow(name, eq, source, destination)
	m.AddFlow(f)
	return f
}

// RemoveStock unregisters s and reports whether it was registered. Flows
// still pointing at s will fail Validate until they are rebound.
func (m *Model) RemoveStock(s *Stock) bool {
	i, ok := m.index[s]
	if !ok {
		return false
	}
	m.stocks = append(m.stocks[:i], m.stocks[i+1:]...)
	delete(m.index, s)
	for j := i; j < len(m.stocks); j++ {
		m.index[m.stocks[j]] = j
	}
	return true
}

func (m *Model) RemoveFlow(f *Flow) bool {
	for i, g := range m.flows {
		if g == f {
			m.flows = append(m.flows[:i], m.flows[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Model) Stocks() []*Stock {
	out := make([]*Stock, len(m.stocks))
	copy(out, m.stocks)
	return out
}

func (m *Model) Flows() []*Flow {
	out := make([]*Flow, len(m.flows))
	copy(out, m.flows)
	return out
}

// Stock returns the first registered stock with the given name.
func (m *Model) Stock(name string) (*Stock, bool) {
	for _, s := range m.stocks {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// Flow returns the first registered flow with the given name.
func (m *Model) Flow(name string) (*Flow, bool) {
	for _, f := range m.flows {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// StockNames lists stock names in registration order.
func (m *Model) StockNames() []string {
	names := make([]string, len(m.stocks))
	for i, s := range m.stocks {
		names[i] = s.name
	}
	return names
}

// Values snapshots the stock values in registration order.
func (m *Model) Values() State {
	v := make(State, len(m.stocks))
	for i, s := range m.stocks {
		v[i] = s.value
	}
	return v
}

// Total returns the sum of all stock values.
func (m *Model) Total() float64 {
	return m.Values().Sum()
}

// Validate checks that every connected flow points at registered stocks.
func (m *Model) Validate() error {
	for _, f := range m.flows {
		if !f.Connected() {
			continue
		}
		if _, ok := m.index[f.source]; !ok {
			return &UnknownStockError{Flow: f.name, Stock: f.source.name}
		}
		if _, ok := m.index[f.destination]; !ok {
			return &UnknownStockError{Flow: f.name, Stock: f.destination.name}
		}
	}
	return nil
}

// Deltas evaluates every connected flow against the current values and
// returns the per-stock change one step would commit. Nothing is mutated.
func (m *Model) Deltas() (State, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m.evaluate(), nil
}

// Step performs one synchronous step of size dt at the current time.
func (m *Model) Step(ctx context.Context, dt float64) error {
	if !validStep(dt) {
		return fmt.Errorf("%w, got %v", ErrInvalidTimeStep, dt)
	}
	if err := m.Validate(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
	default:
	}
	m.commit(m.evaluate())
	m.time += dt
	m.notify(m.time)
	return nil
}

// Execute runs the model from start to end in increments of step. The first
// step lands at start+step; steps continue while the next time does not
// exceed end. Stock values carry over between calls, time restarts at start.
func (m *Model) Execute(ctx context.Context, start, end, step float64) error {
	if !validStep(step) {
		return fmt.Errorf("%w, got %v", ErrInvalidTimeStep, step)
	}
	if end < start {
		return fmt.Errorf("%w: start=%v end=%v", ErrInvalidTimeRange, start, end)
	}
	if err := m.Validate(); err != nil {
		return err
	}

	m.time = start
	m.logger.Debug("run starting",
		"model", m.name, "start", start, "end", end, "step", step,
		"stocks", len(m.stocks), "flows", len(m.flows), "workers", m.workers)
	m.logDisconnected()

	values := m.Values()
	for _, o := range m.observers {
		if ro, ok := o.(RunObserver); ok {
			ro.OnStart(m.time, values)
		}
	}

	tol := step * 1e-9
	steps := 0
	for k := 1; start+float64(k)*step <= end+tol; k++ {
		select {
		case <-ctx.Done():
			m.logger.Debug("run canceled", "model", m.name, "steps", steps, "time", m.time)
			return &StepError{Step: k, Time: m.time, Wrapped: fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())}
		default:
		}

		m.commit(m.evaluate())
		m.time = start + float64(k)*step
		steps++
		m.notify(m.time)
	}

	values = m.Values()
	for _, o := range m.observers {
		if ro, ok := o.(RunObserver); ok {
			ro.OnFinish(m.time, values)
		}
	}
	m.logger.Debug("run finished", "model", m.name, "steps", steps, "time", m.time)
	return nil
}

// evaluate is the read phase: it never writes to a stock.
func (m *Model) evaluate() State {
	n := len(m.flows)
	if m.workers <= 1 || n < 2*m.workers {
		acc := make(State, len(m.stocks))
		m.accumulate(acc, m.flows)
		return acc
	}

	partials := make([]State, 0, m.workers)
	chunks := make([][]*Flow, 0, m.workers)
	chunkSize := (n + m.workers - 1) / m.workers
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		chunks = append(chunks, m.flows[start:end])
		partials = append(partials, make(State, len(m.stocks)))
	}

	ParallelFor(len(chunks), func(i int) {
		m.accumulate(partials[i], chunks[i])
	})

	acc := make(State, len(m.stocks))
	for _, p := range partials {
		for i, d := range p {
			acc[i] += d
		}
	}
	return acc
}

func (m *Model) accumulate(acc State, flows []*Flow) {
	for _, f := range flows {
		// A self loop moves nothing; skipping it keeps the net exactly zero.
		if !f.Connected() || f.source == f.destination {
			continue
		}
		rate := f.Rate()
		acc[m.index[f.source]] -= rate
		acc[m.index[f.destination]] += rate
	}
}

// commit is the write phase.
func (m *Model) commit(acc State) {
	for i, s := range m.stocks {
		s.value += acc[i]
	}
}

func (m *Model) notify(t float64) {
	if len(m.observers) == 0 {
		return
	}
	values := m.Values()
	for _, o := range m.observers {
		o.OnStep(t, values)
	}
}

func (m *Model) logDisconnected() {
	for _, f := range m.flows {
		if !f.Connected() {
			m.logger.Debug("skipping disconnected flow", "model", m.name, "flow", f.name)
		}
	}
}

func validStep(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 0) && !math.IsNaN(dt)
}
