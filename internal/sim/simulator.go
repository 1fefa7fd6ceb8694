package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/emitter"
	"github.com/san-kum/plife/internal/force"
	"github.com/san-kum/plife/internal/integrators"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/particle"
)

// Simulator owns a population and its force model for the lifetime of a run.
// Renderers may read Population between ticks but must not mutate it.
type Simulator struct {
	model     *force.Model
	stepper   Stepper
	initial   particle.Population
	pop       particle.Population
	t         float64
	steps     int
	metrics   []Metric
	observers []Observer
}

func New(model *force.Model, pop particle.Population) *Simulator {
	return &Simulator{
		model:     model,
		stepper:   integrators.NewSemiImplicitEuler(model),
		initial:   pop.Clone(),
		pop:       pop,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

// FromConfig validates cfg, emits its groups with a source seeded from
// cfg.Seed, and returns a simulator at t=0.
func FromConfig(cfg *config.Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := cfg.ForceModel()
	if err != nil {
		return nil, err
	}
	groups, err := cfg.EmitGroups()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	pop, err := emitter.EmitAll(rng, groups, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return New(model, pop), nil
}

// RunConfig derives run settings from a file configuration.
func RunConfig(cfg *config.Config) Config {
	rc := DefaultConfig()
	rc.Dt = cfg.Dt
	rc.Steps = cfg.Steps
	rc.SampleEvery = cfg.SampleEvery
	return rc
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Population() particle.Population { return s.pop }
func (s *Simulator) Model() *force.Model              { return s.model }
func (s *Simulator) Time() float64                    { return s.t }
func (s *Simulator) Steps() int                       { return s.steps }

// Reset restores the emitted population and rewinds the clock.
func (s *Simulator) Reset() {
	copy(s.pop, s.initial)
	s.t = 0
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Tick advances one step of length dt and checks the result for NaN/Inf.
func (s *Simulator) Tick(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be finite and non-negative, got %g", ErrInvalidConfig, dt)
	}
	s.stepper.Step(s.pop, dt)
	s.t += dt
	s.steps++
	if !s.pop.Valid() {
		return &SimulationError{Step: s.steps, Time: s.t, Population: s.pop.Clone(), Wrapped: ErrInvalidState}
	}
	return nil
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	samples := 2
	if cfg.SampleEvery > 0 {
		samples = cfg.Steps/cfg.SampleEvery + 2
	}
	result := &Result{
		Snapshots: make([]Snapshot, 0, samples),
		Series:    make(map[string][]float64, len(s.metrics)),
		Metrics:   make(map[string]float64, len(s.metrics)),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.pop, s.t)
	}
	s.sample(result)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.stepper.Step(s.pop, cfg.Dt)
		s.t += cfg.Dt
		s.steps++
		result.StepsTaken++

		if cfg.ValidateState && !s.pop.Valid() {
			err := &SimulationError{Step: s.steps, Time: s.t, Population: s.pop.Clone(), Wrapped: ErrInvalidState}
			s.finish(result)
			return result, err
		}

		for _, obs := range s.observers {
			obs.OnStep(s.pop, s.t)
		}
		for _, m := range s.metrics {
			m.Observe(s.pop, s.t)
		}

		last := i == cfg.Steps-1
		if last || (cfg.SampleEvery > 0 && result.StepsTaken%cfg.SampleEvery == 0) {
			s.sample(result)
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, cfg.Steps)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrInvalidConfig, cfg.SampleEvery)
	}
	return nil
}

func (s *Simulator) sample(result *Result) {
	result.Snapshots = append(result.Snapshots, Snapshot{
		Step:       s.steps,
		Time:       s.t,
		Population: s.pop.Clone(),
	})
	for _, m := range s.metrics {
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = s.pop.Clone()
}

// DefaultMetrics returns fresh instances of every population metric. The
// stability radius is twice the larger side of the emission region.
func DefaultMetrics(cfg *config.Config) []Metric {
	radius := 2 * float64(max(cfg.Width, cfg.Height))
	out := make([]Metric, 0, 4)
	for _, m := range metrics.Defaults(radius) {
		out = append(out, m)
	}
	return out
}
