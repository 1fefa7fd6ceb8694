package sim

import "github.com/san-kum/plife/internal/particle"

// Stepper advances a population in place by one tick.
type Stepper interface {
	Step(pop particle.Population, dt float64)
}

type Metric interface {
	Name() string
	Observe(pop particle.Population, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(pop particle.Population, t float64)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(pop particle.Population, t float64)

func (f ObserverFunc) OnStep(pop particle.Population, t float64) { f(pop, t) }

type Config struct {
	Dt    float64
	Steps int
	// SampleEvery records a snapshot and metric sample every N ticks. Zero
	// records only the initial and final states.
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Steps:         1000,
		SampleEvery:   10,
		ValidateState: true,
	}
}

type Snapshot struct {
	Step       int
	Time       float64
	Population particle.Population
}

type Result struct {
	Snapshots []Snapshot
	// Series holds one value per snapshot for every metric.
	Series     map[string][]float64
	Metrics    map[string]float64
	StepsTaken int
	Final      particle.Population
}

// Times returns the time of every snapshot.
func (r *Result) Times() []float64 {
	times := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		times[i] = s.Time
	}
	return times
}
