package metrics

import (
	"github.com/san-kum/plife/internal/particle"
)

// KineticEnergy reports Σ ½|v|² (unit mass) at the latest observation and
// keeps the peak seen since the last reset.
type KineticEnergy struct {
	name    string
	current float64
	peak    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(pop particle.Population, t float64) {
	e.current = Kinetic(pop)
	if e.samples == 0 || e.current > e.peak {
		e.peak = e.current
	}
	e.samples++
}

func (e *KineticEnergy) Value() float64 { return e.current }
func (e *KineticEnergy) Peak() float64  { return e.peak }

func (e *KineticEnergy) Reset() {
	e.current = 0
	e.peak = 0
	e.samples = 0
}

// Kinetic returns the total kinetic energy of pop with unit masses.
func Kinetic(pop particle.Population) float64 {
	ke := 0.0
	for i := range pop {
		v := pop[i].Vel
		ke += 0.5 * (v.X*v.X + v.Y*v.Y)
	}
	return ke
}

// Defaults returns a fresh instance of every population metric.
func Defaults(stabilityRadius float64) []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewMinSeparation(),
		NewSpread(),
		NewStability(stabilityRadius),
	}
}

// Metric mirrors sim.Metric so this package stays independent of the driver.
type Metric interface {
	Name() string
	Observe(pop particle.Population, t float64)
	Value() float64
	Reset()
}
