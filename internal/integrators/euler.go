package integrators

import (
	"github.com/san-kum/plife/internal/force"
	"github.com/san-kum/plife/internal/particle"
)

// Accumulate sets every particle's acceleration to the net force from all
// other particles, mass normalized to 1. Positions are only read, so the
// result depends on the pre-tick state alone. Coincident pairs are pushed
// apart along X by index order.
func Accumulate(pop particle.Population, m *force.Model) {
	for i := range pop {
		var acc particle.Vec2
		for j := range pop {
			if i == j {
				continue
			}
			acc = acc.Add(m.BetweenOrdered(pop[i], pop[j], i < j))
		}
		pop[i].Acc = acc
	}
}

// Step advances pop by one tick of length dt with semi-implicit Euler:
// a ← net force, v ← v + a·dt, p ← p + v·dt. A zero-length tick is a no-op.
func Step(pop particle.Population, m *force.Model, dt float64) {
	if dt == 0 {
		return
	}
	Accumulate(pop, m)
	for i := range pop {
		p := &pop[i]
		p.Vel = p.Vel.Add(p.Acc.Scale(dt))
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	}
}

type SemiImplicitEuler struct {
	model *force.Model
}

func NewSemiImplicitEuler(m *force.Model) *SemiImplicitEuler {
	return &SemiImplicitEuler{model: m}
}

func (e *SemiImplicitEuler) Name() string        { return "semi-implicit-euler" }
func (e *SemiImplicitEuler) Model() *force.Model { return e.model }

func (e *SemiImplicitEuler) Step(pop particle.Population, dt float64) {
	Step(pop, e.model, dt)
}
