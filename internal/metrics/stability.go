package metrics

import (
	"github.com/san-kum/plife/internal/particle"
)

// Stability is the fraction of observations in which the population was
// finite and every particle stayed within radius of the centroid.
type Stability struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(pop particle.Population, t float64) {
	s.samples++
	if !pop.Valid() {
		s.violations++
		return
	}
	c := pop.Centroid()
	for i := range pop {
		if pop[i].Pos.Dist(c) > s.radius {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
