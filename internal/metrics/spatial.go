package metrics

import (
	"math"

	"github.com/san-kum/plife/internal/particle"
)

// MinSeparation reports the smallest pairwise distance at the latest
// observation. Fewer than two particles report 0.
type MinSeparation struct {
	name    string
	current float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{name: "min_separation"}
}

func (m *MinSeparation) Name() string { return m.name }

func (m *MinSeparation) Observe(pop particle.Population, t float64) {
	m.current = Closest(pop)
}

func (m *MinSeparation) Value() float64 { return m.current }
func (m *MinSeparation) Reset()         { m.current = 0 }

// Closest returns the smallest distance between any two particles, or 0.
func Closest(pop particle.Population) float64 {
	if len(pop) < 2 {
		return 0
	}
	best := math.Inf(1)
	for i := range pop {
		for j := i + 1; j < len(pop); j++ {
			if d := pop[i].Pos.Dist(pop[j].Pos); d < best {
				best = d
			}
		}
	}
	return best
}

// Spread reports the RMS distance of particles from their centroid.
type Spread struct {
	name    string
	current float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(pop particle.Population, t float64) {
	if len(pop) == 0 {
		s.current = 0
		return
	}
	c := pop.Centroid()
	sum := 0.0
	for i := range pop {
		d := pop[i].Pos.Sub(c)
		sum += d.X*d.X + d.Y*d.Y
	}
	s.current = math.Sqrt(sum / float64(len(pop)))
}

func (s *Spread) Value() float64 { return s.current }
func (s *Spread) Reset()         { s.current = 0 }
