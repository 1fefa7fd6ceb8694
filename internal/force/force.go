package force

import (
	"fmt"
	"math"

	"github.com/san-kum/plife/internal/particle"
)

const (
	DefaultMinDistance  = 5.0
	DefaultPeakDistance = 20.0
	DefaultMaxForce     = 100.0
)

// Params are the distance constants of the force law.
type Params struct {
	// MinDistance is the radius of the near-field repulsion clamp.
	MinDistance float64
	// PeakDistance is where the tent response reaches param*MaxForce.
	PeakDistance float64
	MaxForce     float64
}

func DefaultParams() Params {
	return Params{
		MinDistance:  DefaultMinDistance,
		PeakDistance: DefaultPeakDistance,
		MaxForce:     DefaultMaxForce,
	}
}

func (p Params) Validate() error {
	for name, v := range map[string]float64{
		"min_distance":  p.MinDistance,
		"peak_distance": p.PeakDistance,
		"max_force":     p.MaxForce,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrDegenerateParams, name, v)
		}
	}
	if p.MinDistance <= 0 {
		return fmt.Errorf("%w: min_distance must be positive, got %g", ErrDegenerateParams, p.MinDistance)
	}
	if p.PeakDistance <= p.MinDistance {
		return fmt.Errorf("%w: peak_distance %g must exceed min_distance %g",
			ErrDegenerateParams, p.PeakDistance, p.MinDistance)
	}
	return nil
}

// Model evaluates the pairwise force law over a validated table.
type Model struct {
	table  Table
	params Params
	// MaxForce / (PeakDistance - MinDistance), fixed at construction.
	slope float64
}

func New(table Table, params Params) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Model{
		table:  table,
		params: params,
		slope:  params.MaxForce / (params.PeakDistance - params.MinDistance),
	}, nil
}

// MustNew is New for tables and params known to be valid at compile time.
func MustNew(table Table, params Params) *Model {
	m, err := New(table, params)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) Table() Table   { return m.table }
func (m *Model) Params() Params { return m.params }

// Magnitude is the signed force felt by a particle of type a from a particle
// of type b at distance d. Positive attracts, negative repels.
func (m *Model) Magnitude(a, b particle.Type, d float64) float64 {
	p := m.params
	if d <= p.MinDistance {
		return d*p.MaxForce/p.MinDistance - p.MaxForce
	}
	param := m.table.At(a, b)
	return param*p.MaxForce - math.Abs(d-p.PeakDistance)*param*m.slope
}

// Between returns the force on here due to there, directed along the unit
// vector from here toward there. Coincident particles have no direction and
// yield the zero vector; see BetweenOrdered.
func (m *Model) Between(here, there particle.Particle) particle.Vec2 {
	delta := there.Pos.Sub(here.Pos)
	d := delta.Len()
	if d == 0 {
		return particle.Vec2{}
	}
	return delta.Scale(m.Magnitude(here.Type, there.Type, d) / d)
}

// BetweenOrdered is Between for two distinct members of a population, where
// hereFirst reports whether here precedes there. Coincident pairs are split
// along X with the zero-distance magnitude: the earlier particle is pushed
// toward -X and the later toward +X.
func (m *Model) BetweenOrdered(here, there particle.Particle, hereFirst bool) particle.Vec2 {
	if here.Pos != there.Pos {
		return m.Between(here, there)
	}
	dir := -1.0
	if hereFirst {
		dir = 1
	}
	return particle.Vec2{X: dir * m.Magnitude(here.Type, there.Type, 0)}
}
