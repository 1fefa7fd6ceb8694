package force

import (
	"math"
	"testing"

	"github.com/san-kum/plife/internal/particle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(Uniform(1.0), DefaultParams())
	require.NoError(t, err)
	return m
}

func TestMagnitudeNearField(t *testing.T) {
	m := unitModel(t)
	p := m.Params()

	at0 := m.Magnitude(particle.Red, particle.Blue, 0)
	assert.Equal(t, -p.MaxForce, at0, "full repulsion at zero distance")
	assert.Less(t, at0, 0.0)

	prev := at0
	for d := 0.25; d <= p.MinDistance; d += 0.25 {
		f := m.Magnitude(particle.Red, particle.Blue, d)
		assert.Greater(t, f, prev, "near field must increase with distance (d=%g)", d)
		assert.LessOrEqual(t, f, 0.0, "near field never attracts (d=%g)", d)
		prev = f
	}
	assert.InDelta(t, 0.0, m.Magnitude(particle.Red, particle.Red, p.MinDistance), 1e-12)
}

func TestMagnitudeNearFieldIgnoresTable(t *testing.T) {
	tbl := Uniform(0)
	tbl.Set(particle.Red, particle.Blue, 3)
	m := MustNew(tbl, DefaultParams())

	assert.Equal(t,
		m.Magnitude(particle.Red, particle.Red, 2),
		m.Magnitude(particle.Red, particle.Blue, 2))
}

func TestMagnitudeRisingEdge(t *testing.T) {
	m := unitModel(t)
	p := m.Params()

	prev := math.Inf(-1)
	for d := p.MinDistance + 0.5; d <= p.PeakDistance; d += 0.5 {
		f := m.Magnitude(particle.Red, particle.Red, d)
		assert.GreaterOrEqual(t, f, prev, "d=%g", d)
		prev = f
	}
	assert.Equal(t, 1.0*p.MaxForce, m.Magnitude(particle.Red, particle.Red, p.PeakDistance))
}

func TestMagnitudeFallingEdgeSlope(t *testing.T) {
	m := unitModel(t)
	p := m.Params()
	slope := p.MaxForce / (p.PeakDistance - p.MinDistance)

	for _, delta := range []float64{1, 2.5, 7, 15, 40} {
		rising := m.Magnitude(particle.Blue, particle.Blue, p.PeakDistance-delta)
		falling := m.Magnitude(particle.Blue, particle.Blue, p.PeakDistance+delta)
		if p.PeakDistance-delta > p.MinDistance {
			assert.InDelta(t, rising, falling, 1e-9, "tent must be symmetric about the peak (delta=%g)", delta)
		}
		assert.InDelta(t, p.MaxForce-delta*slope, falling, 1e-9, "delta=%g", delta)
	}

	beyond := m.Magnitude(particle.Blue, particle.Blue, 2*p.PeakDistance)
	assert.Less(t, beyond, 0.0, "far field reverses sign")
}

func TestMagnitudeRowMajorLookup(t *testing.T) {
	tbl := Table{
		{0.0, 1.0},
		{-0.5, 2.0},
	}
	m := MustNew(tbl, DefaultParams())
	peak := DefaultPeakDistance

	tests := []struct {
		a, b particle.Type
		want float64
	}{
		{particle.Red, particle.Red, 0},
		{particle.Red, particle.Blue, 100},
		{particle.Blue, particle.Red, -50},
		{particle.Blue, particle.Blue, 200},
	}
	for _, tt := range tests {
		t.Run(tt.a.String()+"->"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, m.Magnitude(tt.a, tt.b, peak))
		})
	}
}

func TestBetweenPeakAttraction(t *testing.T) {
	m := unitModel(t)
	a := particle.Particle{Pos: particle.Vec2{X: 0, Y: 0}, Type: particle.Red}
	b := particle.Particle{Pos: particle.Vec2{X: DefaultPeakDistance, Y: 0}, Type: particle.Blue}

	fa := m.Between(a, b)
	fb := m.Between(b, a)

	assert.Equal(t, particle.Vec2{X: 100, Y: 0}, fa)
	assert.Equal(t, particle.Vec2{X: -100, Y: 0}, fb)
}

func TestBetweenRepelsInsideClamp(t *testing.T) {
	m := unitModel(t)
	a := particle.Particle{Pos: particle.Vec2{X: 1, Y: 1}}
	b := particle.Particle{Pos: particle.Vec2{X: 1, Y: 3}}

	f := m.Between(a, b)
	assert.InDelta(t, 0, f.X, 1e-12)
	assert.Less(t, f.Y, 0.0, "force must point away from the neighbour")
	assert.InDelta(t, 60, f.Len(), 1e-9)
}

func TestBetweenCoincident(t *testing.T) {
	m := unitModel(t)
	a := particle.Particle{Pos: particle.Vec2{X: 4, Y: 4}}

	f := m.Between(a, a)
	assert.Equal(t, particle.Vec2{}, f)
	assert.True(t, f.IsFinite())
}

func TestBetweenOrderedSplitsCoincidentPair(t *testing.T) {
	m := MustNew(Uniform(0), DefaultParams())
	a := particle.Particle{Pos: particle.Vec2{X: 4, Y: 4}, Type: particle.Red}
	b := particle.Particle{Pos: particle.Vec2{X: 4, Y: 4}, Type: particle.Blue}

	first := m.BetweenOrdered(a, b, true)
	second := m.BetweenOrdered(b, a, false)

	assert.Equal(t, particle.Vec2{X: -DefaultMaxForce}, first)
	assert.Equal(t, particle.Vec2{X: DefaultMaxForce}, second)
	assert.Equal(t, particle.Vec2{}, first.Add(second))
}

func TestBetweenOrderedMatchesBetweenWhenApart(t *testing.T) {
	m := unitModel(t)
	a := particle.Particle{Pos: particle.Vec2{X: 0, Y: 0}, Type: particle.Red}
	b := particle.Particle{Pos: particle.Vec2{X: 3, Y: 4}, Type: particle.Blue}

	assert.Equal(t, m.Between(a, b), m.BetweenOrdered(a, b, true))
	assert.Equal(t, m.Between(b, a), m.BetweenOrdered(b, a, false))
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		ok     bool
	}{
		{"defaults", DefaultParams(), true},
		{"peak equals min", Params{MinDistance: 5, PeakDistance: 5, MaxForce: 100}, false},
		{"peak below min", Params{MinDistance: 10, PeakDistance: 5, MaxForce: 100}, false},
		{"zero min", Params{MinDistance: 0, PeakDistance: 5, MaxForce: 100}, false},
		{"nan force", Params{MinDistance: 1, PeakDistance: 5, MaxForce: math.NaN()}, false},
		{"inf peak", Params{MinDistance: 1, PeakDistance: math.Inf(1), MaxForce: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrDegenerateParams)

			_, err = New(Uniform(1), tt.params)
			assert.ErrorIs(t, err, ErrDegenerateParams)
		})
	}
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
		ok   bool
	}{
		{"square", [][]float64{{1, 2}, {3, 4}}, true},
		{"missing row", [][]float64{{1, 2}}, false},
		{"short row", [][]float64{{1, 2}, {3}}, false},
		{"extra column", [][]float64{{1, 2, 3}, {4, 5, 6}}, false},
		{"nan entry", [][]float64{{1, math.NaN()}, {3, 4}}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.rows)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrMissingEntry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, tbl.Rows())
			assert.Equal(t, 2.0, tbl.At(particle.Red, particle.Blue))
			assert.Equal(t, 3.0, tbl.At(particle.Blue, particle.Red))
			assert.False(t, tbl.Symmetric())
		})
	}
}

func TestUniformSymmetric(t *testing.T) {
	tbl := Uniform(0.5)
	assert.True(t, tbl.Symmetric())
	for _, a := range particle.Types() {
		for _, b := range particle.Types() {
			assert.Equal(t, 0.5, tbl.At(a, b))
		}
	}
}
