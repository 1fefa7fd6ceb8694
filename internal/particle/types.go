package particle

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// ErrUnknownType is returned when a type name or index is outside the closed set.
var ErrUnknownType = errors.New("particle: unknown type")

type Type uint8

const (
	Red Type = iota
	Blue

	NumTypes = int(Blue) + 1
)

var typeNames = [NumTypes]string{
	Red:  "red",
	Blue: "blue",
}

func (t Type) Valid() bool { return int(t) < NumTypes }

// Index maps the variant to its row/column in a force table.
func (t Type) Index() int { return int(t) }

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(%d)", uint8(t))
	}
	return typeNames[t]
}

// Types lists every variant in index order.
func Types() []Type {
	out := make([]Type, NumTypes)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range typeNames {
		if s == n {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return o.Sub(v).Len() }
func (v Vec2) IsFinite() bool       { return isFinite(v.X) && isFinite(v.Y) }
func (v Vec2) Equal(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Particle is value-like; it has no identity beyond its index in a Population.
// Acc is recomputed every tick and carries no state across ticks.
type Particle struct {
	Pos  Vec2
	Vel  Vec2
	Acc  Vec2
	Type Type
}

// Population is created once by the emitter and mutated in place by the
// integrator. Its length and order never change.
type Population []Particle

func (p Population) Clone() Population {
	c := make(Population, len(p))
	copy(c, p)
	return c
}

// Valid reports false if any position, velocity or acceleration is NaN or Inf.
func (p Population) Valid() bool {
	for i := range p {
		if !p[i].Pos.IsFinite() || !p[i].Vel.IsFinite() || !p[i].Acc.IsFinite() {
			return false
		}
	}
	return true
}

func (p Population) CountByType() [NumTypes]int {
	var counts [NumTypes]int
	for i := range p {
		if p[i].Type.Valid() {
			counts[p[i].Type]++
		}
	}
	return counts
}

// Centroid returns the mean position, or the zero vector for an empty population.
func (p Population) Centroid() Vec2 {
	if len(p) == 0 {
		return Vec2{}
	}
	var c Vec2
	for i := range p {
		c = c.Add(p[i].Pos)
	}
	return c.Scale(1 / float64(len(p)))
}

type Palette [NumTypes]color.RGBA

func DefaultPalette() Palette {
	return Palette{
		Red:  {R: 230, G: 41, B: 55, A: 255},
		Blue: {R: 0, G: 121, B: 241, A: 255},
	}
}

func (p Palette) Color(t Type) color.RGBA {
	if !t.Valid() {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return p[t]
}

// Hex returns the colour as "#rrggbb".
func (p Palette) Hex(t Type) string {
	c := p.Color(t)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
