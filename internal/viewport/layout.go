// Package viewport maps world coordinates to window pixels.
package viewport

import (
	"math"

	"github.com/san-kum/plife/internal/particle"
)

const (
	DefaultScale  = 10.0
	DefaultWidth  = 1000
	DefaultHeight = 1000
	MinScale      = 1.0
	MaxScale      = 80.0
)

// Layout maps world positions to window pixels. A particle at p is drawn as
// a Scale-sized square with its top-left corner at (p + Center - 0.5) * Scale.
type Layout struct {
	Scale  float64
	Center particle.Vec2
}

// CenteredLayout places the middle of a w×h emission region at the middle of
// a winW×winH window.
func CenteredLayout(winW, winH int, w, h uint32, scale float64) Layout {
	return Layout{
		Scale: scale,
		Center: particle.Vec2{
			X: float64(winW)/(2*scale) - float64(w)/2,
			Y: float64(winH)/(2*scale) - float64(h)/2,
		},
	}
}

// Rect returns the square for position p in window pixels.
func (l Layout) Rect(p particle.Vec2) (x, y, size int32) {
	q := p.Add(l.Center).Scale(l.Scale)
	off := 0.5 * l.Scale
	return int32(math.Floor(q.X - off)), int32(math.Floor(q.Y - off)), int32(l.Scale)
}

// Zoom multiplies Scale by factor while keeping the world point under
// (px, py) fixed on screen.
func (l Layout) Zoom(factor, px, py float64) Layout {
	scale := math.Max(MinScale, math.Min(MaxScale, l.Scale*factor))
	world := particle.Vec2{X: px/l.Scale - l.Center.X, Y: py/l.Scale - l.Center.Y}
	return Layout{
		Scale:  scale,
		Center: particle.Vec2{X: px/scale - world.X, Y: py/scale - world.Y},
	}
}

// Pan shifts the view by (dx, dy) pixels.
func (l Layout) Pan(dx, dy float64) Layout {
	l.Center = l.Center.Add(particle.Vec2{X: dx / l.Scale, Y: dy / l.Scale})
	return l
}
