package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/plife/internal/particle"
)

func worldAt(l Layout, px, py float64) particle.Vec2 {
	return particle.Vec2{X: px/l.Scale - l.Center.X, Y: py/l.Scale - l.Center.Y}
}

func TestCenteredLayoutCentresRegion(t *testing.T) {
	tests := []struct {
		name       string
		winW, winH int
		w, h       uint32
		scale      float64
	}{
		{"square", 1000, 1000, 100, 100, 10},
		{"wide window", 1600, 900, 100, 100, 8},
		{"tall region", 800, 800, 40, 160, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := CenteredLayout(tt.winW, tt.winH, tt.w, tt.h, tt.scale)
			assert.Equal(t, tt.scale, l.Scale)

			mid := worldAt(l, float64(tt.winW)/2, float64(tt.winH)/2)
			assert.InDelta(t, float64(tt.w)/2, mid.X, 1e-9)
			assert.InDelta(t, float64(tt.h)/2, mid.Y, 1e-9)
		})
	}
}

func TestRect(t *testing.T) {
	l := CenteredLayout(1000, 1000, 100, 100, 10)

	x, y, size := l.Rect(particle.Vec2{X: 50, Y: 50})
	assert.Equal(t, int32(495), x)
	assert.Equal(t, int32(495), y)
	assert.Equal(t, int32(10), size)

	l = Layout{Scale: 10}
	x, y, _ = l.Rect(particle.Vec2{X: 1.2, Y: 3})
	assert.Equal(t, int32(7), x)
	assert.Equal(t, int32(25), y)
}

func TestZoomKeepsCursorFixed(t *testing.T) {
	l := CenteredLayout(1000, 1000, 100, 100, DefaultScale)
	px, py := 320.0, 710.0
	before := worldAt(l, px, py)

	for _, factor := range []float64{1.25, 0.8, 2, 0.5} {
		l = l.Zoom(factor, px, py)
		after := worldAt(l, px, py)
		assert.InDelta(t, before.X, after.X, 1e-9, "factor %v", factor)
		assert.InDelta(t, before.Y, after.Y, 1e-9, "factor %v", factor)
	}
}

func TestZoomClampsScale(t *testing.T) {
	l := CenteredLayout(1000, 1000, 100, 100, DefaultScale)

	in := l.Zoom(1e6, 500, 500)
	assert.Equal(t, MaxScale, in.Scale)
	out := l.Zoom(1e-6, 500, 500)
	assert.Equal(t, MinScale, out.Scale)

	mid := worldAt(in, 500, 500)
	assert.InDelta(t, 50, mid.X, 1e-9)
	assert.InDelta(t, 50, mid.Y, 1e-9)
}

func TestPanShiftsByPixels(t *testing.T) {
	l := Layout{Scale: 10}
	p := particle.Vec2{X: 2, Y: 0}

	x0, y0, _ := l.Rect(p)
	moved := l.Pan(30, -20)
	x1, y1, size := moved.Rect(p)

	assert.Equal(t, int32(30), x1-x0)
	assert.Equal(t, int32(-20), y1-y0)
	assert.Equal(t, int32(10), size)
	assert.Equal(t, l, moved.Pan(-30, 20))
	assert.Equal(t, particle.Vec2{}, l.Center, "Pan must not modify the receiver")
}
