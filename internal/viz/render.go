package viz

import (
	"math"

	"github.com/san-kum/plife/internal/particle"
)

const (
	defaultWidth  = 60
	defaultHeight = 20
)

// Bounds is the world-space rectangle mapped onto a canvas.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Region returns the emission rectangle [0,w)x[0,h).
func Region(w, h uint32) Bounds {
	return Bounds{MaxX: float64(w), MaxY: float64(h)}
}

// Fit returns the smallest bounds holding every finite particle, grown by
// margin on each side. Degenerate extents are widened to one unit.
func Fit(pop particle.Population, margin float64) Bounds {
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for i := range pop {
		p := pop[i].Pos
		if !p.IsFinite() {
			continue
		}
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	if math.IsInf(b.MinX, 1) {
		return Bounds{MaxX: 1, MaxY: 1}
	}
	b.MinX -= margin
	b.MinY -= margin
	b.MaxX += margin
	b.MaxY += margin
	if b.MaxX-b.MinX < 1 {
		b.MaxX = b.MinX + 1
	}
	if b.MaxY-b.MinY < 1 {
		b.MaxY = b.MinY + 1
	}
	return b
}

// Union returns bounds covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Project maps a world position to sub-pixel coordinates on c. Y grows down
// in both spaces. ok is false outside the bounds.
func (b Bounds) Project(c *Canvas, p particle.Vec2) (x, y int, ok bool) {
	if !p.IsFinite() {
		return 0, 0, false
	}
	cw, ch := c.PixelSize()
	fx := (p.X - b.MinX) / (b.MaxX - b.MinX)
	fy := (p.Y - b.MinY) / (b.MaxY - b.MinY)
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	x = int(fx * float64(cw-1))
	y = int(fy * float64(ch-1))
	return x, y, true
}

// Draw plots every particle of pop that falls inside b.
func (c *Canvas) Draw(pop particle.Population, b Bounds) {
	for i := range pop {
		if x, y, ok := b.Project(c, pop[i].Pos); ok {
			c.Plot(x, y, pop[i].Type)
		}
	}
}

// Render draws pop on a fresh canvas and returns it coloured by pal.
func Render(pop particle.Population, pal particle.Palette, b Bounds) string {
	return RenderSize(pop, pal, b, defaultWidth, defaultHeight)
}

func RenderSize(pop particle.Population, pal particle.Palette, b Bounds, w, h int) string {
	c := NewCanvas(w, h)
	c.Draw(pop, b)
	return c.Colored(pal)
}
