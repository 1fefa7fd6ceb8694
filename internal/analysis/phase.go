package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/plife/internal/particle"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	}
	return AxisX, fmt.Errorf("analysis: unknown axis %q", s)
}

// PhasePortrait holds (position, velocity) along one axis for a single
// particle, one point per frame.
type PhasePortrait struct {
	Index  int
	Axis   Axis
	Points []particle.Vec2
}

// Phase extracts the portrait of particle idx. Frames that do not contain
// idx or hold a non-finite state are skipped; nil means no frame had it.
func Phase(frames []particle.Population, idx int, axis Axis) *PhasePortrait {
	portrait := &PhasePortrait{Index: idx, Axis: axis, Points: make([]particle.Vec2, 0, len(frames))}
	for _, f := range frames {
		if idx < 0 || idx >= len(f) {
			continue
		}
		p := f[idx]
		if !p.Pos.IsFinite() || !p.Vel.IsFinite() {
			continue
		}
		pt := particle.Vec2{X: p.Pos.X, Y: p.Vel.X}
		if axis == AxisY {
			pt = particle.Vec2{X: p.Pos.Y, Y: p.Vel.Y}
		}
		portrait.Points = append(portrait.Points, pt)
	}
	if len(portrait.Points) == 0 {
		return nil
	}
	return portrait
}

// ASCII draws the portrait with position across and velocity up, plus the
// axes where they fall inside the padded bounds.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width <= 1 || height <= 1 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	grid := blankGrid(width, height)
	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if grid[row][col] == ' ' {
				grid[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if grid[row][col] == ' ' {
				grid[row][col] = '─'
			}
		}
	}

	return gridString(grid)
}
