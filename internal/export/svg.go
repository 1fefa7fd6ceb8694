package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/viz"
)

const background = "#000000"

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// PopulationToSVG draws each particle as a scale-sized square centred on its
// position, framed by the population's fitted bounds plus one unit.
func PopulationToSVG(pop particle.Population, pal particle.Palette, scale float64) string {
	return PopulationToSVGBounds(pop, pal, viz.Fit(pop, 1), scale)
}

// PopulationToSVGBounds is PopulationToSVG with a fixed world rectangle.
func PopulationToSVGBounds(pop particle.Population, pal particle.Palette, b viz.Bounds, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	width := (b.MaxX - b.MinX) * scale
	height := (b.MaxY - b.MinY) * scale

	var sb strings.Builder
	header(&sb, width, height)

	for _, t := range particle.Types() {
		sb.WriteString(fmt.Sprintf(`<g fill="%s">`+"\n", pal.Hex(t)))
		for i := range pop {
			p := pop[i]
			if p.Type != t || !p.Pos.IsFinite() {
				continue
			}
			x := (p.Pos.X - b.MinX - 0.5) * scale
			y := (p.Pos.Y - b.MinY - 0.5) * scale
			sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n", x, y, scale, scale))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a braille canvas to SVG, colouring tagged cells.
func CanvasToSVG(canvas *viz.Canvas, pal particle.Palette, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	header(&sb, width, height)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := "#ffffff"
			if t, ok := canvas.Tag(row, col); ok {
				fill = pal.Hex(t)
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, dotRadius, fill))
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a sampled path as a polyline. Y grows downward, as
// in the simulation.
func TrajectoryToSVG(points []particle.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
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
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
