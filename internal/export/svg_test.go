package export

import (
	"strings"
	"testing"

	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/viz"
)

func TestPopulationToSVG(t *testing.T) {
	pop := particle.Population{
		{Pos: particle.Vec2{X: 0, Y: 0}, Type: particle.Red},
		{Pos: particle.Vec2{X: 4, Y: 2}, Type: particle.Blue},
		{Pos: particle.Vec2{X: 2, Y: 1}, Type: particle.Red},
	}
	pal := particle.DefaultPalette()

	svg := PopulationToSVG(pop, pal, 10)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if got := strings.Count(svg, "<rect x="); got != 3 {
		t.Errorf("expected 3 particle squares, got %d", got)
	}
	if !strings.Contains(svg, `width="60" height="40"`) {
		t.Error("expected canvas sized to the fitted bounds")
	}
	if !strings.Contains(svg, `<rect x="5.00" y="5.00" width="10.00" height="10.00"/>`) {
		t.Error("expected the origin particle one unit in from the edge")
	}
	if !strings.Contains(svg, pal.Hex(particle.Red)) || !strings.Contains(svg, pal.Hex(particle.Blue)) {
		t.Error("expected both palette colours")
	}
}

func TestPopulationToSVGEmpty(t *testing.T) {
	svg := PopulationToSVG(nil, particle.DefaultPalette(), 4)
	if strings.Contains(svg, "<rect x=") {
		t.Error("expected no particle squares")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, particle.DefaultPalette(), 1) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(2, 1)
	c.Plot(0, 0, particle.Blue)
	c.Set(3, 3)
	svg := CanvasToSVG(c, particle.DefaultPalette(), 2)
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, particle.DefaultPalette().Hex(particle.Blue)) {
		t.Error("expected tagged dot in the blue palette colour")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]particle.Vec2{{X: 1, Y: 1}}, 100, 100, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}

	path := []particle.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	svg := TrajectoryToSVG(path, 120, 60, "#e62937")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %q", svg)
	}
	if !strings.Contains(svg, `stroke="#e62937"`) {
		t.Error("expected stroke colour")
	}
}
