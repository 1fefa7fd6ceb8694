package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/plife/internal/force"
	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/sim"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	if got, want := c.Grid[0][0], rune(brailleEmpty|0x1|0x80); got != want {
		t.Errorf("expected %U, got %U", want, got)
	}
	if c.Grid[0][1] != brailleEmpty {
		t.Error("expected second cell untouched")
	}

	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][1] != brailleEmpty {
		t.Error("out of range pixels must be ignored")
	}
}

func TestCanvasPlotTags(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Plot(2, 4, particle.Blue)

	if typ, ok := c.Tag(1, 1); !ok || typ != particle.Blue {
		t.Errorf("expected blue tag, got %v %v", typ, ok)
	}
	if _, ok := c.Tag(0, 0); ok {
		t.Error("expected untagged cell")
	}

	c.Unset(2, 4)
	if _, ok := c.Tag(1, 1); ok {
		t.Error("expected tag cleared with the last dot")
	}

	c.Plot(0, 0, particle.Red)
	c.Clear()
	if _, ok := c.Tag(0, 0); ok || c.Grid[0][0] != brailleEmpty {
		t.Error("expected clear canvas")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 3)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 4 {
			t.Errorf("expected 4 runes per line, got %q", l)
		}
	}
}

func TestFit(t *testing.T) {
	pop := particle.Population{
		{Pos: particle.Vec2{X: -2, Y: 1}},
		{Pos: particle.Vec2{X: 8, Y: 5}},
		{Pos: particle.Vec2{X: math.Inf(1), Y: 0}},
	}
	b := Fit(pop, 1)
	want := Bounds{MinX: -3, MinY: 0, MaxX: 9, MaxY: 6}
	if b != want {
		t.Errorf("expected %+v, got %+v", want, b)
	}

	if b := Fit(nil, 1); b.MaxX-b.MinX <= 0 || b.MaxY-b.MinY <= 0 {
		t.Errorf("expected non-degenerate bounds, got %+v", b)
	}

	single := Fit(particle.Population{{Pos: particle.Vec2{X: 3, Y: 3}}}, 0)
	if single.MaxX-single.MinX != 1 || single.MaxY-single.MinY != 1 {
		t.Errorf("expected unit bounds, got %+v", single)
	}
}

func TestProject(t *testing.T) {
	c := NewCanvas(10, 5)
	b := Region(10, 10)

	tests := []struct {
		name   string
		pos    particle.Vec2
		x, y   int
		inside bool
	}{
		{"origin", particle.Vec2{}, 0, 0, true},
		{"far corner", particle.Vec2{X: 10, Y: 10}, 19, 19, true},
		{"outside", particle.Vec2{X: -1, Y: 0}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := b.Project(c, tt.pos)
			if ok != tt.inside || (ok && (x != tt.x || y != tt.y)) {
				t.Errorf("expected (%d,%d,%v), got (%d,%d,%v)", tt.x, tt.y, tt.inside, x, y, ok)
			}
		})
	}
}

func TestRender(t *testing.T) {
	pop := particle.Population{
		{Pos: particle.Vec2{X: 1, Y: 1}, Type: particle.Red},
		{Pos: particle.Vec2{X: 9, Y: 9}, Type: particle.Blue},
	}
	out := RenderSize(pop, particle.DefaultPalette(), Region(10, 10), 10, 5)
	if strings.Count(out, "\n") != 5 {
		t.Errorf("expected 5 rows, got %q", out)
	}
	if strings.Count(out, string(rune(brailleEmpty))) == 50 {
		t.Error("expected particles to be drawn")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("missing").Name != ThemeClassic.Name {
		t.Error("expected classic fallback")
	}
	names := ThemeNames()
	seen := map[string]bool{}
	name := names[0]
	for range names {
		seen[name] = true
		name = nextTheme(name).Name
	}
	if len(seen) != len(names) || name != names[0] {
		t.Errorf("expected theme cycle over %v", names)
	}
}

func newTestModel() Model {
	model := force.MustNew(force.Uniform(1), force.DefaultParams())
	pop := particle.Population{
		{Pos: particle.Vec2{X: 0, Y: 0}, Type: particle.Red},
		{Pos: particle.Vec2{X: 20, Y: 0}, Type: particle.Blue},
	}
	return NewModel(sim.New(model, pop), particle.DefaultPalette(), Region(20, 20), 0.01, "test")
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAndReset(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.sim.Steps() != 1 || len(m.history) != 1 || len(m.energyHistory) != 1 {
		t.Fatalf("expected one tick recorded, got steps=%d history=%d", m.sim.Steps(), len(m.history))
	}
	if m.sim.Population()[0].Vel.X <= 0 {
		t.Error("expected the red particle to be pulled toward blue")
	}

	next, _ = m.Update(key("r"))
	m = next.(Model)
	if m.sim.Steps() != 0 || m.sim.Population()[0].Pos != (particle.Vec2{}) || len(m.history) != 0 {
		t.Error("expected reset to restore the emitted population")
	}
}

func TestModelPauseAndDt(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(key(" "))
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.sim.Steps() != 0 {
		t.Error("expected no step while paused")
	}

	next, _ = m.Update(key("+"))
	m = next.(Model)
	if m.dt != 0.02 {
		t.Errorf("expected dt 0.02, got %f", m.dt)
	}
	for i := 0; i < 20; i++ {
		next, _ = m.Update(key("-"))
		m = next.(Model)
	}
	if m.dt != minDt {
		t.Errorf("expected dt clamped to %f, got %f", minDt, m.dt)
	}

	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status in view")
	}
}

func TestModelScrub(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}

	next, _ := m.Update(key("["))
	m = next.(Model)
	if m.playHead != 1 || m.running {
		t.Errorf("expected paused replay at frame 1, got %d running=%v", m.playHead, m.running)
	}
	if m.displayed()[0].Pos == m.sim.Population()[0].Pos {
		t.Error("expected replay to show an earlier frame")
	}
}

func TestModelViewReplayBar(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	live := m.View()
	if strings.Contains(live, "░") {
		t.Error("expected no replay bar while live")
	}
	if !strings.Contains(live, "◆") || !strings.Contains(live, "SP:Pause") {
		t.Error("expected separator and key hints in view")
	}

	next, _ := m.Update(key("["))
	m = next.(Model)
	if !strings.Contains(m.View(), "░") {
		t.Error("expected replay bar while scrubbing")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent      float64
		filled, free int
	}{
		{0, 0, 10},
		{0.5, 5, 5},
		{1, 10, 0},
		{1.5, 10, 0},
		{-1, 0, 10},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.percent, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("ProgressBar(%v): %d filled cells, want %d", tt.percent, got, tt.filled)
		}
		if got := strings.Count(bar, "░"); got != tt.free {
			t.Errorf("ProgressBar(%v): %d free cells, want %d", tt.percent, got, tt.free)
		}
	}
}
