package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/sim"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	fitMargin       = 2.0
	minDt           = 1e-4
	maxDt           = 1.0
)

// Frame stores one rendered tick for replay.
type Frame struct {
	Population particle.Population
	Time       float64
	Energy     float64
}

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model steps a simulator once per frame and draws it on a braille canvas.
type Model struct {
	sim           *sim.Simulator
	name          string
	dt, initialDt float64
	width, height int
	canvas        *Canvas
	region        Bounds
	bounds        Bounds
	theme         Theme
	palette       particle.Palette
	running       bool
	err           error
	energyHistory []float64
	sepHistory    []float64
	history       []Frame
	playHead      int
	recording     bool
	frames        []*image.Paletted
	showHelp      bool
}

// NewModel wraps s for live display. region is the emission rectangle; the
// view starts fitted to it and the initial population.
func NewModel(s *sim.Simulator, pal particle.Palette, region Bounds, dt float64, name string) Model {
	m := Model{
		sim:           s,
		name:          name,
		dt:            dt,
		initialDt:     dt,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		region:        region,
		theme:         ThemeClassic,
		palette:       pal,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		sepHistory:    make([]float64, 0, historyCapacity),
		history:       make([]Frame, 0, historyCapacity),
		playHead:      -1,
	}
	m.refit()
	return m
}

// Run starts the live view on the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "+", "=":
			m.dt = clampDt(m.dt * 2)
		case "-", "_":
			m.dt = clampDt(m.dt / 2)
		case "f":
			m.refit()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "t":
			m.theme = nextTheme(m.theme.Name)
			m.palette = m.theme.Palette
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func clampDt(dt float64) float64 {
	if dt < minDt {
		return minDt
	}
	if dt > maxDt {
		return maxDt
	}
	return dt
}

func (m *Model) step() {
	if err := m.sim.Tick(m.dt); err != nil {
		m.err = err
		m.running = false
		return
	}

	pop := m.sim.Population()
	energy := metrics.Kinetic(pop)
	m.energyHistory = appendCapped(m.energyHistory, energy)
	m.sepHistory = appendCapped(m.sepHistory, metrics.Closest(pop))

	m.history = append(m.history, Frame{Population: pop.Clone(), Time: m.sim.Time(), Energy: energy})
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func appendCapped(vals []float64, v float64) []float64 {
	vals = append(vals, v)
	if len(vals) > historyCapacity {
		vals = vals[1:]
	}
	return vals
}

func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	m.sim.Reset()
	m.dt = m.initialDt
	m.err = nil
	m.running = true
	m.energyHistory = m.energyHistory[:0]
	m.sepHistory = m.sepHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
	m.refit()
}

// refit frames the emission region together with the current population.
func (m *Model) refit() {
	m.bounds = m.region.Union(Fit(m.displayed(), fitMargin))
}

// displayed returns the population being shown: a replay frame or live.
func (m *Model) displayed() particle.Population {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead].Population
	}
	return m.sim.Population()
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.DrawFrame()
	m.canvas.Draw(m.displayed(), m.bounds)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusFailed.Render("FAILED")
	case m.playHead != -1 && len(m.history) > 0:
		offset := m.history[m.playHead].Time - m.history[len(m.history)-1].Time
		if m.running {
			return StatusPaused.Render(fmt.Sprintf("REPLAYING (%.2fs)", offset))
		}
		return StatusPaused.Render(fmt.Sprintf("REPLAY PAUSED (%.2fs)", offset))
	case !m.running:
		return StatusPaused.Render("PAUSED")
	case m.recording:
		return StatusRunning.Render("RUNNING ") + StatusRecording.Render("● REC")
	}
	return StatusRunning.Render("RUNNING")
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Colored(m.palette))

	pop := m.displayed()
	t := m.sim.Time()
	if m.playHead >= 0 && m.playHead < len(m.history) {
		t = m.history[m.playHead].Time
	}

	header := HeaderStyle.BorderForeground(m.theme.Border).Foreground(m.theme.Accent)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	counts := pop.CountByType()
	c := pop.Centroid()
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", t))
	row("Dt", fmt.Sprintf("%.4f", m.dt))
	row("Ticks", fmt.Sprintf("%d", m.sim.Steps()))
	if m.playHead >= 0 && len(m.history) > 0 {
		s.WriteString(MetricLabel.Render("Replay") + ProgressBar(float64(m.playHead+1)/float64(len(m.history)), 20) + "\n")
	}
	for _, typ := range particle.Types() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Hex(typ))).Render("■")
		s.WriteString(MetricLabel.Render(typ.String()) + swatch + " " + MetricValue.Render(fmt.Sprintf("%d", counts[typ])) + "\n")
	}
	row("Energy", fmt.Sprintf("%.3f", metrics.Kinetic(pop)))
	row("Min sep", fmt.Sprintf("%.3f", metrics.Closest(pop)))
	row("Centroid", fmt.Sprintf("(%.1f, %.1f)", c.X, c.Y))
	s.WriteString(MetricLabel.Render("Separation") + SparklineChart(m.sepHistory, 24) + "\n")
	row("Theme", m.theme.Name)
	if m.err != nil {
		s.WriteString("\n" + StatusFailed.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n" + Separator(22) + "\n" + KeyHint.Render("SP:Pause R:Reset Q:Quit\n+/-:Dt   F:Fit   T:Theme\nG:Record [ ]:Replay ?:Help")))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to emitted state   ║
║  Q        - Quit                     ║
║  + / -    - Double / halve dt        ║
║  F        - Fit view to particles    ║
║  T        - Cycle themes             ║
║  [        - Rewind (replay)          ║
║  ]        - Forward (replay)         ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// gifPalette indexes: 0 background, 1 frame, then one entry per type.
func (m *Model) gifPalette() color.Palette {
	pal := color.Palette{color.Black, color.White}
	for _, t := range particle.Types() {
		pal = append(pal, m.palette.Color(t))
	}
	return pal
}

func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.width*charW, m.height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), m.gifPalette())
	dotW, dotH := charW/2, charH/4
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			pattern := int(m.canvas.Grid[row][col] - brailleEmpty)
			if pattern <= 0 {
				continue
			}
			idx := uint8(1)
			if t, ok := m.canvas.Tag(row, col); ok {
				idx = uint8(2 + int(t))
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(fmt.Sprintf("%s.gif", m.name))
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}
