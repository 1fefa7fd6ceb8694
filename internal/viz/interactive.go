package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/sim"
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// paramNames are the scene settings editable before launch.
var paramNames = []string{"dt", "seed", "red", "blue", "width", "height", "min_distance", "peak_distance", "max_force"}

type app struct {
	state, cursor int
	presets       []string
	selected      string
	params        map[string]float64
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	liveModel     Model
}

func NewInteractiveApp() *app {
	return &app{
		state:   stateMenu,
		presets: config.ListPresets(),
		params:  map[string]float64{},
	}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m app) handleKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
		m.loadParams(config.GetPreset(m.selected))
	}
	return m, nil
}

func (m app) configKey(msg tea.KeyMsg) (app, tea.Cmd) {
	name := paramNames[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[name] = v
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(m.params[name], 'g', -1, 64)
	case "s":
		cmd := m.start()
		return m, cmd
	case "left", "h":
		m.params[name] -= paramStep(name)
	case "right", "l":
		m.params[name] += paramStep(name)
	}
	return m, nil
}

func paramStep(name string) float64 {
	if name == "dt" {
		return 0.005
	}
	return 1
}

func (m *app) loadParams(cfg *config.Config) {
	counts := map[string]int{}
	for _, g := range cfg.Groups {
		counts[g.Type] += g.Count
	}
	m.params = map[string]float64{
		"dt":            cfg.Dt,
		"seed":          float64(cfg.Seed),
		"red":           float64(counts["red"]),
		"blue":          float64(counts["blue"]),
		"width":         float64(cfg.Width),
		"height":        float64(cfg.Height),
		"min_distance":  cfg.MinDistance,
		"peak_distance": cfg.PeakDistance,
		"max_force":     cfg.MaxForce,
	}
}

// buildConfig applies the edited settings over the selected preset.
func (m *app) buildConfig() *config.Config {
	cfg := config.GetPreset(m.selected)
	cfg.Dt = m.params["dt"]
	cfg.Seed = int64(m.params["seed"])
	cfg.Groups = []config.GroupConfig{
		{Type: "red", Count: int(m.params["red"])},
		{Type: "blue", Count: int(m.params["blue"])},
	}
	cfg.Width = clampDim(m.params["width"])
	cfg.Height = clampDim(m.params["height"])
	cfg.MinDistance = m.params["min_distance"]
	cfg.PeakDistance = m.params["peak_distance"]
	cfg.MaxForce = m.params["max_force"]
	return cfg
}

func clampDim(v float64) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}

func (m *app) start() tea.Cmd {
	cfg := m.buildConfig()
	s, err := sim.FromConfig(cfg)
	if err != nil {
		m.err = err
		return nil
	}
	pal, err := cfg.Palette()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.liveModel = NewModel(s, pal, Region(cfg.Width, cfg.Height), cfg.Dt, m.selected)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m app) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("PLIFE") + "\n    " + menuSub.Render("particle life") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := config.Descriptions[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdleDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m app) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.selected)) + "\n    " + menuSub.Render(config.Descriptions[m.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range paramNames {
		valStr := fmt.Sprintf("%10.4g", m.params[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-14s", name)), menuDesc.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-14s", name)), menuIdleDesc.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusFailed.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive shows the preset menu and runs the chosen scene live.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
