package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plife/internal/particle"
)

// Theme pairs the chrome colours of the live view with a particle palette.
type Theme struct {
	Name    string
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Palette particle.Palette
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Accent:  lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#666688"),
		Border:  lipgloss.Color("#444466"),
		Palette: particle.DefaultPalette(),
	}

	ThemeNeon = Theme{
		Name:   "neon",
		Accent: lipgloss.Color("#ff00ff"),
		Muted:  lipgloss.Color("#666666"),
		Border: lipgloss.Color("#ff00ff"),
		Palette: particle.Palette{
			particle.Red:  {R: 255, G: 0, B: 255, A: 255},
			particle.Blue: {R: 0, G: 255, B: 255, A: 255},
		},
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Accent: lipgloss.Color("#ffd700"),
		Muted:  lipgloss.Color("#4488aa"),
		Border: lipgloss.Color("#0077be"),
		Palette: particle.Palette{
			particle.Red:  {R: 255, G: 215, B: 0, A: 255},
			particle.Blue: {R: 0, G: 168, B: 204, A: 255},
		},
	}

	ThemeMono = Theme{
		Name:   "mono",
		Accent: lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Border: lipgloss.Color("#cccccc"),
		Palette: particle.Palette{
			particle.Red:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
			particle.Blue: color.RGBA{R: 136, G: 136, B: 136, A: 255},
		},
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeNeon,
		ThemeOcean,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the theme after name in Themes, wrapping around.
func nextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}
