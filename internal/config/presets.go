package config

import "sort"

func preset(forces [][]float64, red, blue int, width, height uint32) *Config {
	cfg := DefaultConfig()
	cfg.Forces = forces
	cfg.Groups = []GroupConfig{{Type: "red", Count: red}, {Type: "blue", Count: blue}}
	cfg.Width, cfg.Height = width, height
	return cfg
}

var Presets = map[string]*Config{
	// The reference scene.
	"default": DefaultConfig(),
	// Red chases blue, blue flees red.
	"predator": preset([][]float64{
		{0.2, 1.0},
		{-1.0, 0.5},
	}, 30, 30, 60, 60),
	// Like types cluster, unlike types push apart.
	"segregate": preset([][]float64{
		{1.0, -0.6},
		{-0.6, 1.0},
	}, 40, 40, 80, 80),
	// Every type repels every other beyond the clamp as well.
	"repel": preset([][]float64{
		{-1.0, -1.0},
		{-1.0, -1.0},
	}, 20, 20, 30, 30),
	// Only the near-field clamp acts.
	"inert": preset([][]float64{
		{0, 0},
		{0, 0},
	}, 15, 15, 20, 20),
}

// Descriptions holds a one-line summary of each preset.
var Descriptions = map[string]string{
	"default":   "reference scene, all-ones table",
	"predator":  "red chases, blue flees",
	"segregate": "like attracts, unlike repels",
	"repel":     "everything pushes apart",
	"inert":     "near-field clamp only",
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
