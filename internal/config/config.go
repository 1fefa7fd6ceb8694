package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/plife/internal/emitter"
	"github.com/san-kum/plife/internal/force"
	"github.com/san-kum/plife/internal/particle"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.01
	DefaultSteps       = 1000
	DefaultSampleEvery = 10
	DefaultWidth       = 10
	DefaultHeight      = 10
	DefaultCount       = 10
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Dt          float64 `yaml:"dt"`
	Steps       int     `yaml:"steps"`
	Seed        int64   `yaml:"seed"`
	SampleEvery int     `yaml:"sample_every"`

	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`

	MinDistance  float64 `yaml:"min_distance"`
	PeakDistance float64 `yaml:"peak_distance"`
	MaxForce     float64 `yaml:"max_force"`

	// Forces is row-major: Forces[a][b] is the parameter felt by type a from type b.
	Forces [][]float64       `yaml:"forces"`
	Groups []GroupConfig     `yaml:"groups"`
	Colors map[string]string `yaml:"colors,omitempty"`
}

type GroupConfig struct {
	Type  string `yaml:"type"`
	Count int    `yaml:"count"`
}

// DefaultConfig mirrors the reference scene: ten red and ten blue particles
// in a 10×10 region with an all-ones force table.
func DefaultConfig() *Config {
	return &Config{
		Dt:           DefaultDt,
		Steps:        DefaultSteps,
		SampleEvery:  DefaultSampleEvery,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		MinDistance:  force.DefaultMinDistance,
		PeakDistance: force.DefaultPeakDistance,
		MaxForce:     force.DefaultMaxForce,
		Forces: [][]float64{
			{1.0, 1.0},
			{1.0, 1.0},
		},
		Groups: []GroupConfig{
			{Type: "red", Count: DefaultCount},
			{Type: "blue", Count: DefaultCount},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate performs every construction-time check so that a valid Config
// always yields a runnable simulation.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("%w: sample_every must not be negative, got %d", ErrInvalidConfig, c.SampleEvery)
	}
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, emitter.ErrInvalidRegion)
	}
	if _, err := c.ForceModel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.EmitGroups(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) ForceParams() force.Params {
	return force.Params{
		MinDistance:  c.MinDistance,
		PeakDistance: c.PeakDistance,
		MaxForce:     c.MaxForce,
	}
}

func (c *Config) ForceModel() (*force.Model, error) {
	table, err := force.NewTable(c.Forces)
	if err != nil {
		return nil, err
	}
	return force.New(table, c.ForceParams())
}

func (c *Config) EmitGroups() ([]emitter.Group, error) {
	groups := make([]emitter.Group, 0, len(c.Groups))
	for _, g := range c.Groups {
		t, err := particle.ParseType(g.Type)
		if err != nil {
			return nil, err
		}
		if g.Count < 0 {
			return nil, fmt.Errorf("%w: %s count %d", emitter.ErrInvalidCount, t, g.Count)
		}
		groups = append(groups, emitter.Group{Type: t, Count: g.Count})
	}
	return groups, nil
}

// Palette overrides the default colours with any "#rrggbb" entries in Colors.
func (c *Config) Palette() (particle.Palette, error) {
	pal := particle.DefaultPalette()
	for name, hex := range c.Colors {
		t, err := particle.ParseType(name)
		if err != nil {
			return pal, err
		}
		col, err := parseHex(hex)
		if err != nil {
			return pal, fmt.Errorf("colour for %s: %w", t, err)
		}
		pal[t] = col
	}
	return pal, nil
}

func (c *Config) TotalParticles() int {
	n := 0
	for _, g := range c.Groups {
		n += g.Count
	}
	return n
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Forces = make([][]float64, len(c.Forces))
	for i, row := range c.Forces {
		out.Forces[i] = append([]float64(nil), row...)
	}
	out.Groups = append([]GroupConfig(nil), c.Groups...)
	if c.Colors != nil {
		out.Colors = make(map[string]string, len(c.Colors))
		for k, v := range c.Colors {
			out.Colors[k] = v
		}
	}
	return &out
}

func parseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
