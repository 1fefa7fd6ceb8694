// Package automation runs scripted sequences of simulations described in
// YAML.
package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is an ordered list of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from Preset (or Config, a path to a scene file) and
// applies the non-zero overrides. Forces entries replace whole rows.
type ScenarioStep struct {
	Preset     string      `yaml:"preset"`
	Config     string      `yaml:"config"`
	Dt         float64     `yaml:"dt"`
	Steps      int         `yaml:"steps"`
	Seed       int64       `yaml:"seed"`
	Forces     [][]float64 `yaml:"forces"`
	SaveAs     string      `yaml:"save_as"`
}

// StepResult pairs a step's resolved configuration with its output.
type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

// Saver persists a finished step, typically storage.Store.Save.
type Saver func(name string, cfg *config.Config, result *sim.Result) (string, error)

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScenario)
	}
	return &scenario, nil
}

// Resolve builds the configuration for step i.
func (s *Scenario) Resolve(i int) (*config.Config, string, error) {
	step := s.Steps[i]

	var cfg *config.Config
	name := step.Preset
	switch {
	case step.Preset != "" && step.Config != "":
		return nil, "", fmt.Errorf("%w: step %d sets both preset and config", ErrInvalidScenario, i+1)
	case step.Config != "":
		loaded, err := config.Load(step.Config)
		if err != nil {
			return nil, "", fmt.Errorf("step %d: %w", i+1, err)
		}
		cfg, name = loaded, "custom"
	case step.Preset != "":
		cfg = config.GetPreset(step.Preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("%w: step %d: unknown preset %q", ErrInvalidScenario, i+1, step.Preset)
		}
	default:
		cfg, name = config.DefaultConfig(), "default"
	}

	if step.Dt != 0 {
		cfg.Dt = step.Dt
	}
	if step.Steps != 0 {
		cfg.Steps = step.Steps
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}
	for row, values := range step.Forces {
		if row >= len(cfg.Forces) {
			return nil, "", fmt.Errorf("%w: step %d: force row %d out of range", ErrInvalidScenario, i+1, row)
		}
		cfg.Forces[row] = append([]float64(nil), values...)
	}
	if step.SaveAs != "" {
		name = step.SaveAs
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("step %d: %w", i+1, err)
	}
	return cfg, name, nil
}

// RunScenario executes every step in order, writing progress to log. save
// may be nil. On error the results of the completed steps are returned.
func RunScenario(ctx context.Context, scenario *Scenario, log io.Writer, save Saver) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i := range scenario.Steps {
		cfg, name, err := scenario.Resolve(i)
		if err != nil {
			return results, err
		}
		fmt.Fprintf(log, "step %d/%d: %s (%d particles, %d ticks)\n",
			i+1, len(scenario.Steps), name, cfg.TotalParticles(), cfg.Steps)

		s, err := sim.FromConfig(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		for _, m := range sim.DefaultMetrics(cfg) {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, sim.RunConfig(cfg))
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if save != nil {
			runID, err := save(name, cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			fmt.Fprintf(log, "  saved %s\n", runID)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Result: result})
	}

	return results, nil
}
