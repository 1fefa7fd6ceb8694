package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/sim"
)

var ErrInvalidSweep = errors.New("analysis: invalid sweep")

// SweepPoint holds the distinct settled values of the swept metric for one
// parameter value.
type SweepPoint struct {
	Param  float64
	Values []float64
	Final  float64
}

// Sweep varies Forces[A][B] of Base linearly from Min to Max over Points
// runs and records Metric after the first Transient samples of each run.
type Sweep struct {
	Base      *config.Config
	A, B      particle.Type
	Min, Max  float64
	Points    int
	Metric    string
	Transient int

	// NewMetrics supplies fresh metrics for each run. When nil the
	// default metric set is used.
	NewMetrics func() []sim.Metric
}

// Param names the swept entry, e.g. "forces[red][blue]".
func (s *Sweep) Param() string {
	return fmt.Sprintf("forces[%s][%s]", s.A, s.B)
}

func (s *Sweep) Validate() error {
	if s.Base == nil {
		return fmt.Errorf("%w: no base configuration", ErrInvalidSweep)
	}
	if !s.A.Valid() || !s.B.Valid() || s.A.Index() >= len(s.Base.Forces) || s.B.Index() >= len(s.Base.Forces[s.A.Index()]) {
		return fmt.Errorf("%w: %s is outside the force table", ErrInvalidSweep, s.Param())
	}
	if s.Points < 1 {
		return fmt.Errorf("%w: points must be positive, got %d", ErrInvalidSweep, s.Points)
	}
	if math.IsNaN(s.Min) || math.IsNaN(s.Max) || math.IsInf(s.Min, 0) || math.IsInf(s.Max, 0) {
		return fmt.Errorf("%w: range [%g, %g] must be finite", ErrInvalidSweep, s.Min, s.Max)
	}
	if s.Max < s.Min {
		return fmt.Errorf("%w: empty range [%g, %g]", ErrInvalidSweep, s.Min, s.Max)
	}
	if s.Metric == "" {
		return fmt.Errorf("%w: no metric", ErrInvalidSweep)
	}
	if s.Transient < 0 {
		return fmt.Errorf("%w: transient must not be negative, got %d", ErrInvalidSweep, s.Transient)
	}
	return nil
}

// Value returns the parameter at point i.
func (s *Sweep) Value(i int) float64 {
	if s.Points == 1 {
		return s.Min
	}
	return s.Min + float64(i)*(s.Max-s.Min)/float64(s.Points-1)
}

// Run executes every point concurrently. Points share Base.Seed, so the
// emitted population is identical across the sweep.
func (s *Sweep) Run(ctx context.Context) ([]SweepPoint, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	points := make([]SweepPoint, s.Points)
	errs := make([]error, s.Points)

	var wg sync.WaitGroup
	for i := 0; i < s.Points; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			points[idx], errs[idx] = s.runPoint(ctx, s.Value(idx))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

func (s *Sweep) runPoint(ctx context.Context, param float64) (SweepPoint, error) {
	cfg := s.Base.Clone()
	cfg.Forces[s.A.Index()][s.B.Index()] = param

	sm, err := sim.FromConfig(cfg)
	if err != nil {
		return SweepPoint{}, fmt.Errorf("%s=%g: %w", s.Param(), param, err)
	}
	for _, m := range s.metrics(cfg) {
		sm.AddMetric(m)
	}

	res, err := sm.Run(ctx, sim.RunConfig(cfg))
	if err != nil {
		return SweepPoint{}, fmt.Errorf("%s=%g: %w", s.Param(), param, err)
	}
	series, ok := res.Series[s.Metric]
	if !ok {
		return SweepPoint{}, fmt.Errorf("%w: unknown metric %q", ErrInvalidSweep, s.Metric)
	}

	pt := SweepPoint{Param: param, Final: res.Metrics[s.Metric]}
	seen := make(map[int64]bool)
	for i := s.Transient; i < len(series); i++ {
		// Quantize so that a settled run yields a single value.
		key := int64(math.Round(series[i] * 1000))
		if !seen[key] {
			seen[key] = true
			pt.Values = append(pt.Values, series[i])
		}
	}
	return pt, nil
}

func (s *Sweep) metrics(cfg *config.Config) []sim.Metric {
	if s.NewMetrics != nil {
		return s.NewMetrics()
	}
	return sim.DefaultMetrics(cfg)
}

// SweepToASCII plots every recorded value against its parameter.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	grid := blankGrid(width, height)
	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				grid[row][col] = '•'
			}
		}
	}
	return gridString(grid)
}

func blankGrid(width, height int) [][]rune {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	return grid
}

func gridString(grid [][]rune) string {
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
