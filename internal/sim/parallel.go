package sim

import (
	"context"
	"sync"

	"github.com/san-kum/plife/internal/config"
)

// Ensemble runs independent simulations of one configuration with
// consecutive seeds. Each run owns its population, so runs share nothing.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

// NewEnsemble prepares numRuns runs. newMetrics is called once per run so
// metric state is never shared; it may be nil.
func NewEnsemble(base *config.Config, numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart, metrics: newMetrics}
}

func (e *Ensemble) Seed(idx int) int64 { return e.seedStart + int64(idx) }

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.base.Clone()
			cfgCopy.Seed = e.Seed(idx)

			s, err := FromConfig(cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
