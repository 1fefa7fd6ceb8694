package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/force"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/sim"
)

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string                               { return "count" }
func (c *countingMetric) Observe(pop particle.Population, t float64) { c.count++ }
func (c *countingMetric) Value() float64                             { return float64(c.count) }
func (c *countingMetric) Reset()                                     { c.count = 0 }

func at(x, y float64, t particle.Type) particle.Particle {
	return particle.Particle{Pos: particle.Vec2{X: x, Y: y}, Type: t}
}

var _ = Describe("Simulator", func() {
	var (
		model *force.Model
		pop   particle.Population
		s     *sim.Simulator
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		model = force.MustNew(force.Uniform(1.0), force.DefaultParams())
		pop = particle.Population{
			at(0, 0, particle.Red),
			at(force.DefaultPeakDistance, 0, particle.Blue),
			at(10, 15, particle.Red),
		}
		s = sim.New(model, pop)
	})

	Describe("Run", func() {
		It("records the initial state, every sample and the final state", func() {
			counter := &countingMetric{}
			s.AddMetric(counter)

			result, err := s.Run(ctx, sim.Config{Dt: 0.01, Steps: 25, SampleEvery: 10, ValidateState: true})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.StepsTaken).To(Equal(25))
			Expect(result.Times()).To(HaveLen(4))
			Expect(result.Snapshots[0].Step).To(Equal(0))
			Expect(result.Snapshots[1].Step).To(Equal(10))
			Expect(result.Snapshots[3].Step).To(Equal(25))
			Expect(result.Snapshots[3].Time).To(BeNumerically("~", 0.25, 1e-12))
			Expect(result.Series["count"]).To(Equal([]float64{1, 11, 21, 26}))
			Expect(result.Metrics).To(HaveKeyWithValue("count", 26.0))
			Expect(s.Steps()).To(Equal(25))
		})

		It("keeps snapshots independent of the live population", func() {
			result, err := s.Run(ctx, sim.Config{Dt: 0.01, Steps: 5, SampleEvery: 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Snapshots[0].Population[0].Pos).To(Equal(particle.Vec2{}))
			Expect(s.Population()[0].Pos).NotTo(Equal(particle.Vec2{}))
			Expect(result.Final).To(Equal(s.Population()))
		})

		It("mutates the caller's population in place without resizing it", func() {
			_, err := s.Run(ctx, sim.Config{Dt: 0.01, Steps: 10})
			Expect(err).NotTo(HaveOccurred())

			Expect(pop).To(HaveLen(3))
			Expect(pop[0].Pos.X).To(BeNumerically(">", 0))
			Expect(pop[1].Type).To(Equal(particle.Blue))
		})

		It("notifies observers once per tick", func() {
			var times []float64
			s.AddObserver(sim.ObserverFunc(func(_ particle.Population, t float64) {
				times = append(times, t)
			}))

			_, err := s.Run(ctx, sim.Config{Dt: 0.5, Steps: 4})
			Expect(err).NotTo(HaveOccurred())
			Expect(times).To(Equal([]float64{0.5, 1.0, 1.5, 2.0}))
		})

		DescribeTable("rejects invalid run settings",
			func(cfg sim.Config) {
				_, err := s.Run(ctx, cfg)
				Expect(err).To(MatchError(sim.ErrInvalidConfig))
			},
			Entry("zero dt", sim.Config{Dt: 0, Steps: 10}),
			Entry("negative dt", sim.Config{Dt: -0.1, Steps: 10}),
			Entry("NaN dt", sim.Config{Dt: math.NaN(), Steps: 10}),
			Entry("negative steps", sim.Config{Dt: 0.1, Steps: -1}),
			Entry("negative sample interval", sim.Config{Dt: 0.1, Steps: 1, SampleEvery: -2}),
		)

		It("stops when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			result, err := s.Run(cctx, sim.Config{Dt: 0.01, Steps: 100})
			Expect(err).To(MatchError(context.Canceled))
			Expect(result.StepsTaken).To(Equal(0))
		})

		It("surfaces NaN state as a simulation error", func() {
			pop[2].Vel = particle.Vec2{X: math.Inf(1)}

			result, err := s.Run(ctx, sim.Config{Dt: 0.01, Steps: 10, ValidateState: true})
			Expect(err).To(MatchError(sim.ErrInvalidState))

			var simErr *sim.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(1))
			Expect(simErr.Population.Valid()).To(BeFalse())
			Expect(result.StepsTaken).To(Equal(1))
		})
	})

	Describe("Tick", func() {
		It("is a no-op for a zero-length tick", func() {
			before := pop.Clone()
			Expect(s.Tick(0)).To(Succeed())
			Expect(s.Population()).To(Equal(before))
			Expect(s.Time()).To(Equal(0.0))
		})

		It("rejects negative dt", func() {
			Expect(s.Tick(-1)).To(MatchError(sim.ErrInvalidConfig))
		})

		It("pulls a peak-distance pair together", func() {
			Expect(s.Tick(0.01)).To(Succeed())
			Expect(pop[0].Vel.X).To(BeNumerically(">", 0))
			Expect(pop[1].Vel.X).To(BeNumerically("<", 0))
		})
	})

	Describe("Reset", func() {
		It("restores the emitted population and clock", func() {
			before := pop.Clone()
			_, err := s.Run(ctx, sim.Config{Dt: 0.01, Steps: 20})
			Expect(err).NotTo(HaveOccurred())

			s.Reset()
			Expect(s.Population()).To(Equal(before))
			Expect(s.Time()).To(Equal(0.0))
			Expect(s.Steps()).To(Equal(0))
		})
	})
})

var _ = Describe("FromConfig", func() {
	It("emits the configured groups deterministically", func() {
		cfg := config.DefaultConfig()
		cfg.Seed = 7

		a, err := sim.FromConfig(cfg)
		Expect(err).NotTo(HaveOccurred())
		b, err := sim.FromConfig(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Population()).To(HaveLen(20))
		Expect(a.Population()).To(Equal(b.Population()))
		counts := a.Population().CountByType()
		Expect(counts[particle.Red]).To(Equal(10))
		Expect(counts[particle.Blue]).To(Equal(10))
	})

	It("rejects a table with a missing entry before any tick", func() {
		cfg := config.DefaultConfig()
		cfg.Forces = [][]float64{{1, 1}}

		_, err := sim.FromConfig(cfg)
		Expect(err).To(MatchError(force.ErrMissingEntry))
	})

	It("rejects degenerate distance constants", func() {
		cfg := config.DefaultConfig()
		cfg.PeakDistance = cfg.MinDistance

		_, err := sim.FromConfig(cfg)
		Expect(err).To(MatchError(force.ErrDegenerateParams))
	})

	It("pulls apart particles emitted onto the same cell", func() {
		for seed := int64(1); seed <= 20; seed++ {
			cfg := config.DefaultConfig()
			cfg.Seed = seed
			s, err := sim.FromConfig(cfg)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 1000; i++ {
				Expect(s.Tick(cfg.Dt)).To(Succeed())
			}
			pop := s.Population()
			for i := range pop {
				for j := i + 1; j < len(pop); j++ {
					Expect(pop[i].Pos).NotTo(Equal(pop[j].Pos), "seed %d: particles %d and %d coincide", seed, i, j)
				}
			}
		}
	})

	It("derives run settings from the file configuration", func() {
		cfg := config.DefaultConfig()
		rc := sim.RunConfig(cfg)
		Expect(rc.Dt).To(Equal(cfg.Dt))
		Expect(rc.Steps).To(Equal(cfg.Steps))
		Expect(rc.ValidateState).To(BeTrue())
	})
})

var _ = Describe("Zero force table", func() {
	It("separates only the particles inside the clamp", func() {
		model := force.MustNew(force.Uniform(0), force.DefaultParams())
		pop := particle.Population{
			at(0, 0, particle.Red),
			at(3, 0, particle.Blue),
			at(60, 60, particle.Red),
			at(-60, 60, particle.Blue),
		}
		s := sim.New(model, pop)
		sep := metrics.NewMinSeparation()

		var gaps []float64
		s.AddObserver(sim.ObserverFunc(func(p particle.Population, _ float64) {
			gaps = append(gaps, p[0].Pos.Dist(p[1].Pos))
		}))
		s.AddMetric(sep)

		_, err := s.Run(context.Background(), sim.Config{Dt: 0.01, Steps: 300, ValidateState: true})
		Expect(err).NotTo(HaveOccurred())

		for i := 1; i < len(gaps); i++ {
			Expect(gaps[i]).To(BeNumerically(">", gaps[i-1]))
		}
		Expect(pop[2].Pos).To(Equal(particle.Vec2{X: 60, Y: 60}))
		Expect(pop[3].Pos).To(Equal(particle.Vec2{X: -60, Y: 60}))
		Expect(sep.Value()).To(BeNumerically(">", force.DefaultMinDistance))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one simulation per seed", func() {
		cfg := config.DefaultConfig()
		ens := sim.NewEnsemble(cfg, 3, 100, func() []sim.Metric {
			return []sim.Metric{metrics.NewKineticEnergy()}
		})

		results, err := ens.Run(context.Background(), sim.Config{Dt: 0.01, Steps: 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, r := range results {
			Expect(r.StepsTaken).To(Equal(5))
			Expect(r.Metrics).To(HaveKey("kinetic_energy"))
		}
		Expect(results[0].Snapshots[0].Population).NotTo(Equal(results[1].Snapshots[0].Population))
		Expect(ens.Seed(2)).To(Equal(int64(102)))
	})

	It("fails when the base configuration is invalid", func() {
		cfg := config.DefaultConfig()
		cfg.Dt = 0

		_, err := sim.NewEnsemble(cfg, 2, 0, nil).Run(context.Background(), sim.Config{Dt: 0.01, Steps: 1})
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})
})
