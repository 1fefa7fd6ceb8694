package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plife/internal/analysis"
	"github.com/san-kum/plife/internal/automation"
	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/emitter"
	"github.com/san-kum/plife/internal/export"
	"github.com/san-kum/plife/internal/gui"
	"github.com/san-kum/plife/internal/integrators"
	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/sim"
	"github.com/san-kum/plife/internal/storage"
	"github.com/san-kum/plife/internal/viewport"
	"github.com/san-kum/plife/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	dt          float64
	steps       int
	seed        int64
	sampleEvery int
	// run
	numRuns  int
	jsonOut  string
	noSave   bool
	showLast bool
	// gui
	guiScale  float64
	guiWidth  int
	guiHeight int
	noHUD     bool
	// plot / export
	metricName string
	outPath    string
	svgScale   float64
	frameIdx   int
	trajIdx    int
	// analyze
	phaseIdx  int
	phaseAxis string
	// sweep
	sweepA, sweepB     string
	sweepMin, sweepMax float64
	sweepPoints        int
	sweepTransient     int
	sweepMetric        string
	// init
	initPreset string
	force      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "plife",
		Short:        "two-species particle life",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plife", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of runs with consecutive seeds")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also write every sampled frame to this JSON file ('-' for stdout)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&showLast, "show", false, "print the final population")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run a simulation in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSceneFlags(guiCmd)
	guiCmd.Flags().Float64Var(&guiScale, "scale", viewport.DefaultScale, "pixels per world unit")
	guiCmd.Flags().IntVar(&guiWidth, "width", viewport.DefaultWidth, "window width")
	guiCmd.Flags().IntVar(&guiHeight, "height", viewport.DefaultHeight, "window height")
	guiCmd.Flags().BoolVar(&noHUD, "no-hud", false, "hide the overlay")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a sampled frame of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (negative counts from the end)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot only this metric")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a frame or a trajectory of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <run_id>.svg)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", viewport.DefaultScale, "pixels per world unit")
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (negative counts from the end)")
	exportSVGCmd.Flags().IntVar(&trajIdx, "trajectory", -1, "draw the path of this particle instead of a frame")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectral summary of a run's metrics, or a particle's phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&phaseIdx, "phase", -1, "print the phase portrait of this particle")
	analyzeCmd.Flags().StringVar(&phaseAxis, "axis", "x", "phase portrait axis (x or y)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a scene across a range of one force-table entry",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepA, "a", "red", "row type of the swept entry")
	sweepCmd.Flags().StringVar(&sweepB, "b", "blue", "column type of the swept entry")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 11, "number of values")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "min_separation", "metric to record")
	sweepCmd.Flags().IntVar(&sweepTransient, "transient", 0, "samples to discard from each run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrator",
		Args:  cobra.NoArgs,
		RunE:  benchIntegrator,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARTICLES\tREGION\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%dx%d\t%s\n", name, cfg.TotalParticles(), cfg.Width, cfg.Height, config.Descriptions[name])
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&initPreset, "preset", "default", "preset to start from")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, showCmd, plotCmd, exportSVGCmd, analyzeCmd, sweepCmd, scenarioCmd, benchCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of ticks")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "ticks between samples")
}

// loadScene resolves preset, config file and flags, in that order, into a
// validated configuration and a name for the run.
func loadScene(cmd *cobra.Command) (*config.Config, string, error) {
	name := "default"
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func addDefaultMetrics(s *sim.Simulator, cfg *config.Config) {
	for _, m := range sim.DefaultMetrics(cfg) {
		s.AddMetric(m)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if numRuns > 1 {
		return runEnsemble(ctx, cfg, name)
	}

	s, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	addDefaultMetrics(s, cfg)

	fmt.Printf("running %s: %d particles, %d ticks, seed %d\n", name, cfg.TotalParticles(), cfg.Steps, cfg.Seed)
	start := time.Now()

	result, runErr := s.Run(ctx, sim.RunConfig(cfg))
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "stopped early: %v\n", runErr)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	switch jsonOut {
	case "":
	case "-":
		if err := storage.WriteJSON(os.Stdout, cfg, result); err != nil {
			return err
		}
	default:
		if err := storage.ExportJSON(jsonOut, cfg, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("ticks: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	if showLast {
		pal, err := cfg.Palette()
		if err != nil {
			return err
		}
		bounds := viz.Region(cfg.Width, cfg.Height).Union(viz.Fit(result.Final, 2))
		fmt.Println()
		fmt.Print(viz.Render(result.Final, pal, bounds))
	}

	return runErr
}

func runEnsemble(ctx context.Context, cfg *config.Config, name string) error {
	fmt.Printf("running %d x %s: %d particles, %d ticks, seeds %d..%d\n",
		numRuns, name, cfg.TotalParticles(), cfg.Steps, cfg.Seed, cfg.Seed+int64(numRuns-1))

	ens := sim.NewEnsemble(cfg, numRuns, cfg.Seed, func() []sim.Metric { return sim.DefaultMetrics(cfg) })
	start := time.Now()
	results, err := ens.Run(ctx, sim.RunConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	names := metricNames(results[0].Metrics)
	fmt.Fprintln(w, "SEED\tRUN ID\t"+strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		runCfg := cfg.Clone()
		runCfg.Seed = ens.Seed(i)
		runID := "-"
		if st != nil {
			if runID, err = st.Save(fmt.Sprintf("%s-%d", name, i), runCfg, r); err != nil {
				return err
			}
		}
		row := []string{fmt.Sprintf("%d", runCfg.Seed), runID}
		for _, n := range names {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[n]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func metricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printMetrics(m map[string]float64) {
	for _, name := range metricNames(m) {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}
	s, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(s, pal, viz.Region(cfg.Width, cfg.Height), cfg.Dt, name))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}
	s, err := sim.FromConfig(cfg)
	if err != nil {
		return err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return err
	}

	opts := gui.DefaultOptions()
	opts.Scale = guiScale
	opts.Width, opts.Height = guiWidth, guiHeight
	opts.ShowHUD = !noHUD
	gui.Run(s, pal, cfg.Width, cfg.Height, cfg.Dt, name, opts)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tPARTICLES\tTICKS\tDT\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d/%d\t%.4f\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.StepsTaken,
			run.Steps,
			run.Dt,
			run.Seed,
		)
	}

	return w.Flush()
}

// loadFrames groups a run's snapshot rows into populations by time.
func loadFrames(st *storage.Store, runID string) ([]float64, []particle.Population, error) {
	samples, err := st.LoadSnapshots(runID)
	if err != nil {
		return nil, nil, err
	}
	times := make([]float64, 0)
	frames := make([]particle.Population, 0)
	for _, s := range samples {
		if len(times) == 0 || times[len(times)-1] != s.Time || s.Index == 0 {
			times = append(times, s.Time)
			frames = append(frames, particle.Population{})
		}
		frames[len(frames)-1] = append(frames[len(frames)-1], s.Particle)
	}
	return times, frames, nil
}

func pickFrame(n, idx int) (int, error) {
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("frame %d out of range (run has %d frames)", idx, n)
	}
	return idx, nil
}

func runPalette(meta *storage.RunMetadata) particle.Palette {
	if meta.Config == nil {
		return particle.DefaultPalette()
	}
	pal, err := meta.Config.Palette()
	if err != nil {
		return particle.DefaultPalette()
	}
	return pal
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, frames, err := loadFrames(st, runID)
	if err != nil {
		return err
	}
	idx, err := pickFrame(len(frames), frameIdx)
	if err != nil {
		return err
	}

	pop := frames[idx]
	bounds := viz.Fit(pop, 2)
	if meta.Config != nil {
		bounds = viz.Region(meta.Config.Width, meta.Config.Height).Union(bounds)
	}
	fmt.Printf("run: %s  frame %d/%d  t=%.3f\n\n", meta.ID, idx+1, len(frames), times[idx])
	fmt.Print(viz.Render(pop, runPalette(meta), bounds))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Times) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	names := make([]string, 0, len(series.Values))
	for name := range series.Values {
		if metricName == "" || name == metricName {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no metric named %q", metricName)
	}
	sort.Strings(names)

	for _, name := range names {
		graph := asciigraph.Plot(series.Values[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time (%.2fs)", name, series.Times[len(series.Times)-1])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n\n", meta.Name)

	if phaseIdx >= 0 {
		axis, err := analysis.ParseAxis(phaseAxis)
		if err != nil {
			return err
		}
		_, frames, err := loadFrames(st, runID)
		if err != nil {
			return err
		}
		portrait := analysis.Phase(frames, phaseIdx, axis)
		if portrait == nil {
			return fmt.Errorf("particle %d not found in run %s", phaseIdx, runID)
		}
		fmt.Printf("particle %d: %s position (across) vs velocity (up), %d frames\n\n", phaseIdx, axis, len(portrait.Points))
		fmt.Print(portrait.ASCII(80, 24))
		return nil
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Times) < 3 {
		return fmt.Errorf("run has too few samples to analyze")
	}
	interval := series.Times[1] - series.Times[0]

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tDOMINANT FREQ\tPERIOD\tPOWER")
	for _, name := range metricNames(seriesFinals(series)) {
		freq, power := analysis.DominantFrequency(series.Values[name], interval)
		period := "-"
		if power > 0 && freq > 0 {
			period = fmt.Sprintf("%.4g", 1/freq)
		}
		fmt.Fprintf(w, "%s\t%.4g\t%s\t%.4g\n", name, freq, period, power)
	}
	return w.Flush()
}

func seriesFinals(series *storage.Series) map[string]float64 {
	out := make(map[string]float64, len(series.Values))
	for name, values := range series.Values {
		if len(values) > 0 {
			out[name] = values[len(values)-1]
		}
	}
	return out
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScene(cmd)
	if err != nil {
		return err
	}
	a, err := particle.ParseType(sweepA)
	if err != nil {
		return err
	}
	b, err := particle.ParseType(sweepB)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sw := &analysis.Sweep{
		Base:      cfg,
		A:         a,
		B:         b,
		Min:       sweepMin,
		Max:       sweepMax,
		Points:    sweepPoints,
		Metric:    sweepMetric,
		Transient: sweepTransient,
	}
	fmt.Printf("sweeping %s of %s over [%g, %g] in %d points, seed %d\n\n", sw.Param(), name, sweepMin, sweepMax, sweepPoints, cfg.Seed)

	start := time.Now()
	points, err := sw.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL %s\tDISTINCT\n", strings.ToUpper(sw.Param()), strings.ToUpper(sweepMetric))
	for _, p := range points {
		fmt.Fprintf(w, "%.4g\t%.6g\t%d\n", p.Param, p.Final, len(p.Values))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%s", analysis.SweepToASCII(points, 60, 16))
	fmt.Printf("completed in %v\n", time.Since(start))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var save automation.Saver
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		save = st.Save
	}

	if sc.Name != "" {
		fmt.Printf("scenario %s: %s\n", sc.Name, sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, os.Stdout, save)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	names := metricNames(results[0].Result.Metrics)
	fmt.Fprintln(w, "STEP\tSEED\t"+strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d", r.Name, r.Config.Seed)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.6g", r.Result.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	pal := runPalette(meta)

	var svg string
	if trajIdx >= 0 {
		samples, err := st.LoadSnapshots(runID)
		if err != nil {
			return err
		}
		path := storage.Trajectory(samples, trajIdx)
		if len(path) < 2 {
			return fmt.Errorf("particle %d has fewer than two samples", trajIdx)
		}
		typ := particle.Red
		for _, s := range samples {
			if s.Index == trajIdx {
				typ = s.Particle.Type
				break
			}
		}
		svg = export.TrajectoryToSVG(path, 800, 800, pal.Hex(typ))
	} else {
		_, frames, err := loadFrames(st, runID)
		if err != nil {
			return err
		}
		idx, err := pickFrame(len(frames), frameIdx)
		if err != nil {
			return err
		}
		svg = export.PopulationToSVG(frames[idx], pal, svgScale)
	}

	path := outPath
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func benchIntegrator(cmd *cobra.Command, args []string) error {
	model, err := config.DefaultConfig().ForceModel()
	if err != nil {
		return err
	}
	integ := integrators.NewSemiImplicitEuler(model)
	rng := rand.New(rand.NewSource(42))

	counts := []int{10, 100, 500, 1000}
	const ticks = 20

	fmt.Printf("benchmarking %s\n\n", integ.Name())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tTICKS\tTIME\tTICKS/SEC\tPAIRS/SEC")

	for _, n := range counts {
		pop, err := emitter.EmitAll(rng, []emitter.Group{
			{Type: particle.Red, Count: n / 2},
			{Type: particle.Blue, Count: n - n/2},
		}, 100, 100)
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < ticks; i++ {
			integ.Step(pop, config.DefaultDt)
		}
		elapsed := time.Since(start)

		perSec := float64(ticks) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.3g\n", n, ticks, elapsed, perSec, perSec*float64(n*(n-1)))
	}

	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "plife.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.GetPreset(initPreset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %s)", initPreset, strings.Join(config.ListPresets(), ", "))
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (preset %s)\n", path, initPreset)
	return nil
}
