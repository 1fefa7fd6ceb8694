package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/particle"
	"github.com/san-kum/plife/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	snapshotsFile = "snapshots.csv"
	seriesFile    = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Particles  int                `json:"particles"`
	StepsTaken int                `json:"steps_taken"`
	Config     *config.Config     `json:"config"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Sample is one particle at one sampled time, as stored in snapshots.csv.
type Sample struct {
	Time     float64
	Index    int
	Particle particle.Particle
}

// Series is the metric series of one run, aligned with Times. A metric that
// stopped reporting early is shorter than Times.
type Series struct {
	Times  []float64
	Values map[string][]float64
}

// Save writes a run directory named after name and the current time.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  now,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Steps:      cfg.Steps,
		Particles:  cfg.TotalParticles(),
		StepsTaken: result.StepsTaken,
		Config:     cfg,
		Metrics:    result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSnapshots(filepath.Join(runDir, snapshotsFile), result.Snapshots); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSnapshots(path string, snapshots []sim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "i", "type", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	for _, snap := range snapshots {
		t := formatFloat(snap.Time)
		for i, p := range snap.Population {
			row := []string{
				t,
				strconv.Itoa(i),
				p.Type.String(),
				formatFloat(p.Pos.X),
				formatFloat(p.Pos.Y),
				formatFloat(p.Vel.X),
				formatFloat(p.Vel.Y),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func writeSeries(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}
	for i, t := range result.Times() {
		row := []string{formatFloat(t)}
		for _, name := range names {
			vals := result.Series[name]
			if i < len(vals) {
				row = append(row, formatFloat(vals[i]))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every run, newest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func readRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// LoadSnapshots reads every sampled particle of a run in file order.
func (s *Store) LoadSnapshots(runID string) ([]Sample, error) {
	records, err := readRecords(filepath.Join(s.baseDir, runID, snapshotsFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for n, record := range records[1:] {
		if len(record) != 7 {
			return nil, fmt.Errorf("%s line %d: expected 7 fields, got %d", snapshotsFile, n+2, len(record))
		}
		idx, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", snapshotsFile, n+2, err)
		}
		typ, err := particle.ParseType(record[2])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", snapshotsFile, n+2, err)
		}
		vals := make([]float64, 5)
		for j, field := range []string{record[0], record[3], record[4], record[5], record[6]} {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", snapshotsFile, n+2, err)
			}
			vals[j] = v
		}
		samples = append(samples, Sample{
			Time:  vals[0],
			Index: idx,
			Particle: particle.Particle{
				Pos:  particle.Vec2{X: vals[1], Y: vals[2]},
				Vel:  particle.Vec2{X: vals[3], Y: vals[4]},
				Type: typ,
			},
		})
	}
	return samples, nil
}

// LoadSeries reads the metric series of a run.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	records, err := readRecords(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}

	series := &Series{Times: []float64{}, Values: map[string][]float64{}}
	if len(records) == 0 {
		return series, nil
	}

	names := records[0][1:]
	for _, name := range names {
		series.Values[name] = make([]float64, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		series.Times = append(series.Times, t)
		for j, name := range names {
			if j+1 >= len(record) || record[j+1] == "" {
				continue
			}
			v := 0.0
			if parsed, err := strconv.ParseFloat(record[j+1], 64); err == nil {
				v = parsed
			}
			series.Values[name] = append(series.Values[name], v)
		}
	}
	return series, nil
}

// Trajectory extracts the sampled path of particle idx.
func Trajectory(samples []Sample, idx int) []particle.Vec2 {
	path := make([]particle.Vec2, 0)
	for _, s := range samples {
		if s.Index == idx {
			path = append(path, s.Particle.Pos)
		}
	}
	return path
}
