package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/sim"
)

type ExportParticle struct {
	Type string     `json:"type"`
	Pos  [2]float64 `json:"pos"`
	Vel  [2]float64 `json:"vel"`
}

type ExportData struct {
	Seed    int64                `json:"seed"`
	Dt      float64              `json:"dt"`
	Steps   int                  `json:"steps"`
	Times   []float64            `json:"times"`
	Frames  [][]ExportParticle   `json:"frames"`
	Series  map[string][]float64 `json:"series"`
	Metrics map[string]float64   `json:"metrics"`
}

func NewExportData(cfg *config.Config, result *sim.Result) ExportData {
	data := ExportData{
		Seed:    cfg.Seed,
		Dt:      cfg.Dt,
		Steps:   result.StepsTaken,
		Times:   result.Times(),
		Frames:  make([][]ExportParticle, len(result.Snapshots)),
		Series:  result.Series,
		Metrics: result.Metrics,
	}
	for i, snap := range result.Snapshots {
		frame := make([]ExportParticle, len(snap.Population))
		for j, p := range snap.Population {
			frame[j] = ExportParticle{
				Type: p.Type.String(),
				Pos:  [2]float64{p.Pos.X, p.Pos.Y},
				Vel:  [2]float64{p.Vel.X, p.Vel.Y},
			}
		}
		data.Frames[i] = frame
	}
	return data
}

func WriteJSON(w io.Writer, cfg *config.Config, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(cfg, result))
}

func ExportJSON(path string, cfg *config.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, cfg, result)
}
