package storage

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	MaxBodies int                `json:"max_bodies"`
	Metrics   map[string]float64 `json:"metrics"`
	Samples   int                `json:"samples"`
	Timeline  []ExportSample     `json:"timeline"`
}

type ExportSample struct {
	T          float64 `json:"t"`
	Bodies     int     `json:"bodies"`
	Kinetic    float64 `json:"kinetic_energy"`
	Collisions int     `json:"collisions"`
	Escapes    int     `json:"escapes"`
	Evictions  int     `json:"evictions"`
}

// ExportJSON writes one recorded run, metadata and timeline together, to a
// single JSON file.
func (s *Store) ExportJSON(runID, path string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) ExportJSONStdout(runID string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) exportData(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	timeline, err := s.LoadTimeline(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		ID:        meta.ID,
		Preset:    meta.Preset,
		Seed:      meta.Seed,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		MaxBodies: meta.MaxBodies,
		Metrics:   meta.Metrics,
		Samples:   len(timeline),
		Timeline:  make([]ExportSample, len(timeline)),
	}

	for i, p := range timeline {
		data.Timeline[i] = ExportSample{
			T:          p.T,
			Bodies:     p.Bodies,
			Kinetic:    p.Kinetic,
			Collisions: p.Collisions,
			Escapes:    p.Escapes,
			Evictions:  p.Evictions,
		}
	}

	return data, nil
}
