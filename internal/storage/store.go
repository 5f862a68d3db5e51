package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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

// Sample is one recorded point of a sandbox session timeline.
type Sample struct {
	T          float64
	Bodies     int
	Kinetic    float64
	Collisions int
	Escapes    int
	Evictions  int
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	MaxBodies int                `json:"max_bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

var timelineHeader = []string{"time", "bodies", "kinetic_energy", "collisions", "escapes", "evictions"}

func (s *Store) Save(preset string, seed int64, dt, duration float64, maxBodies int, metrics map[string]float64, timeline []Sample) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		MaxBodies: maxBodies,
		Metrics:   metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "timeline.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(timelineHeader); err != nil {
		return "", err
	}

	for _, p := range timeline {
		row := []string{
			strconv.FormatFloat(p.T, 'f', 4, 64),
			strconv.Itoa(p.Bodies),
			strconv.FormatFloat(p.Kinetic, 'f', 6, 64),
			strconv.Itoa(p.Collisions),
			strconv.Itoa(p.Escapes),
			strconv.Itoa(p.Evictions),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTimeline(runID string) ([]Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "timeline.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < len(timelineHeader) {
			continue
		}

		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		bodies, _ := strconv.Atoi(rec[1])
		kinetic, _ := strconv.ParseFloat(rec[2], 64)
		collisions, _ := strconv.Atoi(rec[3])
		escapes, _ := strconv.Atoi(rec[4])
		evictions, _ := strconv.Atoi(rec[5])

		samples = append(samples, Sample{
			T:          t,
			Bodies:     bodies,
			Kinetic:    kinetic,
			Collisions: collisions,
			Escapes:    escapes,
			Evictions:  evictions,
		})
	}

	return samples, nil
}
