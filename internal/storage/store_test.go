package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func testTimeline() []Sample {
	return []Sample{
		{T: 0.0, Bodies: 1, Kinetic: 0.5},
		{T: 0.5, Bodies: 2, Kinetic: 1.25, Escapes: 1},
		{T: 1.0, Bodies: 1, Kinetic: 0.75, Collisions: 1, Escapes: 1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	metrics := map[string]float64{"peak_bodies": 2}

	runID, err := st.Save("calm", 42, 0.02, 1.0, 100, metrics, testTimeline())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Preset != "calm" {
		t.Errorf("expected preset 'calm', got '%s'", meta.Preset)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["peak_bodies"] != 2 {
		t.Errorf("expected peak_bodies 2, got %f", meta.Metrics["peak_bodies"])
	}

	timeline, err := st.LoadTimeline(runID)
	if err != nil {
		t.Fatalf("load timeline failed: %v", err)
	}

	if len(timeline) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(timeline))
	}
	if timeline[2].Collisions != 1 || timeline[2].Escapes != 1 {
		t.Errorf("tallies lost in round trip: %+v", timeline[2])
	}
	if timeline[1].Kinetic != 1.25 {
		t.Errorf("expected kinetic 1.25, got %f", timeline[1].Kinetic)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("swarm", 1, 0.02, 1.0, 150, nil, testTimeline()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("calm", 1, 0.02, 1.0, 100, nil, testTimeline())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)

	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "timeline.csv")); os.IsNotExist(err) {
		t.Error("timeline.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("calm", 1, 0.02, 1.0, 100, map[string]float64{"x": 1}, testTimeline())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "run.json")
	if err := st.ExportJSON(runID, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty export")
	}
}
