package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/orbitbox/internal/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Sandbox.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Sandbox.MaxBodies <= 0 {
		t.Error("max_bodies should be positive")
	}
	if cfg.FrameRate <= 0 {
		t.Error("frame_rate should be positive")
	}
}

func TestTuningRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	tun := cfg.Tuning()

	if tun != core.DefaultTuning() {
		t.Errorf("default config should produce default tuning, got %+v", tun)
	}

	cfg.Sandbox.TrailIntervalMs = 75
	if got := cfg.Tuning().TrailInterval; got != 75*time.Millisecond {
		t.Errorf("expected 75ms trail interval, got %v", got)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitbox.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Sandbox.MaxBodies = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Seed)
	}
	if loaded.Sandbox.MaxBodies != 42 {
		t.Errorf("expected max_bodies 42, got %d", loaded.Sandbox.MaxBodies)
	}
	if loaded.Sandbox.Dt != cfg.Sandbox.Dt {
		t.Errorf("expected dt preserved, got %f", loaded.Sandbox.Dt)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("swarm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Sandbox.MaxBodies != 150 {
		t.Errorf("expected max_bodies 150, got %d", cfg.Sandbox.MaxBodies)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}

	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("expected sorted preset names, got %v", presets)
		}
	}
}

func TestPresetsCarryDefaults(t *testing.T) {
	// preset overrides are partial; everything else must stay at defaults
	cfg := GetPreset("calm")
	if cfg.Sandbox.Dt != core.DefaultDt {
		t.Errorf("expected default dt, got %f", cfg.Sandbox.Dt)
	}
	if cfg.Sandbox.CentralMass != core.DefaultCentralMass {
		t.Errorf("expected default central mass, got %f", cfg.Sandbox.CentralMass)
	}
}
