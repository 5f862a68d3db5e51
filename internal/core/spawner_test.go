package core

import "testing"

func TestAutoSpawnerRate(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())
	sp := NewAutoSpawner(2.0, 7)

	sp.Tick(s, 1.0)
	if s.Count() != 2 {
		t.Errorf("expected 2 spawns after 1s at rate 2, got %d", s.Count())
	}

	// fractional debt carries over
	sp.Tick(s, 0.25)
	sp.Tick(s, 0.25)
	if s.Count() != 3 {
		t.Errorf("expected 3 spawns after 1.5s, got %d", s.Count())
	}
}

func TestAutoSpawnerZeroRate(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())
	sp := NewAutoSpawner(0, 7)

	sp.Tick(s, 100)
	if s.Count() != 0 {
		t.Errorf("expected no spawns at zero rate, got %d", s.Count())
	}
}
