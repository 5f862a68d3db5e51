package metrics

import "github.com/san-kum/orbitbox/internal/core"

// Metric accumulates one scalar over a sandbox session. The headless
// runner calls Observe once per frame after the removal pass.
type Metric interface {
	Name() string
	Observe(s *core.Simulation, t float64)
	Value() float64
	Reset()
}

// Standard returns the metric set recorded into run metadata.
func Standard() []Metric {
	return []Metric{
		NewMeanKineticEnergy(),
		NewPeakBodies(),
		NewCollisionRate(),
		NewEscapeShare(),
	}
}
