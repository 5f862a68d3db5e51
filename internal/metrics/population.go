package metrics

import "github.com/san-kum/orbitbox/internal/core"

type PeakBodies struct {
	name string
	peak int
}

func NewPeakBodies() *PeakBodies {
	return &PeakBodies{name: "peak_bodies"}
}

func (p *PeakBodies) Name() string { return p.name }

func (p *PeakBodies) Observe(s *core.Simulation, t float64) {
	if c := s.Count(); c > p.peak {
		p.peak = c
	}
}

func (p *PeakBodies) Value() float64 {
	return float64(p.peak)
}

func (p *PeakBodies) Reset() {
	p.peak = 0
}
