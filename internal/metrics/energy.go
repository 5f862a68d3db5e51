package metrics

import "github.com/san-kum/orbitbox/internal/core"

type MeanKineticEnergy struct {
	name    string
	sum     float64
	samples int
}

func NewMeanKineticEnergy() *MeanKineticEnergy {
	return &MeanKineticEnergy{name: "mean_kinetic_energy"}
}

func (m *MeanKineticEnergy) Name() string { return m.name }

func (m *MeanKineticEnergy) Observe(s *core.Simulation, t float64) {
	m.sum += s.KineticEnergy()
	m.samples++
}

func (m *MeanKineticEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanKineticEnergy) Reset() {
	m.sum = 0
	m.samples = 0
}
