package core

import (
	"math"
	"math/rand"
)

// AutoSpawner stands in for the pointer-gesture input collaborator in
// headless modes. It launches bodies from a ring around the star with a
// randomized mostly-tangential velocity, at a fixed rate in simulated time.
type AutoSpawner struct {
	Rate float64 // spawns per simulated second

	rng   *rand.Rand
	accum float64
}

func NewAutoSpawner(rate float64, seed int64) *AutoSpawner {
	return &AutoSpawner{
		Rate: rate,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Tick advances the spawner by dt simulated seconds, adding bodies to the
// simulation as the spawn debt comes due. It returns how many bodies were
// launched.
func (a *AutoSpawner) Tick(s *Simulation, dt float64) int {
	if a.Rate <= 0 {
		return 0
	}

	a.accum += a.Rate * dt
	n := 0
	for a.accum >= 1 {
		a.accum--
		a.spawn(s)
		n++
	}
	return n
}

func (a *AutoSpawner) spawn(s *Simulation) {
	angle := a.rng.Float64() * 2 * math.Pi
	radius := 30.0 + a.rng.Float64()*30.0

	x := radius * math.Cos(angle)
	y := radius * math.Sin(angle)

	// near-circular speed with some spread, so orbits, escapes, and
	// infalls all show up
	vCirc := math.Sqrt(s.tun.Gravity * s.tun.CentralMass / radius)
	speed := vCirc * (0.6 + 0.8*a.rng.Float64())

	vx := -math.Sin(angle) * speed
	vy := math.Cos(angle) * speed

	s.AddBody(x, y, vx, vy)
}
