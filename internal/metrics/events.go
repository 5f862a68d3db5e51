package metrics

import "github.com/san-kum/orbitbox/internal/core"

// CollisionRate is star collisions per simulated second.
type CollisionRate struct {
	name       string
	collisions int
	elapsed    float64
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{name: "collision_rate"}
}

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) Observe(s *core.Simulation, t float64) {
	c.collisions = s.Collisions()
	c.elapsed = t
}

func (c *CollisionRate) Value() float64 {
	if c.elapsed == 0 {
		return 0
	}
	return float64(c.collisions) / c.elapsed
}

func (c *CollisionRate) Reset() {
	c.collisions = 0
	c.elapsed = 0
}

// EscapeShare is the fraction of removed bodies that left the viewport
// rather than hitting the star or being evicted.
type EscapeShare struct {
	name     string
	escapes  int
	removals int
}

func NewEscapeShare() *EscapeShare {
	return &EscapeShare{name: "escape_share"}
}

func (e *EscapeShare) Name() string { return e.name }

func (e *EscapeShare) Observe(s *core.Simulation, t float64) {
	e.escapes = s.Escapes()
	e.removals = s.Escapes() + s.Collisions() + s.Evictions()
}

func (e *EscapeShare) Value() float64 {
	if e.removals == 0 {
		return 0
	}
	return float64(e.escapes) / float64(e.removals)
}

func (e *EscapeShare) Reset() {
	e.escapes = 0
	e.removals = 0
}
