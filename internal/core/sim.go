package core

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/orbitbox/internal/compute"
)

// BodySnapshot is the read-only view of one live body handed to renderers.
type BodySnapshot struct {
	ID     uint64
	X, Y   float64
	VX, VY float64
	Color  [3]float64
	Trail  []Vec2
}

// Simulation owns the live-body collection and drives it one tick at a
// time. All methods are synchronous and must be called from a single
// goroutine; the external frame loop fixes the per-frame order as
// AddBody (optional) -> Step -> RemoveOutOfRange -> accessors.
type Simulation struct {
	// Clock supplies wall-clock time for the trail and effect cooldowns.
	// Tests substitute a fake.
	Clock func() time.Time

	// OnRemove, when set, is called with the body's ID at the moment of
	// eviction, boundary exit, or central collision so the renderer can
	// release any per-body resources.
	OnRemove func(id uint64)

	// Backend runs the pairwise gravity pass.
	Backend compute.Backend

	tun     Tuning
	central CentralMass
	bodies  []*Body
	nextID  uint64
	rng     *rand.Rand

	lastTrail time.Time
	effect    CollisionEffect

	collisions int
	escapes    int
	evictions  int

	ax, ay []float64
	posBuf []float64
}

func New(tun Tuning, seed int64) *Simulation {
	s := &Simulation{
		Clock:   time.Now,
		Backend: compute.GetBackend(),
		tun:     tun,
		central: NewCentralMass(tun.CentralMass, tun.CollisionRadius),
		bodies:  make([]*Body, 0, tun.MaxBodies),
		rng:     rand.New(rand.NewSource(seed)),
	}
	return s
}

func (s *Simulation) Tuning() Tuning       { return s.tun }
func (s *Simulation) Central() CentralMass { return s.central }

// AddBody appends a new body at the tail of the collection. Inputs are
// trusted to be finite. If the count now exceeds the capacity limit, the
// oldest body is evicted unconditionally, regardless of where it is.
func (s *Simulation) AddBody(x, y, vx, vy float64) {
	b := newBody(s.nextID, x, y, vx, vy, s.tun.TrailLength, s.rng)
	s.nextID++
	s.bodies = append(s.bodies, b)

	if len(s.bodies) > s.tun.MaxBodies {
		oldest := s.bodies[0]
		if s.OnRemove != nil {
			s.OnRemove(oldest.ID)
		}
		s.bodies = append(s.bodies[:0], s.bodies[1:]...)
		s.evictions++
	}
}

// SpawnVelocity converts a drag vector in screen space to a spawn velocity,
// inverting the vertical axis to match the simulation's convention.
func (s *Simulation) SpawnVelocity(dragX, dragY float64) (vx, vy float64) {
	return dragX * s.tun.SpawnSpeed, -dragY * s.tun.SpawnSpeed
}

// Step advances every body one fixed timestep. It reports whether trails
// were sampled this tick. Simulation speed follows the caller's actual
// step cadence; the timestep is never rescaled by measured frame time.
func (s *Simulation) Step() bool {
	now := s.Clock()

	sampleTrails := now.Sub(s.lastTrail) >= s.tun.TrailInterval
	if sampleTrails {
		s.lastTrail = now
	}

	s.effect.expire(now, s.tun.EffectDuration)

	n := len(s.bodies)
	if n == 0 {
		return sampleTrails
	}

	s.ensureScratch(n)

	// central gravity
	g := s.tun.Gravity
	minDist2 := s.tun.MinDistance * s.tun.MinDistance
	for i, b := range s.bodies {
		dx, dy := -b.X, -b.Y
		r2 := dx*dx + dy*dy
		if r2 == 0 {
			// sitting on the star, no defined direction
			continue
		}

		rEff2 := r2
		if rEff2 < minDist2 {
			rEff2 = minDist2
		}

		// a = G*M/r^2 toward the origin; magnitude uses the floored
		// distance, direction the real one
		f := g * s.central.Mass() / (rEff2 * math.Sqrt(r2))
		s.ax[i] = f * dx
		s.ay[i] = f * dy
	}

	// pairwise gravity with cutoff
	if n > 1 {
		cutoff2 := s.tun.CutoffDistance * s.tun.CutoffDistance
		for i, b := range s.bodies {
			s.posBuf[i*2] = b.X
			s.posBuf[i*2+1] = b.Y
		}
		pax, pay := s.Backend.PairAccel(s.posBuf[:n*2], s.tun.BodyMass, g, cutoff2, minDist2)
		for i := 0; i < n; i++ {
			s.ax[i] += pax[i]
			s.ay[i] += pay[i]
		}
	}

	for i, b := range s.bodies {
		b.Integrate(s.ax[i], s.ay[i], s.tun.Dt)
	}

	if sampleTrails {
		for _, b := range s.bodies {
			b.SampleTrail()
		}
	}

	return sampleTrails
}

// RemoveOutOfRange culls bodies that left the viewport or hit the star.
// Iteration runs in reverse creation order so in-place removal never skips
// a live body. The boundary check always wins: a body satisfying both is
// removed silently, with no collision effect.
func (s *Simulation) RemoveOutOfRange(maxX, maxY float64) {
	for i := len(s.bodies) - 1; i >= 0; i-- {
		b := s.bodies[i]

		if b.OutOfBounds(maxX, maxY) {
			s.removeAt(i)
			s.escapes++
			continue
		}

		if b.CollidedWithCentral(s.central.CollisionRadius()) {
			s.effect.trigger(b.X, b.Y, s.Clock())
			s.removeAt(i)
			s.collisions++
		}
	}
}

func (s *Simulation) removeAt(i int) {
	if s.OnRemove != nil {
		s.OnRemove(s.bodies[i].ID)
	}
	s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
}

func (s *Simulation) ensureScratch(n int) {
	if cap(s.ax) < n {
		s.ax = make([]float64, n)
		s.ay = make([]float64, n)
		s.posBuf = make([]float64, n*2)
	}
	s.ax = s.ax[:n]
	s.ay = s.ay[:n]
	for i := range s.ax {
		s.ax[i] = 0
		s.ay[i] = 0
	}
}

func (s *Simulation) Count() int { return len(s.bodies) }

// Bodies returns an immutable snapshot of every live body in creation
// order. Callers must not assume identity across frames; key per-body
// resources by ID.
func (s *Simulation) Bodies() []BodySnapshot {
	out := make([]BodySnapshot, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = BodySnapshot{
			ID:    b.ID,
			X:     b.X,
			Y:     b.Y,
			VX:    b.VX,
			VY:    b.VY,
			Color: b.Color,
			Trail: b.Trail(),
		}
	}
	return out
}

func (s *Simulation) EffectActive() bool { return s.effect.Active }

func (s *Simulation) EffectAt() (x, y float64) { return s.effect.X, s.effect.Y }

// KineticEnergy sums 1/2 m v^2 over the live bodies. Drives the ambient
// audio pad and the recorded timeline.
func (s *Simulation) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range s.bodies {
		ke += 0.5 * s.tun.BodyMass * (b.VX*b.VX + b.VY*b.VY)
	}
	return ke
}

// MeanSpeed averages body speed over the live population, zero when empty.
func (s *Simulation) MeanSpeed() float64 {
	if len(s.bodies) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range s.bodies {
		sum += b.Speed()
	}
	return sum / float64(len(s.bodies))
}

func (s *Simulation) Collisions() int { return s.collisions }
func (s *Simulation) Escapes() int    { return s.escapes }
func (s *Simulation) Evictions() int  { return s.evictions }
