package core

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestSim(tun Tuning) (*Simulation, *fakeClock) {
	s := New(tun, 42)
	clk := newFakeClock()
	s.Clock = clk.now
	return s, clk
}

func TestAddBodyFIFOEviction(t *testing.T) {
	tun := DefaultTuning()
	tun.MaxBodies = 5
	s, _ := newTestSim(tun)

	for i := 0; i < 6; i++ {
		s.AddBody(float64(10+i), 0, 0, 1)
	}

	if s.Count() != 5 {
		t.Fatalf("expected count 5 after overflow, got %d", s.Count())
	}

	bodies := s.Bodies()
	if bodies[0].ID != 1 {
		t.Errorf("expected oldest survivor to be the second body added (id 1), got id %d", bodies[0].ID)
	}
	if bodies[0].X != 11 {
		t.Errorf("expected surviving head at x=11, got %g", bodies[0].X)
	}
}

func TestAddBodyEvictionIgnoresPosition(t *testing.T) {
	tun := DefaultTuning()
	tun.MaxBodies = 2
	s, _ := newTestSim(tun)

	// the first body is closest to the star but is still the one evicted
	s.AddBody(6, 0, 0, 0)
	s.AddBody(500, 0, 0, 0)
	s.AddBody(700, 0, 0, 0)

	bodies := s.Bodies()
	if len(bodies) != 2 || bodies[0].X != 500 {
		t.Errorf("eviction must be FIFO by creation order, got head x=%g", bodies[0].X)
	}
}

func TestEvictionNotifiesRemoval(t *testing.T) {
	tun := DefaultTuning()
	tun.MaxBodies = 1
	s, _ := newTestSim(tun)

	var removed []uint64
	s.OnRemove = func(id uint64) { removed = append(removed, id) }

	s.AddBody(10, 0, 0, 0)
	s.AddBody(20, 0, 0, 0)

	if len(removed) != 1 || removed[0] != 0 {
		t.Errorf("expected removal notification for id 0, got %v", removed)
	}
	if s.Evictions() != 1 {
		t.Errorf("expected 1 eviction, got %d", s.Evictions())
	}
}

func TestStepEmptySimulation(t *testing.T) {
	s, clk := newTestSim(DefaultTuning())

	if !s.Step() {
		t.Error("first step should sample trails")
	}
	if s.Step() {
		t.Error("second step within the trail interval should not sample")
	}

	clk.advance(DefaultTrailInterval + time.Millisecond)
	if !s.Step() {
		t.Error("step after the interval elapsed should sample")
	}
}

func TestCentralGravityPullsInward(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())
	s.AddBody(50, 0, 0, 0)
	s.Step()

	b := s.Bodies()[0]
	if b.VX >= 0 {
		t.Errorf("expected inward velocity after one step, got vx=%g", b.VX)
	}
	if b.VY != 0 {
		t.Errorf("expected no tangential acceleration, got vy=%g", b.VY)
	}
}

func TestPairBeyondCutoffStillFeelsCentral(t *testing.T) {
	tun := DefaultTuning()
	tun.CutoffDistance = 10
	s, _ := newTestSim(tun)

	// mirrored placement: any pairwise term would break the symmetry of
	// the central-only accelerations
	s.AddBody(40, 0, 0, 0)
	s.AddBody(-40, 0, 0, 0)
	s.Step()

	bodies := s.Bodies()
	if bodies[0].VX == 0 || bodies[1].VX == 0 {
		t.Fatal("expected nonzero central acceleration on both bodies")
	}
	if math.Abs(bodies[0].VX+bodies[1].VX) > 1e-15 {
		t.Errorf("pairwise contribution beyond cutoff must be exactly zero, got vx %g and %g",
			bodies[0].VX, bodies[1].VX)
	}
	if bodies[0].VY != 0 || bodies[1].VY != 0 {
		t.Errorf("expected zero vy, got %g and %g", bodies[0].VY, bodies[1].VY)
	}
}

func TestCentralForceFloorsLikePairwise(t *testing.T) {
	tun := DefaultTuning()
	centralAccel := func(x float64) float64 {
		s, _ := newTestSim(tun)
		s.AddBody(x, 0, 0, 0)
		s.Step()
		return math.Abs(s.Bodies()[0].VX) / tun.Dt
	}

	atFloor := centralAccel(tun.MinDistance)
	belowFloor := centralAccel(tun.MinDistance / 2)

	if atFloor == 0 {
		t.Fatal("expected nonzero central acceleration at the floor distance")
	}
	if math.Abs(atFloor-belowFloor) > 1e-9*atFloor {
		t.Errorf("sub-floor central force must match force at the floor distance, got %g vs %g",
			belowFloor, atFloor)
	}
}

func TestCentralForceCoincidentBody(t *testing.T) {
	tun := DefaultTuning()
	s, _ := newTestSim(tun)

	s.AddBody(0, 0, 0, 0)
	s.Step()

	b := s.Bodies()[0]
	if b.VX != 0 || b.VY != 0 {
		t.Errorf("body at the origin has no defined pull direction, got v=(%g, %g)", b.VX, b.VY)
	}
}

func TestPairWithinCutoffAttracts(t *testing.T) {
	tun := DefaultTuning()
	tun.CentralMass = 0 // isolate the pairwise term
	s, _ := newTestSim(tun)

	s.AddBody(10, 0, 0, 0)
	s.AddBody(14, 0, 0, 0)
	s.Step()

	bodies := s.Bodies()
	if bodies[0].VX <= 0 || bodies[1].VX >= 0 {
		t.Errorf("expected mutual attraction, got vx %g and %g", bodies[0].VX, bodies[1].VX)
	}
	if math.Abs(bodies[0].VX+bodies[1].VX) > 1e-15 {
		t.Errorf("expected equal and opposite pairwise accelerations, got %g and %g",
			bodies[0].VX, bodies[1].VX)
	}
}

func TestTrailSamplingCadence(t *testing.T) {
	tun := DefaultTuning()
	tun.TrailLength = 4
	s, clk := newTestSim(tun)

	s.AddBody(50, 0, 0, 1)
	s.Step() // samples: first step fires the cooldown

	before := s.Bodies()[0].Trail
	s.Step() // within the interval, trail must be untouched
	after := s.Bodies()[0].Trail

	if len(before) != 4 || len(after) != 4 {
		t.Fatalf("trail must stay exactly TrailLength entries, got %d and %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("trail changed on a non-sampling step at slot %d", i)
		}
	}

	clk.advance(tun.TrailInterval + time.Millisecond)
	if !s.Step() {
		t.Fatal("expected sampling step")
	}

	b := s.Bodies()[0]
	head := b.Trail[0]
	if head.X != b.X || head.Y != b.Y {
		t.Errorf("most recent sample %v must equal current position (%g, %g)", head, b.X, b.Y)
	}
}

func TestBoundaryRemoval(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())
	var removed []uint64
	s.OnRemove = func(id uint64) { removed = append(removed, id) }

	s.AddBody(10, 0, 0, 0)
	s.AddBody(0, 200, 0, 0)
	s.AddBody(-300, 0, 0, 0)

	s.RemoveOutOfRange(100, 100)

	if s.Count() != 1 {
		t.Fatalf("expected 1 survivor, got %d", s.Count())
	}
	if s.Bodies()[0].ID != 0 {
		t.Errorf("expected body 0 to survive, got id %d", s.Bodies()[0].ID)
	}
	if s.Escapes() != 2 {
		t.Errorf("expected 2 escapes, got %d", s.Escapes())
	}
	if len(removed) != 2 {
		t.Errorf("expected 2 removal notifications, got %d", len(removed))
	}
	if s.EffectActive() {
		t.Error("boundary exits must not trigger the collision effect")
	}
}

func TestBoundaryBeatsCollision(t *testing.T) {
	tun := DefaultTuning()
	tun.CollisionRadius = 5
	s, _ := newTestSim(tun)

	// inside the collision radius and outside the bounds at once
	s.AddBody(4, 0, 0, 0)
	s.RemoveOutOfRange(3, 3)

	if s.Count() != 0 {
		t.Fatal("body should be removed")
	}
	if s.EffectActive() {
		t.Error("boundary check wins: no collision effect may fire")
	}
	if s.Collisions() != 0 || s.Escapes() != 1 {
		t.Errorf("expected escape not collision, got collisions=%d escapes=%d",
			s.Collisions(), s.Escapes())
	}
}

func TestCentralCollisionTriggersEffect(t *testing.T) {
	tun := DefaultTuning()
	tun.CollisionRadius = 5
	s, _ := newTestSim(tun)

	s.AddBody(3, 1, 0, 0)
	s.RemoveOutOfRange(100, 100)

	if s.Count() != 0 {
		t.Fatal("body inside the collision radius should be removed")
	}
	if !s.EffectActive() {
		t.Fatal("expected active collision effect")
	}
	x, y := s.EffectAt()
	if x != 3 || y != 1 {
		t.Errorf("effect must carry the body's last position, got (%g, %g)", x, y)
	}
	if s.Collisions() != 1 {
		t.Errorf("expected 1 collision, got %d", s.Collisions())
	}
}

func TestCollisionEffectOverwrite(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())

	s.AddBody(3, 0, 0, 0)
	s.RemoveOutOfRange(100, 100)
	s.AddBody(0, 2, 0, 0)
	s.RemoveOutOfRange(100, 100)

	x, y := s.EffectAt()
	if x != 0 || y != 2 {
		t.Errorf("a second collision must overwrite the effect, got (%g, %g)", x, y)
	}
}

func TestCollisionEffectExpiry(t *testing.T) {
	s, clk := newTestSim(DefaultTuning())

	s.AddBody(3, 0, 0, 0)
	s.RemoveOutOfRange(100, 100)
	if !s.EffectActive() {
		t.Fatal("expected active effect")
	}

	s.Step()
	if !s.EffectActive() {
		t.Error("effect must stay active before its duration elapses")
	}

	clk.advance(DefaultEffectDuration + time.Millisecond)
	s.Step()
	if s.EffectActive() {
		t.Error("effect must deactivate after its duration elapses")
	}
}

func TestFallIntoStarScenario(t *testing.T) {
	tun := DefaultTuning()
	tun.CollisionRadius = 5
	s, clk := newTestSim(tun)

	// slow tangential launch: not enough for orbit, the body spirals in
	s.AddBody(50, 0, 0, 1)

	collided := false
	for i := 0; i < 20000 && !collided; i++ {
		s.Step()
		s.RemoveOutOfRange(1000, 1000)
		if s.EffectActive() {
			collided = true
		}
		clk.advance(time.Millisecond)
	}

	if !collided {
		t.Fatal("body launched below orbital speed never reached the star")
	}
	if s.Count() != 0 {
		t.Errorf("expected body removed on collision, count=%d", s.Count())
	}
	x, y := s.EffectAt()
	if r := math.Sqrt(x*x + y*y); r >= tun.CollisionRadius {
		t.Errorf("effect position should be inside the collision radius, got r=%g", r)
	}
}

func TestSpawnVelocity(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())

	vx, vy := s.SpawnVelocity(100, 50)
	if vx != 100*DefaultSpawnSpeed {
		t.Errorf("expected vx %g, got %g", 100*DefaultSpawnSpeed, vx)
	}
	if vy != -50*DefaultSpawnSpeed {
		t.Errorf("vertical axis must be inverted, got vy %g", vy)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())
	s.AddBody(50, 0, 0, 1)

	snap := s.Bodies()
	snap[0].Trail[0] = Vec2{X: -999, Y: -999}
	snap[0].X = -999

	again := s.Bodies()
	if again[0].X == -999 || again[0].Trail[0].X == -999 {
		t.Error("mutating a snapshot must not affect simulation state")
	}
}

func TestKineticEnergy(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())
	s.AddBody(50, 0, 3, 4)

	want := 0.5 * DefaultBodyMass * 25
	if ke := s.KineticEnergy(); math.Abs(ke-want) > 1e-12 {
		t.Errorf("expected kinetic energy %g, got %g", want, ke)
	}
}

func TestMeanSpeed(t *testing.T) {
	s, _ := newTestSim(DefaultTuning())

	if v := s.MeanSpeed(); v != 0 {
		t.Errorf("expected zero mean speed with no bodies, got %g", v)
	}

	s.AddBody(50, 0, 3, 4)
	s.AddBody(60, 0, 0, 2)

	if v := s.MeanSpeed(); math.Abs(v-3.5) > 1e-12 {
		t.Errorf("expected mean speed 3.5, got %g", v)
	}
}
