package core

import "time"

const (
	DefaultCentralMass     = 500.0
	DefaultCollisionRadius = 5.0
	DefaultBodyMass        = 1.0
	DefaultGravity         = 1.2
	DefaultDt              = 0.02
	DefaultCutoffDistance  = 100.0
	DefaultMinDistance     = 2.0
	DefaultMaxBodies       = 100
	DefaultTrailLength     = 60
	DefaultTrailInterval   = 50 * time.Millisecond
	DefaultEffectDuration  = 600 * time.Millisecond
	DefaultSpawnSpeed      = 0.06
	DefaultBoundsMargin    = 20.0
)

// Tuning holds the fixed constants of the sandbox. All values are set once
// at construction; the simulation never mutates them.
type Tuning struct {
	CentralMass     float64       // mass of the star at the origin
	CollisionRadius float64       // star collision radius
	BodyMass        float64       // shared by every body
	Gravity         float64       // gravitational constant after distance/time scaling
	Dt              float64       // fixed integration timestep, not wall-clock derived
	CutoffDistance  float64       // pairwise gravity ignored beyond this separation
	MinDistance     float64       // separation floor for the inverse-square law
	MaxBodies       int           // FIFO eviction above this count
	TrailLength     int           // samples kept per body
	TrailInterval   time.Duration // wall-clock cadence of trail sampling
	EffectDuration  time.Duration // lifetime of the collision flash
	SpawnSpeed      float64       // drag distance to velocity scale
	BoundsMargin    float64       // added to camera extents before culling
}

func DefaultTuning() Tuning {
	return Tuning{
		CentralMass:     DefaultCentralMass,
		CollisionRadius: DefaultCollisionRadius,
		BodyMass:        DefaultBodyMass,
		Gravity:         DefaultGravity,
		Dt:              DefaultDt,
		CutoffDistance:  DefaultCutoffDistance,
		MinDistance:     DefaultMinDistance,
		MaxBodies:       DefaultMaxBodies,
		TrailLength:     DefaultTrailLength,
		TrailInterval:   DefaultTrailInterval,
		EffectDuration:  DefaultEffectDuration,
		SpawnSpeed:      DefaultSpawnSpeed,
		BoundsMargin:    DefaultBoundsMargin,
	}
}
