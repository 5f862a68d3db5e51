package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitbox/internal/core"
)

const (
	DefaultDuration  = 60.0
	DefaultFrameRate = 60
	DefaultSpawnRate = 1.5
)

type Config struct {
	Seed      int64         `yaml:"seed"`
	Duration  float64       `yaml:"duration"`
	FrameRate int           `yaml:"frame_rate"`
	Audio     bool          `yaml:"audio"`
	SpawnRate float64       `yaml:"spawn_rate"`
	Sandbox   SandboxConfig `yaml:"sandbox"`
}

// SandboxConfig mirrors core.Tuning in yaml form. Durations are plain
// milliseconds so config files stay unit-free.
type SandboxConfig struct {
	CentralMass      float64 `yaml:"central_mass"`
	CollisionRadius  float64 `yaml:"collision_radius"`
	BodyMass         float64 `yaml:"body_mass"`
	Gravity          float64 `yaml:"gravity"`
	Dt               float64 `yaml:"dt"`
	CutoffDistance   float64 `yaml:"cutoff_distance"`
	MinDistance      float64 `yaml:"min_distance"`
	MaxBodies        int     `yaml:"max_bodies"`
	TrailLength      int     `yaml:"trail_length"`
	TrailIntervalMs  int     `yaml:"trail_interval_ms"`
	EffectDurationMs int     `yaml:"effect_duration_ms"`
	SpawnSpeed       float64 `yaml:"spawn_speed"`
	BoundsMargin     float64 `yaml:"bounds_margin"`
}

func DefaultConfig() *Config {
	tun := core.DefaultTuning()
	return &Config{
		Seed:      0,
		Duration:  DefaultDuration,
		FrameRate: DefaultFrameRate,
		Audio:     true,
		SpawnRate: DefaultSpawnRate,
		Sandbox: SandboxConfig{
			CentralMass:      tun.CentralMass,
			CollisionRadius:  tun.CollisionRadius,
			BodyMass:         tun.BodyMass,
			Gravity:          tun.Gravity,
			Dt:               tun.Dt,
			CutoffDistance:   tun.CutoffDistance,
			MinDistance:      tun.MinDistance,
			MaxBodies:        tun.MaxBodies,
			TrailLength:      tun.TrailLength,
			TrailIntervalMs:  int(tun.TrailInterval / time.Millisecond),
			EffectDurationMs: int(tun.EffectDuration / time.Millisecond),
			SpawnSpeed:       tun.SpawnSpeed,
			BoundsMargin:     tun.BoundsMargin,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Tuning converts the yaml form back into the core constants.
func (c *Config) Tuning() core.Tuning {
	s := c.Sandbox
	return core.Tuning{
		CentralMass:     s.CentralMass,
		CollisionRadius: s.CollisionRadius,
		BodyMass:        s.BodyMass,
		Gravity:         s.Gravity,
		Dt:              s.Dt,
		CutoffDistance:  s.CutoffDistance,
		MinDistance:     s.MinDistance,
		MaxBodies:       s.MaxBodies,
		TrailLength:     s.TrailLength,
		TrailInterval:   time.Duration(s.TrailIntervalMs) * time.Millisecond,
		EffectDuration:  time.Duration(s.EffectDurationMs) * time.Millisecond,
		SpawnSpeed:      s.SpawnSpeed,
		BoundsMargin:    s.BoundsMargin,
	}
}
