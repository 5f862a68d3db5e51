package config

import "sort"

var Presets = map[string]*Config{
	"calm": preset(func(c *Config) {
		c.SpawnRate = 0.5
		c.Sandbox.MaxBodies = 30
		c.Sandbox.TrailLength = 90
	}),
	"swarm": preset(func(c *Config) {
		c.SpawnRate = 6.0
		c.Sandbox.MaxBodies = 150
		c.Sandbox.TrailLength = 30
		c.Sandbox.CutoffDistance = 60
	}),
	"close-orbits": preset(func(c *Config) {
		c.SpawnRate = 1.0
		c.Sandbox.CollisionRadius = 3
		c.Sandbox.Gravity = 2.0
		c.Sandbox.CutoffDistance = 40
	}),
	"heavy-star": preset(func(c *Config) {
		c.SpawnRate = 2.0
		c.Sandbox.CentralMass = 2000
		c.Sandbox.CollisionRadius = 8
	}),
}

func preset(mut func(*Config)) *Config {
	cfg := DefaultConfig()
	mut(cfg)
	return cfg
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
