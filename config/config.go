// Package config provides configuration loading and access for the
// simulation engines and demo widgets.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine and widget parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Fluid     FluidConfig     `yaml:"fluid"`
	Flock     FlockConfig     `yaml:"flock"`
	Verlet    VerletConfig    `yaml:"verlet"`
	Noise     NoiseConfig     `yaml:"noise"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds demo window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	TPS       int `yaml:"tps"` // simulation ticks per second
}

// FluidConfig holds stable-fluids solver parameters.
type FluidConfig struct {
	N          int     `yaml:"n"`           // grid resolution (cells per side, boundary included)
	DT         float64 `yaml:"dt"`          // timestep per tick
	Diffusion  float64 `yaml:"diffusion"`   // density diffusion rate
	Viscosity  float64 `yaml:"viscosity"`   // velocity diffusion rate
	SplatDens  float64 `yaml:"splat_dens"`  // density injected per pointer event
	SplatForce float64 `yaml:"splat_force"` // velocity scale per pointer drag
}

// FlockConfig holds boids population and behavior weights.
type FlockConfig struct {
	Count            int     `yaml:"count"`
	SeparationWeight float64 `yaml:"separation_weight"`
	AlignmentWeight  float64 `yaml:"alignment_weight"`
	CohesionWeight   float64 `yaml:"cohesion_weight"`
	PerceptionRadius float64 `yaml:"perception_radius"`
	SeparationRadius float64 `yaml:"separation_radius"`
	MaxSpeed         float64 `yaml:"max_speed"`
	MaxForce         float64 `yaml:"max_force"`
	MaxTrailLength   int     `yaml:"max_trail_length"` // 0 disables trails
}

// VerletConfig holds particle system parameters.
type VerletConfig struct {
	Gravity    float64 `yaml:"gravity"`
	Friction   float64 `yaml:"friction"`
	Bounce     float64 `yaml:"bounce"`
	Iterations int     `yaml:"iterations"` // constraint relaxation passes

	ClothCols    int     `yaml:"cloth_cols"`
	ClothRows    int     `yaml:"cloth_rows"`
	ClothSpacing float64 `yaml:"cloth_spacing"`
}

// NoiseConfig holds simplex noise parameters.
type NoiseConfig struct {
	Seed        uint32  `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields
		// present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects parameters the engines would fail fast on anyway,
// so the error points at the config file instead of a constructor.
func (c *Config) validate() error {
	if c.Fluid.N < 3 {
		return fmt.Errorf("config: fluid.n must be >= 3, got %d", c.Fluid.N)
	}
	if c.Fluid.DT <= 0 {
		return fmt.Errorf("config: fluid.dt must be positive, got %v", c.Fluid.DT)
	}
	if c.Flock.Count <= 0 {
		return fmt.Errorf("config: flock.count must be positive, got %d", c.Flock.Count)
	}
	if c.Verlet.Iterations < 1 {
		return fmt.Errorf("config: verlet.iterations must be >= 1, got %d", c.Verlet.Iterations)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
