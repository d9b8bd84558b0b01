package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbsim/internal/integrate"
)

const (
	DefaultDt        = 0.1
	DefaultTimeScale = 1.0
	DefaultDuration  = 365.25
	DefaultCentral   = "sun"
	DefaultScenario  = "inner"
)

type BurnConfig struct {
	Body   string  `yaml:"body"`
	DeltaV float64 `yaml:"delta_v"`
}

type AutopilotConfig struct {
	Enabled bool    `yaml:"enabled"`
	Body    string  `yaml:"body"`
	Target  string  `yaml:"target"`
	Thrust  float64 `yaml:"thrust"`
}

type Config struct {
	Scenario   string          `yaml:"scenario"`
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	TimeScale  float64         `yaml:"time_scale"`
	MassScale  float64         `yaml:"mass_scale"`
	VelScale   float64         `yaml:"vel_scale"`
	HMax       float64         `yaml:"h_max"`
	Softening  float64         `yaml:"softening"`
	Duration   float64         `yaml:"duration"`
	// TrailLen overrides every body's trail capacity; 0 keeps the
	// per-body lengths from the scenario registry.
	TrailLen   int             `yaml:"trail_len"`
	Central    string          `yaml:"central"`
	Retrograde bool            `yaml:"retrograde"`
	Burn       BurnConfig      `yaml:"burn"`
	Autopilot  AutopilotConfig `yaml:"autopilot"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   DefaultScenario,
		Integrator: "leapfrog",
		Dt:         DefaultDt,
		TimeScale:  DefaultTimeScale,
		MassScale:  1.0,
		VelScale:   1.0,
		HMax:       integrate.DefaultHMax,
		Duration:   DefaultDuration,
		Central:    DefaultCentral,
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

// Validate rejects values the engine would silently clamp or ignore,
// so a bad config file fails loudly instead of looking like a freeze.
func (c *Config) Validate() error {
	if _, err := integrate.ParseMethod(c.Integrator); err != nil {
		return err
	}
	if c.Dt <= 0 || c.Dt > integrate.MaxDT {
		return fmt.Errorf("config: dt must be in (0, %g], got %g", integrate.MaxDT, c.Dt)
	}
	if c.TimeScale <= 0 || c.TimeScale > integrate.MaxTimeScale {
		return fmt.Errorf("config: time_scale must be in (0, %g], got %g", integrate.MaxTimeScale, c.TimeScale)
	}
	if c.MassScale <= 0 {
		return fmt.Errorf("config: mass_scale must be positive, got %g", c.MassScale)
	}
	if c.TrailLen < 0 {
		return fmt.Errorf("config: trail_len must be non-negative, got %d", c.TrailLen)
	}
	if c.HMax < 0 || c.Softening < 0 {
		return fmt.Errorf("config: h_max and softening must be non-negative")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	return nil
}

// Method returns the parsed integrator selector. Call Validate first;
// an invalid name falls back to leapfrog here.
func (c *Config) Method() integrate.Method {
	m, _ := integrate.ParseMethod(c.Integrator)
	return m
}
