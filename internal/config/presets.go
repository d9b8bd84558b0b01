package config

var Presets = map[string]map[string]*Config{
	"solar": {
		"standard": {
			Scenario: "solar", Integrator: "leapfrog", Dt: 0.1, TimeScale: 10.0,
			Duration: 4332.0, Central: "sun",
		},
		"slow": {
			Scenario: "solar", Integrator: "leapfrog", Dt: 0.05, TimeScale: 1.0,
			Duration: 365.25, Central: "sun",
		},
	},
	"inner": {
		"year": {
			Scenario: "inner", Integrator: "leapfrog", Dt: 0.1, TimeScale: 1.0,
			Duration: 365.25, Central: "sun",
		},
		"fast": {
			Scenario: "inner", Integrator: "leapfrog", Dt: 0.25, TimeScale: 20.0,
			Duration: 687.0, Central: "sun",
		},
		"precise": {
			Scenario: "inner", Integrator: "rk4", Dt: 0.05, TimeScale: 1.0,
			Duration: 365.25, Central: "sun",
		},
	},
	"binary": {
		"tight": {
			Scenario: "binary", Integrator: "leapfrog", Dt: 0.05, TimeScale: 1.0,
			Duration: 100.0, Central: "alpha",
		},
		"retrograde": {
			Scenario: "binary", Integrator: "leapfrog", Dt: 0.05, TimeScale: 1.0,
			Duration: 100.0, Central: "alpha", Retrograde: true,
		},
	},
	"payload": {
		"transfer": {
			Scenario: "payload", Integrator: "rk4", Dt: 0.1, TimeScale: 2.0,
			Duration: 500.0, Central: "sun",
			Autopilot: AutopilotConfig{Enabled: true, Body: "payload", Target: "mars", Thrust: 1e-6},
		},
		"burn": {
			Scenario: "payload", Integrator: "leapfrog", Dt: 0.1, TimeScale: 1.0,
			Duration: 365.25, Central: "sun",
			Burn: BurnConfig{Body: "payload", DeltaV: 0.002},
		},
	},
}

// GetPreset returns a copy of the named preset with defaults filled
// into unset knobs, or nil when scenario or name is unknown.
func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	p, ok := group[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.MassScale == 0 {
		cfg.MassScale = 1.0
	}
	if cfg.VelScale == 0 {
		cfg.VelScale = 1.0
	}
	if cfg.HMax == 0 {
		cfg.HMax = DefaultConfig().HMax
	}
	return &cfg
}

// ListPresets returns the preset names for a scenario, or nil when the
// scenario has none.
func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
