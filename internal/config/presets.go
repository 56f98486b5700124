package config

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"small": {
		Width: 12, Height: 8, Spacing: 1.0, Mass: 1.0, Gravity: 9.81,
		TearDistance: 1.6, MouseDistance: 1.5, MouseInfluence: 0.6,
		Iterations: 5, Dt: DefaultDt,
	},
	"dense": {
		Width: 70, Height: 35, Spacing: 0.6, Mass: 0.5, Gravity: 9.81,
		TearDistance: 1.0, MouseDistance: 1.2, MouseInfluence: 0.4,
		Iterations: 5, Dt: DefaultDt,
	},
	"fragile": {
		Width: 40, Height: 25, Spacing: 1.0, Mass: 1.0, Gravity: 9.81,
		TearDistance: 1.15, MouseDistance: 1.5, MouseInfluence: 0.8,
		Iterations: 5, Dt: DefaultDt,
	},
	"heavy": {
		Width: 40, Height: 25, Spacing: 1.0, Mass: 2.5, Gravity: 25.0,
		TearDistance: 2.0, MouseDistance: 1.5, MouseInfluence: 0.6,
		Iterations: 8, Dt: DefaultDt,
	},
	"zero-g": {
		Width: 30, Height: 20, Spacing: 1.0, Mass: 1.0, Gravity: 0,
		TearDistance: 1.6, MouseDistance: 1.5, MouseInfluence: 1.0,
		Iterations: 5, Dt: DefaultDt,
	},
	"stiff": {
		Width: 40, Height: 25, Spacing: 1.0, Mass: 1.0, Gravity: 9.81,
		TearDistance: 1.6, MouseDistance: 1.5, MouseInfluence: 0.6,
		Iterations: 15, Dt: DefaultDt,
	},
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
	return names
}
