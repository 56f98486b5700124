package config

import (
	"fmt"
	"os"

	"github.com/san-kum/clothlab/internal/cloth"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth          = 40
	DefaultHeight         = 25
	DefaultSpacing        = 1.0
	DefaultMass           = 1.0
	DefaultGravity        = 9.81
	DefaultTearDistance   = 1.6
	DefaultMouseDistance  = 1.5
	DefaultMouseInfluence = 0.6
	DefaultIterations     = 5
	DefaultDt             = 1.0 / 60
)

// Config is the on-disk shape of a simulation setup. Dt belongs to the
// driver, everything else to the mesh.
type Config struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Spacing        float64 `yaml:"spacing"`
	Mass           float64 `yaml:"mass"`
	Gravity        float64 `yaml:"gravity"`
	TearDistance   float64 `yaml:"tear_distance"`
	MouseDistance  float64 `yaml:"mouse_distance"`
	MouseInfluence float64 `yaml:"mouse_influence"`
	Iterations     int     `yaml:"iterations"`
	Dt             float64 `yaml:"dt"`
	AnchorY        float64 `yaml:"anchor_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Spacing:        DefaultSpacing,
		Mass:           DefaultMass,
		Gravity:        DefaultGravity,
		TearDistance:   DefaultTearDistance,
		MouseDistance:  DefaultMouseDistance,
		MouseInfluence: DefaultMouseInfluence,
		Iterations:     DefaultIterations,
		Dt:             DefaultDt,
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

// Mesh converts to the kernel's config type.
func (c *Config) Mesh() cloth.Config {
	return cloth.Config{
		Width:          c.Width,
		Height:         c.Height,
		Spacing:        c.Spacing,
		Mass:           c.Mass,
		Gravity:        c.Gravity,
		TearDistance:   c.TearDistance,
		MouseDistance:  c.MouseDistance,
		MouseInfluence: c.MouseInfluence,
		Iterations:     c.Iterations,
		AnchorY:        c.AnchorY,
	}
}

// Validate checks the driver timestep and the mesh parameters.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	return c.Mesh().Validate()
}
