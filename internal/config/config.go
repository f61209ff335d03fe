package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dyluth/xw3d/pkg/crossword"
	"github.com/dyluth/xw3d/pkg/lattice"
)

// DefaultPath is where the CLI looks for configuration.
const DefaultPath = "xw3d.yml"

// Load policies selectable in xw3d.yml.
const (
	PolicyCurrent = "current" // A-Z check, unbounded lattice
	PolicyLegacy  = "legacy"  // [-10, 10] coordinates, 10-letter words, no A-Z check
)

// Config represents the top-level xw3d.yml configuration
type Config struct {
	Version string        `yaml:"version"`
	Load    *LoadConfig   `yaml:"load,omitempty"`
	Render  *RenderConfig `yaml:"render,omitempty"`
	Scene   *SceneConfig  `yaml:"scene,omitempty"`
}

// LoadConfig selects the puzzle file load policy. The overrides, when set,
// replace the matching field of the named policy.
type LoadConfig struct {
	Policy        string `yaml:"policy"`                    // "current" (default) or "legacy"
	UppercaseOnly *bool  `yaml:"uppercase_only,omitempty"`  // reject words with characters outside A-Z
	MaxCoordinate *int   `yaml:"max_coordinate,omitempty"`  // 0 = unbounded
	MaxWordLength *int   `yaml:"max_word_length,omitempty"` // 0 = unbounded
}

// RenderConfig controls the emphasis weights handed to the renderer
type RenderConfig struct {
	DimEmphasis *float64 `yaml:"dim_emphasis,omitempty"` // weight of unselected words, default 0.35
}

// SceneConfig points the CLI at the Redis instance the renderer listens on
type SceneConfig struct {
	RedisURL string `yaml:"redis_url,omitempty"` // default redis://localhost:6379/0
	Session  string `yaml:"session,omitempty"`   // empty = generate one per run
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	c := &Config{Version: "1.0"}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return c
}

// Validate performs strict validation on the configuration and applies
// defaults to missing sections
func (c *Config) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Load == nil {
		c.Load = &LoadConfig{}
	}
	if c.Load.Policy == "" {
		c.Load.Policy = PolicyCurrent
	}
	if c.Load.Policy != PolicyCurrent && c.Load.Policy != PolicyLegacy {
		return fmt.Errorf("invalid load.policy: %s (must be '%s' or '%s')", c.Load.Policy, PolicyCurrent, PolicyLegacy)
	}
	if c.Load.MaxCoordinate != nil && *c.Load.MaxCoordinate < 0 {
		return fmt.Errorf("load.max_coordinate must be >= 0 (0 = unbounded), got %d", *c.Load.MaxCoordinate)
	}
	if c.Load.MaxWordLength != nil && *c.Load.MaxWordLength < 0 {
		return fmt.Errorf("load.max_word_length must be >= 0 (0 = unbounded), got %d", *c.Load.MaxWordLength)
	}

	if c.Render == nil {
		c.Render = &RenderConfig{}
	}
	if c.Render.DimEmphasis == nil {
		dim := lattice.DefaultEmphasis.Inactive
		c.Render.DimEmphasis = &dim
	}
	if d := *c.Render.DimEmphasis; d < 0 || d > 1 {
		return fmt.Errorf("render.dim_emphasis must be between 0 and 1, got %g", d)
	}

	if c.Scene == nil {
		c.Scene = &SceneConfig{}
	}
	if c.Scene.RedisURL == "" {
		c.Scene.RedisURL = "redis://localhost:6379/0"
	}

	return nil
}

// LoadPolicy returns the puzzle load policy the configuration selects.
// Call after Validate.
func (c *Config) LoadPolicy() crossword.LoadPolicy {
	policy := crossword.CurrentPolicy()
	if c.Load.Policy == PolicyLegacy {
		policy = crossword.LegacyPolicy()
	}

	if c.Load.UppercaseOnly != nil {
		policy.UppercaseOnly = *c.Load.UppercaseOnly
	}
	if c.Load.MaxCoordinate != nil {
		policy.MaxCoordinate = *c.Load.MaxCoordinate
	}
	if c.Load.MaxWordLength != nil {
		policy.MaxWordLength = *c.Load.MaxWordLength
	}

	return policy
}

// Emphasis returns the render weights. Call after Validate.
func (c *Config) Emphasis() lattice.Emphasis {
	return lattice.Emphasis{Active: lattice.DefaultEmphasis.Active, Inactive: *c.Render.DimEmphasis}
}

// Load reads and validates xw3d.yml from the specified path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}
