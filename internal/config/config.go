package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/m-daichendt/comp3110/internal/linemap"
	"go.yaml.in/yaml/v3"
)

// Config represents ~/.linemap/config.yaml.
type Config struct {
	Weights           Weights `yaml:"weights"`
	MinScore          float64 `yaml:"min_score"`
	ContextWindow     int     `yaml:"context_window"`
	Candidates        int     `yaml:"candidates"`
	MaxAssignmentSize int     `yaml:"max_assignment_size"`
	Workers           int     `yaml:"workers"`
}

// Weights holds the similarity weights.
type Weights struct {
	Content       float64 `yaml:"content"`
	Context       float64 `yaml:"context"`
	PositionBonus float64 `yaml:"position_bonus"`
	Gram          float64 `yaml:"gram"`
}

// Default returns the config matching linemap.DefaultOptions.
func Default() Config {
	return FromOptions(linemap.DefaultOptions())
}

// FromOptions converts engine options to their file form.
func FromOptions(o linemap.Options) Config {
	return Config{
		Weights: Weights{
			Content:       o.ContentWeight,
			Context:       o.ContextWeight,
			PositionBonus: o.PositionBonus,
			Gram:          o.GramWeight,
		},
		MinScore:          o.MinScore,
		ContextWindow:     o.ContextWindow,
		Candidates:        o.Candidates,
		MaxAssignmentSize: o.MaxAssignmentSize,
		Workers:           o.Workers,
	}
}

// Options converts the config to engine options.
func (c Config) Options() linemap.Options {
	return linemap.Options{
		ContentWeight:     c.Weights.Content,
		ContextWeight:     c.Weights.Context,
		PositionBonus:     c.Weights.PositionBonus,
		GramWeight:        c.Weights.Gram,
		MinScore:          c.MinScore,
		ContextWindow:     c.ContextWindow,
		Candidates:        c.Candidates,
		MaxAssignmentSize: c.MaxAssignmentSize,
		Workers:           c.Workers,
	}
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Parse parses config.yaml bytes into a Config. Keys missing from data keep
// their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads and parses the config at path. A missing file yields defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
