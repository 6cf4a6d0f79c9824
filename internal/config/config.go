package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
//
// Seed drives both parameter initialisation and, when Shuffle is set, the
// per-epoch sample order.
type Config struct {
	Epochs         int     `yaml:"epochs"`
	LearningRate   float64 `yaml:"learning_rate"`
	Seed           int64   `yaml:"seed"`
	LogEvery       int     `yaml:"log_every"`
	Shuffle        bool    `yaml:"shuffle"`
	DataPath       string  `yaml:"data_path"`
	HistoryPath    string  `yaml:"history_path"`
	CheckpointPath string  `yaml:"checkpoint_path"`
}

// Overrides captures CLI supplied values. Zero values mean "not set",
// except Seed, which is applied whenever it is non-nil so 0 stays selectable.
type Overrides struct {
	Epochs         int
	LearningRate   float64
	Seed           *int64
	LogEvery       int
	Shuffle        bool
	DataPath       string
	HistoryPath    string
	CheckpointPath string
}

// Default returns the settings of the reference run: 1000 epochs at 0.1.
func Default() *Config {
	return &Config{
		Epochs:       1000,
		LearningRate: 0.1,
		Seed:         1,
		LogEvery:     10,
	}
}

// Load reads and validates a Config from YAML. Keys missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Shuffle {
		c.Shuffle = true
	}
	if o.DataPath != "" {
		c.DataPath = o.DataPath
	}
	if o.HistoryPath != "" {
		c.HistoryPath = o.HistoryPath
	}
	if o.CheckpointPath != "" {
		c.CheckpointPath = o.CheckpointPath
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 10
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
