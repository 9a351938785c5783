// Package config loads engine configuration and inference-graph fixture
// files from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OmOmofonmwan/puli/pkg/puli/internalerr"
	"github.com/OmOmofonmwan/puli/pkg/puli/justifications"
)

// Selection strategy names accepted in configuration files.
const (
	SelectionBottomUp  = "bottom-up"
	SelectionTopDown   = "top-down"
	SelectionThreshold = "threshold"
)

// Config holds the tunable parameters of the justification engine.
type Config struct {
	Selection string `yaml:"selection"`
	Threshold int    `yaml:"threshold"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Selection: SelectionThreshold,
		Threshold: justifications.DefaultThreshold,
		LogLevel:  "info",
	}
}

// Load reads a Config from a YAML file. Missing fields keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch c.Selection {
	case SelectionBottomUp, SelectionTopDown, SelectionThreshold:
	default:
		return fmt.Errorf("%w: unknown selection %q", internalerr.ErrInvalidConfig, c.Selection)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: negative threshold %d", internalerr.ErrInvalidConfig, c.Threshold)
	}
	return nil
}

// SelectionFor resolves the configured selection strategy.
func SelectionFor[C, A comparable](c Config) (justifications.SelectionFactory[C, A], error) {
	switch c.Selection {
	case SelectionBottomUp:
		return justifications.BottomUp[C, A](), nil
	case SelectionTopDown:
		return justifications.TopDown[C, A](), nil
	case SelectionThreshold:
		return justifications.Threshold[C, A](c.Threshold), nil
	default:
		return nil, fmt.Errorf("%w: unknown selection %q", internalerr.ErrInvalidConfig, c.Selection)
	}
}
