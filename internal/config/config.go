// Package config loads application configuration from a YAML file, falling
// back to built-in defaults for anything unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/sweep"
)

// LoggingConfig controls log verbosity (0=error .. 3=trace).
type LoggingConfig struct {
	Verbosity int `yaml:"verbosity"`
}

// ServerConfig holds REST server settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// SolverConfig holds implied-volatility solver settings.
type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Solver  SolverConfig  `yaml:"solver"`
	Sweep   sweep.Config  `yaml:"sweep"`
}

// Default returns the built-in configuration: an ATM one-year sweep over
// spot 50..150 and the solver's standard tolerance and budget.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: ":8080"},
		Logging: LoggingConfig{Verbosity: int(logger.Info)},
		Solver: SolverConfig{
			Tolerance:     pricing.DefaultTolerance,
			MaxIterations: pricing.DefaultMaxIter,
		},
		Sweep: sweep.Config{
			SpotMin:    50,
			SpotMax:    150,
			Points:     100,
			Strike:     100,
			Maturity:   1.0,
			Rate:       0.05,
			Volatility: 0.20,
		},
	}
}

// Load reads path and merges it over the defaults. An empty path returns
// the defaults unchanged; a missing or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Solver.Tolerance <= 0 {
		cfg.Solver.Tolerance = pricing.DefaultTolerance
	}
	if cfg.Solver.MaxIterations <= 0 {
		cfg.Solver.MaxIterations = pricing.DefaultMaxIter
	}

	logger.Debugf("loaded config from %s", path)
	return cfg, nil
}
