// Package config loads the defaults of the command line flags from the
// environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the values shared by every command
type Config struct {
	Episodes      int     `env:"MDP_EPISODES" envDefault:"500"`
	Horizon       int     `env:"MDP_HORIZON" envDefault:"100"`
	SavePath      string  `env:"MDP_SAVE" envDefault:"results"`
	Runs          int     `env:"MDP_RUNS" envDefault:"1"`
	Tolerance     float64 `env:"MDP_TOLERANCE" envDefault:"0.01"`
	MaxIterations int     `env:"MDP_MAX_ITERATIONS" envDefault:"10000"`
	Seed          uint64  `env:"MDP_SEED" envDefault:"42"`
}

// Load reads the configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
