// Package config loads songtab defaults from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-provided defaults. Command-line flags override them.
type Config struct {
	Format   string     `env:"SONGTAB_FORMAT" envDefault:"text"`
	DBPath   string     `env:"SONGTAB_DB" envDefault:"songtab.db"`
	Addr     string     `env:"SONGTAB_ADDR" envDefault:"127.0.0.1:8080"`
	LogLevel slog.Level `env:"SONGTAB_LOG_LEVEL" envDefault:"WARN"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns a Config populated from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
