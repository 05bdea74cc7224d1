// Package config loads command configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// Output formats understood by the commands.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatFrames = "frames"
)

// Env holds the defaults commands fall back to when a flag is not given.
type Env struct {
	// Seed for the sampler. Zero draws a fresh seed.
	Seed     int64  `env:"TELEPORT_SEED" envDefault:"0"`
	Workers  int    `env:"TELEPORT_WORKERS" envDefault:"0"`
	LogLevel string `env:"TELEPORT_LOG_LEVEL" envDefault:"info"`
	Format   string `env:"TELEPORT_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses and validates Env.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	if err := e.Validate(); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Validate checks the fields that the environment parser cannot.
func (e Env) Validate() error {
	if e.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", e.Workers)
	}
	if _, err := ParseLevel(e.LogLevel); err != nil {
		return err
	}
	return ValidateFormat(e.Format)
}

// ParseLevel maps a level name such as "debug" to a log level.
func ParseLevel(s string) (log.Level, error) {
	l, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// ValidateFormat rejects unknown output formats.
func ValidateFormat(f string) error {
	switch f {
	case FormatText, FormatJSON, FormatFrames:
		return nil
	}
	return fmt.Errorf("unknown format %q, want %s, %s or %s", f, FormatText, FormatJSON, FormatFrames)
}
