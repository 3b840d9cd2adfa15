// Package config reads pageorder settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file in the working directory. Command-line flags take precedence;
// that merge happens in the cli package.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every error Parse returns.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds environment-driven defaults for the CLI.
type Config struct {
	// Format is the output format, "text" or "json".
	Format string `env:"PAGEORDER_FORMAT" envDefault:"text"`

	// DBPath is the SQLite database used by record and history.
	DBPath string `env:"PAGEORDER_DB"`

	// Workers is the number of goroutines used to validate updates.
	Workers int `env:"PAGEORDER_WORKERS" envDefault:"1"`

	// LogLevel accepts any slog level name (debug, info, warn, error).
	LogLevel slog.Level `env:"PAGEORDER_LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then parses the environment.
// Variables already set in the process are not overridden by the file.
func Load() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()
	return Parse()
}

// LoadFile is like Load but reads the named env files instead of .env.
// Unlike Load, a missing file is an error.
func LoadFile(filenames ...string) (Config, error) {
	if err := godotenv.Load(filenames...); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return Parse()
}

// Parse reads Config from the current environment and validates it.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that env tags cannot express.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: PAGEORDER_FORMAT must be text or json, got %q", ErrInvalidConfig, c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: PAGEORDER_WORKERS must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}
