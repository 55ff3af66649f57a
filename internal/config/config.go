// Package config loads runtime settings from the environment. The command
// line is limited to the module path and the locale flag, so everything
// else (logging, output location, parallelism) is tuned here.
package config

import (
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"

	"github.com/FocuswithJustin/sword-to-obsidian/core/errors"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/logging"
)

// Settings holds the environment-derived configuration.
type Settings struct {
	LogLevel  string `env:"STO_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"STO_LOG_FORMAT" envDefault:"text"`
	OutputDir string `env:"STO_OUTPUT_DIR" envDefault:"."`
	Workers   int    `env:"STO_WORKERS" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

// Load reads Settings from the process environment and validates them.
func Load() (*Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return nil, &errors.ConfigError{Field: "environment", Message: "cannot parse", Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every setting has a usable value.
func (s *Settings) Validate() error {
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return &errors.ConfigError{Field: "STO_LOG_LEVEL", Message: "invalid value", Err: err}
	}
	if _, err := logging.ParseFormat(s.LogFormat); err != nil {
		return &errors.ConfigError{Field: "STO_LOG_FORMAT", Message: "invalid value", Err: err}
	}
	if s.OutputDir == "" {
		return errors.NewConfig("", "STO_OUTPUT_DIR", "must not be empty")
	}
	if s.Workers < 0 {
		return errors.NewConfig("", "STO_WORKERS", fmt.Sprintf("must not be negative, got %d", s.Workers))
	}
	return nil
}

// WorkerCount resolves the number of parallel book writers.
func (s *Settings) WorkerCount() int {
	if s.Workers <= 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

// ApplyLogging initializes the global logger from the settings.
func (s *Settings) ApplyLogging() {
	level, _ := logging.ParseLevel(s.LogLevel)
	format, _ := logging.ParseFormat(s.LogFormat)
	logging.InitLogger(level, format)
}
