package app

import (
	"errors"
	"fmt"
)

// Config holds all the configuration for an App instance to run.
type Config struct {
	ProgramPaths []string // .noma.hcl files or directories containing them

	DumpGraph bool // print each function's node table
	PrintAST  bool // print each function's statements
	CheckOnly bool // build graphs without running the forward pass

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
	MetricsFile     string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ProgramPaths) == 0 {
		return nil, errors.New("ProgramPaths is a required configuration field and cannot be empty")
	}
	for _, p := range cfg.ProgramPaths {
		if p == "" {
			return nil, errors.New("program path cannot be empty")
		}
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port %d out of range", cfg.HealthcheckPort)
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("worker count cannot be negative, got %d", cfg.WorkerCount)
	}

	cfg.ProgramPaths = append([]string(nil), cfg.ProgramPaths...)
	return &cfg, nil
}
