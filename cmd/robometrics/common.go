package main

import (
	"fmt"
	"os"

	"github.com/nitishsanghi/robometrics/config"
	"github.com/nitishsanghi/robometrics/telemetry/log"
)

// exitError carries a specific process exit code alongside the
// underlying error, so RunE can report a precise code without os.Exit
// scattered through subcommand bodies.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func newExitError(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCodeFor extracts the process exit code from an error returned by
// a subcommand's RunE, defaulting to 1 for errors with no explicit code.
func exitCodeFor(err error) int {
	var ee *exitError
	if e, ok := err.(*exitError); ok {
		ee = e
		return ee.code
	}
	return 1
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	level := log.LevelInfo
	if verbose {
		level = log.LevelDebug
	} else if cfg != nil && cfg.Framework.LogLevel != "" {
		level = log.Level(cfg.Framework.LogLevel)
	}
	format := log.FormatText
	if cfg != nil && cfg.Framework.LogFormat != "" {
		format = log.Format(cfg.Framework.LogFormat)
	}
	return log.New(log.Config{Level: level, Format: format, Output: os.Stdout})
}

