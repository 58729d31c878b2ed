// Package config loads the framework configuration: logging, mining
// defaults, engine defaults, reporting output, and plugin paths.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level framework configuration.
type Config struct {
	Framework FrameworkConfig `yaml:"framework"`
	Mining    MiningConfig    `yaml:"mining"`
	Engine    EngineConfig    `yaml:"engine"`
	Reporting ReportingConfig `yaml:"reporting"`
	Plugins   PluginsConfig   `yaml:"plugins"`
}

// FrameworkConfig holds the ambient logging settings.
type FrameworkConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// MiningConfig holds defaults used when the CLI does not override them.
type MiningConfig struct {
	DefaultScenarioSetID string `yaml:"default_scenario_set_id"`
	DefaultCreatedAt     string `yaml:"default_created_at"`
}

// EngineConfig holds the metrics the engine runs by default and the
// shared config values fed to metric functions (e.g. speed thresholds).
type EngineConfig struct {
	DefaultMetrics  []string `yaml:"default_metrics"`
	StopSpeedMPS    float64  `yaml:"stop_speed_mps"`
	SpeedLimitMPS   float64  `yaml:"speed_limit_mps"`
}

// ReportingConfig controls where and in what formats artifacts are
// written.
type ReportingConfig struct {
	OutputDir string   `yaml:"output_dir"`
	Formats   []string `yaml:"formats"`
}

// PluginsConfig lists metric plugin .so files to load at startup.
type PluginsConfig struct {
	Paths []string `yaml:"paths"`
}

// Default returns the built-in configuration used when no file is
// supplied.
func Default() *Config {
	return &Config{
		Framework: FrameworkConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
		Mining: MiningConfig{
			DefaultScenarioSetID: "",
			DefaultCreatedAt:     "",
		},
		Engine: EngineConfig{
			DefaultMetrics: []string{},
			StopSpeedMPS:   0.05,
			SpeedLimitMPS:  0.0,
		},
		Reporting: ReportingConfig{
			OutputDir: "./out",
			Formats:   []string{"json"},
		},
		Plugins: PluginsConfig{
			Paths: []string{},
		},
	}
}

// Load reads configuration from a YAML file, falling back to Default if
// path does not exist. Environment variables in the file are expanded
// before parsing.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Reporting.OutputDir == "" {
		return fmt.Errorf("reporting.output_dir is required")
	}
	if c.Engine.StopSpeedMPS < 0 {
		return fmt.Errorf("engine.stop_speed_mps must be >= 0")
	}
	if c.Engine.SpeedLimitMPS < 0 {
		return fmt.Errorf("engine.speed_limit_mps must be >= 0")
	}
	return nil
}
