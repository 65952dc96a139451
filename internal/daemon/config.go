// Package daemon manages the Stepling daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	Engine    EngineConfig    `toml:"engine"`
	API       APIConfig       `toml:"api"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// EngineConfig tunes the progression engine.
type EngineConfig struct {
	// Baseline is the expected full-day step count used for avatar
	// pacing. 0 uses the built-in default.
	Baseline int `toml:"baseline"`
	// Premium force-enables the premium entitlement. Development
	// override; production entitlement comes from the companion app.
	Premium bool `toml:"premium"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := steplingHome()
	return Config{
		Engine: EngineConfig{
			Baseline: 0, // auto
			Premium:  false,
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7788,
			CORSOrigins: []string{"*"},
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      filepath.Join(homeDir, "stepling.log"),
			MaxSizeMB: 50,
			MaxFiles:  5,
		},
	}
}

// LoadConfig reads config from ~/.stepling/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(steplingHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.stepling/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(steplingHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// steplingHome returns the Stepling data directory.
func steplingHome() string {
	if env := os.Getenv("STEPLING_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".stepling")
}

// SteplingHome is exported for use by other packages.
func SteplingHome() string {
	return steplingHome()
}
