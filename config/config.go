// Package config loads the curator configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the process configuration.
type Config struct {
	// Database is the path to the SQLite database file.
	Database string `yaml:"database"`

	// DefaultPublisher fills the publisher field on export when a
	// resource has none of its own.
	DefaultPublisher string `yaml:"default_publisher"`

	// Instance names this deployment; it is recorded as the acting user
	// for non-interactive imports.
	Instance string `yaml:"instance"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: "curator.db",
		Instance: "curator",
	}
}

// Load reads the configuration from path. An empty path falls back to the
// CURATOR_CONFIG environment variable, then to the built-in defaults. A
// path given explicitly must exist; the fallback path may be absent.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("CURATOR_CONFIG")
	}
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Database == "" {
		cfg.Database = "curator.db"
	}
	return cfg, nil
}
