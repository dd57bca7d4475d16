// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default values
const (
	DefaultTheme    = "light"
	DefaultView     = "all"
	DefaultSort     = "created"
	DefaultLogLevel = "info"
)

// Config holds the full application configuration
type Config struct {
	// DataFile overrides the database file location
	DataFile string `toml:"data_file"`

	// Theme is the startup theme (light or dark); a theme saved from a
	// previous session takes precedence
	Theme string `toml:"theme"`

	// Startup view and sort mode
	DefaultView string `toml:"default_view"`
	DefaultSort string `toml:"default_sort"`

	// LogLevel controls the log file verbosity (debug, info, warn, error)
	LogLevel string `toml:"log_level"`
}

// DefaultPath returns the config file path under the user config directory
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "atd", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	setDefaults(cfg)
	return cfg, nil
}

// setDefaults fills in zero-valued fields
func setDefaults(cfg *Config) {
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.DefaultView == "" {
		cfg.DefaultView = DefaultView
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = DefaultSort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}
