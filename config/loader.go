package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by LoadFile when the YAML file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Load starts from DefaultConfig and applies, in order, a .env file (if any),
// the process environment and the optional YAML file at yamlPath.
func Load(yamlPath string) (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			return nil, fmt.Errorf(".env file found but could not be loaded: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if yamlPath != "" {
		if err := LoadFile(yamlPath, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg.
// Keys absent from the file leave the current values untouched.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}
