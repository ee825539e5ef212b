// Package config loads the generator command-line tool's YAML inputs (the
// id-override config and the custom-edges sidecar), wrapping read and parse
// failures in worldnav.ConfigError.
package config

import (
	"os"

	"gopkg.in/yaml.v2"

	worldnav "worldnav"
	"worldnav/internal/generator"
)

// LoadGeneratorConfig reads and parses a generator id-override file at
// path. A missing path is not an error: the generator runs with no
// exclusions.
func LoadGeneratorConfig(path string) (generator.GeneratorConfig, error) {
	var cfg generator.GeneratorConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &worldnav.ConfigError{Path: path, Cause: err}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &worldnav.ConfigError{Path: path, Cause: err}
	}
	return cfg, nil
}

// LoadCustomEdges reads the custom-edges sidecar at path, if any, and
// installs it into grid.
func LoadCustomEdges(grid *worldnav.NavGrid, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &worldnav.ConfigError{Path: path, Cause: err}
	}
	if err := worldnav.LoadCustomEdges(grid, data); err != nil {
		return &worldnav.ConfigError{Path: path, Cause: err}
	}
	return nil
}
