// Package config handles turniptext configuration file loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/connerohnesorge/turniptext/internal/theme"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the turniptext configuration file.
const ConfigFileName = "turniptext.yaml"

// Config holds the demo CLI's configuration. The core parser never reads
// this: it is ambient CLI-demo tooling, loaded once by the "parse"
// subcommand and handed to internal/diagnostics and internal/loader.
type Config struct {
	// Theme is the name of the diagnostic color theme to use
	// (default, dark, light, solarized, monokai).
	Theme string `yaml:"theme"`
	// IncludeRoots lists the directories internal/loader searches, in
	// order, when resolving a load(name) include that names a relative
	// path. An empty list means names resolve only against the loader
	// filesystem's current working directory.
	IncludeRoots []string `yaml:"include_roots"`
	// ProjectRoot is the absolute directory turniptext.yaml was found in,
	// or the starting directory if no config file exists.
	ProjectRoot string `yaml:"-"`
}

// Load searches for turniptext.yaml starting from the current working
// directory, walking up the directory tree. If found, it parses the
// configuration. If not found, returns default configuration.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return LoadFromPath(cwd)
}

// LoadFromPath searches for turniptext.yaml starting from the given path,
// walking up the directory tree. If found, it parses the configuration.
// If not found, returns default configuration with startPath as ProjectRoot.
func LoadFromPath(startPath string) (*Config, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to resolve absolute path for %q: %w",
			startPath,
			err,
		)
	}

	currentPath := absPath
	for {
		configPath := filepath.Join(currentPath, ConfigFileName)

		if _, err := os.Stat(configPath); err == nil {
			cfg, err := parseConfigFile(configPath)
			if err != nil {
				return nil, err
			}
			cfg.ProjectRoot = currentPath

			if err := cfg.validate(); err != nil {
				return nil, fmt.Errorf(
					"invalid configuration in %s: %w",
					configPath,
					err,
				)
			}

			return cfg, nil
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			break
		}
		currentPath = parentPath
	}

	return &Config{
		Theme:       "default",
		ProjectRoot: absPath,
	}, nil
}

// parseConfigFile reads and parses a turniptext.yaml file.
func parseConfigFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		var yamlErr *yaml.TypeError
		if errors.As(err, &yamlErr) {
			return nil, fmt.Errorf("invalid YAML syntax: %v", yamlErr.Errors)
		}

		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Theme == "" {
		cfg.Theme = "default"
	}

	return &cfg, nil
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if _, err := theme.Get(c.Theme); err != nil {
		available := theme.Available()

		return fmt.Errorf(
			"invalid theme '%s', available themes: %s",
			c.Theme,
			strings.Join(available, ", "),
		)
	}

	for _, root := range c.IncludeRoots {
		if root == "" {
			return errors.New("include_roots entries cannot be empty")
		}
	}

	return nil
}
