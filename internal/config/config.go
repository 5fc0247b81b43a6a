// Package config holds all advent configuration, resolved once at startup
// and passed into the coordinators explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"advent/internal/errs"
)

// DefaultBaseURL is the grading service root.
const DefaultBaseURL = "https://adventofcode.com"

// Config holds all advent configuration.
type Config struct {
	// Session is the adventofcode.com session cookie value.
	Session string `yaml:"session"`

	// Editor is the command used to open a freshly bootstrapped puzzle.
	Editor string `yaml:"editor"`

	// BaseURL overrides the grading service root, mainly for tests.
	BaseURL string `yaml:"base_url"`

	// Logging controls the category file logger.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures debug file logging under .advent/logs/.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"`
}

// Load reads <repo>/.advent/config.yaml if present, then applies env
// overrides. A missing config file is not an error.
func Load(repo string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(repo, ".advent", "config.yaml")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// applyEnvOverrides layers environment variables over file values.
// Env always wins so CI and one-off shells behave predictably.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AOC_SESSION"); v != "" {
		c.Session = v
	}
	if v := os.Getenv("ADVENT_EDITOR"); v != "" {
		c.Editor = v
	} else if c.Editor == "" {
		c.Editor = os.Getenv("EDITOR")
	}
	if v := os.Getenv("ADVENT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}

// RequireSession returns the session token or a ConfigError telling the
// user how to provide one. Called only when a network call is imminent.
func (c *Config) RequireSession() (string, error) {
	if c.Session == "" {
		return "", errs.Configf("no session token configured: set AOC_SESSION or add 'session:' to .advent/config.yaml")
	}
	return c.Session, nil
}
