// Package config loads and validates the optional launcher.yml file
// from the launcher state directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/iamglitched-debug/glitched.launcher/internal/launch"
)

// File is the config file name inside the state directory.
const File = "launcher.yml"

// Default values for launch settings.
const (
	DefaultMemoryMB = 2048
	DefaultWidth    = 854
	DefaultHeight   = 480
	DefaultJava     = "java"
	DefaultHistory  = 20
)

// Config holds the parsed launcher.yml.
// All fields are optional; zero values represent defaults.
type Config struct {
	RawMemoryMB int    `yaml:"memory_mb"`
	RawWidth    int    `yaml:"window_width"`
	RawHeight   int    `yaml:"window_height"`
	RawJava     string `yaml:"java"`
	RawHistory  int    `yaml:"history_size"`
	GameDir     string `yaml:"game_dir"` // overrides the platform default
	Version     string `yaml:"version"`  // default target version
	Loader      string `yaml:"loader"`   // default loader kind
}

// MemoryMB returns the configured heap limit or the default. Values
// below the accepted minimum fall back to the default.
func (c *Config) MemoryMB() int {
	if c.RawMemoryMB >= launch.MinMemoryMB {
		return c.RawMemoryMB
	}
	return DefaultMemoryMB
}

// Width returns the configured window width or the default.
func (c *Config) Width() int {
	if c.RawWidth > 0 {
		return c.RawWidth
	}
	return DefaultWidth
}

// Height returns the configured window height or the default.
func (c *Config) Height() int {
	if c.RawHeight > 0 {
		return c.RawHeight
	}
	return DefaultHeight
}

// Java returns the configured java binary path or the default.
func (c *Config) Java() string {
	if c.RawJava != "" {
		return c.RawJava
	}
	return DefaultJava
}

// HistorySize returns the configured history cache size or the default.
func (c *Config) HistorySize() int {
	if c.RawHistory > 0 {
		return c.RawHistory
	}
	return DefaultHistory
}

// StateDir returns the launcher's own state directory, holding the
// config file, logs, and launch history.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "glitched")
}

// Load reads launcher.yml from dir. If the file does not exist, a
// default Config is returned.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, File)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", File, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", File, err)
	}
	return cfg, nil
}
