// Package config provides configuration types, defaults, and persistence for
// roster.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"roster/internal/log"
	"roster/internal/paths"
)

// Config holds all configuration options for roster.
type Config struct {
	// CatalogRoot is the shared catalog location (default: ~/.roster/catalog).
	CatalogRoot string `mapstructure:"catalog_root"`

	// Project overrides the project directory (default: current directory).
	Project string `mapstructure:"project"`

	// Output selects command output: "text" or "json".
	Output string `mapstructure:"output"`

	// MaxSnapshots caps how many backups the CLI keeps after a destructive
	// operation. 0 disables pruning; the core never prunes on its own.
	MaxSnapshots int `mapstructure:"max_snapshots"`

	// WatchDebounce is the settle time for 'validate --watch'.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		CatalogRoot:   paths.DefaultCatalogRoot(),
		Output:        "text",
		MaxSnapshots:  10,
		WatchDebounce: 500 * time.Millisecond,
	}
}

// Validate checks configuration for errors. Empty values use defaults.
func Validate(cfg Config) error {
	if cfg.Output != "" && cfg.Output != "text" && cfg.Output != "json" {
		return fmt.Errorf("output must be \"text\" or \"json\", got %q", cfg.Output)
	}
	if cfg.MaxSnapshots < 0 {
		return fmt.Errorf("max_snapshots must be >= 0, got %d", cfg.MaxSnapshots)
	}
	if cfg.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must be >= 0, got %v", cfg.WatchDebounce)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with
// comments.
func DefaultConfigTemplate() string {
	return `# Roster Configuration

# Shared catalog location (default: ~/.roster/catalog)
# catalog_root: /path/to/catalog

# Project directory (default: current directory)
# project: /path/to/project

# Command output: text (default) or json
output: text

# How many snapshots to keep after destructive operations (0 = keep all)
max_snapshots: 10

# Settle time for 'roster validate --watch'
watch_debounce: 500ms
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
