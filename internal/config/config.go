// Copyright (c) 2025 Fireside Chat authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// fireside client.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location (in order of precedence):
//   - $FIRESIDE_CONFIG
//   - ~/.fireside/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete fireside client configuration.
type Config struct {
	// ServerURL is the base URL of the Fireside backend.
	ServerURL string `toml:"server_url"`

	// TimeoutSecs is the request timeout in seconds. 0 disables the
	// client-side timeout and leaves hang behavior to the transport.
	TimeoutSecs int `toml:"timeout_secs"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// HistoryPanelWidth is the width of the history panel in columns.
	HistoryPanelWidth int `toml:"history_panel_width"`
	// ShowTimestamps shows message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps"`
	// PlainOutput disables colors and markdown rendering in CLI output.
	PlainOutput bool `toml:"plain_output"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		ServerURL:   "http://localhost:8000",
		TimeoutSecs: 60,
		UI: UIConfig{
			HistoryPanelWidth: 32,
			ShowTimestamps:    false,
			PlainOutput:       false,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the fireside configuration directory (~/.fireside).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".fireside"), nil
}

// ConfigPath returns the path of the TOML config file, honoring the
// FIRESIDE_CONFIG override.
func ConfigPath() (string, error) {
	if p := os.Getenv("FIRESIDE_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads configuration from the config file, falling back to defaults
// when the file does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from an explicit path. A missing file is
// not an error; defaults are used.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the config file, creating the
// configuration directory if needed.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// =============================================================================
// DEFAULTS / OVERRIDES / VALIDATION
// =============================================================================

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.ServerURL == "" {
		c.ServerURL = def.ServerURL
	}
	if c.TimeoutSecs < 0 {
		c.TimeoutSecs = def.TimeoutSecs
	}
	if c.UI.HistoryPanelWidth <= 0 {
		c.UI.HistoryPanelWidth = def.UI.HistoryPanelWidth
	}
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	// FIRESIDE_SERVER_URL
	if u := os.Getenv("FIRESIDE_SERVER_URL"); u != "" {
		c.ServerURL = u
	}

	// FIRESIDE_TIMEOUT_SECS
	if t := os.Getenv("FIRESIDE_TIMEOUT_SECS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs >= 0 {
			c.TimeoutSecs = secs
		}
	}

	// NO_COLOR (https://no-color.org)
	if os.Getenv("NO_COLOR") != "" {
		c.UI.PlainOutput = true
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("server_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server_url: missing host in %q", c.ServerURL)
	}
	if c.TimeoutSecs < 0 {
		return fmt.Errorf("timeout_secs: must be >= 0, got %d", c.TimeoutSecs)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
