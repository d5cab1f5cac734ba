// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/quillforge/quill-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete quill configuration.
type Config struct {
	// Storage configuration
	Storage StorageConfig `toml:"storage" json:"storage"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// StorageConfig controls where drafts are persisted.
type StorageConfig struct {
	// Backend selects the store implementation: "file", "sqlite", "memory".
	// "memory" keeps drafts for the process lifetime only.
	Backend string `toml:"backend" json:"backend"`

	// Dir is the base directory for the file backend.
	// Default: ~/.quill/drafts
	Dir string `toml:"dir" json:"dir"`

	// SQLitePath is the database file for the sqlite backend.
	// Default: ~/.quill/drafts.db
	SQLitePath string `toml:"sqlite_path" json:"sqlite_path"`

	// MaxStoredHistory bounds how many history entries the editor keeps
	// per draft. The recovery overlay only ever shows five.
	MaxStoredHistory int `toml:"max_stored_history" json:"max_stored_history"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// RecoveryTitle is the heading of the draft recovery overlay.
	RecoveryTitle string `toml:"recovery_title" json:"recovery_title"`

	// AutosaveSeconds is the editor autosave interval.
	AutosaveSeconds int `toml:"autosave_seconds" json:"autosave_seconds"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// File receives diagnostics. Default: ~/.quill/quill.log
	File string `toml:"file" json:"file"`

	// Level is the minimum level: "debug", "info", "warn", "error".
	Level string `toml:"level" json:"level"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:          "file",
			MaxStoredHistory: 20,
		},
		UI: UIConfig{
			RecoveryTitle:   "Recover Draft",
			AutosaveSeconds: 2,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns ~/.quill.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".quill"), nil
}

// fillDefaults resolves home-relative paths left empty by the user.
func fillDefaults(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = filepath.Join(dir, "drafts")
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(dir, "drafts.db")
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(dir, "quill.log")
	}
	if cfg.Storage.MaxStoredHistory <= 0 {
		cfg.Storage.MaxStoredHistory = 20
	}
	if cfg.UI.AutosaveSeconds <= 0 {
		cfg.UI.AutosaveSeconds = 2
	}
	if cfg.UI.RecoveryTitle == "" {
		cfg.UI.RecoveryTitle = "Recover Draft"
	}
	return nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, trying TOML first, then JSON, then
// falling back to defaults. Environment overrides apply in every case.
func Load() (*Config, error) {
	cfg := Default()

	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	tomlPath := filepath.Join(dir, "config.toml")
	if _, statErr := os.Stat(tomlPath); statErr == nil {
		if err := LoadTOML(cfg, tomlPath); err != nil {
			return nil, err
		}
		return finish(cfg)
	}

	jsonPath := filepath.Join(dir, "config.json")
	if _, statErr := os.Stat(jsonPath); statErr == nil {
		if err := LoadJSON(cfg, jsonPath); err != nil {
			return nil, err
		}
		return finish(cfg)
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := fillDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies QUILL_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("QUILL_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("QUILL_STORAGE_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("QUILL_SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := os.Getenv("QUILL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("QUILL_AUTOSAVE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.UI.AutosaveSeconds = n
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "memory", "":
	default:
		return fmt.Errorf("unknown storage backend %q (want file, sqlite, or memory)", c.Storage.Backend)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}

	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration as TOML to ~/.quill/config.toml.
func Save(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, filepath.Join(dir, "config.toml"))
}

// SaveTOML writes the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf []byte
	{
		b := &tomlBuffer{}
		if err := toml.NewEncoder(b).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		buf = b.data
	}
	return util.AtomicWriteFile(path, buf, 0600)
}

// tomlBuffer is a minimal io.Writer for the TOML encoder.
type tomlBuffer struct {
	data []byte
}

func (b *tomlBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
