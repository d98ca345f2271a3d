// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig `toml:"server"`

	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Feed configuration
	Feed FeedConfig `toml:"feed"`

	// Analysis configuration
	Analysis AnalysisConfig `toml:"analysis"`
}

// ServerConfig contains API server settings.
type ServerConfig struct {
	Port int `toml:"port"` // HTTP listen port
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Path to the database file ("" = default location)
	BusyTimeout string `toml:"busy_timeout"` // Driver busy timeout (e.g., "5s")
	AutoMigrate bool   `toml:"auto_migrate"` // Run migrations on startup
}

// FeedConfig contains called-number feed settings.
type FeedConfig struct {
	FilePath string `toml:"file_path"` // Path to the feed file ("" = disabled)
	RateRPS  int    `toml:"rate_rps"`  // Max calls applied per second from the feed
}

// AnalysisConfig contains analysis tuning settings.
type AnalysisConfig struct {
	ClosestLimit int `toml:"closest_limit"` // Entries in the closest-patterns list (0 = all)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path:        "",
			BusyTimeout: "5s",
			AutoMigrate: true,
		},
		Feed: FeedConfig{
			FilePath: "",
			RateRPS:  5,
		},
		Analysis: AnalysisConfig{
			ClosestLimit: 5,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".bingo-companion")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// DefaultDatabasePath returns the default database location under the
// user's config directory.
func DefaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".bingo-companion")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "bingo.db"), nil
}

// Load loads the configuration from disk. Returns default config if the
// file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := time.ParseDuration(c.Database.BusyTimeout); err != nil {
		return fmt.Errorf("invalid busy timeout %q: %w", c.Database.BusyTimeout, err)
	}

	if c.Feed.RateRPS <= 0 {
		return fmt.Errorf("feed rate must be positive: %d", c.Feed.RateRPS)
	}

	if c.Analysis.ClosestLimit < 0 {
		return fmt.Errorf("closest limit cannot be negative: %d", c.Analysis.ClosestLimit)
	}

	return nil
}

// GetBusyTimeout returns the database busy timeout as a duration.
func (c *Config) GetBusyTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Database.BusyTimeout)
}
