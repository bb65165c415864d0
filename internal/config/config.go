package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Cache backends
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	API         APIConfig    `yaml:"api"`
	Cache       CacheConfig  `yaml:"cache"`
	Server      ServerConfig `yaml:"server"`
	Log         LogConfig    `yaml:"log"`
	Events      EventsConfig `yaml:"events"`
	KeyMappings KeyMappings  `yaml:"key_mappings"`
	ColorScheme ColorScheme  `yaml:"theme"`
}

// APIConfig points the services at the remote REST API
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"TASKDECK_API_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TASKDECK_API_TIMEOUT"`
}

// CacheConfig selects where store snapshots are persisted
type CacheConfig struct {
	Backend string `yaml:"backend" env:"TASKDECK_CACHE_BACKEND"`
	Path    string `yaml:"path" env:"TASKDECK_CACHE_PATH"`
}

// ServerConfig configures the development API server
type ServerConfig struct {
	Addr   string `yaml:"addr" env:"TASKDECK_SERVER_ADDR"`
	DBPath string `yaml:"db_path" env:"TASKDECK_SERVER_DB"`
}

// LogConfig configures the log file
type LogConfig struct {
	Level string `yaml:"level" env:"TASKDECK_LOG_LEVEL"`
	Path  string `yaml:"path" env:"TASKDECK_LOG_PATH"`
}

// EventsConfig sizes the in-process change broker
type EventsConfig struct {
	QueueSize int `yaml:"queue_size" env:"TASKDECK_EVENT_QUEUE_SIZE"`
}

// Default returns a config with every field set to its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads config from the user's config directory.
// Returns default config (plus environment overrides) if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		configPath = ""
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from an explicit path. An empty or missing path
// yields the defaults. Environment variables override file values.
func LoadFrom(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case os.IsNotExist(err):
			// defaults only
		default:
			return nil, err
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to configPath, creating parent directories
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendSQLite, CacheBackendMemory:
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.Cache.Backend)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api timeout must be positive", ErrInvalidConfig)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api base_url is required", ErrInvalidConfig)
	}
	if c.Events.QueueSize < 0 {
		return fmt.Errorf("%w: events queue_size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "taskdeck", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "taskdeck", "config.yaml"), nil
}

// DataDir returns ~/.taskdeck, where the cache and server databases live
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdeck"
	}
	return filepath.Join(home, ".taskdeck")
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:3000"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 10 * time.Second
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendSQLite
	}
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(DataDir(), "cache.db")
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.DBPath == "" {
		c.Server.DBPath = filepath.Join(DataDir(), "server.db")
	}
	if c.Events.QueueSize == 0 {
		c.Events.QueueSize = 100
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
