// Package config resolves where and how kv stores its database.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/kv/internal/kvstore"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/kv/config.yml.
type Config struct {
	DBPath    string `yaml:"db_path,omitempty"`    // Database file; relative paths resolve against the working directory
	Backend   string `yaml:"backend,omitempty"`    // json, sqlite, or bolt
	LogLevel  string `yaml:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format,omitempty"` // text or json
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "kv"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	DefaultBackend   = kvstore.BackendJSON
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Environment variables that override the config file.
const (
	EnvDBPath    = "KV_DB_PATH"
	EnvBackend   = "KV_BACKEND"
	EnvLogLevel  = "KV_LOG_LEVEL"
	EnvLogFormat = "KV_LOG_FORMAT"
)

// ValidLogLevels lists the supported log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the supported log_format values.
var ValidLogFormats = []string{"text", "json"}

// defaultDBFiles maps each backend to its database file name.
var defaultDBFiles = map[string]string{
	kvstore.BackendJSON:   "data.db",
	kvstore.BackendSQLite: "data.sqlite",
	kvstore.BackendBolt:   "data.bolt",
}

// ConfigPath returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/kv/config.yml.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultDBPath returns the database file name used when db_path is unset.
func DefaultDBPath(backend string) string {
	if name, ok := defaultDBFiles[backend]; ok {
		return name
	}
	return defaultDBFiles[DefaultBackend]
}

// LoadFile reads configuration from path.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file, applies environment overrides and defaults,
// and validates the result.
func Load() (*Config, error) {
	cfg, err := LoadFile(ConfigPath())
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields with any non-empty KV_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
}

// ApplyDefaults fills unset fields and expands ~ in DBPath.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath(c.Backend)
	}
	c.DBPath = ExpandTilde(c.DBPath)
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}

// Validate checks the backend and log settings.
func (c *Config) Validate() error {
	if !contains(kvstore.Backends, c.Backend) {
		return fmt.Errorf("invalid backend: %s (valid: %v)", c.Backend, kvstore.Backends)
	}
	if !contains(ValidLogLevels, strings.ToLower(strings.TrimSpace(c.LogLevel))) {
		return fmt.Errorf("invalid log_level: %s (valid: %v)", c.LogLevel, ValidLogLevels)
	}
	if !contains(ValidLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log_format: %s (valid: %v)", c.LogFormat, ValidLogFormats)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
