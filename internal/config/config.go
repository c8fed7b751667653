package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backends a config may select.
const (
	BackendSQLite = "sqlite"
	BackendAPI    = "api"
	BackendMemory = "memory"
)

// Config holds fleetops settings stored at ~/.fleetops/config.
type Config struct {
	Backend           string `yaml:"backend"`
	DatabasePath      string `yaml:"database_path,omitempty"`
	APIURL            string `yaml:"api_url,omitempty"`
	APIKey            string `yaml:"api_key,omitempty"`
	Theme             string `yaml:"theme,omitempty"`
	VimKeys           bool   `yaml:"vim_keys"`
	SearchPlaceholder string `yaml:"search_placeholder,omitempty"`
	UnknownText       string `yaml:"unknown_text,omitempty"`
}

// Dir returns the directory holding the config file and the default database.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fleetops")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Default returns the config used when no file exists yet.
func Default() *Config {
	return &Config{
		Backend:      BackendSQLite,
		DatabasePath: filepath.Join(Dir(), "fleet.db"),
		Theme:        "dark",
	}
}

// Load reads and parses the config file. A missing file yields an error
// wrapping os.ErrNotExist so callers can fall back to Default.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Only a stored key makes the file sensitive.
	if cfg.APIKey != "" {
		if perm := info.Mode().Perm(); perm != 0600 {
			return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load with a fallback to Default when no file exists.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the backend selection and its required settings.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "":
		c.Backend = BackendSQLite
	case BackendSQLite, BackendAPI, BackendMemory:
	default:
		return fmt.Errorf("config backend %q not supported (want sqlite, api or memory)", c.Backend)
	}
	if c.Backend == BackendSQLite && strings.TrimSpace(c.DatabasePath) == "" {
		c.DatabasePath = filepath.Join(Dir(), "fleet.db")
	}
	return nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}
