// Package config loads the CycleSense runtime configuration from an
// optional YAML file layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/cyclesense/internal/store"
)

// EnvConfigPath names the environment variable holding a config file path.
const EnvConfigPath = "CYCLESENSE_CONFIG"

// FileName is the config file looked up inside the data directory when no
// explicit path is given.
const FileName = "config.yaml"

// Config represents the complete runtime configuration
type Config struct {
	DataDir string        `yaml:"data_dir"`
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// HistoryConfig controls the report history log.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	// Limit is the number of reports kept; older ones are pruned after each
	// save. It is also the default page size of history listings.
	Limit int `yaml:"limit"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		DataDir: store.DefaultConfig().DataDir,
		Log:     LogConfig{Level: "info"},
		History: HistoryConfig{Enabled: true, Limit: 200},
	}
}

// ResolvePath picks the config file to read: the explicit path, then
// $CYCLESENSE_CONFIG, then <default data dir>/config.yaml. explicit reports
// whether the file was requested by the user (and so must exist).
func ResolvePath(flagPath string) (path string, explicit bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, true
	}
	return filepath.Join(DefaultConfig().DataDir, FileName), false
}

// Load reads the configuration. An empty flagPath falls back to the
// environment and then to the default location, where a missing file simply
// means defaults.
func Load(flagPath string) (*Config, error) {
	path, explicit := ResolvePath(flagPath)
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No file: defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Log.File = expandHome(cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate rejects settings the rest of the program cannot use.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if c.History.Limit <= 0 {
		errs = append(errs, fmt.Errorf("history.limit must be positive, got %d", c.History.Limit))
	}
	return errors.Join(errs...)
}

// StoreConfig returns the store settings derived from c.
func (c *Config) StoreConfig() store.Config {
	return store.Config{DataDir: c.DataDir}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
