// Package config handles loading the TaskFlow config.toml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/MihkelHunter/taskflow/internal/focus"
)

// Environment variables that override the file.
const (
	EnvConfig       = "TASKFLOW_CONFIG"
	EnvDB           = "TASKFLOW_DB"
	EnvLogLevel     = "TASKFLOW_LOG_LEVEL"
	EnvAddr         = "TASKFLOW_ADDR"
	EnvFocusMinutes = "TASKFLOW_FOCUS_MINUTES"
)

// Config represents the config.toml file.
type Config struct {
	Storage Storage `toml:"storage"`
	Focus   Focus   `toml:"focus"`
	Log     Log     `toml:"log"`
	Web     Web     `toml:"web"`
}

type Storage struct {
	// Path is the SQLite database file. A leading ~ expands to the home directory.
	Path string `toml:"path"`
}

type Focus struct {
	// Minutes is the default focus session length.
	Minutes int `toml:"minutes"`
}

type Log struct {
	Level string `toml:"level"`
}

type Web struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Storage: Storage{Path: filepath.Join("~", ".taskflow", "taskflow.db")},
		Focus:   Focus{Minutes: focus.DefaultMinutes},
		Log:     Log{Level: "info"},
		Web:     Web{Addr: ":8080"},
	}
}

// Load reads path (or DefaultPath when empty) on top of the defaults, then
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg.Storage.Path, err = expandHome(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath is $TASKFLOW_CONFIG or ~/.config/taskflow/config.toml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "taskflow", "config.toml"), nil
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if err := focus.ValidateMinutes(c.Focus.Minutes); err != nil {
		return fmt.Errorf("focus.minutes: %w", err)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage.path is empty")
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvDB)); v != "" {
		c.Storage.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		c.Web.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvFocusMinutes)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFocusMinutes, err)
		}
		c.Focus.Minutes = n
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
