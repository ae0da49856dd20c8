package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/taskflow/internal/focus"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfig, EnvDB, EnvLogLevel, EnvAddr, EnvFocusMinutes} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".taskflow", "taskflow.db"), cfg.Storage.Path)
	assert.Equal(t, focus.DefaultMinutes, cfg.Focus.Minutes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Web.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[storage]
path = "/var/lib/taskflow/data.db"

[focus]
minutes = 45

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/taskflow/data.db", cfg.Storage.Path)
	assert.Equal(t, 45, cfg.Focus.Minutes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Web.Addr, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[focus]\nminutes = 45\n")
	t.Setenv(EnvDB, "/tmp/env.db")
	t.Setenv(EnvFocusMinutes, "15")
	t.Setenv(EnvAddr, "127.0.0.1:9000")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.Storage.Path)
	assert.Equal(t, 15, cfg.Focus.Minutes)
	assert.Equal(t, "127.0.0.1:9000", cfg.Web.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvConfigPath(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[web]\naddr = \":7070\"\n")
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Web.Addr)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "[focus]\nminutes = 7\n"))
	assert.ErrorIs(t, err, focus.ErrInvalidDuration)

	_, err = Load(writeConfig(t, "[focus\n"))
	assert.ErrorContains(t, err, "parse config file")

	t.Setenv(EnvFocusMinutes, "soon")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorContains(t, err, EnvFocusMinutes)
}
