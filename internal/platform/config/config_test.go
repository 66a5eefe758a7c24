package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragochi/internal/platform/config"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DRAGOCHI_LOG_LEVEL", "")
	t.Setenv("DRAGOCHI_TIMEZONE", "")
	t.Setenv("DRAGOCHI_DEFAULT_PLATFORM", "")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dragochi.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "tracking-snapshot.json"), cfg.SnapshotPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "pc", cfg.DefaultPlatform)
	assert.NotNil(t, cfg.Location)
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DRAGOCHI_TIMEZONE", "")
	t.Setenv("DRAGOCHI_DEFAULT_PLATFORM", "")
	t.Setenv("DRAGOCHI_LOG_LEVEL", "warn")
	yaml := "log_level: debug\ntimezone: Europe/Berlin\ndefault_platform: mobile\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, "mobile", cfg.DefaultPlatform)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DRAGOCHI_LOG_LEVEL", "loud")
	t.Setenv("DRAGOCHI_TIMEZONE", "")
	t.Setenv("DRAGOCHI_DEFAULT_PLATFORM", "")

	_, err := config.Load(dir)
	require.Error(t, err)

	_, err = config.Load("")
	require.Error(t, err)
}
