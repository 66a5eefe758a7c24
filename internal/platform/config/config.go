package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	fileName     = "config.yaml"
	envFileName  = ".env"
	snapshotFile = "tracking-snapshot.json"
	dbFile       = "dragochi.db"
)

type Config struct {
	DataDir         string
	DBPath          string
	SnapshotPath    string
	LogLevel        string
	Location        *time.Location
	DefaultPlatform string
}

type fileConfig struct {
	LogLevel        string `yaml:"log_level"`
	Timezone        string `yaml:"timezone"`
	DefaultPlatform string `yaml:"default_platform"`
}

// Load resolves configuration for dataDir. Later sources win: defaults,
// <dataDir>/config.yaml, <dataDir>/.env, then DRAGOCHI_* environment variables.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	fc := fileConfig{LogLevel: "info", DefaultPlatform: "pc"}

	raw, err := os.ReadFile(filepath.Join(dataDir, fileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", fileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read %s: %w", fileName, err)
	}

	// godotenv.Load never overrides variables already present in the process env.
	if err := godotenv.Load(filepath.Join(dataDir, envFileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFileName, err)
	}
	if v := os.Getenv("DRAGOCHI_LOG_LEVEL"); v != "" {
		fc.LogLevel = v
	}
	if v := os.Getenv("DRAGOCHI_TIMEZONE"); v != "" {
		fc.Timezone = v
	}
	if v := os.Getenv("DRAGOCHI_DEFAULT_PLATFORM"); v != "" {
		fc.DefaultPlatform = v
	}

	loc := time.Local
	if fc.Timezone != "" {
		loc, err = time.LoadLocation(fc.Timezone)
		if err != nil {
			return Config{}, fmt.Errorf("load timezone %q: %w", fc.Timezone, err)
		}
	}
	switch strings.ToLower(fc.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("unknown log level %q", fc.LogLevel)
	}
	switch strings.ToLower(fc.DefaultPlatform) {
	case "pc", "console", "mobile":
	default:
		return Config{}, fmt.Errorf("unknown default platform %q", fc.DefaultPlatform)
	}

	return Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, dbFile),
		SnapshotPath:    filepath.Join(dataDir, snapshotFile),
		LogLevel:        strings.ToLower(fc.LogLevel),
		Location:        loc,
		DefaultPlatform: strings.ToLower(fc.DefaultPlatform),
	}, nil
}

// DefaultDataDir is $HOME/.dragochi, or ./.dragochi when no home directory is known.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".dragochi"
	}
	return filepath.Join(home, ".dragochi")
}
