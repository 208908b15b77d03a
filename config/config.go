// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Store backends for achievement progress.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds runtime settings.
type Config struct {
	// Environment is the build environment achievements are filtered by.
	Environment string `env:"ACHIEVECORE_ENV" envDefault:"release"`
	// SaveDir holds crusade saves and achievement progress. Defaults to
	// ~/.achievecore.
	SaveDir string `env:"ACHIEVECORE_SAVE_DIR"`
	Store   string `env:"ACHIEVECORE_STORE" envDefault:"file"`
	// DBPath overrides the SQLite database location.
	DBPath string `env:"ACHIEVECORE_DB_PATH"`
	// Seed fixes the deck shuffle; 0 picks one from the clock.
	Seed int64 `env:"ACHIEVECORE_SEED"`
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Store {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return cfg, fmt.Errorf("ACHIEVECORE_STORE: unknown store %q (want file, sqlite or memory)", cfg.Store)
	}
	if cfg.SaveDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve save dir: %w", err)
		}
		cfg.SaveDir = filepath.Join(home, ".achievecore")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.SaveDir, "achievements.db")
	}
	return cfg, nil
}

// ProgressPath is the JSON file used by the file store.
func (c Config) ProgressPath() string {
	return filepath.Join(c.SaveDir, "achievements.json")
}

// CrusadeDir holds named crusade saves.
func (c Config) CrusadeDir() string {
	return filepath.Join(c.SaveDir, "saves")
}
