package main

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// loadConfig loads the config file, then applies environment and flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "preset", cfg.Game.Preset, "size", cfg.Game.Size, "db", cfg.Storage.DBPath)
	return cfg, nil
}

// openStore loads the configuration and opens the games database.
func openStore() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening games database: %w", err)
	}
	return store, nil
}

// newRand returns a seeded source when --seed is set, nil otherwise.
func newRand() t2048.Rand {
	if flagSeed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(flagSeed))
}
