package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Preset:          "classic",
			Size:            4,
			MaxUndo:         3,
			HistoryLimit:    20,
			SnapshotHistory: 5,
			WinTarget:       2048,
			Spawn4Prob:      0.10,
		},
		Storage: StorageConfig{
			DBPath:         "~/.t2048/t2048.db",
			SnapshotMaxAge: 7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		UI: UIConfig{
			TickRate:       30,
			HighlightTicks: 6, // ~200ms at 30fps
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
