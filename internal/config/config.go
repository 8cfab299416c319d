// Package config provides YAML-based configuration loading and rule presets
// for the 2048 game and its hosts.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Config contains all configuration for t2048.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	UI      UIConfig      `yaml:"ui"`
}

// GameConfig defines the rules of a session.
type GameConfig struct {
	Preset          string  `yaml:"preset"` // Informational; set by ApplyPreset
	Size            int     `yaml:"size"`
	MaxUndo         int     `yaml:"max_undo"`
	HistoryLimit    int     `yaml:"history_limit"`    // Undo entries kept in memory
	SnapshotHistory int     `yaml:"snapshot_history"` // Undo entries written with a saved game
	WinTarget       int     `yaml:"win_target"`
	Spawn4Prob      float64 `yaml:"spawn4_prob"` // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// StorageConfig defines where games and scores are kept.
type StorageConfig struct {
	DBPath         string        `yaml:"db_path"`
	SnapshotMaxAge time.Duration `yaml:"snapshot_max_age"` // Saved games older than this are discarded
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// UIConfig defines terminal UI timing.
type UIConfig struct {
	TickRate       int `yaml:"tick_rate"`       // Redraw ticks per second
	HighlightTicks int `yaml:"highlight_ticks"` // Ticks a spawned tile stays highlighted
}

// Options converts the game rules into session options.
func (g GameConfig) Options() t2048.Options {
	return t2048.Options{
		Size:            g.Size,
		MaxUndo:         g.MaxUndo,
		HistoryLimit:    g.HistoryLimit,
		SnapshotHistory: g.SnapshotHistory,
		WinTarget:       g.WinTarget,
		Spawn4Prob:      g.Spawn4Prob,
	}
}

// Validate reports the first impossible value in cfg.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.Size < 2 || g.Size > 8:
		return fmt.Errorf("config: game.size %d outside [2,8]", g.Size)
	case g.MaxUndo < 0:
		return fmt.Errorf("config: game.max_undo %d is negative", g.MaxUndo)
	case g.HistoryLimit < 1:
		return fmt.Errorf("config: game.history_limit %d must be positive", g.HistoryLimit)
	case g.SnapshotHistory < 1 || g.SnapshotHistory > g.HistoryLimit:
		return fmt.Errorf("config: game.snapshot_history %d outside [1,%d]", g.SnapshotHistory, g.HistoryLimit)
	case g.WinTarget < 4 || g.WinTarget&(g.WinTarget-1) != 0:
		return fmt.Errorf("config: game.win_target %d is not a power of two above 2", g.WinTarget)
	case !(g.Spawn4Prob >= 0 && g.Spawn4Prob <= 1):
		return fmt.Errorf("config: game.spawn4_prob %v outside [0,1]", g.Spawn4Prob)
	case c.Storage.DBPath == "":
		return fmt.Errorf("config: storage.db_path is empty")
	case c.Storage.SnapshotMaxAge < 0:
		return fmt.Errorf("config: storage.snapshot_max_age %s is negative", c.Storage.SnapshotMaxAge)
	case c.UI.TickRate <= 0:
		return fmt.Errorf("config: ui.tick_rate %d must be positive", c.UI.TickRate)
	case c.UI.HighlightTicks < 0:
		return fmt.Errorf("config: ui.highlight_ticks %d is negative", c.UI.HighlightTicks)
	}
	return nil
}
