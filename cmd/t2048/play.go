package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagNew    bool
	flagPreset string
	flagSlot   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start a game of 2048. A saved game in the slot is resumed unless --new
is given. Saved games expire after storage.snapshot_max_age (7 days).

Controls:
  Arrows/WASD/hjkl - Slide tiles
  U/Z              - Undo (limited per game)
  N                - New game (press twice during a game)
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit (the game is kept)

Examples:
  t2048 play
  t2048 play --new
  t2048 play --new --preset hardcore
  t2048 play --slot work`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNew, "new", false, "Discard the saved game and start fresh")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Rule preset for new games (see 't2048 presets')")
	playCmd.Flags().StringVar(&flagSlot, "slot", storage.DefaultSlot, "Save slot name")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagPreset != "" {
		if err := config.ApplyPreset(&cfg.Game, flagPreset); err != nil {
			return err
		}
	}

	// Play without persistence if the database is unavailable
	var store tui.Store
	if s, err := storage.Open(cfg.Storage.DBPath); err != nil {
		logger.Warn("could not open games database, progress will not be saved", "error", err)
	} else {
		defer s.Close()
		store = s
	}

	return tui.Run(cmd.Context(), store, tui.Options{
		Config: cfg,
		Slot:   flagSlot,
		Fresh:  flagNew,
		Rand:   newRand(),
		Logger: logger,
	})
}
