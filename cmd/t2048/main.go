// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 play               - Play, resuming the saved game if there is one
//	t2048 serve              - Start SSH server for remote play
//	t2048 scores             - Show the best finished games
//	t2048 stats              - Show totals, win rate and recent games
//	t2048 presets            - List rule presets
//	t2048 discard            - Delete a saved game
//
// Global flags:
//
//	--config <path> - Config file (default: search ~/.t2048, ./configs)
//	--db <path>     - Database path (default: ~/.t2048/t2048.db)
//	--seed <value>  - RNG seed for reproducible games
//	--debug         - Verbose logging
//	--otel          - Export traces over OTLP/HTTP
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagSeed   int64
	flagDebug  bool
	flagOTel   bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})

	shutdownTelemetry func(context.Context) error
)

func main() {
	// .env is optional; variables may be set directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn(".env file not loaded", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if shutdownTelemetry != nil {
		if shutdownErr := shutdownTelemetry(context.Background()); shutdownErr != nil {
			logger.Warn("could not flush traces", "error", shutdownErr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide tiles and merge them in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the tiles with the arrow keys; equal tiles merge into their sum.
Reach the goal tile to win, keep going for a higher score. Games are
saved after every move and resumed next time you play.

Available commands:
  play     - Play (resumes your saved game)
  serve    - Start SSH server for remote play
  scores   - Best finished games
  stats    - Totals, win rate and recent games
  presets  - List rule presets
  discard  - Delete a saved game

Examples:
  t2048 play
  t2048 play --new --preset large
  t2048 serve --ssh :2222
  t2048 stats --tui`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to games database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagOTel, "otel", false, "Export traces via OTEL_EXPORTER_OTLP_* settings")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(discardCmd)
}

// setup configures logging and tracing before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	if flagOTel {
		shutdown, err := telemetry.Setup(cmd.Context())
		if err != nil {
			logger.Warn("telemetry setup failed, running without traces", "error", err)
			return nil
		}
		shutdownTelemetry = shutdown
		logger.Debug("telemetry enabled")
	}
	return nil
}
