package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the 2048 SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH user gets their own save slot, so disconnecting and reconnecting
resumes the game. Finished games go to the shared leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.t2048/host_key

Examples:
  t2048 serve
  t2048 serve --ssh :2222
  t2048 serve --host-key /etc/t2048/host_key

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}

	sshLogger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048-ssh",
		Level:           logger.GetLevel(),
	})

	// Continue without storage
	var store tui.Store
	if s, err := storage.Open(cfg.Storage.DBPath); err != nil {
		sshLogger.Warn("could not open games database", "error", err)
	} else {
		defer s.Close()
		store = s
	}

	srv, err := tui.NewSSHServer(cfg, store, sshLogger)
	if err != nil {
		return err
	}

	return srv.ListenAndServe(cmd.Context())
}
