package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func withFlags(t *testing.T, configPath, dbPath string) {
	t.Helper()

	oldConfig, oldDB := flagConfig, flagDBPath
	flagConfig, flagDBPath = configPath, dbPath
	t.Cleanup(func() { flagConfig, flagDBPath = oldConfig, oldDB })
}

func testCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestCommandsReturnErrors(t *testing.T) {
	dir := t.TempDir()
	badConfig := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badConfig, []byte("game:\n  size: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// A regular file where the database directory should be
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	badDB := filepath.Join(blocker, "games.db")

	tests := []struct {
		name   string
		config string
		db     string
		run    func(*cobra.Command, []string) error
	}{
		{"scores invalid config", badConfig, "", runScores},
		{"stats invalid config", badConfig, "", runStats},
		{"discard invalid config", badConfig, "", runDiscard},
		{"serve invalid config", badConfig, "", runServe},
		{"scores unopenable db", "", badDB, runScores},
		{"stats unopenable db", "", badDB, runStats},
		{"discard unopenable db", "", badDB, runDiscard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFlags(t, tt.config, tt.db)
			if err := tt.run(testCmd(), nil); err == nil {
				t.Error("command error = nil, want error")
			}
		})
	}
}

func TestDiscardWithoutSave(t *testing.T) {
	withFlags(t, "", filepath.Join(t.TempDir(), "games.db"))

	if err := runDiscard(testCmd(), nil); err != nil {
		t.Errorf("runDiscard() error = %v, want nil", err)
	}
}

func TestScoresEmptyDatabase(t *testing.T) {
	withFlags(t, "", filepath.Join(t.TempDir(), "games.db"))

	if err := runScores(testCmd(), nil); err != nil {
		t.Errorf("runScores() error = %v, want nil", err)
	}
}
