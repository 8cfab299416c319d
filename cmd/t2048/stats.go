package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagStatsTUI   bool
	flagStatsReset bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals, win rate and recent games",
	Long: `Display statistics over all finished games and the most recent ones.

Examples:
  t2048 stats
  t2048 stats --tui
  t2048 stats --reset`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsTUI, "tui", false, "Browse recent and top games interactively")
	statsCmd.Flags().BoolVar(&flagStatsReset, "reset", false, "Delete all finished-game records")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagStatsReset {
		if err := store.ClearGames(ctx); err != nil {
			return err
		}
		fmt.Println("All game records deleted.")
		return nil
	}

	if flagStatsTUI {
		width, height := 80, 24 // Defaults
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunStats(ctx, store, width, height)
	}

	st, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	recent, err := store.RecentGames(ctx, storage.DefaultRecentLimit)
	if err != nil {
		return err
	}

	fmt.Println("Statistics - 2048")
	fmt.Println()
	fmt.Printf("  Games played:  %d\n", st.TotalGames)
	fmt.Printf("  Games won:     %d\n", st.TotalWins)
	fmt.Printf("  Win rate:      %d%%\n", st.WinRate)
	fmt.Printf("  Best score:    %d\n", st.BestScore)
	fmt.Printf("  Average score: %.0f\n", st.AvgScore)
	if !st.LastPlayed.IsZero() {
		fmt.Printf("  Last played:   %s\n", st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	if len(recent) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent games:")
	for _, g := range recent {
		result := "lost"
		if g.Won {
			result = "won"
		}
		fmt.Printf("  %s  %-8d  max %-6d  %-4s  %s\n",
			g.FinishedAt.Local().Format("2006-01-02 15:04"), g.Score, g.MaxTile, result, g.Slot)
	}
	return nil
}
