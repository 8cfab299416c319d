package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished games",
	Long: `Display the highest-scoring finished games.

Examples:
  t2048 scores
  t2048 scores --limit 25`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.TopScores(cmd.Context(), flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - 2048")
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-6s  %-12s  %s\n", "Rank", "Score", "Max", "Board", "Result", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-6s  %-12s  %s\n", "----", "-----", "---", "-----", "------", "------", "----")

	for i, g := range games {
		result := "lost"
		if g.Won {
			result = "won"
		}
		board := fmt.Sprintf("%dx%d", g.Size, g.Size)
		fmt.Printf("  %-4d  %-8d  %-6d  %-5s  %-6s  %-12s  %s\n",
			i+1, g.Score, g.MaxTile, board, result, g.Slot, g.FinishedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
