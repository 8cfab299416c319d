package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagDiscardSlot string

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Delete a saved game",
	Long: `Delete the game saved in a slot so the next 'play' starts fresh.
SSH players' slots are named ssh:<user>.

Examples:
  t2048 discard
  t2048 discard --slot ssh:alice`,
	Args: cobra.NoArgs,
	RunE: runDiscard,
}

func init() {
	discardCmd.Flags().StringVar(&flagDiscardSlot, "slot", storage.DefaultSlot, "Save slot name")
}

func runDiscard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	has, err := store.HasSnapshot(ctx, flagDiscardSlot)
	if err != nil {
		return err
	}
	if !has {
		fmt.Printf("No saved game in slot %q.\n", flagDiscardSlot)
		return nil
	}

	if err := store.DeleteSnapshot(ctx, flagDiscardSlot); err != nil {
		return err
	}
	fmt.Printf("Discarded saved game in slot %q.\n", flagDiscardSlot)
	return nil
}
