package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List rule presets",
	Long:  `Shows the built-in rule presets accepted by 'play --preset' and T2048_PRESET.`,
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

func runPresets(cmd *cobra.Command, args []string) {
	fmt.Println("Available presets:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, p := range config.Presets {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-*s  %-5s  %-6s  %-4s  %-4s  %s\n", maxNameLen, "Name", "Board", "Goal", "Undo", "4s", "Description")
	fmt.Printf("  %-*s  %-5s  %-6s  %-4s  %-4s  %s\n", maxNameLen, "----", "-----", "----", "----", "--", "-----------")

	for _, p := range config.Presets {
		board := fmt.Sprintf("%dx%d", p.Size, p.Size)
		fmt.Printf("  %-*s  %-5s  %-6d  %-4d  %-4s  %s\n",
			maxNameLen, p.Name, board, p.WinTarget, p.MaxUndo, fmt.Sprintf("%.0f%%", p.Spawn4Prob*100), p.Description)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play --new --preset <name>' to play one.")
}
