package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt/internal/game"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all variants",
	Long:  `Shows every registered variant with its board size and goal.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	variants := game.Variants

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
		maxTitleLen = max(maxTitleLen, len(v.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Board", "Goal")
	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----", "----")

	for _, v := range variants {
		opts := v.Resolve(0)
		board := fmt.Sprintf("%dx%d", opts.Size, opts.Size)
		fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, v.ID, maxTitleLen, v.Title, board, goal(opts))
	}

	fmt.Println()
	fmt.Println("Run 'tilt play <id>' to play a variant.")
}

// goal describes how a variant ends.
func goal(opts game.Options) string {
	switch opts.Mode {
	case game.ModeEndless:
		return "endless"
	case game.ModeCampaign:
		return fmt.Sprintf("%d levels up to %d", game.LevelCount(opts.Winning), opts.Winning)
	default:
		return fmt.Sprintf("reach %d", opts.Winning)
	}
}
