package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt/internal/registry"
	"github.com/vovakirdan/tilt/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Without arguments, summarise every variant that has recorded games.
With a variant ID, list its best results followed by its totals.

Examples:
  tilt scores
  tilt scores 2048
  tilt scores 5x5 --limit 25
  tilt scores 3x3 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every result of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(dbPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			return errors.New("--clear needs a variant ID")
		}
		return printSummary(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("%w %q, run 'tilt list' to see available variants", registry.ErrUnknownGame, gameID)
	}

	if flagClear {
		n, err := store.ClearScores(gameID)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d results for %s.\n", n, gameID)
		return nil
	}
	return printVariantScores(store, gameID)
}

// printSummary prints one line per variant with recorded games.
func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-14s  %6s  %5s  %10s  %9s  %s\n", "Variant", "Games", "Wins", "Best", "Best Tile", "Last Played")
	fmt.Printf("  %-14s  %6s  %5s  %10s  %9s  %s\n", "-------", "-----", "----", "----", "---------", "-----------")
	for _, id := range ids {
		gs := all[id]
		fmt.Printf("  %-14s  %6d  %5d  %10d  %9d  %s\n",
			id, gs.GamesCount, gs.Wins, gs.HighScore, gs.BestTile, gs.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// printVariantScores prints the best results of one variant and its totals.
func printVariantScores(store *storage.Store, gameID string) error {
	g, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", g.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tilt play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %10s  %8s  %5s  %-3s  %s\n", "Rank", "Score", "Max Tile", "Moves", "Won", "Date")
	fmt.Printf("  %-4s  %10s  %8s  %5s  %-3s  %s\n", "----", "-----", "--------", "-----", "---", "----")
	for i, e := range scores {
		won := ""
		if e.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %10d  %8d  %5d  %-3s  %s\n",
			i+1, e.Score, e.MaxTile, e.Moves, won, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("\nBest: %d  |  Best tile: %d  |  Games: %d  |  Wins: %d  |  Average: %.0f\n",
			stats.HighScore, stats.BestTile, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}
