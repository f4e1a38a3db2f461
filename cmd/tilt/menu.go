package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start tilt with a variant picker menu",
	Long: `Start tilt in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - High scores
  Q            - Quit

Examples:
  tilt menu
  tilt menu --fps 30
  tilt menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil // User quit from scoreboard
		}

		sel := tui.CampaignSelection{GameID: menuResult.GameID}
		if sel.GameID == "" {
			return nil
		}

		if sel.GameID == "2048" {
			picked, err := tui.RunCampaignMenu(cfg)
			if err != nil {
				return err
			}
			// Back to the variant list
			if picked == nil {
				continue
			}
			sel = *picked
		}

		// Fresh seed for each game unless one was fixed
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := playSelection(sel, store, cfg); err != nil {
			logger.Error("game failed", "game", sel.GameID, "error", err)
		}
	}
}
