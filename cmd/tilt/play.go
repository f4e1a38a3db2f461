package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/game"
	"github.com/vovakirdan/tilt/internal/platform/tui"
	"github.com/vovakirdan/tilt/internal/registry"
	"github.com/vovakirdan/tilt/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  Arrows/WASD/HJKL - Tilt
  P/Space          - Pause
  R                - Restart (after game over)
  Esc/B            - Leave (after game over or while paused)
  Ctrl+S           - Save a screenshot to ~/.tilt/screenshots
  Q/Ctrl+C         - Quit

Playing 2048 without --level opens the campaign menu, where you can pick
the campaign, endless mode or a starting level.

Difficulty options:
  easy   - Fewer 4s, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - More 4s from the start, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  tilt play 2048
  tilt play 2048 --level 4
  tilt play 3x3 --difficulty easy
  tilt play custom --config ./big-board.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign start level (1-based, 2048 only)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("%w %q, run 'tilt list' to see available variants", registry.ErrUnknownGame, gameID)
	}

	cfg := runtimeConfig()

	sel := tui.CampaignSelection{GameID: gameID, Level: flagLevel}
	if gameID == "2048" && flagLevel == 0 {
		picked, err := tui.RunCampaignMenu(cfg)
		if err != nil {
			return err
		}
		// User pressed back or quit
		if picked == nil {
			return nil
		}
		sel = *picked
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return playSelection(sel, store, cfg)
}

// playSelection creates the selected variant and runs it until the player
// leaves.
func playSelection(sel tui.CampaignSelection, store *storage.Store, cfg core.RuntimeConfig) error {
	g, err := registry.Create(sel.GameID)
	if err != nil {
		return err
	}

	if sel.Level > 0 {
		tg, ok := g.(*game.Game)
		if !ok || tg.Mode() != game.ModeCampaign {
			return errors.New("--level is only available for campaign variants")
		}
		tg.SetStartLevel(sel.Level)
	}

	logger.Debug("starting game", "game", sel.GameID, "level", sel.Level, "seed", cfg.Seed)

	if err := tui.Run(g, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
