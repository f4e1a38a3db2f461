// tilt is a sliding-tile merge puzzle for the terminal.
//
// Usage:
//
//	tilt list              - List available variants
//	tilt play <variant>    - Play a variant
//	tilt menu              - Start menu to pick variants interactively
//	tilt serve             - Start SSH server for remote play
//	tilt scores <variant>  - Show high scores for a variant
//	tilt mcp               - Serve a game to AI agents over MCP (stdio)
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.tilt/scores.db)
//	--config <path>       - Use a specific config file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt/internal/config"
	"github.com/vovakirdan/tilt/internal/game"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	// Set up by setup before any command runs
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilt",
	Short: "tilt - slide and merge tiles in your terminal",
	Long: `tilt is a sliding-tile merge puzzle in the spirit of 2048.

Tilt the board toward a side: tiles slide as far as they can and equal
neighbours merge into one tile worth their sum. Reach the winning tile
before the board locks up.

Available commands:
  list     - Show all variants
  play     - Play a specific variant directly
  menu     - Interactive variant picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  mcp      - Let an AI agent play over the Model Context Protocol

Examples:
  tilt list
  tilt play 2048
  tilt play 5x5 --difficulty hard
  tilt menu
  tilt serve --ssh :2222
  tilt scores 2048`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default: storage.db_path or ~/.tilt/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default: log_level from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mcpCmd)
}

// setup loads the configuration, builds the logger and applies the game
// settings shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	l, err := newLogger(firstNonEmpty(flagLogLevel, cfg.LogLevel))
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	log.SetDefault(logger)
	game.Configure(gameSettings(cfg))

	logger.Debug("configuration loaded",
		"size", cfg.Board.Size,
		"winning", cfg.Board.WinningValue,
		"difficulty", cfg.Difficulty.Preset,
	)
	return nil
}

// loadConfig reads the config file and applies a difficulty preset. A preset
// given on the command line wins over the one in the file.
func loadConfig(path, difficulty string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	preset := cfg.Difficulty.Preset
	if difficulty != "" {
		preset = config.DifficultyPreset(difficulty)
	}
	if preset != "" {
		if !preset.Valid() {
			return config.Config{}, fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", config.ErrInvalid, preset)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// gameSettings maps the configuration onto the variant settings.
func gameSettings(cfg config.Config) game.Settings {
	return game.Settings{
		Size:       cfg.Board.Size,
		Winning:    cfg.Board.WinningValue,
		StartTiles: cfg.Board.StartTiles,
		Spawn4:     cfg.Spawn.FourProbability,
		Difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// newLogger creates the stderr logger at the given level.
func newLogger(level string) (*log.Logger, error) {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilt",
	})
	if level == "" {
		return l, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l.SetLevel(lvl)
	return l, nil
}

// dbPath resolves the score database location.
func dbPath() string {
	return firstNonEmpty(flagDBPath, appConfig.Storage.DBPath, config.DefaultDBPath())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
