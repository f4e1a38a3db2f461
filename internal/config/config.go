// Package config provides YAML-based configuration loading and
// difficulty management for tilt.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete tilt configuration.
type Config struct {
	Board      BoardConfig      `yaml:"board"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Storage    StorageConfig    `yaml:"storage"`
	SSH        SSHConfig        `yaml:"ssh"`
	Watch      WatchConfig      `yaml:"watch"`
	LogLevel   string           `yaml:"log_level"`
}

// BoardConfig defines the board used by the configurable variants.
type BoardConfig struct {
	Size         int `yaml:"size"`
	WinningValue int `yaml:"winning_value"` // 0 disables winning (endless)
	StartTiles   int `yaml:"start_tiles"`
}

// SpawnConfig defines how new tiles appear after a move.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Preset       DifficultyPreset  `yaml:"preset"`
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FourProbabilityIncrease float64 `yaml:"four_probability_increase"` // Added to the spawn-4 probability at max difficulty
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig configures the SSH arcade server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// WatchConfig configures the websocket spectator server.
type WatchConfig struct {
	Address string `yaml:"address"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Board.Size < 2:
		return fmt.Errorf("%w: board.size must be at least 2, got %d", ErrInvalid, c.Board.Size)
	case c.Board.WinningValue < 0:
		return fmt.Errorf("%w: board.winning_value must not be negative, got %d", ErrInvalid, c.Board.WinningValue)
	case c.Board.StartTiles <= 0:
		return fmt.Errorf("%w: board.start_tiles must be positive, got %d", ErrInvalid, c.Board.StartTiles)
	case c.Board.StartTiles > c.Board.Size*c.Board.Size:
		return fmt.Errorf("%w: board.start_tiles %d exceeds %d cells", ErrInvalid, c.Board.StartTiles, c.Board.Size*c.Board.Size)
	case c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1:
		return fmt.Errorf("%w: spawn.four_probability must be in [0,1], got %g", ErrInvalid, c.Spawn.FourProbability)
	case c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1:
		return fmt.Errorf("%w: difficulty.initial_level must be in [0,1], got %g", ErrInvalid, c.Difficulty.InitialLevel)
	}
	switch c.Difficulty.Progression.Type {
	case "", ProgressionNone, ProgressionScore, ProgressionMoves:
	default:
		return fmt.Errorf("%w: difficulty.progression.type %q", ErrInvalid, c.Difficulty.Progression.Type)
	}
	if c.Difficulty.Preset != "" && !c.Difficulty.Preset.Valid() {
		return fmt.Errorf("%w: difficulty.preset %q", ErrInvalid, c.Difficulty.Preset)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Valid reports whether p is a known preset.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
