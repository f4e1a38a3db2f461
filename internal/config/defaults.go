package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tilt.yaml
var defaultTiltYAML []byte

// Default returns the hardcoded configuration. It matches defaults/tilt.yaml.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:         4,
			WinningValue: 2048,
			StartTiles:   2,
		},
		Spawn: SpawnConfig{
			FourProbability: 0.10,
		},
		Difficulty: DifficultyConfig{
			Preset:       DifficultyNormal,
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				FourProbabilityIncrease: 0.15,
			},
		},
		SSH: SSHConfig{
			Address:     ":23234",
			HostKey:     ".ssh/tilt_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		LogLevel: "info",
	}
}
