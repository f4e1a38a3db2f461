package config

// Progression types for difficulty.progression.type.
const (
	ProgressionScore = "score" // Difficulty follows the score
	ProgressionMoves = "moves" // Difficulty follows the number of moves
	ProgressionNone  = "none"  // Difficulty stays at initial_level
)

// DifficultyManager raises the spawn-4 probability as a game progresses.
// It holds no per-game state, so one manager can serve every game.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clamp01(cfg.InitialLevel)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled reports whether the level moves away from initial_level.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty in [initial_level, 1] after score points and
// the given number of moves.
func (d *DifficultyManager) Level(score, moves int) float64 {
	start := d.cfg.InitialLevel
	if !d.IsEnabled() {
		return start
	}

	var reached int
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		reached = score
	case ProgressionMoves:
		reached = moves
	default:
		return start
	}

	progress := 1.0
	if maxAt := d.cfg.Progression.MaxAt; maxAt > 0 {
		progress = clamp01(float64(reached) / float64(maxAt))
	}
	return start + progress*(1-start)
}

// FourProbability returns the chance that a spawned tile is a 4: base at
// level 0, rising by four_probability_increase at level 1.
func (d *DifficultyManager) FourProbability(base float64, score, moves int) float64 {
	return clamp01(base + d.Level(score, moves)*d.cfg.Scaling.FourProbabilityIncrease)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
