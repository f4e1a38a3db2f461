package game

// State is the coarse state of a game.
type State string

const (
	StatePlaying      State = "playing"
	StateLevelCleared State = "level_cleared"
	StateGameOver     State = "game_over"
	StateWin          State = "win"
	StatePausedSmall  State = "paused_small_window"
)

// Snapshot captures the complete game state for observers, transports and
// determinism tests.
type Snapshot struct {
	ID       string  `json:"id"`
	Mode     Mode    `json:"mode"`
	Size     int     `json:"size"`
	Rows     [][]int `json:"rows"` // Top row first, 0 for empty
	Score    int     `json:"score"`
	MaxScore int     `json:"max_score"`
	MaxTile  int     `json:"max_tile"`
	Winning  int     `json:"winning,omitempty"`
	Level    int     `json:"level,omitempty"` // 1-based, campaign only
	Levels   int     `json:"levels,omitempty"`
	Target   int     `json:"target,omitempty"`
	Moves    int     `json:"moves"`
	Over     bool    `json:"over"`
	State    State   `json:"state"`
	Version  uint64  `json:"version"` // Orders snapshots across every game
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// snapshot builds a Snapshot. Caller holds mu.
func (g *Game) snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.over && g.won():
		state = StateWin
	case g.over:
		state = StateGameOver
	case g.tooSmall:
		state = StatePausedSmall
	case g.levelCleared:
		state = StateLevelCleared
	}

	snap := Snapshot{
		ID:       g.opts.ID,
		Mode:     g.opts.Mode,
		Size:     g.opts.Size,
		Rows:     g.board.Rows(),
		Score:    g.score,
		MaxScore: g.maxScore,
		MaxTile:  g.board.MaxTile(),
		Winning:  g.winning,
		Target:   g.target,
		Moves:    g.moves,
		Over:     g.over,
		State:    state,
		Version:  g.version,
	}
	if len(g.levels) > 0 {
		snap.Level = g.levelIndex + 1
		snap.Levels = len(g.levels)
	}
	return snap
}
