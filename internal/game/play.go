package game

import (
	"github.com/vovakirdan/tilt/internal/board"
	"github.com/vovakirdan/tilt/internal/core"
)

// Reset starts a new game for the platform loop. The max score carries over.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.mu.Lock()
	g.rng.Seed(cfg.Seed)
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	if cfg.TickRate > 0 {
		g.tickRate = cfg.TickRate
	}
	g.paused = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.checkScreenSize()
	g.mu.Unlock()

	g.Start()
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough. Caller holds mu.
func (g *Game) checkScreenSize() {
	boardW, boardH := g.boardExtent()
	g.tooSmall = g.screenW < boardW+2 || g.screenH < boardH+hudHeight+2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.mu.Lock()
	g.tick++

	if g.tooSmall {
		defer g.mu.Unlock()
		return core.StepResult{State: g.state()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	// Level cleared banner holds input for two seconds
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= 2*g.tickRate {
			g.levelCleared = false
			g.levelClearTicks = 0
		}
	}

	if g.paused || g.levelCleared || g.over {
		defer g.mu.Unlock()
		return core.StepResult{State: g.state()}
	}
	level := g.levelIndex
	g.mu.Unlock()

	side, ok := sideFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	changed := g.Move(side)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.levelIndex != level && !g.over {
		g.levelCleared = true
		g.levelClearTicks = 0
	}
	return core.StepResult{State: g.state(), Changed: changed}
}

// sideFor maps a direction action to the side tiles slide toward.
func sideFor(in core.InputFrame) (board.Side, bool) {
	switch {
	case in.Has(core.ActionUp):
		return board.North, true
	case in.Has(core.ActionDown):
		return board.South, true
	case in.Has(core.ActionLeft):
		return board.West, true
	case in.Has(core.ActionRight):
		return board.East, true
	}
	return board.North, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() core.GameState {
	return core.GameState{
		Score:    g.score,
		MaxScore: max(g.maxScore, g.score),
		MaxTile:  g.board.MaxTile(),
		Moves:    g.moves,
		Won:      g.over && g.won(),
		GameOver: g.over,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
