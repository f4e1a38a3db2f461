// Package game runs a single sliding-tile puzzle: it owns the board, applies
// tilts through the engine, spawns new tiles, keeps the score, advances
// campaign levels and tells observers about every change.
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/vovakirdan/tilt/internal/board"
	"github.com/vovakirdan/tilt/internal/engine"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic  Mode = "classic"  // Fixed winning value, no levels
	ModeCampaign Mode = "campaign" // Sequential targets ending at the winning value
	ModeEndless  Mode = "endless"  // No winning value
)

// Difficulty adjusts the spawn-4 probability as a game progresses.
type Difficulty interface {
	FourProbability(base float64, score int, moves int) float64
}

// Options configure a new game.
type Options struct {
	ID         string
	Title      string
	Size       int
	Winning    int // Ignored in endless mode
	StartTiles int
	Spawn4     float64
	Seed       int64
	Mode       Mode
	Level      int // Campaign start level, 1-based; 0 starts at the first
	Difficulty Difficulty
}

// Game is one puzzle instance. All methods are safe for concurrent use;
// tilts on the same game are serialised.
type Game struct {
	mu sync.Mutex

	opts    Options
	board   *board.Board
	rng     *rand.Rand
	winning int
	levels  []Level

	score    int
	maxScore int
	over     bool
	moves    int

	levelIndex int
	target     int
	spawn4     float64

	pending []Event
	version uint64 // Of the last queued event

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObs   int

	// Platform state, only touched through the registry.Game methods
	tick            uint64
	tickRate        int
	screenW         int
	screenH         int
	paused          bool
	tooSmall        bool
	levelCleared    bool
	levelClearTicks int
}

// New creates a game with an empty board. Call Start to place the opening tiles.
func New(opts Options) *Game {
	if opts.Size < 2 {
		opts.Size = 4
	}
	if opts.StartTiles <= 0 {
		opts.StartTiles = 2
	}
	if opts.Mode == "" {
		opts.Mode = ModeClassic
	}
	if opts.ID == "" {
		opts.ID = fmt.Sprintf("%dx%d", opts.Size, opts.Size)
	}
	if opts.Title == "" {
		opts.Title = opts.ID
	}

	g := &Game{
		opts:      opts,
		board:     board.New(opts.Size),
		rng:       rand.New(rand.NewSource(opts.Seed)),
		observers: make(map[int]Observer),
		tickRate:  60,
	}
	if opts.Mode != ModeEndless {
		g.winning = opts.Winning
	}
	if opts.Mode == ModeCampaign {
		g.levels = CampaignLevels(g.winning)
	}
	g.loadLevel(opts.Level - 1)
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.opts.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.opts.Title
}

// Size returns the board's side length.
func (g *Game) Size() int {
	return g.opts.Size
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.opts.Mode
}

// Winning returns the tile value that ends the game, or 0 in endless mode.
func (g *Game) Winning() int {
	return g.winning
}

// loadLevel selects the campaign level at index, clamped to the table.
// Outside campaign mode it only sets the base spawn probability.
func (g *Game) loadLevel(index int) {
	if len(g.levels) == 0 {
		g.levelIndex = 0
		g.target = g.winning
		g.spawn4 = g.opts.Spawn4
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(g.levels) {
		index = len(g.levels) - 1
	}
	g.levelIndex = index
	g.target = g.levels[index].Target
	g.spawn4 = g.levels[index].Spawn4
}

// Tile returns the tile at (col, row).
func (g *Game) Tile(col, row int) (board.Tile, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Tile(col, row)
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

// Score returns the current score.
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// MaxScore returns the best score seen when a game ended.
func (g *Game) MaxScore() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.maxScore
}

// SetMaxScore seeds the best score, e.g. from stored results.
func (g *Game) SetMaxScore(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n > g.maxScore {
		g.maxScore = n
	}
}

// Moves returns the number of tilts that changed the board.
func (g *Game) Moves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves
}

// Over re-checks the terminal condition and reports whether the game has
// ended. When it has, the max score is raised to the current score.
func (g *Game) Over() bool {
	g.mu.Lock()
	over := g.observeOver()
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
	return over
}

// Won reports whether the winning tile is on the board.
func (g *Game) Won() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.won()
}

func (g *Game) won() bool {
	return engine.WinningTileExists(g.board, g.winning)
}

// observeOver updates the terminal flag and, once the game has ended,
// the max score. Caller holds mu.
func (g *Game) observeOver() bool {
	return g.updateOver(true)
}

// updateOver recomputes the terminal flag and announces the transition to
// over. Caller holds mu.
func (g *Game) updateOver(recordMax bool) bool {
	wasOver := g.over
	g.over = engine.IsTerminal(g.board, g.winning)
	if g.over && recordMax {
		g.maxScore = max(g.maxScore, g.score)
	}
	if g.over && !wasOver {
		g.emit(EventOver)
	}
	return g.over
}

// Tilt slides every tile toward side and adds the merge score. It does not
// spawn a tile; see Move for a full turn. Observers hear about the tilt only
// when the board changed.
func (g *Game) Tilt(side board.Side) bool {
	g.mu.Lock()
	changed := g.tilt(side)
	g.updateOver(false)
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
	return changed
}

// Move plays one full turn: tilt toward side and, if anything moved, spawn
// a new tile. The terminal condition is observed afterwards.
func (g *Game) Move(side board.Side) bool {
	g.mu.Lock()
	changed := g.tilt(side)
	if changed && !g.won() {
		g.spawnTile()
	}
	g.observeOver()
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
	return changed
}

// tilt runs the engine and campaign bookkeeping. Caller holds mu.
func (g *Game) tilt(side board.Side) bool {
	res := engine.Tilt(g.board, side)
	g.score += res.Score
	if !res.Changed {
		return false
	}
	g.moves++
	g.emit(EventTilt)
	g.checkLevel()
	return true
}

// checkLevel advances the campaign while the current target is on the
// board. The final level's target is the winning value, which ends the game
// instead. Caller holds mu.
func (g *Game) checkLevel() {
	for g.levelIndex < len(g.levels)-1 && g.board.MaxTile() >= g.target {
		g.loadLevel(g.levelIndex + 1)
		g.emit(EventLevel)
	}
}

// SetStartLevel selects the campaign level (1-based) the next Clear or Start
// begins at. It has no effect outside campaign mode.
func (g *Game) SetStartLevel(level int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if level > 0 && level <= len(g.levels) {
		g.opts.Level = level
	}
}

// Clear empties the board and resets the score. The max score is kept.
func (g *Game) Clear() {
	g.mu.Lock()
	g.clear()
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
}

func (g *Game) clear() {
	g.board.Clear()
	g.score = 0
	g.moves = 0
	g.over = false
	g.loadLevel(g.opts.Level - 1)
	g.emit(EventClear)
}

// Start clears the board and places the opening tiles.
func (g *Game) Start() {
	g.mu.Lock()
	g.clear()
	for range g.opts.StartTiles {
		g.spawnTile()
	}
	g.observeOver()
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
}

// AddTile places a tile of the given value at (col, row) and re-checks the
// terminal condition.
func (g *Game) AddTile(col, row, value int) error {
	g.mu.Lock()
	if err := g.board.AddTile(col, row, board.Tile(value)); err != nil {
		g.mu.Unlock()
		return fmt.Errorf("game: add tile: %w", err)
	}
	g.emit(EventAdd)
	g.updateOver(false)
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
	return nil
}

// SpawnTile places a 2 (or a 4, with the current spawn probability) in a
// random empty cell. Returns false if the board is full.
func (g *Game) SpawnTile() bool {
	g.mu.Lock()
	ok := g.spawnTile()
	g.updateOver(false)
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
	return ok
}

func (g *Game) spawnTile() bool {
	empty := g.board.EmptyCells()
	if len(empty) == 0 {
		return false
	}

	cell := empty[g.rng.Intn(len(empty))]

	value := 2
	if g.rng.Float64() < g.fourProbability() {
		value = 4
	}

	//nolint:errcheck // The cell was just reported empty
	g.board.AddTile(cell.Col, cell.Row, board.Tile(value))
	g.emit(EventSpawn)
	return true
}

// fourProbability returns the spawn-4 chance for the next tile. Campaign
// levels fix their own chance. Caller holds mu.
func (g *Game) fourProbability() float64 {
	if g.opts.Difficulty == nil || len(g.levels) > 0 {
		return g.spawn4
	}
	return g.opts.Difficulty.FourProbability(g.spawn4, g.score, g.moves)
}

// Restore replaces the board and score, e.g. to resume a game or set up a
// position. rows are written top first, zero meaning empty. The score must
// not be negative.
func (g *Game) Restore(rows [][]int, score int) error {
	if score < 0 {
		return fmt.Errorf("game: restore: negative score %d", score)
	}
	if len(rows) != g.opts.Size {
		return fmt.Errorf("game: restore: %d rows for a %dx%d board", len(rows), g.opts.Size, g.opts.Size)
	}
	for i, line := range rows {
		if len(line) != g.opts.Size {
			return fmt.Errorf("game: restore: row %d has %d cells, want %d", i, len(line), g.opts.Size)
		}
	}

	g.mu.Lock()
	g.board = board.FromRows(rows)
	g.score = score
	g.moves = 0
	g.over = false
	g.loadLevel(g.opts.Level - 1)
	g.emit(EventRestore)
	g.checkLevel()
	g.updateOver(false)
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
	return nil
}

// String dumps the board top row first followed by the score line.
// Like Over, it re-observes the terminal condition.
func (g *Game) String() string {
	g.mu.Lock()
	over := "not over"
	if g.observeOver() {
		over = "over"
	}
	var sb strings.Builder
	sb.WriteString("\n[\n")
	sb.WriteString(g.board.String())
	fmt.Fprintf(&sb, "] %d (max: %d) (game is %s) \n", g.score, g.maxScore, over)
	events := g.drain()
	g.mu.Unlock()

	g.publish(events)
	return sb.String()
}
