package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tilt/internal/board"
	"github.com/vovakirdan/tilt/internal/engine"
	"github.com/vovakirdan/tilt/internal/game"
	"github.com/vovakirdan/tilt/internal/registry"
	"github.com/vovakirdan/tilt/internal/storage"
)

// DefaultVariant is played when Options.Variant is empty.
const DefaultVariant = "2048"

// ErrNoGame is returned by tools that need a game before one was started.
var ErrNoGame = errors.New("mcp: no game in progress")

// Watcher mirrors a game to spectators.
type Watcher interface {
	Watch(g *game.Game) (detach func())
}

// Options configure a Server.
type Options struct {
	Variant string         // Initial variant, DefaultVariant if empty
	Seed    int64          // Initial seed, time-based if zero
	Store   *storage.Store // Optional; finished games are recorded here
	Watcher Watcher        // Optional spectator hub
	Logger  *log.Logger
}

// Server is an MCP server driving one game at a time.
type Server struct {
	mu     sync.Mutex
	game   *game.Game
	detach []func()

	store     *storage.Store
	watcher   Watcher
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the server and starts the initial game.
func NewServer(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Variant == "" {
		opts.Variant = DefaultVariant
	}

	s := &Server{
		store:   opts.Store,
		watcher: opts.Watcher,
		logger:  opts.Logger,
	}
	s.initMCPServer()

	if _, err := s.newGame(opts.Variant, opts.Seed, 0); err != nil {
		return nil, err
	}
	return s, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP requests on stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Game returns the game in progress.
func (s *Server) Game() *game.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game
}

// newGame replaces the current game with a fresh one.
func (s *Server) newGame(variant string, seed int64, level int) (*game.Game, error) {
	v, ok := game.FindVariant(variant)
	if !ok {
		return nil, fmt.Errorf("%w %q", registry.ErrUnknownGame, variant)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := game.NewVariant(v, seed)
	if level > 0 {
		g.SetStartLevel(level)
	}
	if s.store != nil {
		if high, err := s.store.HighScore(g.ID()); err == nil {
			g.SetMaxScore(high)
		}
	}

	detach := []func(){g.Subscribe(s.recordResult)}
	if s.watcher != nil {
		detach = append(detach, s.watcher.Watch(g))
	}

	s.mu.Lock()
	for _, d := range s.detach {
		d()
	}
	s.game = g
	s.detach = detach
	s.mu.Unlock()

	g.Start()
	s.logger.Info("new game", "variant", variant, "seed", seed, "level", level)
	return g, nil
}

// recordResult saves finished games.
func (s *Server) recordResult(ev game.Event) {
	if ev.Kind != game.EventOver {
		return
	}
	snap := ev.Snapshot
	s.logger.Info("game over", "game", snap.ID, "score", snap.Score, "max_tile", snap.MaxTile, "state", snap.State)

	if s.store == nil || snap.Score <= 0 {
		return
	}
	_, err := s.store.SaveResult(storage.ScoreEntry{
		GameID:  snap.ID,
		Score:   snap.Score,
		MaxTile: snap.MaxTile,
		Moves:   snap.Moves,
		Won:     snap.State == game.StateWin,
	})
	if err != nil {
		s.logger.Error("cannot save result", "game", snap.ID, "error", err)
	}
}

// initMCPServer creates the MCP server and registers the tools.
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"tilt",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`tilt - sliding tile puzzle

Tilt the board toward a side: every tile slides as far as it can and equal
neighbours merge into one tile worth their sum. After each move a 2 (sometimes
a 4) appears in an empty cell. Reach the winning tile, or keep going in
endless variants, before the board locks up.

Start with game_state, then call move or bulk_move. game_instructions has the
full rules.`),
	)

	s.registerTools()
}

// directionSchema is the schema shared by direction arguments.
func directionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"up", "down", "left", "right"},
		"description": "Side the tiles slide toward",
	}
}

// registerTools registers all MCP tools.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game, discarding the current one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"variant": map[string]interface{}{
					"type":        "string",
					"description": "Variant ID from list_variants (default 2048)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed for reproducible games (optional)",
				},
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Campaign start level, 1-based (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, score and available moves",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Tilt the board toward a side; a new tile spawns if anything moved",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": directionSchema(),
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why this move",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute several moves in order, stopping when the game ends",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"moves": map[string]interface{}{
					"type":        "array",
					"items":       directionSchema(),
					"description": "Directions in order",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the plan",
				},
			},
			Required: []string{"moves"},
		},
	}, s.handleBulkMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "tilt",
		Description: "Tilt the board without spawning a tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": directionSchema(),
			},
			Required: []string{"direction"},
		},
	}, s.handleTilt)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "add_tile",
		Description: "Place a tile on an empty cell. Column 0 is the left edge, row 0 the bottom edge",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"col":   map[string]interface{}{"type": "integer", "description": "Column, 0 = left"},
				"row":   map[string]interface{}{"type": "integer", "description": "Row, 0 = bottom"},
				"value": map[string]interface{}{"type": "integer", "description": "Tile value, e.g. 2 or 4"},
			},
			Required: []string{"col", "row", "value"},
		},
	}, s.handleAddTile)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "spawn_tile",
		Description: "Spawn a random tile as after a move",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleSpawnTile)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "restore",
		Description: "Replace the board and score. Rows are listed top first, 0 for empty",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"rows": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "integer"}},
					"description": "Board rows, top first",
				},
				"score": map[string]interface{}{"type": "integer", "description": "Score to restore (default 0)"},
			},
			Required: []string{"rows"},
		},
	}, s.handleRestore)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_variants",
		Description: "List the game variants",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListVariants)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules and tips for using the tools",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// arguments returns the call's arguments, empty if there are none.
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, key string) (int, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	f, ok := raw.(float64)
	if !ok || f != float64(int(f)) {
		return 0, true, fmt.Errorf("%s must be an integer, got %v", key, raw)
	}
	return int(f), true, nil
}

// sideArg reads a direction argument.
func sideArg(args map[string]interface{}, key string) (board.Side, error) {
	name, _ := args[key].(string)
	if name == "" {
		return board.North, fmt.Errorf("%s is required", key)
	}
	return board.ParseSide(name)
}

func (s *Server) currentGame() (*game.Game, error) {
	if g := s.Game(); g != nil {
		return g, nil
	}
	return nil, ErrNoGame
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	variant, _ := args["variant"].(string)
	if variant == "" {
		variant = DefaultVariant
	}
	seed, _, err := intArg(args, "seed")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	level, _, err := intArg(args, "level")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g, err := s.newGame(variant, int64(seed), level)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("New game started.\n\n" + formatGameState(g)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.currentGame()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(g)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.currentGame()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	side, err := sideArg(arguments(request), "direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if g.Over() {
		return mcp.NewToolResultError("game is over; call new_game to play again\n\n" + formatGameState(g)), nil
	}

	var b strings.Builder
	if g.Move(side) {
		fmt.Fprintf(&b, "Moved %s.\n\n", sideName(side))
	} else {
		fmt.Fprintf(&b, "Nothing moved %s; no tile spawned.\n\n", sideName(side))
	}
	b.WriteString(formatGameState(g))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.currentGame()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	movesRaw, _ := arguments(request)["moves"].([]interface{})
	if len(movesRaw) == 0 {
		return mcp.NewToolResultError("moves must be a non-empty array"), nil
	}

	sides := make([]board.Side, 0, len(movesRaw))
	for i, m := range movesRaw {
		name, _ := m.(string)
		side, err := board.ParseSide(name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("move %d: %v", i+1, err)), nil
		}
		sides = append(sides, side)
	}

	var b strings.Builder
	executed := 0
	for _, side := range sides {
		if g.Over() {
			break
		}
		changed := g.Move(side)
		executed++
		mark := "moved"
		if !changed {
			mark = "no change"
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", executed, sideName(side), mark)
	}
	fmt.Fprintf(&b, "\nExecuted %d of %d moves.\n\n", executed, len(sides))
	b.WriteString(formatGameState(g))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleTilt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.currentGame()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	side, err := sideArg(arguments(request), "direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	changed := g.Tilt(side)
	return mcp.NewToolResultText(fmt.Sprintf("Tilted %s (changed: %v).\n\n%s", sideName(side), changed, formatGameState(g))), nil
}

func (s *Server) handleAddTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.currentGame()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := arguments(request)
	var vals [3]int
	for i, key := range []string{"col", "row", "value"} {
		v, ok, err := intArg(args, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ok {
			return mcp.NewToolResultError(key + " is required"), nil
		}
		vals[i] = v
	}

	if err := g.AddTile(vals[0], vals[1], vals[2]); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(g)), nil
}

func (s *Server) handleSpawnTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.currentGame()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !g.SpawnTile() {
		return mcp.NewToolResultError("board is full\n\n" + formatGameState(g)), nil
	}
	return mcp.NewToolResultText(formatGameState(g)), nil
}

func (s *Server) handleRestore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, err := s.currentGame()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := arguments(request)
	rows, err := parseRows(args["rows"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	score, _, err := intArg(args, "score")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := g.Restore(rows, score); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(g)), nil
}

// parseRows converts a JSON array of arrays of numbers into board rows.
func parseRows(raw interface{}) ([][]int, error) {
	outer, ok := raw.([]interface{})
	if !ok || len(outer) == 0 {
		return nil, errors.New("rows must be a non-empty array of arrays")
	}
	rows := make([][]int, len(outer))
	for i, r := range outer {
		cells, ok := r.([]interface{})
		if !ok {
			return nil, fmt.Errorf("row %d is not an array", i)
		}
		rows[i] = make([]int, len(cells))
		for j, c := range cells {
			f, ok := c.(float64)
			if !ok || f < 0 || f != float64(int(f)) {
				return nil, fmt.Errorf("row %d cell %d must be a non-negative integer, got %v", i, j, c)
			}
			rows[i][j] = int(f)
		}
	}
	return rows, nil
}

func (s *Server) handleListVariants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("Variants:\n")
	for _, v := range game.Variants {
		opts := v.Resolve(0)
		goal := "endless"
		if opts.Mode != game.ModeEndless {
			goal = fmt.Sprintf("reach %d", opts.Winning)
		}
		fmt.Fprintf(&b, "- %s: %s, %dx%d, %s (%s)\n", v.ID, v.Title, opts.Size, opts.Size, goal, opts.Mode)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `TILT - RULES

BOARD
An N x N grid. Rows are shown top first. Column 0 is the left edge and row 0
the bottom edge when placing tiles with add_tile.

A MOVE
Choose a side (up, down, left, right). Every tile slides toward that side as
far as it can. Two tiles of the same value that meet merge into one tile worth
their sum, and the merged value is added to the score. A tile produced by a
merge does not merge again in the same move. When three equal tiles line up,
the two nearest the side merge.

If the move changed the board, a new tile appears in a random empty cell:
usually 2, sometimes 4.

END OF GAME
The game ends when a tile reaches the winning value, or when no move can
change the board (full and no equal neighbours). Endless variants have no
winning value. Campaign variants advance through levels with rising targets;
the last target is the winning value.

TOOLS
- game_state lists the moves that would change the board. Prefer them.
- move plays one move. bulk_move plays several and stops at the end of game.
- tilt, add_tile, spawn_tile and restore edit the board for analysis.
- new_game starts over, optionally with a seed for a reproducible game.

STRATEGY
Keep the largest tile in a corner and build a chain of decreasing values
along one edge. Avoid the side that would pull the big tile out of its corner.`

// sideName is the screen name of a side.
func sideName(s board.Side) string {
	switch s {
	case board.North:
		return "up"
	case board.South:
		return "down"
	case board.West:
		return "left"
	default:
		return "right"
	}
}

// availableMoves lists the sides a tilt toward would change b.
func availableMoves(b *board.Board) []string {
	var out []string
	for _, side := range []board.Side{board.North, board.South, board.West, board.East} {
		if engine.Tilt(b.Clone(), side).Changed {
			out = append(out, sideName(side))
		}
	}
	return out
}

// formatGameState renders a game for an agent.
func formatGameState(g *game.Game) string {
	snap := g.Snapshot()
	b := g.Board()

	var out strings.Builder
	fmt.Fprintf(&out, "Game: %s (%s) | Score: %d | Best: %d | Moves: %d | Max tile: %d\n",
		snap.ID, snap.Mode, snap.Score, max(snap.MaxScore, snap.Score), snap.Moves, snap.MaxTile)
	switch {
	case snap.Levels > 0:
		fmt.Fprintf(&out, "Level %d/%d | Target: %d\n", snap.Level, snap.Levels, snap.Target)
	case snap.Winning > 0:
		fmt.Fprintf(&out, "Target: %d\n", snap.Winning)
	default:
		out.WriteString("Target: none (endless)\n")
	}
	out.WriteString("\n")
	out.WriteString(b.String())
	out.WriteString("\n")

	switch snap.State {
	case game.StateWin:
		out.WriteString("WIN! Reached the winning tile.")
	case game.StateGameOver:
		out.WriteString("GAME OVER - no moves left.")
	default:
		moves := availableMoves(b)
		fmt.Fprintf(&out, "Available moves: %s", strings.Join(moves, ", "))
	}

	return out.String()
}
