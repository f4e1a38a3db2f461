package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tilt/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including the left border)
	cellHeight = 2 // Height of each cell (including the top border)
	hudHeight  = 3
)

// boardExtent returns the board's on-screen width and height.
func (g *Game) boardExtent() (int, int) {
	n := g.opts.Size
	return n*cellWidth + 1, n*cellHeight + 1
}

// Render draws the HUD, the board and any overlay, centred on dst.
func (g *Game) Render(dst *core.Screen) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardExtent()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall asks for a bigger terminal instead of drawing a clipped board.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws score, best and level lines above the board.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.opts.Title
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	var info string
	switch {
	case len(g.levels) > 0:
		info = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, len(g.levels), g.target)
	case g.winning > 0:
		info = fmt.Sprintf("Target: %d", g.winning)
	default:
		info = fmt.Sprintf("Max: %d", g.board.MaxTile())
	}
	infoX := max(boardX+boardW-len(info), boardX)
	dst.DrawText(infoX, 1, info)

	best := fmt.Sprintf("Best: %d  Moves: %d", max(g.maxScore, g.score), g.moves)
	dst.DrawTextColor(boardX+(boardW-len(best))/2, 2, best, core.ColorGray)
}

// renderBoard draws the grid with tiles, north edge at the top.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.opts.Size

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for y := range n {
		row := n - 1 - y
		for col := range n {
			t, ok := g.board.Tile(col, row)
			if !ok {
				continue
			}

			val := strconv.Itoa(t.Value())
			cellX := boardX + col*cellWidth + 1
			cellY := boardY + y*cellHeight + 1
			padLeft := max((cellWidth-1-len(val))/2, 0)

			dst.DrawTextColor(cellX+padLeft, cellY, val, core.TileColor(t.Value()))
		}
	}
}

// renderOverlays boxes the pause, level clear and game over messages.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.over && g.won():
		g.drawOverlay(dst, centerX, centerY, "YOU WIN!", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.over:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Max tile: %d", g.board.MaxTile()), "Press R to restart")
	case g.levelCleared:
		prev := g.levels[max(g.levelIndex-1, 0)]
		g.drawOverlay(dst, centerX, centerY,
			fmt.Sprintf("Target %d reached!", prev.Target),
			fmt.Sprintf("Next: Level %d", g.levelIndex+1))
	}
}

// drawOverlay blanks a box around lines and writes them centred on
// (centerX, centerY).
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	blank := strings.Repeat(" ", boxW)
	for y := range boxH {
		dst.DrawText(boxX, boxY+y, blank)
	}

	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, boxY+1+i, line, core.ColorBrightWhite)
	}
}
