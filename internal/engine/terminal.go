package engine

import "github.com/vovakirdan/tilt/internal/board"

// IsTerminal reports whether the game has ended: a tile equal to winning is on
// the board, or no tilt in any direction could change it.
// A winning value of zero or less disables the first condition.
func IsTerminal(g board.Grid, winning int) bool {
	return WinningTileExists(g, winning) || !MoveExists(g)
}

// WinningTileExists reports whether any tile has the winning value.
func WinningTileExists(g board.Grid, winning int) bool {
	if winning <= 0 {
		return false
	}
	n := g.Size()
	for col := range n {
		for row := range n {
			if t, ok := g.Tile(col, row); ok && t.Value() == winning {
				return true
			}
		}
	}
	return false
}

// MoveExists reports whether at least one tilt could change the board.
func MoveExists(g board.Grid) bool {
	return EmptySpaceExists(g) || MergeableTilesExist(g)
}

// EmptySpaceExists reports whether any cell is empty.
func EmptySpaceExists(g board.Grid) bool {
	n := g.Size()
	for col := range n {
		for row := range n {
			if _, ok := g.Tile(col, row); !ok {
				return true
			}
		}
	}
	return false
}

// MergeableTilesExist reports whether two orthogonally adjacent tiles share a
// value.
//
// Only cells with col%2 == row%2 are examined. Every adjacent pair has exactly
// one endpoint of that parity, so checking those cells' four neighbours covers
// every pair once for any board size.
func MergeableTilesExist(g board.Grid) bool {
	n := g.Size()
	for col := range n {
		for row := col % 2; row < n; row += 2 {
			if adjacentEqual(g, col, row) {
				return true
			}
		}
	}
	return false
}

// adjacentEqual reports whether a neighbour of (col, row) holds an equal tile.
func adjacentEqual(g board.Grid, col, row int) bool {
	t, ok := g.Tile(col, row)
	if !ok {
		return false
	}
	return sameTile(g, t, col-1, row) ||
		sameTile(g, t, col+1, row) ||
		sameTile(g, t, col, row-1) ||
		sameTile(g, t, col, row+1)
}

// sameTile reports whether (col, row) is on the board and holds a tile equal
// to t. Missing and out-of-range neighbours never match.
func sameTile(g board.Grid, t board.Tile, col, row int) bool {
	n := g.Size()
	if col < 0 || col >= n || row < 0 || row >= n {
		return false
	}
	other, ok := g.Tile(col, row)
	return ok && other == t
}
