// Package engine implements the rules of a single turn: sliding and merging
// tiles toward one side of the board, and deciding whether the game is over.
//
// The engine never rotates the board. It works through an oriented view in
// which the chosen side behaves as north, so one column-slide routine serves
// all four directions and the board is always observed in its default
// orientation once Tilt returns.
package engine

import "github.com/vovakirdan/tilt/internal/board"

// Result reports the outcome of one tilt.
type Result struct {
	Changed bool // Whether any tile moved or merged
	Score   int  // Sum of the values of all tiles produced by merges
}

// Tilt slides every tile toward side s, merging equal neighbours at most once
// per tile.
func Tilt(g board.Orientable, s board.Side) Result {
	v := g.Oriented(s)

	var res Result
	for col := range v.Size() {
		colRes := slideColumn(v, col)
		res.Changed = res.Changed || colRes.Changed
		res.Score += colRes.Score
	}
	return res
}

// slideColumn moves the tiles of one column toward the highest row.
//
// dest is the next row a tile may occupy. canMerge is set when the tile most
// recently placed at dest+1 may still absorb an equal tile; it is cleared
// after a merge so a merged tile never merges again in the same tilt.
func slideColumn(g board.Grid, col int) Result {
	var res Result
	dest := g.Size() - 1
	canMerge := false

	for row := nextTile(g, col, dest); row >= 0; row = nextTile(g, col, dest) {
		t, _ := g.Tile(col, row)

		if canMerge {
			if above, ok := g.Tile(col, dest+1); ok && above == t {
				dest++
			}
		}

		merged := false
		if dest != row {
			merged = g.Move(col, row, col, dest)
			res.Changed = true
			if merged {
				res.Score += 2 * t.Value()
			}
		}

		canMerge = !merged
		dest--
	}
	return res
}

// nextTile returns the highest occupied row at or below row, or -1.
func nextTile(g board.Grid, col, row int) int {
	for ; row >= 0; row-- {
		if _, ok := g.Tile(col, row); ok {
			return row
		}
	}
	return -1
}
