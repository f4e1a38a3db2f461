// Package board implements the square tile grid the puzzle is played on.
//
// Coordinates are (column, row) with (0, 0) in the lower-left corner, so row
// size-1 is the north edge. Empty cells hold no tile; every accessor reports
// presence explicitly instead of returning a sentinel value.
package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the board.
	ErrOutOfBounds = errors.New("board: coordinate out of bounds")
	// ErrOccupied is returned when a tile is added to a cell that already holds one.
	ErrOccupied = errors.New("board: cell already occupied")
	// ErrInvalidTile is returned for non-positive tile values.
	ErrInvalidTile = errors.New("board: tile value must be positive")
)

// Tile is the value of a single tile. The zero Tile never appears on a board.
type Tile int

// Value returns the tile's integer value.
func (t Tile) Value() int {
	return int(t)
}

// Grid is the read/move surface the tilt engine and terminal detector work on.
type Grid interface {
	// Size returns the number of cells along one side.
	Size() int

	// Tile returns the tile at (col, row) and whether one is present.
	// Out-of-range coordinates report no tile.
	Tile(col, row int) (Tile, bool)

	// Move relocates the tile at (fromCol, fromRow) to (col, row).
	// Returns true iff the destination already held a tile and the two were
	// merged into one tile of their combined value.
	Move(fromCol, fromRow, col, row int) bool
}

// Orientable is a Grid that can be viewed from any side.
type Orientable interface {
	Grid

	// Oriented returns a view of the grid in which s behaves as north.
	Oriented(s Side) Grid
}

// Cell is a (column, row) coordinate.
type Cell struct {
	Col int
	Row int
}

// Board is an N×N grid of optional tiles.
// Cells are stored row-major: index = row*size + col.
type Board struct {
	size  int
	cells []Tile
}

// New creates an empty board with the given side length.
func New(size int) *Board {
	if size < 1 {
		size = 1
	}
	return &Board{
		size:  size,
		cells: make([]Tile, size*size),
	}
}

// FromRows builds a board from raw values written top row first, the way a
// board is read on screen. Zero means empty. The board size is len(rows);
// short rows are padded with empty cells.
func FromRows(rows [][]int) *Board {
	b := New(len(rows))
	for i, line := range rows {
		row := b.size - 1 - i
		for col := 0; col < b.size && col < len(line); col++ {
			if line[col] > 0 {
				b.cells[b.index(col, row)] = Tile(line[col])
			}
		}
	}
	return b
}

// index converts a coordinate to a flat array index.
func (b *Board) index(col, row int) int {
	return row*b.size + col
}

// InBounds reports whether (col, row) lies on the board.
func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && col < b.size && row >= 0 && row < b.size
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

// Tile returns the tile at (col, row), if any.
func (b *Board) Tile(col, row int) (Tile, bool) {
	if !b.InBounds(col, row) {
		return 0, false
	}
	t := b.cells[b.index(col, row)]
	return t, t != 0
}

// Move relocates a tile, merging it into an occupied destination.
// Moving from an empty or out-of-range cell, or onto itself, does nothing.
func (b *Board) Move(fromCol, fromRow, col, row int) bool {
	if !b.InBounds(fromCol, fromRow) || !b.InBounds(col, row) {
		return false
	}
	from := b.index(fromCol, fromRow)
	to := b.index(col, row)
	if from == to || b.cells[from] == 0 {
		return false
	}

	moving := b.cells[from]
	b.cells[from] = 0

	if existing := b.cells[to]; existing != 0 {
		b.cells[to] = existing + moving
		return true
	}
	b.cells[to] = moving
	return false
}

// AddTile places a new tile on an empty cell.
func (b *Board) AddTile(col, row int, t Tile) error {
	if t <= 0 {
		return ErrInvalidTile
	}
	if !b.InBounds(col, row) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, col, row, b.size, b.size)
	}
	i := b.index(col, row)
	if b.cells[i] != 0 {
		return fmt.Errorf("%w: (%d,%d)", ErrOccupied, col, row)
	}
	b.cells[i] = t
	return nil
}

// Clear removes every tile.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = 0
	}
}

// Oriented returns a view of the board in which s behaves as north.
// The board itself is never rotated, so other readers always see the
// default orientation.
func (b *Board) Oriented(s Side) Grid {
	if s == North {
		return b
	}
	return view{b: b, side: s}
}

// EmptyCells returns the coordinates of all empty cells, column-major.
func (b *Board) EmptyCells() []Cell {
	var cells []Cell
	for col := range b.size {
		for row := range b.size {
			if b.cells[b.index(col, row)] == 0 {
				cells = append(cells, Cell{Col: col, Row: row})
			}
		}
	}
	return cells
}

// MaxTile returns the largest tile value on the board, or 0 when empty.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, t := range b.cells {
		if int(t) > maxVal {
			maxVal = int(t)
		}
	}
	return maxVal
}

// Rows returns the raw values top row first (the inverse of FromRows).
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for i := range rows {
		row := b.size - 1 - i
		rows[i] = make([]int, b.size)
		for col := range b.size {
			rows[i][col] = int(b.cells[b.index(col, row)])
		}
	}
	return rows
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Tile, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether two boards have the same size and tiles.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board top row first, one "|%4d" cell per tile.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.size - 1; row >= 0; row-- {
		for col := range b.size {
			if t, ok := b.Tile(col, row); ok {
				fmt.Fprintf(&sb, "|%4d", t)
			} else {
				sb.WriteString("|    ")
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
