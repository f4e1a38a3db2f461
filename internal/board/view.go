package board

// view reads and writes a board through a side's coordinate mapping.
// It holds no state beyond the mapping, so any number of views of the same
// board can exist without disturbing each other.
type view struct {
	b    *Board
	side Side
}

func (v view) Size() int {
	return v.b.size
}

func (v view) Tile(col, row int) (Tile, bool) {
	n := v.b.size
	return v.b.Tile(v.side.Col(col, row, n), v.side.Row(col, row, n))
}

func (v view) Move(fromCol, fromRow, col, row int) bool {
	n := v.b.size
	return v.b.Move(
		v.side.Col(fromCol, fromRow, n), v.side.Row(fromCol, fromRow, n),
		v.side.Col(col, row, n), v.side.Row(col, row, n),
	)
}
