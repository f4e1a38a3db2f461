package board

import (
	"errors"
	"testing"
)

func TestFromRowsOrientation(t *testing.T) {
	b := FromRows([][]int{
		{2, 0, 0},
		{0, 4, 0},
		{0, 0, 8},
	})

	tests := []struct {
		col, row int
		value    int
		present  bool
	}{
		{0, 2, 2, true},  // top-left
		{1, 1, 4, true},  // centre
		{2, 0, 8, true},  // bottom-right
		{0, 0, 0, false}, // bottom-left
		{3, 0, 0, false}, // out of range
		{0, -1, 0, false},
	}

	for _, tt := range tests {
		tile, ok := b.Tile(tt.col, tt.row)
		if ok != tt.present {
			t.Errorf("Tile(%d, %d) present = %v, want %v", tt.col, tt.row, ok, tt.present)
		}
		if ok && tile.Value() != tt.value {
			t.Errorf("Tile(%d, %d) = %d, want %d", tt.col, tt.row, tile.Value(), tt.value)
		}
	}
}

func TestRowsRoundTrip(t *testing.T) {
	rows := [][]int{
		{2, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 16},
		{32, 0, 0, 2},
	}
	b := FromRows(rows)
	got := b.Rows()
	for i := range rows {
		for j := range rows[i] {
			if got[i][j] != rows[i][j] {
				t.Fatalf("Rows()[%d][%d] = %d, want %d", i, j, got[i][j], rows[i][j])
			}
		}
	}
}

func TestMove(t *testing.T) {
	b := FromRows([][]int{
		{0, 0},
		{2, 2},
	})

	// Simple move into an empty cell.
	if merged := b.Move(0, 0, 0, 1); merged {
		t.Error("Move into empty cell reported a merge")
	}
	if tile, ok := b.Tile(0, 1); !ok || tile != 2 {
		t.Errorf("after move Tile(0,1) = %v,%v, want 2,true", tile, ok)
	}
	if _, ok := b.Tile(0, 0); ok {
		t.Error("source cell still occupied after move")
	}

	// Merge into an occupied cell.
	if merged := b.Move(1, 0, 0, 1); !merged {
		t.Error("Move onto equal tile did not report a merge")
	}
	if tile, _ := b.Tile(0, 1); tile != 4 {
		t.Errorf("merged tile = %d, want 4", tile)
	}

	// Moving an empty cell is a no-op.
	before := b.Clone()
	if b.Move(1, 1, 0, 0) {
		t.Error("Move from empty cell reported a merge")
	}
	if !b.Equal(before) {
		t.Error("Move from empty cell changed the board")
	}
}

func TestAddTile(t *testing.T) {
	b := New(3)

	if err := b.AddTile(1, 1, 2); err != nil {
		t.Fatalf("AddTile() failed: %v", err)
	}
	if err := b.AddTile(1, 1, 4); !errors.Is(err, ErrOccupied) {
		t.Errorf("AddTile on occupied cell: err = %v, want ErrOccupied", err)
	}
	if err := b.AddTile(3, 0, 2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("AddTile out of bounds: err = %v, want ErrOutOfBounds", err)
	}
	if err := b.AddTile(0, 0, 0); !errors.Is(err, ErrInvalidTile) {
		t.Errorf("AddTile zero value: err = %v, want ErrInvalidTile", err)
	}
}

func TestEmptyCellsAndClear(t *testing.T) {
	b := FromRows([][]int{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	})

	if n := len(b.EmptyCells()); n != 8 {
		t.Errorf("EmptyCells count = %d, want 8", n)
	}
	if m := b.MaxTile(); m != 2048 {
		t.Errorf("MaxTile = %d, want 2048", m)
	}

	b.Clear()
	if n := len(b.EmptyCells()); n != 16 {
		t.Errorf("EmptyCells after Clear = %d, want 16", n)
	}
	if m := b.MaxTile(); m != 0 {
		t.Errorf("MaxTile after Clear = %d, want 0", m)
	}
}

func TestOrientedViewMapsToEdges(t *testing.T) {
	// A single tile in the lower-left corner, seen from each side.
	b := FromRows([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{2, 0, 0},
	})

	tests := []struct {
		side     Side
		col, row int // where the corner tile appears in the view
	}{
		{North, 0, 0},
		{East, 2, 0},
		{South, 2, 2},
		{West, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			v := b.Oriented(tt.side)
			tile, ok := v.Tile(tt.col, tt.row)
			if !ok || tile != 2 {
				t.Errorf("view Tile(%d, %d) = %v,%v, want 2,true", tt.col, tt.row, tile, ok)
			}
		})
	}
}

func TestOrientedViewIsBijective(t *testing.T) {
	const n = 4
	for _, s := range Sides() {
		seen := make(map[Cell]bool)
		for c := range n {
			for r := range n {
				cell := Cell{Col: s.Col(c, r, n), Row: s.Row(c, r, n)}
				if cell.Col < 0 || cell.Col >= n || cell.Row < 0 || cell.Row >= n {
					t.Fatalf("%s maps (%d,%d) out of range to %v", s, c, r, cell)
				}
				if seen[cell] {
					t.Fatalf("%s maps two view cells onto %v", s, cell)
				}
				seen[cell] = true
			}
		}
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in   string
		want Side
	}{
		{"north", North},
		{"UP", North},
		{"e", East},
		{"right", East},
		{" down ", South},
		{"west", West},
		{"l", West},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.in)
		if err != nil {
			t.Errorf("ParseSide(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSide(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSide("sideways"); err == nil {
		t.Error("ParseSide accepted an unknown direction")
	}
}

func TestString(t *testing.T) {
	b := FromRows([][]int{
		{2, 0},
		{0, 16},
	})
	want := "|   2|    |\n|    |  16|\n"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
