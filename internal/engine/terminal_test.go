package engine

import (
	"testing"

	"github.com/vovakirdan/tilt/internal/board"
)

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]int
		winning int
		want    bool
	}{
		{
			name: "full board without pairs",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 4, 4096},
				{8192, 16384, 32768, 65536},
			},
			winning: 2048,
			want:    true,
		},
		{
			name: "full board with one empty cell",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
			winning: 2048,
			want:    false,
		},
		{
			name: "full board with horizontal pair",
			rows: [][]int{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 4, 4096},
				{8192, 16384, 32768, 65536},
			},
			winning: 2048,
			want:    false,
		},
		{
			name: "full board with vertical pair on odd cells",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 4, 4096},
				{8192, 16384, 32768, 4096},
			},
			winning: 2048,
			want:    false,
		},
		{
			name: "winning tile with moves left",
			rows: [][]int{
				{2048, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 2},
			},
			winning: 2048,
			want:    true,
		},
		{
			name: "endless mode ignores winning tile",
			rows: [][]int{
				{2048, 0},
				{0, 0},
			},
			winning: 0,
			want:    false,
		},
		{
			name:    "empty board",
			rows:    [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
			winning: 2048,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board.FromRows(tt.rows)
			if got := IsTerminal(b, tt.winning); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v\n%s", got, tt.want, b)
			}
		})
	}
}

func TestMergeableTilesExistCoversEveryPair(t *testing.T) {
	// Place a single equal pair at every adjacent position on otherwise
	// distinct full boards of even and odd sizes.
	for _, n := range []int{2, 3, 4, 5, 6} {
		for col := range n {
			for row := range n {
				for _, d := range [][2]int{{1, 0}, {0, 1}} {
					c2, r2 := col+d[0], row+d[1]
					if c2 >= n || r2 >= n {
						continue
					}
					b := distinctBoard(n)
					t1, _ := b.Tile(col, row)
					b = withTile(b, c2, r2, t1)

					if !MergeableTilesExist(b) {
						t.Fatalf("size %d: pair (%d,%d)-(%d,%d) not detected\n%s", n, col, row, c2, r2, b)
					}
				}
			}
		}
		if MergeableTilesExist(distinctBoard(n)) {
			t.Fatalf("size %d: distinct board reported a pair", n)
		}
	}
}

func TestMergeableTilesExistWithHoles(t *testing.T) {
	// Empty neighbours never compare equal, including next to sampled cells.
	b := board.FromRows([][]int{
		{0, 2, 0},
		{4, 0, 8},
		{0, 16, 0},
	})
	if MergeableTilesExist(b) {
		t.Error("empty cells must not count as equal neighbours")
	}
	if !MoveExists(b) {
		t.Error("a board with holes always has a move")
	}
}

func TestWinningTileExists(t *testing.T) {
	b := board.FromRows([][]int{
		{2, 4},
		{0, 128},
	})
	if !WinningTileExists(b, 128) {
		t.Error("WinningTileExists(128) = false, want true")
	}
	if WinningTileExists(b, 2048) {
		t.Error("WinningTileExists(2048) = true, want false")
	}
}

// distinctBoard returns a full board whose tiles are all different.
func distinctBoard(n int) *board.Board {
	rows := make([][]int, n)
	v := 1
	for i := range rows {
		rows[i] = make([]int, n)
		for j := range rows[i] {
			rows[i][j] = v
			v++
		}
	}
	return board.FromRows(rows)
}

// withTile returns a copy of b with (col, row) replaced by t.
func withTile(b *board.Board, col, row int, t board.Tile) *board.Board {
	rows := b.Rows()
	rows[b.Size()-1-row][col] = t.Value()
	return board.FromRows(rows)
}
