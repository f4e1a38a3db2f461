package core

import "testing"

func TestScreenSetAndGet(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColor(1, 0, '8', ColorOrange)
	s.Set(9, 9, 'x') // ignored

	if got := s.Get(1, 0); got != '8' {
		t.Errorf("Get(1,0) = %q, want '8'", got)
	}
	if c := s.GetCell(1, 0).Color; c != ColorOrange {
		t.Errorf("GetCell(1,0).Color = %v, want ColorOrange", c)
	}
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Get out of bounds = %q, want space", got)
	}
	if got := s.String(); got != " 8  \n    " {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(2, 0, "2048")
	if got := s.Row(0); got != "  204" {
		t.Errorf("Row(0) = %q, want %q", got, "  204")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(Rect{X: 0, Y: 0, W: 4, H: 3})
	want := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != want {
		t.Errorf("DrawBox =\n%s\nwant\n%s", got, want)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(2, 2)
	s.Set(0, 0, 'a')
	s.Resize(3, 1)
	if s.Width() != 3 || s.Height() != 1 {
		t.Fatalf("size = %dx%d, want 3x1", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "   " {
		t.Errorf("Row(0) after resize = %q", got)
	}
}

func TestTileColor(t *testing.T) {
	tests := []struct {
		value int
		want  Color
	}{
		{0, ColorGray},
		{2, ColorWhite},
		{4, ColorBrightWhite},
		{128, ColorBrightYellow},
		{2048, ColorGreen},
	}
	for _, tt := range tests {
		if got := TileColor(tt.value); got != tt.want {
			t.Errorf("TileColor(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestInputFrame(t *testing.T) {
	in := NewInputFrame()
	in.Set(ActionLeft)
	if !in.Has(ActionLeft) || in.Has(ActionRight) {
		t.Fatalf("Has() mismatch: %v", in.Actions())
	}
	in.Set(ActionPause)
	if got := in.Actions(); len(got) != 2 || got[0] != ActionLeft || got[1] != ActionPause {
		t.Errorf("Actions() = %v, want [Left Pause]", got)
	}
	if !ActionLeft.IsTilt() || ActionPause.IsTilt() {
		t.Error("IsTilt() mismatch")
	}
	in.Clear()
	if in.Has(ActionLeft) {
		t.Error("Clear() left ActionLeft set")
	}
	var zero InputFrame
	if zero.Has(ActionUp) || !zero.Empty() {
		t.Error("zero frame reports an action")
	}
	if Action(42).String() != "Unknown" {
		t.Errorf("Action(42).String() = %q", Action(42).String())
	}
}
