package core

// Color is the foreground colour of a screen cell.
// Front-ends map it onto ANSI 256-colour codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorCyan
	ColorGreen
	ColorBrightYellow
	ColorBrightWhite
)

// tileColors cycles through warm-to-cool colours as tile values grow.
var tileColors = []Color{
	ColorWhite,        // 2
	ColorBrightWhite,  // 4
	ColorYellow,       // 8
	ColorOrange,       // 16
	ColorRed,          // 32
	ColorMagenta,      // 64
	ColorBrightYellow, // 128
	ColorCyan,         // 256
	ColorGreen,        // 512+
}

// TileColor picks the display colour for a tile value by its rank
// (how many doublings above 2 it is). Non-powers of two use the rank of the
// largest power of two below them.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	rank := 0
	for v := value; v > 2; v >>= 1 {
		rank++
	}
	if rank >= len(tileColors) {
		rank = len(tileColors) - 1
	}
	return tileColors[rank]
}
