package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilt/internal/core"
)

// palette holds the ANSI code for each core.Color, indexed by colour.
// Bright colours are rendered bold.
var palette = [...]struct {
	code string
	bold bool
}{
	core.ColorDefault:      {},
	core.ColorGray:         {code: "245"},
	core.ColorWhite:        {code: "7"},
	core.ColorYellow:       {code: "3"},
	core.ColorOrange:       {code: "208"},
	core.ColorRed:          {code: "1"},
	core.ColorMagenta:      {code: "5"},
	core.ColorCyan:         {code: "6"},
	core.ColorGreen:        {code: "2", bold: true},
	core.ColorBrightYellow: {code: "11", bold: true},
	core.ColorBrightWhite:  {code: "15", bold: true},
}

var cellStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for i, p := range palette {
		st := lipgloss.NewStyle().Bold(p.bold)
		if p.code != "" {
			st = st.Foreground(lipgloss.Color(p.code))
		}
		styles[i] = st
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen turns the screen into styled text, one line per row. Each run
// of same-coloured cells is styled once.
func RenderScreen(s *core.Screen) string {
	lines := make([]string, s.Height())
	var run []rune
	for y := range lines {
		var line strings.Builder
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run = run[:0]
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run = append(run, cell.Rune)
			}
			line.WriteString(styleFor(color).Render(string(run)))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
