package board

import (
	"fmt"
	"strings"
)

// Side names one edge of the board and doubles as a tilt direction.
type Side int

const (
	North Side = iota
	East
	South
	West
)

// Sides lists all four sides in clockwise order starting at North.
func Sides() []Side {
	return []Side{North, East, South, West}
}

// String returns the lowercase name of the side.
func (s Side) String() string {
	switch s {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseSide converts a user-facing direction name into a Side.
// Accepts compass names, screen names (up/down/left/right) and their first letters.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "north", "n", "up", "u":
		return North, nil
	case "east", "e", "right", "r":
		return East, nil
	case "south", "s", "down", "d":
		return South, nil
	case "west", "w", "left", "l":
		return West, nil
	}
	return North, fmt.Errorf("board: unknown side %q", name)
}

// Col maps column c, row r of the view in which s behaves as north onto the
// column of the underlying board of the given size.
func (s Side) Col(c, r, size int) int {
	switch s {
	case East:
		return r
	case South:
		return size - 1 - c
	case West:
		return size - 1 - r
	default:
		return c
	}
}

// Row is the row counterpart of Col.
func (s Side) Row(c, r, size int) int {
	switch s {
	case East:
		return size - 1 - c
	case South:
		return size - 1 - r
	case West:
		return c
	default:
		return r
	}
}
