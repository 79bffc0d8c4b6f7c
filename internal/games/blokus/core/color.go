package core

import "strings"

// Color identifies a player's pieces on the board.
type Color uint8

const (
	Red Color = iota
	Blue
	Yellow
	Green
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case Blue:
		return "BLUE"
	case Yellow:
		return "YELLOW"
	case Green:
		return "GREEN"
	default:
		return "UNKNOWN"
	}
}

// Char returns the single character code used by the board fixture format.
func (c Color) Char() byte {
	switch c {
	case Red:
		return 'R'
	case Blue:
		return 'B'
	case Yellow:
		return 'Y'
	case Green:
		return 'G'
	default:
		return '?'
	}
}

// Valid reports whether c is one of the four player colors.
func (c Color) Valid() bool {
	return c < ColorCount
}

// ParseColor converts a name or single character code to a Color.
// Returns Red and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return Red, true
	case "blue", "b":
		return Blue, true
	case "yellow", "y":
		return Yellow, true
	case "green", "g":
		return Green, true
	default:
		return Red, false
	}
}

// ColorByChar maps a fixture color code back to its Color.
func ColorByChar(ch byte) (Color, bool) {
	for _, c := range AllColors() {
		if c.Char() == ch {
			return c, true
		}
	}
	return Red, false
}

// AllColors returns all colors in default turn order.
func AllColors() []Color {
	return []Color{Red, Blue, Yellow, Green}
}
