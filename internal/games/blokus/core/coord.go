package core

import "fmt"

// Coord is a board position. X grows to the right, Y grows downward, so
// row-major order means Y outer, X inner.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Plus returns the sum of two coordinates.
func (c Coord) Plus(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Less orders coordinates row-major.
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// CompareCoords orders coordinates row-major, for use with slices.SortFunc.
func CompareCoords(a, b Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// edgeDeltas are the four orthogonal neighbours.
var edgeDeltas = [4]Coord{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// cornerDeltas are the four diagonal neighbours.
var cornerDeltas = [4]Coord{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}

// Corner names one of the four board corners.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// String returns the config name of the corner.
func (k Corner) String() string {
	switch k {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return "unknown"
	}
}

// Coord returns the corner cell on a size×size board.
func (k Corner) Coord(size int) Coord {
	switch k {
	case TopRight:
		return C(size-1, 0)
	case BottomRight:
		return C(size-1, size-1)
	case BottomLeft:
		return C(0, size-1)
	default:
		return C(0, 0)
	}
}

// ParseCorner converts a config name to a Corner.
func ParseCorner(s string) (Corner, bool) {
	switch s {
	case "top-left", "tl":
		return TopLeft, true
	case "top-right", "tr":
		return TopRight, true
	case "bottom-right", "br":
		return BottomRight, true
	case "bottom-left", "bl":
		return BottomLeft, true
	default:
		return TopLeft, false
	}
}
