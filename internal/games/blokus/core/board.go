package core

import (
	"strings"

	"github.com/pkg/errors"
)

// Cell is a single board square. Color and Shape are valid only when
// Filled is true.
type Cell struct {
	Filled bool
	Color  Color
	Shape  ShapeID
}

// Board is a Size×Size occupancy store.
// Cells are stored in row-major order: index = y*Size + x.
type Board struct {
	Size  int
	Cells []Cell
}

// NewBoard creates an empty board.
func NewBoard(size int) *Board {
	return &Board{
		Size:  size,
		Cells: make([]Cell, size*size),
	}
}

func (b *Board) index(c Coord) int {
	return c.Y*b.Size + c.X
}

// InBounds returns true if the coordinate is on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.Size && c.Y >= 0 && c.Y < b.Size
}

// CellAt returns the cell at c.
func (b *Board) CellAt(c Coord) (Cell, error) {
	if !b.InBounds(c) {
		return Cell{}, errors.Wrapf(ErrOutOfBounds, "cell %s on %dx%d board", c, b.Size, b.Size)
	}
	return b.Cells[b.index(c)], nil
}

// get returns the cell at c, or an empty cell when c is off the board.
func (b *Board) get(c Coord) Cell {
	if !b.InBounds(c) {
		return Cell{}
	}
	return b.Cells[b.index(c)]
}

// IsEmpty reports whether an in-bounds cell is empty.
func (b *Board) IsEmpty(c Coord) bool {
	return !b.get(c).Filled
}

// OwnerOf returns the color owning c, if any.
func (b *Board) OwnerOf(c Coord) (Color, bool) {
	cell := b.get(c)
	return cell.Color, cell.Filled
}

// owns reports whether color owns c; false off the board.
func (b *Board) owns(c Coord, color Color) bool {
	cell := b.get(c)
	return cell.Filled && cell.Color == color
}

// Place claims an empty cell for color. color and shape must be catalog
// entries so the board stays renderable.
func (b *Board) Place(c Coord, color Color, shape ShapeID) error {
	if !color.Valid() || !shape.Valid() {
		return errors.Wrapf(ErrUnknownOccupant, "place %s: color %d, shape %d", c, color, shape)
	}
	if !b.InBounds(c) {
		return errors.Wrapf(ErrOutOfBounds, "place %s", c)
	}
	i := b.index(c)
	if b.Cells[i].Filled {
		return errors.Wrapf(ErrAlreadyOccupied, "place %s: owned by %s", c, b.Cells[i].Color)
	}
	b.Cells[i] = Cell{Filled: true, Color: color, Shape: shape}
	return nil
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{Size: b.Size, Cells: cells}
}

// Equal returns true if two boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.Size != other.Size {
		return false
	}
	for i, cell := range b.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// FilledCount returns the number of owned cells.
func (b *Board) FilledCount() int {
	count := 0
	for _, cell := range b.Cells {
		if cell.Filled {
			count++
		}
	}
	return count
}

// CountByColor returns the owned cell count per color.
func (b *Board) CountByColor() map[Color]int {
	counts := make(map[Color]int)
	for _, cell := range b.Cells {
		if cell.Filled {
			counts[cell.Color]++
		}
	}
	return counts
}

// CoordsOf returns the cells owned by color in row-major order.
func (b *Board) CoordsOf(color Color) []Coord {
	var coords []Coord
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.owns(C(x, y), color) {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// String renders the board in the fixture format.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.Size * b.Size * 3)
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			cell := b.Cells[b.index(C(x, y))]
			if !cell.Filled {
				sb.WriteString(emptyToken)
				continue
			}
			sb.WriteByte(cell.Color.Char())
			sb.WriteByte(cell.Shape.Code())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
