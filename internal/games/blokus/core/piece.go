package core

import "fmt"

// Piece is a shape placed by a color in one orientation at an anchor.
type Piece struct {
	Color   Color
	Shape   ShapeID
	Variant int
	Anchor  Coord
}

// NewPiece builds a piece value.
func NewPiece(color Color, shape ShapeID, variant int, anchor Coord) Piece {
	return Piece{Color: color, Shape: shape, Variant: variant, Anchor: anchor}
}

// validVariant reports whether Shape and Variant name a catalog orientation.
func (p Piece) validVariant() bool {
	return p.Shape.Valid() && p.Variant >= 0 && p.Variant < len(p.Shape.Variants())
}

// Cells returns the absolute board cells covered by the piece.
// Returns nil when the shape or variant is not in the catalog.
func (p Piece) Cells() []Coord {
	if !p.validVariant() {
		return nil
	}
	offsets := p.Shape.Variants()[p.Variant]
	cells := make([]Coord, len(offsets))
	for i, o := range offsets {
		cells[i] = p.Anchor.Plus(o)
	}
	return cells
}

// String returns a compact description such as "RED PENTO_X#0@(3,4)".
func (p Piece) String() string {
	return fmt.Sprintf("%s %s#%d@%s", p.Color, p.Shape, p.Variant, p.Anchor)
}
