package core

import "fmt"

// Move is either a SetMove or a SkipMove.
type Move interface {
	// Color returns the color making the move.
	Color() Color
	String() string
	move()
}

// SetMove places a piece.
type SetMove struct {
	Piece Piece
}

// NewSetMove is shorthand for building a SetMove from piece fields.
func NewSetMove(color Color, shape ShapeID, variant int, anchor Coord) SetMove {
	return SetMove{Piece: NewPiece(color, shape, variant, anchor)}
}

func (m SetMove) Color() Color   { return m.Piece.Color }
func (m SetMove) String() string { return "set " + m.Piece.String() }
func (SetMove) move()            {}

// SkipMove passes the turn.
type SkipMove struct {
	Player Color
}

func (m SkipMove) Color() Color   { return m.Player }
func (m SkipMove) String() string { return fmt.Sprintf("skip %s", m.Player) }
func (SkipMove) move()            {}
