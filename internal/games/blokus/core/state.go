package core

import (
	"fmt"
	"slices"
)

// State represents the complete game state at any point in time.
type State struct {
	Rules *Rules
	Board *Board
	// Turn counts performed moves, set and skip alike.
	Turn int
	// Undeployed holds the shapes each color still has to place.
	Undeployed [ColorCount]ShapeSet
	// Deployed lists placed pieces per color in placement order.
	Deployed [ColorCount][]Piece
	// Active is the queue of colors still able to act; the front moves next.
	Active   []Color
	LastMove Move
	// MonoLast records, once a color has placed everything, whether its
	// final piece was the monomino.
	MonoLast  [ColorCount]bool
	Condition *Condition
}

// NewState creates the initial state for rules: empty board, full
// inventories, turn 0 and the configured turn order.
func NewState(rules *Rules) (*State, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	s := &State{
		Rules:  rules,
		Board:  NewBoard(rules.BoardSize),
		Active: slices.Clone(rules.Colors),
	}
	for _, c := range rules.Colors {
		s.Undeployed[c] = FullShapeSet()
	}
	return s, nil
}

// Clone returns a deep copy of the state. Rules are shared.
func (s *State) Clone() *State {
	cp := &State{
		Rules:      s.Rules,
		Board:      s.Board.Clone(),
		Turn:       s.Turn,
		Undeployed: s.Undeployed,
		Active:     slices.Clone(s.Active),
		LastMove:   s.LastMove,
		MonoLast:   s.MonoLast,
	}
	for c := range s.Deployed {
		cp.Deployed[c] = slices.Clone(s.Deployed[c])
	}
	if s.Condition != nil {
		cond := *s.Condition
		cond.Winners = slices.Clone(s.Condition.Winners)
		cp.Condition = &cond
	}
	return cp
}

// CurrentColor returns the color whose turn it is.
func (s *State) CurrentColor() (Color, bool) {
	if len(s.Active) == 0 || s.Condition != nil {
		return Red, false
	}
	return s.Active[0], true
}

// Round returns the zero-based round: Turn divided by the number of
// participating colors.
func (s *State) Round() int {
	return s.Turn / len(s.Rules.Colors)
}

// IsFirstMove reports whether c has not placed any piece yet.
func (s *State) IsFirstMove(c Color) bool {
	return s.Undeployed[c].IsFull()
}

// IsFinished reports whether the game has a condition.
func (s *State) IsFinished() bool {
	return s.Condition != nil
}

// IsActive reports whether c is still in the turn queue.
func (s *State) IsActive(c Color) bool {
	return slices.Contains(s.Active, c)
}

// UndeployedShapes returns the shapes c still holds in catalog order.
func (s *State) UndeployedShapes(c Color) []ShapeID {
	return s.Undeployed[c].IDs()
}

// DeployedPieces returns the pieces c has placed.
func (s *State) DeployedPieces(c Color) []Piece {
	return s.Deployed[c]
}

// advance moves the front color to the back of the queue.
func (s *State) advance() {
	if len(s.Active) < 2 {
		return
	}
	next := make([]Color, 0, len(s.Active))
	next = append(next, s.Active[1:]...)
	s.Active = append(next, s.Active[0])
}

// dropCurrent removes the front color from the queue.
func (s *State) dropCurrent() {
	s.Active = slices.Clone(s.Active[1:])
}

// OwnedCells returns the board cells of c in row-major order.
func (s *State) OwnedCells(c Color) []Coord {
	return s.Board.CoordsOf(c)
}
