package core

// ValidateMove checks a move of either kind against the state.
func ValidateMove(s *State, m Move) error {
	switch mv := m.(type) {
	case SetMove:
		return ValidateSetMove(s, mv)
	case SkipMove:
		return ValidateSkipMove(s, mv)
	default:
		return corrupt("unknown move kind %T", m)
	}
}

// ValidateSetMove checks a placement without applying it. Checks run in a
// fixed order and the first failure is reported:
//
//  1. the color is at the front of the turn queue
//  2. the shape is undeployed (and is the start shape on a first move)
//  3. every cell is on the board
//  4. every cell is empty
//  5. no cell shares an edge with the same color
//  6. first move: a cell covers the color's corner;
//     later moves: a cell touches the same color diagonally
func ValidateSetMove(s *State, m SetMove) error {
	if s.IsFinished() {
		return invalid(GameAlreadyFinished, m, "game already finished")
	}
	if err := checkTurn(s, m); err != nil {
		return err
	}

	color := m.Color()
	p := m.Piece
	if !s.Undeployed[color].Has(p.Shape) {
		return invalid(ShapeNotAvailable, m, "%s has no undeployed %s", color, p.Shape)
	}
	first := s.IsFirstMove(color)
	if first && s.Rules.StartShape != NoShape && p.Shape != s.Rules.StartShape {
		return invalid(WrongStartShape, m, "%s is not the required first shape %s", p.Shape, s.Rules.StartShape)
	}
	if !p.validVariant() {
		return invalid(UnknownOrientation, m, "%s has no orientation %d", p.Shape, p.Variant)
	}

	cells := p.Cells()
	for _, c := range cells {
		if !s.Board.InBounds(c) {
			return invalidAt(OutOfBounds, m, c, "cell %s is out of bounds", c)
		}
	}
	for _, c := range cells {
		if owner, taken := s.Board.OwnerOf(c); taken {
			return invalidAt(CellOccupied, m, c, "cell %s already belongs to %s", c, owner)
		}
	}
	for _, c := range cells {
		if bordersColor(s.Board, c, color) {
			return invalidAt(TouchesSameColorEdge, m, c, "cell %s borders on %s", c, color)
		}
	}

	if first {
		corner := s.Rules.CornerOf(color)
		for _, c := range cells {
			if c == corner {
				return nil
			}
		}
		return invalid(NotOnStartingCorner, m, "%s does not cover starting corner %s", p, corner)
	}
	for _, c := range cells {
		if cornersColor(s.Board, c, color) {
			return nil
		}
	}
	return invalid(NoCornerConnection, m, "%s shares no corner with another %s piece", p, color)
}

// IsValidSetMove reports whether ValidateSetMove accepts m.
func IsValidSetMove(s *State, m SetMove) bool {
	return ValidateSetMove(s, m) == nil
}

// ValidateSkipMove allows passing only once the color has placed a piece,
// the minimum round is reached and no placement is possible.
func ValidateSkipMove(s *State, m SkipMove) error {
	if s.IsFinished() {
		return invalid(GameAlreadyFinished, m, "game already finished")
	}
	if err := checkTurn(s, m); err != nil {
		return err
	}
	color := m.Color()
	if s.IsFirstMove(color) {
		return invalid(SkipNotAllowed, m, "%s must place its first piece before skipping", color)
	}
	if s.Round() < s.Rules.MinSkipRound {
		return invalid(SkipNotAllowed, m, "skipping is not allowed before round %d", s.Rules.MinSkipRound)
	}
	if HasSetMove(s) {
		return invalid(SkipNotAllowed, m, "%s still has a legal placement", color)
	}
	return nil
}

func checkTurn(s *State, m Move) error {
	current, ok := s.CurrentColor()
	if !ok {
		return invalid(WrongColor, m, "no color is left to move")
	}
	if m.Color() != current {
		return invalid(WrongColor, m, "expected move from %s, got %s", current, m.Color())
	}
	return nil
}

// bordersColor reports whether pos shares an edge with a cell of color.
func bordersColor(b *Board, pos Coord, color Color) bool {
	for _, d := range edgeDeltas {
		if b.owns(pos.Plus(d), color) {
			return true
		}
	}
	return false
}

// cornersColor reports whether pos touches a cell of color diagonally.
func cornersColor(b *Board, pos Coord, color Color) bool {
	for _, d := range cornerDeltas {
		if b.owns(pos.Plus(d), color) {
			return true
		}
	}
	return false
}
