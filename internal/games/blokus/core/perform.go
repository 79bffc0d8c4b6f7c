package core

// PerformMove validates m and applies it to s. An invalid move leaves s
// untouched. After a successful move the turn passes to the next color,
// colors without a legal placement are dropped and, once none remain, the
// condition is computed.
func PerformMove(s *State, m Move) error {
	if err := ValidateMove(s, m); err != nil {
		return err
	}

	switch mv := m.(type) {
	case SetMove:
		if err := commit(s, mv.Piece); err != nil {
			return err
		}
	case SkipMove:
	default:
		return corrupt("unknown move kind %T", m)
	}

	s.Turn++
	s.LastMove = m
	s.advance()
	RemoveColorsWithNoMoves(s)
	return nil
}

func commit(s *State, p Piece) error {
	if !s.Undeployed[p.Color].Has(p.Shape) {
		return corrupt("%s is not in the inventory of %s", p.Shape, p.Color)
	}
	for _, c := range p.Cells() {
		if err := s.Board.Place(c, p.Color, p.Shape); err != nil {
			return corrupt("commit %s: %v", p, err)
		}
	}
	s.Undeployed[p.Color] = s.Undeployed[p.Color].Without(p.Shape)
	s.Deployed[p.Color] = append(s.Deployed[p.Color], p)
	if s.Undeployed[p.Color].IsEmpty() {
		s.MonoLast[p.Color] = p.Shape == Mono
	}
	return nil
}

// RemoveColorsWithNoMoves drops colors from the front of the queue until
// the current color has a legal placement. A color that could only skip is
// dropped too. When the queue runs empty the game ends with EndExhausted.
func RemoveColorsWithNoMoves(s *State) {
	if s.IsFinished() {
		return
	}
	for len(s.Active) > 0 && !HasSetMove(s) {
		s.dropCurrent()
	}
	if len(s.Active) == 0 {
		s.Condition = ComputeCondition(s, EndExhausted)
	}
}
