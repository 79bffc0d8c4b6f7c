package core

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// CompletionBonus is awarded for placing every shape.
	CompletionBonus = 15
	// MonominoLastBonus is awarded on top when the final shape was MONO.
	MonominoLastBonus = 5
	// MaxScore is the highest attainable score.
	MaxScore = TotalSquares + CompletionBonus + MonominoLastBonus
)

// Score returns the points of color c in s.
func Score(s *State, c Color) int {
	score := 0
	for _, p := range s.Deployed[c] {
		score += p.Shape.Size()
	}
	if s.Rules.Participates(c) && s.Undeployed[c].IsEmpty() {
		score += CompletionBonus
		if s.MonoLast[c] {
			score += MonominoLastBonus
		}
	}
	return score
}

// EndReason says why a game ended.
type EndReason uint8

const (
	EndExhausted EndReason = iota
	EndRoundLimit
)

func (r EndReason) String() string {
	switch r {
	case EndExhausted:
		return "all colors exhausted legal moves"
	case EndRoundLimit:
		return "round limit reached"
	default:
		return "unknown"
	}
}

// Condition is the terminal record of a game. Several winners mean a draw.
type Condition struct {
	Winners []Color
	Reason  EndReason
	Scores  [ColorCount]int
	Draw    bool
}

// IsWinner reports whether c is among the winners.
func (c *Condition) IsWinner(color Color) bool {
	return slices.Contains(c.Winners, color)
}

func (c *Condition) String() string {
	names := make([]string, len(c.Winners))
	for i, w := range c.Winners {
		names[i] = w.String()
	}
	if c.Draw {
		return fmt.Sprintf("draw between %s (%s)", strings.Join(names, ", "), c.Reason)
	}
	return fmt.Sprintf("%s wins (%s)", strings.Join(names, ", "), c.Reason)
}

// ComputeCondition scores every participating color. All colors sharing
// the top score win; ties are not broken.
func ComputeCondition(s *State, reason EndReason) *Condition {
	cond := &Condition{Reason: reason}
	best := -1
	for _, c := range s.Rules.Colors {
		score := Score(s, c)
		cond.Scores[c] = score
		switch {
		case score > best:
			best = score
			cond.Winners = []Color{c}
		case score == best:
			cond.Winners = append(cond.Winners, c)
		}
	}
	cond.Draw = len(cond.Winners) > 1
	return cond
}

// ForceFinish ends a running game, e.g. when a round limit is hit.
func ForceFinish(s *State, reason EndReason) (*Condition, error) {
	if s.IsFinished() {
		return nil, InvalidMove{Reason: GameAlreadyFinished, Message: "game already finished"}
	}
	s.Condition = ComputeCondition(s, reason)
	return s.Condition, nil
}
