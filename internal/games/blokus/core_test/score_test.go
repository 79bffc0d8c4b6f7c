package core_test

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// deployAll marks every shape of c as placed, ending with last.
func deployAll(s *core.State, c core.Color, last core.ShapeID) {
	s.Deployed[c] = nil
	for _, id := range core.AllShapes() {
		if id != last {
			s.Deployed[c] = append(s.Deployed[c], core.NewPiece(c, id, 0, core.C(0, 0)))
		}
	}
	s.Deployed[c] = append(s.Deployed[c], core.NewPiece(c, last, 0, core.C(0, 0)))
	s.Undeployed[c] = 0
	s.MonoLast[c] = last == core.Mono
}

func TestMaxScore(t *testing.T) {
	if core.MaxScore != 109 {
		t.Errorf("expected MaxScore 109, got %d", core.MaxScore)
	}

	s := newState(t, core.NewRules(20, core.Red, core.Blue))
	deployAll(s, core.Red, core.Mono)
	if got := core.Score(s, core.Red); got != core.MaxScore {
		t.Errorf("all shapes with MONO last: expected %d, got %d", core.MaxScore, got)
	}

	deployAll(s, core.Red, core.PentoX)
	if got := core.Score(s, core.Red); got != core.TotalSquares+core.CompletionBonus {
		t.Errorf("all shapes, X last: expected %d, got %d", core.TotalSquares+core.CompletionBonus, got)
	}

	if got := core.Score(s, core.Blue); got != 0 {
		t.Errorf("untouched color should score 0, got %d", got)
	}
	if got := core.Score(s, core.Yellow); got != 0 {
		t.Errorf("absent color should score 0, got %d", got)
	}
}

func TestScorePartial(t *testing.T) {
	s := newState(t, core.NewRules(20, core.Red, core.Blue))
	s.Deployed[core.Red] = []core.Piece{
		core.NewPiece(core.Red, core.PentoW, 0, core.C(0, 0)),
		core.NewPiece(core.Red, core.TrioI, 0, core.C(5, 5)),
	}
	s.Undeployed[core.Red] = s.Undeployed[core.Red].Without(core.PentoW).Without(core.TrioI)
	// The flag alone never counts while shapes remain.
	s.MonoLast[core.Red] = true

	if got := core.Score(s, core.Red); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
}

func TestComputeCondition(t *testing.T) {
	s := newState(t, core.NewRules(20, core.Red, core.Blue, core.Yellow))
	deployAll(s, core.Blue, core.Domino)

	cond := core.ComputeCondition(s, core.EndExhausted)
	if cond.Draw || !slices.Equal(cond.Winners, []core.Color{core.Blue}) {
		t.Errorf("expected BLUE to win alone, got %v (draw=%v)", cond.Winners, cond.Draw)
	}
	if cond.Scores[core.Blue] != core.TotalSquares+core.CompletionBonus {
		t.Errorf("unexpected blue score %d", cond.Scores[core.Blue])
	}
	if !cond.IsWinner(core.Blue) || cond.IsWinner(core.Red) {
		t.Error("IsWinner disagrees with Winners")
	}
	if got := cond.String(); got != "BLUE wins (all colors exhausted legal moves)" {
		t.Errorf("unexpected String() %q", got)
	}
}

func TestComputeConditionTie(t *testing.T) {
	s := newState(t, core.NewRules(20, core.Red, core.Blue, core.Yellow))
	for _, c := range []core.Color{core.Red, core.Yellow} {
		s.Deployed[c] = []core.Piece{core.NewPiece(c, core.TetroO, 0, core.C(0, 0))}
		s.Undeployed[c] = s.Undeployed[c].Without(core.TetroO)
	}
	s.Deployed[core.Blue] = []core.Piece{core.NewPiece(core.Blue, core.TrioL, 0, core.C(9, 9))}

	cond := core.ComputeCondition(s, core.EndRoundLimit)
	if !cond.Draw || !slices.Equal(cond.Winners, []core.Color{core.Red, core.Yellow}) {
		t.Errorf("expected a RED/YELLOW draw, got %v (draw=%v)", cond.Winners, cond.Draw)
	}
	if got := cond.String(); got != "draw between RED, YELLOW (round limit reached)" {
		t.Errorf("unexpected String() %q", got)
	}
}

func TestForceFinish(t *testing.T) {
	s := newState(t, core.NewRules(8, core.Red, core.Blue))
	playFirst(t, s, 3)

	cond, err := core.ForceFinish(s, core.EndRoundLimit)
	if err != nil {
		t.Fatalf("ForceFinish failed: %v", err)
	}
	if cond != s.Condition || cond.Reason != core.EndRoundLimit {
		t.Errorf("unexpected condition %+v", cond)
	}
	if _, ok := s.CurrentColor(); ok {
		t.Error("no color moves after the game ended")
	}

	_, err = core.ForceFinish(s, core.EndRoundLimit)
	expectReason(t, err, core.GameAlreadyFinished)

	core.RemoveColorsWithNoMoves(s)
	if s.Condition != cond {
		t.Error("condition is set at most once")
	}
}
