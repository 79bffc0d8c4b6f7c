package core_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// bruteForce validates every shape, variant and anchor around the board.
func bruteForce(s *core.State) []core.SetMove {
	color, ok := s.CurrentColor()
	if !ok {
		return nil
	}
	n := s.Board.Size
	var moves []core.SetMove
	for _, shape := range core.AllShapes() {
		for v := range shape.Variants() {
			for y := -5; y < n+5; y++ {
				for x := -5; x < n+5; x++ {
					m := core.NewSetMove(color, shape, v, core.C(x, y))
					if core.IsValidSetMove(s, m) {
						moves = append(moves, m)
					}
				}
			}
		}
	}
	return moves
}

// playFirst performs the first legal move n times.
func playFirst(t *testing.T, s *core.State, n int) {
	t.Helper()
	for i := range n {
		moves := core.LegalMoves(s)
		if len(moves) == 0 {
			t.Fatalf("no legal move at step %d", i)
		}
		if err := core.PerformMove(s, moves[0]); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func generationStates(t *testing.T) map[string]*core.State {
	t.Helper()
	started := newState(t, core.NewRules(7, core.Red, core.Blue, core.Yellow))
	playFirst(t, started, 7)

	withStart := core.NewRules(9, core.Red, core.Green)
	withStart.StartShape = core.PentoP

	return map[string]*core.State{
		"opening":     newState(t, core.NewRules(6, core.Red, core.Blue)),
		"start shape": newState(t, withStart),
		"midgame":     started,
	}
}

func TestGenerationMatchesValidation(t *testing.T) {
	for name, s := range generationStates(t) {
		t.Run(name, func(t *testing.T) {
			want := bruteForce(s)
			if len(want) == 0 {
				t.Fatal("expected some legal moves")
			}
			got := slices.Collect(core.PossibleMoves(s))
			if !slices.Equal(got, want) {
				t.Errorf("PossibleMoves yielded %d moves, brute force found %d", len(got), len(want))
			}
			all := slices.Collect(core.AllPossibleMoves(s))
			if !slices.Equal(all, want) {
				t.Errorf("AllPossibleMoves yielded %d moves, brute force found %d", len(all), len(want))
			}
		})
	}
}

func TestOpeningMoveCounts(t *testing.T) {
	s := newState(t, core.DefaultRules())
	moves := slices.Collect(core.PossibleMoves(s))
	// Every orientation with a cell at offset (0,0) fits the top-left corner.
	if len(moves) != 58 {
		t.Errorf("expected 58 opening moves, got %d", len(moves))
	}

	rules := core.NewRules(8, core.Red, core.Blue)
	rules.StartShape = core.PentoL
	s = newState(t, rules)
	moves = slices.Collect(core.PossibleMoves(s))
	if len(moves) != 6 {
		t.Errorf("expected 6 PENTO_L openings, got %d", len(moves))
	}
	for _, m := range moves {
		if m.Piece.Shape != core.PentoL {
			t.Errorf("unexpected opening shape %s", m.Piece.Shape)
		}
	}
}

func TestGenerationOrder(t *testing.T) {
	s := generationStates(t)["midgame"]
	moves := slices.Collect(core.PossibleMoves(s))

	ordered := slices.IsSortedFunc(moves, func(a, b core.SetMove) int {
		pa, pb := a.Piece, b.Piece
		if pa.Shape != pb.Shape {
			return int(pa.Shape) - int(pb.Shape)
		}
		if pa.Variant != pb.Variant {
			return pa.Variant - pb.Variant
		}
		return core.CompareCoords(pa.Anchor, pb.Anchor)
	})
	if !ordered {
		t.Error("moves are not in catalog × variant × row-major order")
	}

	again := slices.Collect(core.PossibleMoves(s))
	if !slices.Equal(moves, again) {
		t.Error("sequence should be restartable and deterministic")
	}
}

func TestGeneratedMovesPerform(t *testing.T) {
	s := generationStates(t)["midgame"]
	for _, m := range core.LegalMoves(s) {
		cp := s.Clone()
		if err := core.PerformMove(cp, m); err != nil {
			t.Errorf("%s: %v", m, err)
		}
	}
}

func TestHasSetMove(t *testing.T) {
	s := newState(t, core.NewRules(5, core.Red))
	if !core.HasSetMove(s) {
		t.Error("opening position must have moves")
	}

	if _, err := core.ForceFinish(s, core.EndRoundLimit); err != nil {
		t.Fatal(err)
	}
	if core.HasSetMove(s) || len(core.LegalMoves(s)) != 0 {
		t.Error("finished games have no moves")
	}
}

func TestCollectMovesParallel(t *testing.T) {
	for name, s := range generationStates(t) {
		want := slices.Collect(core.PossibleMoves(s))

		seq, err := core.CollectMoves(context.Background(), s)
		if err != nil {
			t.Fatalf("%s: CollectMoves: %v", name, err)
		}
		if !slices.Equal(seq, want) {
			t.Errorf("%s: CollectMoves differs from PossibleMoves", name)
		}

		for _, workers := range []int{0, 1, 3, 64} {
			par, err := core.CollectMovesParallel(context.Background(), s, workers)
			if err != nil {
				t.Fatalf("%s/%d workers: %v", name, workers, err)
			}
			if !slices.Equal(par, want) {
				t.Errorf("%s/%d workers: got %d moves, want %d", name, workers, len(par), len(want))
			}
		}
	}
}

func TestCollectMovesCancelled(t *testing.T) {
	s := newState(t, core.DefaultRules())
	playFirst(t, s, 4)
	before := s.Clone()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := core.CollectMoves(ctx, s); !errors.Is(err, context.Canceled) {
		t.Errorf("CollectMoves: expected context.Canceled, got %v", err)
	}
	if _, err := core.CollectMovesParallel(ctx, s, 4); !errors.Is(err, context.Canceled) {
		t.Errorf("CollectMovesParallel: expected context.Canceled, got %v", err)
	}
	if !s.Board.Equal(before.Board) || s.Turn != before.Turn {
		t.Error("cancelled generation must not touch the state")
	}
}

func TestCollectMovesParallelDeadline(t *testing.T) {
	s := newState(t, core.DefaultRules())
	playFirst(t, s, 8)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	for _, workers := range []int{1, 2, 16} {
		moves, err := core.CollectMovesParallel(ctx, s, workers)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("%d workers: expected context.DeadlineExceeded, got %v", workers, err)
		}
		if moves != nil {
			t.Errorf("%d workers: expected no moves after the deadline, got %d", workers, len(moves))
		}
	}
}
