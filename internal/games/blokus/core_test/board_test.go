package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

func TestBoardPlace(t *testing.T) {
	b := core.NewBoard(5)

	if err := b.Place(core.C(2, 3), core.Blue, core.Domino); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	cell, err := b.CellAt(core.C(2, 3))
	if err != nil {
		t.Fatalf("CellAt failed: %v", err)
	}
	if !cell.Filled || cell.Color != core.Blue || cell.Shape != core.Domino {
		t.Errorf("unexpected cell %+v", cell)
	}
	if owner, ok := b.OwnerOf(core.C(2, 3)); !ok || owner != core.Blue {
		t.Errorf("OwnerOf = %v, %v", owner, ok)
	}
	if b.IsEmpty(core.C(2, 3)) || !b.IsEmpty(core.C(0, 0)) {
		t.Error("IsEmpty disagrees with placement")
	}

	if err := b.Place(core.C(2, 3), core.Red, core.Mono); !errors.Is(err, core.ErrAlreadyOccupied) {
		t.Errorf("expected ErrAlreadyOccupied, got %v", err)
	}
	if owner, _ := b.OwnerOf(core.C(2, 3)); owner != core.Blue {
		t.Error("occupied cell must never be reassigned")
	}
}

func TestBoardBounds(t *testing.T) {
	b := core.NewBoard(4)
	tests := []core.Coord{
		core.C(-1, 0),
		core.C(0, -1),
		core.C(4, 0),
		core.C(0, 4),
	}
	for _, c := range tests {
		if b.InBounds(c) {
			t.Errorf("%s should be out of bounds", c)
		}
		if _, err := b.CellAt(c); !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("CellAt(%s): expected ErrOutOfBounds, got %v", c, err)
		}
		if err := b.Place(c, core.Red, core.Mono); !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("Place(%s): expected ErrOutOfBounds, got %v", c, err)
		}
	}
}

func TestBoardPlaceRejectsUnknownOccupant(t *testing.T) {
	b := core.NewBoard(3)
	tests := []struct {
		name  string
		color core.Color
		shape core.ShapeID
	}{
		{"no shape", core.Red, core.NoShape},
		{"shape past catalog", core.Red, core.ShapeCount},
		{"color past palette", core.ColorCount, core.Mono},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Place(core.C(1, 1), tt.color, tt.shape); !errors.Is(err, core.ErrUnknownOccupant) {
				t.Errorf("expected ErrUnknownOccupant, got %v", err)
			}
			if !b.IsEmpty(core.C(1, 1)) {
				t.Error("rejected placement must leave the cell empty")
			}
		})
	}
	// The board still renders after the rejected placements.
	if got := b.String(); got != "__ __ __\n__ __ __\n__ __ __\n" {
		t.Errorf("unexpected board %q", got)
	}
}

func TestBoardCloneAndCounts(t *testing.T) {
	b := core.NewBoard(3)
	_ = b.Place(core.C(0, 0), core.Red, core.Domino)
	_ = b.Place(core.C(1, 0), core.Red, core.Domino)
	_ = b.Place(core.C(2, 2), core.Green, core.Mono)

	cp := b.Clone()
	if !cp.Equal(b) {
		t.Fatal("clone should equal original")
	}
	_ = cp.Place(core.C(1, 1), core.Blue, core.Mono)
	if cp.Equal(b) || !b.IsEmpty(core.C(1, 1)) {
		t.Error("clone must not share cells with original")
	}

	if b.FilledCount() != 3 {
		t.Errorf("expected 3 filled cells, got %d", b.FilledCount())
	}
	counts := b.CountByColor()
	if counts[core.Red] != 2 || counts[core.Green] != 1 || counts[core.Blue] != 0 {
		t.Errorf("unexpected counts %v", counts)
	}
	red := b.CoordsOf(core.Red)
	if len(red) != 2 || red[0] != core.C(0, 0) || red[1] != core.C(1, 0) {
		t.Errorf("unexpected red cells %v", red)
	}
}
