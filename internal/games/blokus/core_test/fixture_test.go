package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

const cornerFixture = `
RC RS RR RC RG RG RR RS
__ __ __ __ __ __ __ __
__ __ __ __ __ __ __ __
__ __ __ __ __ __ __ __
__ __ __ __ __ __ __ __
__ __ __ __ __ __ __ __
__ __ __ __ __ __ __ __
BS BR BG BC BR BG BC BS
`

func TestParseBoardFixture(t *testing.T) {
	b, err := core.ParseBoard(cornerFixture, core.AllColors())
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	if b.Size != 8 {
		t.Fatalf("expected size 8, got %d", b.Size)
	}

	if owner, ok := b.OwnerOf(core.C(0, 0)); !ok || owner != core.Red {
		t.Errorf("(0,0): expected RED, got %v (filled=%v)", owner, ok)
	}
	if owner, ok := b.OwnerOf(core.C(0, 7)); !ok || owner != core.Blue {
		t.Errorf("(0,7): expected BLUE, got %v (filled=%v)", owner, ok)
	}
	if cell, _ := b.CellAt(core.C(4, 0)); cell.Shape != core.TetroL {
		t.Errorf("(4,0): expected occupant TETRO_L, got %s", cell.Shape)
	}
	if b.FilledCount() != 16 {
		t.Errorf("expected 16 filled cells, got %d", b.FilledCount())
	}
}

func TestBoardStringRoundTrip(t *testing.T) {
	b, err := core.ParseBoard(cornerFixture, core.AllColors())
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	if got, want := b.String(), strings.TrimLeft(cornerFixture, "\n"); got != want {
		t.Errorf("String() mismatch:\n%s\nwant:\n%s", got, want)
	}

	again, err := core.ParseBoard(b.String(), core.AllColors())
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if !again.Equal(b) {
		t.Error("round trip changed the board")
	}
}

func TestParseBoardErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		colors []core.Color
		row    int
		col    int
	}{
		{"unknown color", "RM EY\n__ __", core.AllColors(), 0, 1},
		{"unknown occupant", "__ __\n__ RQ", core.AllColors(), 1, 1},
		{"color not configured", "__ GM\n__ __", []core.Color{core.Red, core.Blue}, 0, 1},
		{"short token", "R __\n__ __", core.AllColors(), 0, 0},
		{"long token", "__ RMM\n__ __", core.AllColors(), 0, 1},
		{"double space", "__  __\n__ __", core.AllColors(), 0, 1},
		{"ragged rows", "__ __\n__", core.AllColors(), 1, -1},
		{"not square", "__ __\n__ __\n__ __", core.AllColors(), 2, -1},
		{"too few rows", "__ __ __\n__ __ __", core.AllColors(), 1, -1},
		{"empty", "\n\n", core.AllColors(), 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.ParseBoard(tt.text, tt.colors)
			var fe core.BoardFormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected BoardFormatError, got %v", err)
			}
			if fe.Row != tt.row || fe.Col != tt.col {
				t.Errorf("expected row %d col %d, got row %d col %d (%v)", tt.row, tt.col, fe.Row, fe.Col, err)
			}
		})
	}
}

func TestStateFromString(t *testing.T) {
	rules := core.NewRules(8, core.Red, core.Blue)
	s, err := core.StateFromString(rules, cornerFixture)
	if err != nil {
		t.Fatalf("StateFromString failed: %v", err)
	}
	if s.Turn != 0 || len(s.Active) != 2 {
		t.Errorf("expected a fresh state, got turn %d active %v", s.Turn, s.Active)
	}
	if len(s.DeployedPieces(core.Red)) != 0 {
		t.Error("fixture states carry no deployment history")
	}
	if len(s.OwnedCells(core.Red)) != 8 {
		t.Errorf("expected 8 red cells, got %d", len(s.OwnedCells(core.Red)))
	}

	if _, err := core.StateFromString(core.NewRules(10, core.Red, core.Blue), cornerFixture); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := core.StateFromString(core.NewRules(8, core.Red), cornerFixture); err == nil {
		t.Error("expected error for color outside the rules")
	}
}
