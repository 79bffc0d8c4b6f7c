package core_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

func TestCatalogSizes(t *testing.T) {
	shapes := core.AllShapes()
	if len(shapes) != 21 {
		t.Fatalf("expected 21 shapes, got %d", len(shapes))
	}

	total := 0
	for _, id := range shapes {
		total += id.Size()
	}
	if total != core.TotalSquares {
		t.Errorf("expected sizes to sum to %d, got %d", core.TotalSquares, total)
	}
	if got := core.FullShapeSet().Size(); got != core.TotalSquares {
		t.Errorf("full set size = %d, want %d", got, core.TotalSquares)
	}
}

func TestCatalogVariants(t *testing.T) {
	want := map[core.ShapeID]int{
		core.Mono:   1,
		core.Domino: 2,
		core.TetroO: 1,
		core.TetroL: 8,
		core.PentoI: 2,
		core.PentoX: 1,
		core.PentoY: 8,
	}

	total := 0
	for _, id := range core.AllShapes() {
		variants := id.Variants()
		total += len(variants)

		if n, ok := want[id]; ok && len(variants) != n {
			t.Errorf("%s: expected %d variants, got %d", id, n, len(variants))
		}

		for i, v := range variants {
			if len(v) != id.Size() {
				t.Errorf("%s#%d: expected %d cells, got %d", id, i, id.Size(), len(v))
			}
			minX, minY := v[0].X, v[0].Y
			for _, c := range v {
				minX = min(minX, c.X)
				minY = min(minY, c.Y)
			}
			if minX != 0 || minY != 0 {
				t.Errorf("%s#%d: not normalized, min (%d,%d)", id, i, minX, minY)
			}
			if !slices.IsSortedFunc(v, core.CompareCoords) {
				t.Errorf("%s#%d: cells not row-major: %v", id, i, v)
			}
			for j := range i {
				if slices.Equal(variants[j], v) {
					t.Errorf("%s: variants %d and %d are identical", id, j, i)
				}
			}
		}
	}
	if total != 91 {
		t.Errorf("expected 91 variants in total, got %d", total)
	}
}

func TestShapeLookups(t *testing.T) {
	codes := make(map[byte]core.ShapeID)
	for _, id := range core.AllShapes() {
		if prev, dup := codes[id.Code()]; dup {
			t.Errorf("code %c used by %s and %s", id.Code(), prev, id)
		}
		codes[id.Code()] = id

		byName, ok := core.ParseShape(id.String())
		if !ok || byName != id {
			t.Errorf("ParseShape(%q) = %v, %v", id.String(), byName, ok)
		}
		byCode, ok := core.ShapeByCode(id.Code())
		if !ok || byCode != id {
			t.Errorf("ShapeByCode(%c) = %v, %v", id.Code(), byCode, ok)
		}
	}

	if _, ok := core.ParseShape("HEPTO"); ok {
		t.Error("unknown shape name should not parse")
	}
	if _, ok := core.ShapeByCode('Q'); ok {
		t.Error("unknown shape code should not parse")
	}
	if core.NoShape.String() != "NONE" {
		t.Errorf("NoShape.String() = %q", core.NoShape.String())
	}
}

func TestRandomStartShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	seen := make(map[core.ShapeID]bool)
	for range 500 {
		id := core.RandomStartShape(rng)
		if id.Size() != 5 {
			t.Fatalf("start shape %s is not a pentomino", id)
		}
		if id == core.PentoX {
			t.Fatal("start shape must never be PENTO_X")
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected several different start shapes, got %v", seen)
	}
}

func TestShapeSet(t *testing.T) {
	full := core.FullShapeSet()
	if !full.IsFull() || full.Len() != 21 {
		t.Fatalf("full set: IsFull=%v Len=%d", full.IsFull(), full.Len())
	}

	s := full.Without(core.Mono).Without(core.PentoY)
	if s.Has(core.Mono) || s.Has(core.PentoY) {
		t.Error("removed shapes still present")
	}
	if s.Len() != 19 || s.IsFull() {
		t.Errorf("expected 19 shapes, got %d (full=%v)", s.Len(), s.IsFull())
	}
	if ids := s.IDs(); ids[0] != core.Domino || ids[len(ids)-1] != core.PentoX {
		t.Errorf("IDs not in catalog order: %v", ids)
	}

	empty := core.ShapeSet(0)
	if !empty.IsEmpty() || empty.Len() != 0 {
		t.Error("zero set should be empty")
	}
	if !empty.With(core.TetroO).Has(core.TetroO) {
		t.Error("With should add the shape")
	}
	if full.Has(core.NoShape) {
		t.Error("NoShape is never a member")
	}
}
