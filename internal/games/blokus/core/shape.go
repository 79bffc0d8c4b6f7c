package core

import (
	"math/rand/v2"
	"slices"
)

// ShapeID identifies one of the 21 free polyominoes of size 1 to 5.
// The numeric order is the catalog order used by move generation.
type ShapeID uint8

const (
	Mono ShapeID = iota
	Domino
	TrioL
	TrioI
	TetroO
	TetroT
	TetroI
	TetroL
	TetroZ
	PentoL
	PentoT
	PentoV
	PentoS
	PentoZ
	PentoI
	PentoP
	PentoW
	PentoU
	PentoR
	PentoX
	PentoY
	ShapeCount // Sentinel value for iteration
)

// NoShape marks the absence of a shape, e.g. a variant without a start shape.
const NoShape ShapeID = 0xFF

// TotalSquares is the number of cells covered when every shape is placed.
const TotalSquares = 89

// Variant is one orientation of a shape: offsets with min X and min Y of 0,
// sorted row-major.
type Variant []Coord

// Area returns the width and height of the variant's bounding box.
func (v Variant) Area() (w, h int) {
	for _, c := range v {
		w = max(w, c.X+1)
		h = max(h, c.Y+1)
	}
	return w, h
}

// Shape is a catalog entry.
type Shape struct {
	ID       ShapeID
	Name     string
	Code     byte // occupant code in the board fixture format
	Size     int
	Variants []Variant
}

type shapeDef struct {
	name  string
	code  byte
	cells []Coord
}

var shapeDefs = [ShapeCount]shapeDef{
	Mono:   {"MONO", 'M', []Coord{{0, 0}}},
	Domino: {"DOMINO", 'D', []Coord{{0, 0}, {1, 0}}},
	TrioL:  {"TRIO_L", 'C', []Coord{{0, 0}, {0, 1}, {1, 1}}},
	TrioI:  {"TRIO_I", 'E', []Coord{{0, 0}, {0, 1}, {0, 2}}},
	TetroO: {"TETRO_O", 'O', []Coord{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	TetroT: {"TETRO_T", 'K', []Coord{{0, 0}, {1, 0}, {2, 0}, {1, 1}}},
	TetroI: {"TETRO_I", 'J', []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
	TetroL: {"TETRO_L", 'G', []Coord{{0, 0}, {0, 1}, {0, 2}, {1, 2}}},
	TetroZ: {"TETRO_Z", 'H', []Coord{{0, 0}, {1, 0}, {1, 1}, {2, 1}}},
	PentoL: {"PENTO_L", 'L', []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 3}}},
	PentoT: {"PENTO_T", 'T', []Coord{{0, 0}, {1, 0}, {2, 0}, {1, 1}, {1, 2}}},
	PentoV: {"PENTO_V", 'V', []Coord{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}}},
	PentoS: {"PENTO_S", 'S', []Coord{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}}},
	PentoZ: {"PENTO_Z", 'Z', []Coord{{0, 0}, {1, 0}, {1, 1}, {1, 2}, {2, 2}}},
	PentoI: {"PENTO_I", 'I', []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}},
	PentoP: {"PENTO_P", 'P', []Coord{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}}},
	PentoW: {"PENTO_W", 'W', []Coord{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 2}}},
	PentoU: {"PENTO_U", 'U', []Coord{{0, 0}, {0, 1}, {1, 1}, {2, 1}, {2, 0}}},
	PentoR: {"PENTO_R", 'R', []Coord{{0, 1}, {1, 1}, {1, 0}, {2, 0}, {1, 2}}},
	PentoX: {"PENTO_X", 'X', []Coord{{1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}}},
	PentoY: {"PENTO_Y", 'Y', []Coord{{0, 1}, {1, 0}, {1, 1}, {1, 2}, {1, 3}}},
}

var catalog = buildCatalog()

func buildCatalog() [ShapeCount]Shape {
	var shapes [ShapeCount]Shape
	for id, def := range shapeDefs {
		shapes[id] = Shape{
			ID:       ShapeID(id),
			Name:     def.name,
			Code:     def.code,
			Size:     len(def.cells),
			Variants: orientations(def.cells),
		}
	}
	return shapes
}

// orientations returns every distinct rotation/reflection of cells in
// generation order: unflipped rotations 0..270 first, then flipped ones.
func orientations(cells []Coord) []Variant {
	var out []Variant
	for _, flip := range []bool{false, true} {
		for rot := 0; rot < 4; rot++ {
			v := transform(cells, flip, rot)
			if !slices.ContainsFunc(out, func(seen Variant) bool { return slices.Equal(seen, v) }) {
				out = append(out, v)
			}
		}
	}
	return out
}

func transform(cells []Coord, flip bool, rot int) Variant {
	v := make(Variant, len(cells))
	for i, c := range cells {
		x, y := c.X, c.Y
		if flip {
			x = -x
		}
		for r := 0; r < rot; r++ {
			x, y = -y, x
		}
		v[i] = C(x, y)
	}
	return normalize(v)
}

func normalize(v Variant) Variant {
	minX, minY := v[0].X, v[0].Y
	for _, c := range v {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	for i := range v {
		v[i] = C(v[i].X-minX, v[i].Y-minY)
	}
	slices.SortFunc(v, CompareCoords)
	return v
}

// Valid reports whether id is a catalog shape.
func (id ShapeID) Valid() bool {
	return id < ShapeCount
}

// Size returns the number of cells of the shape.
func (id ShapeID) Size() int {
	return catalog[id].Size
}

// Variants returns the orientation variants of the shape.
func (id ShapeID) Variants() []Variant {
	return catalog[id].Variants
}

// String returns the catalog name of the shape.
func (id ShapeID) String() string {
	if !id.Valid() {
		return "NONE"
	}
	return catalog[id].Name
}

// Code returns the occupant code of the shape.
func (id ShapeID) Code() byte {
	return catalog[id].Code
}

// AllShapes returns every shape id in catalog order.
func AllShapes() []ShapeID {
	ids := make([]ShapeID, ShapeCount)
	for i := range ids {
		ids[i] = ShapeID(i)
	}
	return ids
}

// ParseShape looks a shape up by catalog name.
func ParseShape(name string) (ShapeID, bool) {
	for i := range catalog {
		if catalog[i].Name == name {
			return catalog[i].ID, true
		}
	}
	return NoShape, false
}

// ShapeByCode looks a shape up by fixture occupant code.
func ShapeByCode(code byte) (ShapeID, bool) {
	for i := range catalog {
		if catalog[i].Code == code {
			return catalog[i].ID, true
		}
	}
	return NoShape, false
}

// RandomStartShape picks a pentomino other than PENTO_X.
func RandomStartShape(rng *rand.Rand) ShapeID {
	var pool []ShapeID
	for _, id := range AllShapes() {
		if id.Size() == 5 && id != PentoX {
			pool = append(pool, id)
		}
	}
	return pool[rng.IntN(len(pool))]
}
