package core

import (
	"iter"
	"math/bits"
)

// ShapeSet is a set of shape ids, one bit per catalog entry.
type ShapeSet uint32

// FullShapeSet returns the set containing every catalog shape.
func FullShapeSet() ShapeSet {
	return ShapeSet(1)<<ShapeCount - 1
}

// Has reports whether id is in the set.
func (s ShapeSet) Has(id ShapeID) bool {
	return id.Valid() && s&(1<<id) != 0
}

// With returns the set with id added.
func (s ShapeSet) With(id ShapeID) ShapeSet {
	return s | 1<<id
}

// Without returns the set with id removed.
func (s ShapeSet) Without(id ShapeID) ShapeSet {
	return s &^ (1 << id)
}

// Len returns the number of shapes in the set.
func (s ShapeSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// IsEmpty reports whether the set has no shapes.
func (s ShapeSet) IsEmpty() bool {
	return s == 0
}

// IsFull reports whether the set holds the whole catalog.
func (s ShapeSet) IsFull() bool {
	return s == FullShapeSet()
}

// All iterates the shapes of the set in catalog order.
func (s ShapeSet) All() iter.Seq[ShapeID] {
	return func(yield func(ShapeID) bool) {
		for id := ShapeID(0); id < ShapeCount; id++ {
			if s.Has(id) && !yield(id) {
				return
			}
		}
	}
}

// IDs returns the shapes of the set in catalog order.
func (s ShapeSet) IDs() []ShapeID {
	ids := make([]ShapeID, 0, s.Len())
	for id := range s.All() {
		ids = append(ids, id)
	}
	return ids
}

// Size returns the total cell count of the shapes in the set.
func (s ShapeSet) Size() int {
	total := 0
	for id := range s.All() {
		total += id.Size()
	}
	return total
}
