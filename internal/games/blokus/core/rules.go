package core

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// DefaultBoardSize is the edge length of the classic board.
const DefaultBoardSize = 20

// Rules is the variant configuration consulted by the engine.
type Rules struct {
	BoardSize int
	// Colors is the turn order of the participating colors.
	Colors []Color
	// Corners holds the designated starting corner of each color.
	Corners [ColorCount]Corner
	// StartShape is the shape every color must open with, or NoShape.
	StartShape ShapeID
	// MinSkipRound is the first round in which skipping is permitted.
	MinSkipRound int
}

// DefaultCorners assigns the corners clockwise starting top-left.
func DefaultCorners() [ColorCount]Corner {
	return [ColorCount]Corner{
		Red:    TopLeft,
		Blue:   TopRight,
		Yellow: BottomRight,
		Green:  BottomLeft,
	}
}

// DefaultRules returns the classic four-color 20×20 variant without a
// mandatory start shape.
func DefaultRules() *Rules {
	return NewRules(DefaultBoardSize, AllColors()...)
}

// NewRules builds rules for the given board size and turn order with
// default corners.
func NewRules(size int, colors ...Color) *Rules {
	return &Rules{
		BoardSize:    size,
		Colors:       append([]Color(nil), colors...),
		Corners:      DefaultCorners(),
		StartShape:   NoShape,
		MinSkipRound: 1,
	}
}

// Validate reports every inconsistency in the rules.
func (r *Rules) Validate() error {
	var result *multierror.Error
	if r.BoardSize < 1 {
		result = multierror.Append(result, fmt.Errorf("board size %d must be positive", r.BoardSize))
	}
	if len(r.Colors) == 0 || len(r.Colors) > int(ColorCount) {
		result = multierror.Append(result, fmt.Errorf("need 1 to %d colors, got %d", ColorCount, len(r.Colors)))
	}
	seen := make(map[Color]bool)
	for _, c := range r.Colors {
		if !c.Valid() {
			result = multierror.Append(result, fmt.Errorf("unknown color %d", c))
			continue
		}
		if seen[c] {
			result = multierror.Append(result, fmt.Errorf("color %s listed twice", c))
		}
		seen[c] = true
	}
	corners := make(map[Corner]Color)
	for _, c := range r.Colors {
		if !c.Valid() {
			continue
		}
		k := r.Corners[c]
		if other, taken := corners[k]; taken && other != c {
			result = multierror.Append(result, fmt.Errorf("colors %s and %s share corner %s", other, c, k))
		}
		corners[k] = c
	}
	if r.StartShape != NoShape && !r.StartShape.Valid() {
		result = multierror.Append(result, fmt.Errorf("unknown start shape %d", r.StartShape))
	}
	if r.MinSkipRound < 0 {
		result = multierror.Append(result, fmt.Errorf("min skip round %d must not be negative", r.MinSkipRound))
	}
	return result.ErrorOrNil()
}

// CornerOf returns the starting corner cell of color.
func (r *Rules) CornerOf(c Color) Coord {
	return r.Corners[c].Coord(r.BoardSize)
}

// Participates reports whether c is one of the configured colors.
func (r *Rules) Participates(c Color) bool {
	for _, rc := range r.Colors {
		if rc == c {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (r *Rules) Clone() *Rules {
	cp := *r
	cp.Colors = append([]Color(nil), r.Colors...)
	return &cp
}
