package core

import (
	"fmt"
	"slices"
	"strings"
)

const emptyToken = "__"

// ParseBoard reads the plain-text fixture format: one row per line, cells
// separated by a single space, each cell "__" or a color code followed by
// an occupant code. Only colors in colors are accepted. Blank lines are
// ignored.
func ParseBoard(text string, colors []Color) (*Board, error) {
	var rows [][]string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, " "))
	}
	if len(rows) == 0 {
		return nil, BoardFormatError{Row: 0, Col: -1, Msg: "no rows"}
	}

	size := len(rows[0])
	b := NewBoard(size)
	for y, row := range rows {
		if len(row) != size {
			return nil, BoardFormatError{Row: y, Col: -1, Msg: fmt.Sprintf("row has %d cells, want %d", len(row), size)}
		}
		if y >= size {
			return nil, BoardFormatError{Row: y, Col: -1, Msg: "board is not square"}
		}
		for x, tok := range row {
			if err := parseToken(b, C(x, y), tok, colors); err != nil {
				return nil, err
			}
		}
	}
	if len(rows) != size {
		return nil, BoardFormatError{Row: len(rows) - 1, Col: -1, Msg: "board is not square"}
	}
	return b, nil
}

func parseToken(b *Board, at Coord, tok string, colors []Color) error {
	fail := func(msg string) error {
		return BoardFormatError{Row: at.Y, Col: at.X, Token: tok, Msg: msg}
	}
	if len(tok) != 2 {
		return fail("token must be two characters")
	}
	if tok == emptyToken {
		return nil
	}
	color, ok := ColorByChar(tok[0])
	if !ok || !slices.Contains(colors, color) {
		return fail("unknown color code")
	}
	shape, ok := ShapeByCode(tok[1])
	if !ok {
		return fail("unknown occupant code")
	}
	b.Cells[b.index(at)] = Cell{Filled: true, Color: color, Shape: shape}
	return nil
}

// StateFromString builds a fresh state for rules whose board is the parsed
// fixture. Inventories stay full and no deployment history is recorded;
// only occupancy is taken from the text.
func StateFromString(rules *Rules, text string) (*State, error) {
	s, err := NewState(rules)
	if err != nil {
		return nil, err
	}
	b, err := ParseBoard(text, rules.Colors)
	if err != nil {
		return nil, err
	}
	if b.Size != rules.BoardSize {
		return nil, BoardFormatError{Row: 0, Col: -1, Msg: fmt.Sprintf("board size %d does not match rules size %d", b.Size, rules.BoardSize)}
	}
	s.Board = b
	return s, nil
}
