package core

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrOutOfBounds     = errors.New("coordinates out of bounds")
	ErrAlreadyOccupied = errors.New("cell already occupied")
	ErrUnknownOccupant = errors.New("unknown color or shape")

	// ErrCorruptState marks engine bookkeeping that no longer matches the
	// board. It is never caused by a bad move from the caller.
	ErrCorruptState = errors.New("corrupt engine state")
)

// Reason classifies why a move was rejected.
type Reason uint8

const (
	WrongColor Reason = iota
	ShapeNotAvailable
	WrongStartShape
	UnknownOrientation
	OutOfBounds
	CellOccupied
	TouchesSameColorEdge
	NotOnStartingCorner
	NoCornerConnection
	SkipNotAllowed
	GameAlreadyFinished
)

func (r Reason) String() string {
	switch r {
	case WrongColor:
		return "WrongColor"
	case ShapeNotAvailable:
		return "ShapeNotAvailable"
	case WrongStartShape:
		return "WrongStartShape"
	case UnknownOrientation:
		return "UnknownOrientation"
	case OutOfBounds:
		return "OutOfBounds"
	case CellOccupied:
		return "CellOccupied"
	case TouchesSameColorEdge:
		return "TouchesSameColorEdge"
	case NotOnStartingCorner:
		return "NotOnStartingCorner"
	case NoCornerConnection:
		return "NoCornerConnection"
	case SkipNotAllowed:
		return "SkipNotAllowed"
	case GameAlreadyFinished:
		return "GameAlreadyFinished"
	default:
		return "Unknown"
	}
}

// InvalidMove reports a rule violation. Cell is meaningful only when
// HasCell is set.
type InvalidMove struct {
	Reason  Reason
	Move    Move
	Cell    Coord
	HasCell bool
	Message string
}

func (e InvalidMove) Error() string {
	return fmt.Sprintf("[%s] %s", e.Reason, e.Message)
}

// Is makes every InvalidMove match ErrInvalidMove.
func (e InvalidMove) Is(target error) bool {
	return target == ErrInvalidMove
}

func invalid(reason Reason, m Move, format string, args ...any) InvalidMove {
	return InvalidMove{Reason: reason, Move: m, Message: fmt.Sprintf(format, args...)}
}

func invalidAt(reason Reason, m Move, cell Coord, format string, args ...any) InvalidMove {
	e := invalid(reason, m, format, args...)
	e.Cell = cell
	e.HasCell = true
	return e
}

// ReasonOf extracts the rejection reason from err.
func ReasonOf(err error) (Reason, bool) {
	var im InvalidMove
	if errors.As(err, &im) {
		return im.Reason, true
	}
	return 0, false
}

// BoardFormatError is returned by the fixture parser. Row and Col are
// zero-based; Col is -1 for row-level problems.
type BoardFormatError struct {
	Row   int
	Col   int
	Token string
	Msg   string
}

func (e BoardFormatError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("board format: row %d: %s", e.Row, e.Msg)
	}
	return fmt.Sprintf("board format: row %d col %d token %q: %s", e.Row, e.Col, e.Token, e.Msg)
}

func corrupt(format string, args ...any) error {
	return errors.Wrapf(ErrCorruptState, format, args...)
}
