package multiplayer

import (
	"time"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// SessionEvent is sent from a match to the sessions watching it.
type SessionEvent interface {
	sessionEvent()
}

// MatchStartedEvent is the first event every subscribed session receives.
type MatchStartedEvent struct {
	MatchID MatchID
	Variant string
	Seats   []SeatInfo
}

func (MatchStartedEvent) sessionEvent() {}

// SeatInfo names the player at a color.
type SeatInfo struct {
	Color  core.Color
	Player string
}

// MoveEvent is sent after every performed move.
type MoveEvent struct {
	MatchID MatchID
	Turn    int
	Round   int
	Move    core.Move
	// Fallback is set when the player's own move was unusable and the
	// first legal move was played instead.
	Fallback bool
	Elapsed  time.Duration
}

func (MoveEvent) sessionEvent() {}

// MoveRejectedEvent is sent when a player returned an illegal move or
// failed to answer in time.
type MoveRejectedEvent struct {
	MatchID MatchID
	Color   core.Color
	Move    core.Move // nil when the player returned no move
	Err     error
}

func (MoveRejectedEvent) sessionEvent() {}

// ColorEliminatedEvent is sent when a color runs out of placements.
type ColorEliminatedEvent struct {
	MatchID MatchID
	Color   core.Color
	Turn    int
}

func (ColorEliminatedEvent) sessionEvent() {}

// MatchEndedEvent is sent when the match has a condition.
type MatchEndedEvent struct {
	Result MatchResult
}

func (MatchEndedEvent) sessionEvent() {}
