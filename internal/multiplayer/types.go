// Package multiplayer runs matches between move sources on top of the rules
// engine and reports their progress to subscribed sessions.
package multiplayer

import (
	"context"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// SessionID uniquely identifies a viewer session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies a match.
type MatchID string

// NewMatchID returns a fresh random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// Player chooses moves for the colors it is seated at.
// The state passed in is a private snapshot; players may keep or mutate it.
// ChooseMove should return promptly once ctx is done.
type Player interface {
	// Name identifies the player in logs and stored results.
	Name() string

	// ChooseMove returns the move for the current color of s.
	ChooseMove(ctx context.Context, s *core.State) (core.Move, error)
}

// Seat binds a player to one color.
type Seat struct {
	Color  core.Color
	Player Player
}

// SeatAll seats the same player at every color of rules.
func SeatAll(rules *core.Rules, p Player) []Seat {
	seats := make([]Seat, len(rules.Colors))
	for i, c := range rules.Colors {
		seats[i] = Seat{Color: c, Player: p}
	}
	return seats
}
