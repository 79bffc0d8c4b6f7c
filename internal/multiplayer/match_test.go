package multiplayer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// firstPlayer plays the first legal move.
type firstPlayer struct{}

func (firstPlayer) Name() string { return "first" }

func (firstPlayer) ChooseMove(_ context.Context, s *core.State) (core.Move, error) {
	moves := core.LegalMoves(s)
	if len(moves) == 0 {
		return nil, ErrNoMove
	}
	return moves[0], nil
}

// funcPlayer adapts a function to Player.
type funcPlayer func(ctx context.Context, s *core.State) (core.Move, error)

func (funcPlayer) Name() string { return "func" }

func (f funcPlayer) ChooseMove(ctx context.Context, s *core.State) (core.Move, error) {
	return f(ctx, s)
}

type memorySaver struct {
	results []MatchResult
	err     error
}

func (s *memorySaver) SaveMatchResult(result MatchResult) error {
	s.results = append(s.results, result)
	return s.err
}

func drain(s *ChannelSession) []SessionEvent {
	var events []SessionEvent
	for {
		select {
		case evt := <-s.Events():
			events = append(events, evt)
		default:
			return events
		}
	}
}

func TestMatchRunsToCompletion(t *testing.T) {
	rules := core.NewRules(8, core.Red, core.Blue)
	saver := &memorySaver{}
	session := NewChannelSession("viewer", 512)

	m, err := NewMatch(MatchConfig{Variant: "mini", Rules: rules}, SeatAll(rules, firstPlayer{}),
		WithResultSaver(saver), WithMatchID("m-1"))
	require.NoError(t, err)
	m.Subscribe(session)
	assert.Equal(t, 1, m.Viewers())

	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, m.Done())

	assert.Equal(t, MatchID("m-1"), res.MatchID)
	assert.Equal(t, "mini", res.Variant)
	assert.Equal(t, core.EndExhausted, res.Reason)
	assert.Equal(t, m.State().Turn, res.Turns)
	require.Len(t, res.Colors, 2)
	require.NotEmpty(t, res.Winners)
	for _, cr := range res.Colors {
		assert.Equal(t, core.Score(m.State(), cr.Color), cr.Score)
		assert.Equal(t, "first", cr.Player)
		assert.Equal(t, m.State().Condition.IsWinner(cr.Color), cr.Winner)
		assert.Zero(t, cr.Fallbacks)
		assert.Positive(t, cr.Placed)
	}

	require.Len(t, saver.results, 1)
	assert.Equal(t, res.MatchID, saver.results[0].MatchID)

	events := drain(session)
	require.NotEmpty(t, events)
	assert.IsType(t, MatchStartedEvent{}, events[0])
	assert.IsType(t, MatchEndedEvent{}, events[len(events)-1])

	moves, eliminated := 0, 0
	for _, evt := range events {
		switch evt.(type) {
		case MoveEvent:
			moves++
		case ColorEliminatedEvent:
			eliminated++
		}
	}
	assert.Equal(t, res.Turns, moves)
	assert.Equal(t, 2, eliminated)

	// Further steps are no-ops.
	done, err := m.Step(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Len(t, saver.results, 1)
}

func TestMatchRoundLimit(t *testing.T) {
	rules := core.DefaultRules()
	m, err := NewMatch(MatchConfig{Rules: rules, RoundLimit: 2}, SeatAll(rules, firstPlayer{}))
	require.NoError(t, err)

	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.EndRoundLimit, res.Reason)
	assert.Equal(t, 8, res.Turns)
	assert.Equal(t, 2, res.Rounds)
	for _, cr := range res.Colors {
		assert.Equal(t, 2, cr.Placed)
	}
}

func TestMatchFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		player  Player
		timeout time.Duration
	}{
		{
			name: "error",
			player: funcPlayer(func(context.Context, *core.State) (core.Move, error) {
				return nil, errors.New("boom")
			}),
		},
		{
			name: "nil move",
			player: funcPlayer(func(context.Context, *core.State) (core.Move, error) {
				return nil, nil
			}),
		},
		{
			name: "illegal move",
			player: funcPlayer(func(context.Context, *core.State) (core.Move, error) {
				return core.NewSetMove(core.Red, core.Mono, 0, core.C(5, 5)), nil
			}),
		},
		{
			name: "wrong color",
			player: funcPlayer(func(context.Context, *core.State) (core.Move, error) {
				return core.NewSetMove(core.Blue, core.Mono, 0, core.C(7, 0)), nil
			}),
		},
		{
			name: "too slow",
			player: funcPlayer(func(ctx context.Context, _ *core.State) (core.Move, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}),
			timeout: 5 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := core.NewRules(8, core.Red, core.Blue)
			seats := []Seat{
				{Color: core.Red, Player: tt.player},
				{Color: core.Blue, Player: firstPlayer{}},
			}
			session := NewChannelSession("viewer", 64)
			m, err := NewMatch(MatchConfig{Rules: rules, RoundLimit: 1, MoveTimeout: tt.timeout}, seats)
			require.NoError(t, err)
			m.Subscribe(session)

			res, err := m.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 2, res.Turns)
			assert.Equal(t, 1, res.Colors[0].Fallbacks)
			assert.Equal(t, 1, res.Colors[0].Placed)
			assert.Zero(t, res.Colors[1].Fallbacks)

			var rejected, fallbackMoves int
			for _, evt := range drain(session) {
				switch e := evt.(type) {
				case MoveRejectedEvent:
					rejected++
					assert.Equal(t, core.Red, e.Color)
				case MoveEvent:
					if e.Fallback {
						fallbackMoves++
					}
				}
			}
			assert.Equal(t, 1, rejected)
			assert.Equal(t, 1, fallbackMoves)
		})
	}
}

func TestNewMatchSeatErrors(t *testing.T) {
	rules := core.NewRules(8, core.Red, core.Blue)

	_, err := NewMatch(MatchConfig{}, nil)
	require.Error(t, err)

	_, err = NewMatch(MatchConfig{Rules: rules}, []Seat{{Color: core.Red, Player: firstPlayer{}}})
	require.ErrorContains(t, err, "BLUE has no seat")

	_, err = NewMatch(MatchConfig{Rules: rules}, []Seat{
		{Color: core.Red, Player: firstPlayer{}},
		{Color: core.Red, Player: firstPlayer{}},
		{Color: core.Blue, Player: firstPlayer{}},
	})
	require.ErrorContains(t, err, "seated twice")

	_, err = NewMatch(MatchConfig{Rules: rules}, []Seat{
		{Color: core.Red, Player: firstPlayer{}},
		{Color: core.Blue, Player: nil},
		{Color: core.Green, Player: firstPlayer{}},
	})
	require.ErrorContains(t, err, "has no player")
	require.ErrorContains(t, err, "GREEN does not take part")

	_, err = NewMatch(MatchConfig{Rules: core.NewRules(0, core.Red)}, nil)
	require.ErrorContains(t, err, "board size")
}

func TestMatchCancelled(t *testing.T) {
	rules := core.DefaultRules()
	m, err := NewMatch(MatchConfig{Rules: rules}, SeatAll(rules, firstPlayer{}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, m.Done())
	assert.Zero(t, m.State().Turn)
}

func TestMatchSaveError(t *testing.T) {
	rules := core.NewRules(6, core.Red, core.Blue)
	saveErr := errors.New("disk full")
	m, err := NewMatch(MatchConfig{Rules: rules, RoundLimit: 1}, SeatAll(rules, firstPlayer{}),
		WithResultSaver(&memorySaver{err: saveErr}))
	require.NoError(t, err)

	_, err = m.Run(context.Background())
	require.ErrorIs(t, err, saveErr)
	_, ok := m.Result()
	assert.True(t, ok, "the result is kept even when saving fails")
}

func TestMatchSingleCellBoard(t *testing.T) {
	// A 1×1 board fits exactly one monomino.
	rules := core.NewRules(1, core.Red)
	m, err := NewMatch(MatchConfig{Rules: rules}, SeatAll(rules, firstPlayer{}))
	require.NoError(t, err)

	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, []core.Color{core.Red}, res.Winners)
	assert.Equal(t, 1, res.Colors[0].Score)
}

func TestMatchReportsColorsWithoutOpening(t *testing.T) {
	// PENTO_I does not fit on a 3×3 board, so nobody can open.
	rules := core.NewRules(3, core.Red, core.Blue)
	rules.StartShape = core.PentoI
	session := NewChannelSession("viewer", 16)

	m, err := NewMatch(MatchConfig{Rules: rules}, SeatAll(rules, firstPlayer{}))
	require.NoError(t, err)
	m.Subscribe(session)

	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Turns)
	assert.Equal(t, core.EndExhausted, res.Reason)
	assert.True(t, res.Draw)

	events := drain(session)
	require.Len(t, events, 4)
	assert.IsType(t, MatchStartedEvent{}, events[0])
	assert.Equal(t, ColorEliminatedEvent{MatchID: m.ID(), Color: core.Red}, events[1])
	assert.Equal(t, ColorEliminatedEvent{MatchID: m.ID(), Color: core.Blue}, events[2])
	assert.IsType(t, MatchEndedEvent{}, events[3])
}

func TestMatchOwnsItsRules(t *testing.T) {
	rules := core.NewRules(8, core.Red, core.Blue)
	m, err := NewMatch(MatchConfig{Rules: rules}, SeatAll(rules, firstPlayer{}))
	require.NoError(t, err)

	rules.BoardSize = 20
	rules.Colors[0] = core.Green
	assert.Equal(t, 8, m.Config().Rules.BoardSize)
	assert.Equal(t, []core.Color{core.Red, core.Blue}, m.Config().Rules.Colors)
}
