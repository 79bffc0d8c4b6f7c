package multiplayer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// ErrNoMove is returned by players that have nothing to play.
var ErrNoMove = errors.New("no move available")

// MatchConfig controls how a match is refereed.
type MatchConfig struct {
	// Variant is a free-form label stored with the result (e.g. "classic").
	Variant string
	Rules   *core.Rules
	// MoveTimeout bounds each ChooseMove call. Zero disables the deadline.
	MoveTimeout time.Duration
	// RoundLimit force-finishes the game once this round is reached.
	// Zero disables the limit.
	RoundLimit int
}

// MatchResultSaver persists finished matches.
// This allows the runner to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResult) error
}

// ColorResult is the final tally of one color.
type ColorResult struct {
	Color     core.Color
	Player    string
	Score     int
	Placed    int // pieces placed
	Squares   int // board cells owned
	Fallbacks int // moves substituted by the referee
	Winner    bool
}

// MatchResult contains the outcome of a completed match.
type MatchResult struct {
	MatchID   MatchID
	Variant   string
	Reason    core.EndReason
	Winners   []core.Color
	Draw      bool
	Colors    []ColorResult // in turn order
	Turns     int
	Rounds    int
	StartedAt time.Time
	Duration  time.Duration
}

// ScoreOf returns the final score of c.
func (r MatchResult) ScoreOf(c core.Color) (int, bool) {
	for _, cr := range r.Colors {
		if cr.Color == c {
			return cr.Score, true
		}
	}
	return 0, false
}

// Match referees one game: it asks the seated players for moves, applies
// them through the engine and publishes progress to subscribed sessions.
// A Match is not safe for concurrent use; one goroutine drives it.
type Match struct {
	id      MatchID
	cfg     MatchConfig
	state   *core.State
	players [core.ColorCount]Player

	fallbacks [core.ColorCount]int
	// colors without an opening placement, dropped before the first move
	eliminatedAtStart []core.Color
	startedAt time.Time
	result    *MatchResult

	logger   *log.Logger
	saver    MatchResultSaver // Optional, can be nil
	sessions *SessionRegistry
}

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the logger. Matches log nothing by default.
func WithLogger(logger *log.Logger) Option {
	return func(m *Match) {
		m.logger = logger
	}
}

// WithResultSaver stores the result once the match ends.
func WithResultSaver(saver MatchResultSaver) Option {
	return func(m *Match) {
		m.saver = saver
	}
}

// WithMatchID overrides the generated match identifier.
func WithMatchID(id MatchID) Option {
	return func(m *Match) {
		m.id = id
	}
}

// NewMatch creates a match. Every color of cfg.Rules needs exactly one seat.
func NewMatch(cfg MatchConfig, seats []Seat, opts ...Option) (*Match, error) {
	if cfg.Rules == nil {
		return nil, errors.New("match: rules are required")
	}
	cfg.Rules = cfg.Rules.Clone()
	state, err := core.NewState(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	m := &Match{
		id:        NewMatchID(),
		cfg:       cfg,
		state:     state,
		startedAt: time.Now(),
		logger:    log.New(io.Discard),
		sessions:  NewSessionRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	var problems *multierror.Error
	for _, seat := range seats {
		switch {
		case seat.Player == nil:
			problems = multierror.Append(problems, fmt.Errorf("seat %s has no player", seat.Color))
		case !cfg.Rules.Participates(seat.Color):
			problems = multierror.Append(problems, fmt.Errorf("color %s does not take part", seat.Color))
		case m.players[seat.Color] != nil:
			problems = multierror.Append(problems, fmt.Errorf("color %s seated twice", seat.Color))
		default:
			m.players[seat.Color] = seat.Player
		}
	}
	for _, c := range cfg.Rules.Colors {
		if c.Valid() && m.players[c] == nil {
			problems = multierror.Append(problems, fmt.Errorf("color %s has no seat", c))
		}
	}
	if err := problems.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	m.logger.Info("match created", "id", m.id, "variant", cfg.Variant,
		"board", cfg.Rules.BoardSize, "colors", cfg.Rules.Colors)

	// Tiny boards can leave a color without an opening.
	before := slices.Clone(m.state.Active)
	core.RemoveColorsWithNoMoves(m.state)
	for _, c := range before {
		if !m.state.IsActive(c) {
			m.eliminatedAtStart = append(m.eliminatedAtStart, c)
			m.logger.Info("color eliminated", "color", c, "turn", 0, "reason", "no opening placement")
		}
	}
	return m, nil
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Config returns the match configuration.
func (m *Match) Config() MatchConfig {
	return m.cfg
}

// State returns the live game state. Callers must not mutate it and must
// not read it concurrently with Step.
func (m *Match) State() *core.State {
	return m.state
}

// PlayerName returns the name of the player seated at c.
func (m *Match) PlayerName(c core.Color) string {
	if !c.Valid() || m.players[c] == nil {
		return ""
	}
	return m.players[c].Name()
}

// Result returns the outcome once the match has ended.
func (m *Match) Result() (MatchResult, bool) {
	if m.result == nil {
		return MatchResult{}, false
	}
	return *m.result, true
}

// Done reports whether the match has ended.
func (m *Match) Done() bool {
	return m.result != nil
}

// Subscribe registers a session for match events. It immediately receives
// a MatchStartedEvent, followed by a ColorEliminatedEvent for every color
// that had no opening placement.
func (m *Match) Subscribe(session SessionHandle) {
	m.sessions.Register(session)
	session.Send(MatchStartedEvent{
		MatchID: m.id,
		Variant: m.cfg.Variant,
		Seats:   m.seatInfo(),
	})
	for _, c := range m.eliminatedAtStart {
		session.Send(ColorEliminatedEvent{MatchID: m.id, Color: c})
	}
}

// Unsubscribe removes a session.
func (m *Match) Unsubscribe(id SessionID) {
	m.sessions.Unregister(id)
}

// Viewers returns the number of subscribed sessions.
func (m *Match) Viewers() int {
	return m.sessions.Count()
}

func (m *Match) seatInfo() []SeatInfo {
	info := make([]SeatInfo, 0, len(m.cfg.Rules.Colors))
	for _, c := range m.cfg.Rules.Colors {
		info = append(info, SeatInfo{Color: c, Player: m.PlayerName(c)})
	}
	return info
}

// Run steps the match until it ends or ctx is cancelled.
func (m *Match) Run(ctx context.Context) (MatchResult, error) {
	for {
		done, err := m.Step(ctx)
		if err != nil {
			return MatchResult{}, err
		}
		if done {
			res, _ := m.Result()
			return res, nil
		}
	}
}

// Step performs a single move. It returns true once the match has ended.
// Errors are limited to ctx cancellation, result saving and internal
// engine failures; bad moves from players are replaced, not returned.
func (m *Match) Step(ctx context.Context) (bool, error) {
	if m.result != nil {
		return true, nil
	}
	if m.state.IsFinished() {
		return true, m.finish()
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if m.cfg.RoundLimit > 0 && m.state.Round() >= m.cfg.RoundLimit {
		if _, err := core.ForceFinish(m.state, core.EndRoundLimit); err != nil {
			return false, fmt.Errorf("match %s: %w", m.id, err)
		}
		return true, m.finish()
	}

	color, _ := m.state.CurrentColor()
	start := time.Now()
	move, err := m.choose(ctx, color)
	if err != nil {
		return false, err
	}

	before := slices.Clone(m.state.Active)
	fallback := false
	if err := core.PerformMove(m.state, move); err != nil {
		if !errors.Is(err, core.ErrInvalidMove) {
			return false, fmt.Errorf("match %s: %w", m.id, err)
		}
		m.reject(color, move, err)
		if move, err = m.fallbackMove(); err != nil {
			return false, err
		}
		if err := core.PerformMove(m.state, move); err != nil {
			return false, fmt.Errorf("match %s: fallback %s: %w", m.id, move, err)
		}
		fallback = true
	}

	m.logger.Debug("move", "turn", m.state.Turn, "color", color, "move", move, "fallback", fallback)
	m.sessions.Broadcast(MoveEvent{
		MatchID:  m.id,
		Turn:     m.state.Turn,
		Round:    m.state.Round(),
		Move:     move,
		Fallback: fallback,
		Elapsed:  time.Since(start),
	})

	for _, c := range before {
		if !m.state.IsActive(c) {
			m.logger.Info("color eliminated", "color", c, "turn", m.state.Turn, "score", core.Score(m.state, c))
			m.sessions.Broadcast(ColorEliminatedEvent{MatchID: m.id, Color: c, Turn: m.state.Turn})
		}
	}

	if m.state.IsFinished() {
		return true, m.finish()
	}
	return false, nil
}

// choose asks the seated player for a move under the move deadline. A
// failing player gets the fallback move; only cancellation of ctx itself
// is returned as an error.
func (m *Match) choose(ctx context.Context, color core.Color) (core.Move, error) {
	moveCtx, cancel := ctx, context.CancelFunc(func() {})
	if m.cfg.MoveTimeout > 0 {
		moveCtx, cancel = context.WithTimeout(ctx, m.cfg.MoveTimeout)
	}
	defer cancel()

	move, err := m.players[color].ChooseMove(moveCtx, m.state.Clone())
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err == nil && move == nil {
		err = ErrNoMove
	}
	if err != nil {
		m.reject(color, nil, err)
		return m.fallbackMove()
	}
	return move, nil
}

func (m *Match) reject(color core.Color, move core.Move, err error) {
	m.fallbacks[color]++
	m.logger.Warn("move rejected", "color", color, "player", m.PlayerName(color), "move", move, "err", err)
	m.sessions.Broadcast(MoveRejectedEvent{MatchID: m.id, Color: color, Move: move, Err: err})
}

func (m *Match) fallbackMove() (core.Move, error) {
	moves := core.LegalMoves(m.state)
	if len(moves) == 0 {
		return nil, fmt.Errorf("match %s: no legal move for the current color", m.id)
	}
	return moves[0], nil
}

func (m *Match) finish() error {
	if m.result != nil {
		return nil
	}
	res := m.buildResult()
	m.result = &res

	m.logger.Info("match finished", "id", m.id, "reason", res.Reason, "winners", res.Winners,
		"draw", res.Draw, "turns", res.Turns, "duration", res.Duration.Round(time.Millisecond))
	m.sessions.Broadcast(MatchEndedEvent{Result: res})

	if m.saver != nil {
		if err := m.saver.SaveMatchResult(res); err != nil {
			return fmt.Errorf("match %s: save result: %w", m.id, err)
		}
	}
	return nil
}

func (m *Match) buildResult() MatchResult {
	cond := m.state.Condition
	res := MatchResult{
		MatchID:   m.id,
		Variant:   m.cfg.Variant,
		Reason:    cond.Reason,
		Winners:   slices.Clone(cond.Winners),
		Draw:      cond.Draw,
		Turns:     m.state.Turn,
		Rounds:    m.state.Round(),
		StartedAt: m.startedAt,
		Duration:  time.Since(m.startedAt),
	}
	counts := m.state.Board.CountByColor()
	for _, c := range m.cfg.Rules.Colors {
		res.Colors = append(res.Colors, ColorResult{
			Color:     c,
			Player:    m.PlayerName(c),
			Score:     cond.Scores[c],
			Placed:    len(m.state.DeployedPieces(c)),
			Squares:   counts[c],
			Fallbacks: m.fallbacks[c],
			Winner:    cond.IsWinner(c),
		})
	}
	return res
}
