// Package players provides the built-in move sources. They pick among the
// legal moves without any search and exist to drive demos and tests.
package players

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
	"github.com/vovakirdan/tui-blokus/internal/multiplayer"
	"github.com/vovakirdan/tui-blokus/internal/registry"
)

func init() {
	registry.Register("first", "plays the first legal move in enumeration order", func(registry.Options) multiplayer.Player {
		return First{}
	})
	registry.Register("random", "plays a uniformly random legal move", func(opts registry.Options) multiplayer.Player {
		return NewRandom(opts.Seed, opts.Workers)
	})
}

// First plays the first legal move: the smallest undeployed shape in its
// first orientation at the top-most, left-most anchor.
type First struct{}

// Name implements multiplayer.Player.
func (First) Name() string { return "first" }

// ChooseMove implements multiplayer.Player.
func (First) ChooseMove(_ context.Context, s *core.State) (core.Move, error) {
	for m := range core.PossibleMoves(s) {
		return m, nil
	}
	return skipOrNothing(s)
}

// Random picks uniformly among all legal moves. Generation is spread over
// workers goroutines and aborts when the move deadline expires.
type Random struct {
	mu      sync.Mutex
	rng     *rand.Rand
	workers int
}

// NewRandom creates a seeded random player. workers < 1 means GOMAXPROCS.
func NewRandom(seed uint64, workers int) *Random {
	return &Random{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		workers: workers,
	}
}

// Name implements multiplayer.Player.
func (r *Random) Name() string { return "random" }

// ChooseMove implements multiplayer.Player.
func (r *Random) ChooseMove(ctx context.Context, s *core.State) (core.Move, error) {
	moves, err := core.CollectMovesParallel(ctx, s, r.workers)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return skipOrNothing(s)
	}

	r.mu.Lock()
	i := r.rng.IntN(len(moves))
	r.mu.Unlock()
	return moves[i], nil
}

func skipOrNothing(s *core.State) (core.Move, error) {
	color, ok := s.CurrentColor()
	if !ok {
		return nil, multiplayer.ErrNoMove
	}
	skip := core.SkipMove{Player: color}
	if core.ValidateSkipMove(s, skip) != nil {
		return nil, multiplayer.ErrNoMove
	}
	return skip, nil
}
