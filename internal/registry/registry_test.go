package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
	"github.com/vovakirdan/tui-blokus/internal/multiplayer"
)

type seededPlayer struct{ seed uint64 }

func (p seededPlayer) Name() string { return "seeded" }

func (p seededPlayer) ChooseMove(context.Context, *core.State) (core.Move, error) {
	return nil, multiplayer.ErrNoMove
}

func TestRegistry(t *testing.T) {
	Register("test-seeded", "records its seed", func(opts Options) multiplayer.Player {
		return seededPlayer{seed: opts.Seed}
	})
	Register("test-alpha", "sorts first", func(Options) multiplayer.Player {
		return seededPlayer{}
	})

	assert.True(t, Exists("test-seeded"))
	assert.False(t, Exists("test-missing"))

	p, err := Create("test-seeded", Options{Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), p.(seededPlayer).seed)

	_, err = Create("test-missing", Options{})
	require.ErrorContains(t, err, "unknown player")

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	assert.IsIncreasing(t, ids)
	assert.Contains(t, ids, "test-alpha")

	assert.Panics(t, func() {
		Register("test-alpha", "again", func(Options) multiplayer.Player { return seededPlayer{} })
	})
}
