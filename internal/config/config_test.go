package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BlokusConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))

	want := DefaultBlokusConfig()
	want.Rules.Corners = map[string]string{}
	assert.Equal(t, want, cfg)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blokus.yaml")
	data := []byte("board:\n  size: 9\nrules:\n  colors: [RED, GREEN]\nmatch:\n  move_timeout: 150ms\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Board.Size)
	assert.Equal(t, []string{"RED", "GREEN"}, cfg.Rules.Colors)
	assert.Equal(t, 150*time.Millisecond, cfg.Match.MoveTimeout)
	// Untouched sections keep their defaults.
	assert.Equal(t, 25, cfg.Match.RoundLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board: [unclosed"), 0o644))
	_, err = Load(path)
	require.ErrorContains(t, err, "failed to parse config")
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset Preset
		size   int
		colors int
	}{
		{PresetClassic, 20, 4},
		{PresetTwoPlayer, 14, 2},
		{PresetMini, 10, 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBlokusConfig()
			require.True(t, ApplyPreset(&cfg, tt.preset))
			assert.Equal(t, tt.size, cfg.Board.Size)
			assert.Len(t, cfg.Rules.Colors, tt.colors)
			require.NoError(t, cfg.Validate())
		})
	}

	cfg := DefaultBlokusConfig()
	assert.False(t, ApplyPreset(&cfg, "huge"))
	assert.Equal(t, DefaultBlokusConfig(), cfg)
}

func TestBuildRules(t *testing.T) {
	cfg := DefaultBlokusConfig()
	ApplyPreset(&cfg, PresetTwoPlayer)
	cfg.Rules.StartShape = "pento_p"
	cfg.Rules.MinSkipRound = 3

	rules, err := cfg.BuildRules(1)
	require.NoError(t, err)
	assert.Equal(t, 14, rules.BoardSize)
	assert.Equal(t, []core.Color{core.Red, core.Blue}, rules.Colors)
	assert.Equal(t, core.BottomRight, rules.Corners[core.Blue])
	assert.Equal(t, core.PentoP, rules.StartShape)
	assert.Equal(t, 3, rules.MinSkipRound)
}

func TestBuildRulesRandomStartShape(t *testing.T) {
	cfg := DefaultBlokusConfig()
	cfg.Rules.StartShape = "random"

	first, err := cfg.BuildRules(42)
	require.NoError(t, err)
	again, err := cfg.BuildRules(42)
	require.NoError(t, err)

	assert.Equal(t, first.StartShape, again.StartShape)
	assert.Equal(t, 5, first.StartShape.Size())
	assert.NotEqual(t, core.PentoX, first.StartShape)
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := DefaultBlokusConfig()
	cfg.Board.Size = 0
	cfg.Rules.Colors = []string{"RED", "PURPLE"}
	cfg.Rules.Corners = map[string]string{"RED": "middle"}
	cfg.Rules.StartShape = "HEXO"
	cfg.Match.RoundLimit = -1
	cfg.Match.Players = nil

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"round_limit",
		"match.players",
		`unknown color "PURPLE"`,
		`unknown corner "middle"`,
		`unknown shape "HEXO"`,
	} {
		assert.ErrorContains(t, err, want)
	}

	cfg = DefaultBlokusConfig()
	cfg.Rules.Corners = map[string]string{"BLUE": "top-left"}
	assert.ErrorContains(t, cfg.Validate(), "share corner")
}
