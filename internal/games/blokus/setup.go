// Package blokus wires the rules engine, the built-in players and the
// configuration into ready-to-run matches.
package blokus

import (
	"fmt"

	"github.com/vovakirdan/tui-blokus/internal/config"
	_ "github.com/vovakirdan/tui-blokus/internal/games/blokus/players" // register built-in players
	"github.com/vovakirdan/tui-blokus/internal/multiplayer"
	"github.com/vovakirdan/tui-blokus/internal/registry"
)

// LoadConfig loads the configuration at path (see config.Load for the
// search order) and applies the named variant preset. An empty variant
// keeps the file as is.
func LoadConfig(path, variant string) (config.BlokusConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if variant != "" && !config.ApplyPreset(&cfg, config.Preset(variant)) {
		return cfg, fmt.Errorf("unknown variant %q (known: %v)", variant, config.Presets())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// NewMatch builds a match from cfg. variant labels the stored result and
// seed drives the start shape and every seeded player.
func NewMatch(cfg config.BlokusConfig, variant string, seed uint64, opts ...multiplayer.Option) (*multiplayer.Match, error) {
	rules, err := cfg.BuildRules(seed)
	if err != nil {
		return nil, err
	}
	if variant == "" {
		variant = "custom"
	}

	seats := make([]multiplayer.Seat, len(rules.Colors))
	for i, color := range rules.Colors {
		id := cfg.Match.Players[i%len(cfg.Match.Players)]
		p, err := registry.Create(id, registry.Options{
			Seed:    seed + uint64(i)*0x9e3779b97f4a7c15,
			Workers: cfg.Match.Workers,
		})
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", color, err)
		}
		seats[i] = multiplayer.Seat{Color: color, Player: p}
	}

	return multiplayer.NewMatch(multiplayer.MatchConfig{
		Variant:     variant,
		Rules:       rules,
		MoveTimeout: cfg.Match.MoveTimeout,
		RoundLimit:  cfg.Match.RoundLimit,
	}, seats, opts...)
}
