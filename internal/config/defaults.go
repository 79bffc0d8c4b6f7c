package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blokus.yaml
var defaultBlokusYAML []byte

// DefaultBlokusConfig returns the default configuration: the classic
// four-color game refereed between random players.
func DefaultBlokusConfig() BlokusConfig {
	return BlokusConfig{
		Board: BoardConfig{
			Size: 20,
		},
		Rules: RulesConfig{
			Colors:       []string{"RED", "BLUE", "YELLOW", "GREEN"},
			StartShape:   "",
			MinSkipRound: 1,
		},
		Match: MatchConfig{
			RoundLimit:  25, // more rounds than pieces
			MoveTimeout: 2 * time.Second,
			Players:     []string{"random"},
			Workers:     0,
		},
		Viewer: ViewerConfig{
			Tick: 250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			DBPath: "~/.blokus/scores.db",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlokusYAML
}
