// Package config provides YAML-based configuration loading and variant
// presets for the blokus engine and its tools.
package config

import "time"

// BlokusConfig contains all configuration for matches, the viewer and storage.
type BlokusConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Rules   RulesConfig   `yaml:"rules"`
	Match   MatchConfig   `yaml:"match"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
}

// BoardConfig defines the board dimensions.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// RulesConfig defines the variant rules.
type RulesConfig struct {
	Colors []string `yaml:"colors"` // turn order, e.g. [RED, BLUE]
	// Corners maps a color name to top-left, top-right, bottom-right or
	// bottom-left. Colors not listed keep their default corner.
	Corners      map[string]string `yaml:"corners"`
	StartShape   string            `yaml:"start_shape"` // "", "random" or a shape name
	MinSkipRound int               `yaml:"min_skip_round"`
}

// MatchConfig defines how matches are refereed.
type MatchConfig struct {
	RoundLimit  int           `yaml:"round_limit"`  // 0 = unlimited
	MoveTimeout time.Duration `yaml:"move_timeout"` // 0 = no deadline
	Players     []string      `yaml:"players"`      // registry ids, one per color, reused cyclically
	Workers     int           `yaml:"workers"`      // move generation goroutines, 0 = GOMAXPROCS
}

// ViewerConfig defines the TUI match viewer.
type ViewerConfig struct {
	Tick time.Duration `yaml:"tick"` // delay between moves while playing
}

// LoggingConfig defines log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// StorageConfig defines where match results are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Preset represents a named variant.
type Preset string

const (
	PresetClassic   Preset = "classic"
	PresetTwoPlayer Preset = "two-player"
	PresetMini      Preset = "mini"
)

// Presets lists the known variants.
func Presets() []Preset {
	return []Preset{PresetClassic, PresetTwoPlayer, PresetMini}
}

// ApplyPreset modifies the config for a named variant. Unknown presets
// leave the config untouched and report false.
func ApplyPreset(cfg *BlokusConfig, preset Preset) bool {
	switch preset {
	case PresetClassic:
		cfg.Board.Size = 20
		cfg.Rules.Colors = []string{"RED", "BLUE", "YELLOW", "GREEN"}
		cfg.Rules.Corners = nil
	case PresetTwoPlayer:
		cfg.Board.Size = 14
		cfg.Rules.Colors = []string{"RED", "BLUE"}
		// Opposite corners.
		cfg.Rules.Corners = map[string]string{"RED": "top-left", "BLUE": "bottom-right"}
	case PresetMini:
		cfg.Board.Size = 10
		cfg.Rules.Colors = []string{"RED", "BLUE", "YELLOW", "GREEN"}
		cfg.Rules.Corners = nil
		cfg.Match.RoundLimit = 12
	default:
		return false
	}
	return true
}
