package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

const configFile = "blokus.yaml"

// Load loads the configuration. Fields missing from the file keep their
// default values.
// Search order: customPath -> ~/.blokus/configs/blokus.yaml -> ./configs/blokus.yaml -> embedded default
func Load(customPath string) (BlokusConfig, error) {
	cfg := DefaultBlokusConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, ok := parse(data); ok {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if parsed, ok := parse(data); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if parsed, ok := parse(defaultBlokusYAML); ok {
		return parsed, nil
	}
	return DefaultBlokusConfig(), nil // Fallback to hardcoded if embed fails
}

func parse(data []byte) (BlokusConfig, bool) {
	cfg := DefaultBlokusConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blokus", "configs", filename)
}

// Validate reports every problem in the configuration.
func (c BlokusConfig) Validate() error {
	var result *multierror.Error
	if c.Match.RoundLimit < 0 {
		result = multierror.Append(result, fmt.Errorf("match.round_limit %d must not be negative", c.Match.RoundLimit))
	}
	if c.Match.MoveTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("match.move_timeout %s must not be negative", c.Match.MoveTimeout))
	}
	if c.Match.Workers < 0 {
		result = multierror.Append(result, fmt.Errorf("match.workers %d must not be negative", c.Match.Workers))
	}
	if len(c.Match.Players) == 0 {
		result = multierror.Append(result, errors.New("match.players must name at least one player"))
	}
	if c.Viewer.Tick < 0 {
		result = multierror.Append(result, fmt.Errorf("viewer.tick %s must not be negative", c.Viewer.Tick))
	}
	if _, err := c.BuildRules(0); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// BuildRules converts the rules section into engine rules. seed drives the
// choice of start shape when start_shape is "random".
func (c BlokusConfig) BuildRules(seed uint64) (*core.Rules, error) {
	var result *multierror.Error

	colors := make([]core.Color, 0, len(c.Rules.Colors))
	for _, name := range c.Rules.Colors {
		color, ok := core.ParseColor(name)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("rules.colors: unknown color %q", name))
			continue
		}
		colors = append(colors, color)
	}

	rules := core.NewRules(c.Board.Size, colors...)
	for name, cornerName := range c.Rules.Corners {
		color, ok := core.ParseColor(name)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("rules.corners: unknown color %q", name))
			continue
		}
		corner, ok := core.ParseCorner(strings.ToLower(cornerName))
		if !ok {
			result = multierror.Append(result, fmt.Errorf("rules.corners: unknown corner %q for %s", cornerName, color))
			continue
		}
		rules.Corners[color] = corner
	}

	switch start := strings.ToUpper(c.Rules.StartShape); start {
	case "":
		rules.StartShape = core.NoShape
	case "RANDOM":
		rules.StartShape = core.RandomStartShape(rand.New(rand.NewPCG(seed, seed)))
	default:
		shape, ok := core.ParseShape(start)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("rules.start_shape: unknown shape %q", c.Rules.StartShape))
		}
		rules.StartShape = shape
	}
	rules.MinSkipRound = c.Rules.MinSkipRound

	if result != nil {
		return nil, result.ErrorOrNil()
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return rules, nil
}
