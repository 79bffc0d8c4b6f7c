// blokus runs and inspects matches of the polyomino placement game.
//
// Usage:
//
//	blokus menu              - Interactive variant picker
//	blokus play              - Play self-play matches (headless or --watch)
//	blokus moves <fixture>   - List the legal moves of a board fixture
//	blokus players           - List available players
//	blokus scores            - Show stored match results
//	blokus serve             - Start SSH server for remote viewing
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.blokus/configs, ./configs)
//	--variant <name>    - Variant preset: classic, two-player, mini
//	--seed <value>      - RNG seed for reproducible matches
//	--db <path>         - Results database (default from config)
//	--log-level <level> - debug, info, warn, error (default from config)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/config"
	"github.com/vovakirdan/tui-blokus/internal/games/blokus"
)

var (
	// Global flags
	flagConfig   string
	flagVariant  string
	flagSeed     uint64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blokus",
	Short: "Blokus - a polyomino placement game engine for the terminal",
	Long: `Blokus runs matches of the polyomino placement game between built-in
players, shows them in the terminal and keeps their results.

Available commands:
  menu     - Pick a variant and watch matches interactively
  play     - Play self-play matches, optionally watching them
  moves    - List the legal moves of a board fixture
  players  - Show all available players
  scores   - View stored results
  serve    - Start SSH server for remote viewing

Examples:
  blokus play --watch
  blokus play --variant two-player --games 10
  blokus moves ./position.txt --colors RED,BLUE
  blokus scores
  blokus serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Variant preset: classic, two-player, mini")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(movesCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (config.BlokusConfig, error) {
	cfg, err := blokus.LoadConfig(flagConfig, flagVariant)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg, nil
}

// mustLoadConfig is loadConfig for commands that cannot run without one.
func mustLoadConfig() config.BlokusConfig {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates the command logger at the configured level.
func newLogger(cfg config.BlokusConfig, prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Logging.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// seed returns the --seed flag or a time-based seed.
func seed() uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return uint64(time.Now().UnixNano())
}

// variantName labels stored results.
func variantName() string {
	if flagVariant != "" {
		return flagVariant
	}
	return "custom"
}
