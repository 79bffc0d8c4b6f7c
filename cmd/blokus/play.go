package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus"
	"github.com/vovakirdan/tui-blokus/internal/multiplayer"
	"github.com/vovakirdan/tui-blokus/internal/platform/tui"
	"github.com/vovakirdan/tui-blokus/internal/storage"
)

var (
	flagWatch   bool
	flagGames   int
	flagPlayers string
	flagNoSave  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play self-play matches",
	Long: `Run matches between the configured players.

Without --watch the matches run headless and the final board and scores
are printed: coloured on a terminal, as a plain board fixture otherwise.

Viewer controls (--watch):
  P/Space    - Pause
  N/Right    - Step one move
  R          - Restart with a new match
  +/-        - Faster / slower
  Q/Ctrl+C   - Quit

Examples:
  blokus play --watch
  blokus play --variant mini --games 20
  blokus play --players first,random --seed 7
  blokus play --config ./my-blokus.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch the match in the terminal viewer")
	playCmd.Flags().IntVar(&flagGames, "games", 1, "Number of headless matches to play")
	playCmd.Flags().StringVar(&flagPlayers, "players", "", "Comma separated player ids, one per color (overrides config)")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store results")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	if flagPlayers != "" {
		cfg.Match.Players = strings.Split(flagPlayers, ",")
	}
	logger := newLogger(cfg, "blokus")

	// Open result storage
	var store *storage.Store
	if !flagNoSave {
		var err error
		store, err = storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("could not open results database", "error", err)
			// Continue without storage - matches still run
			store = nil
		} else {
			defer store.Close()
		}
	}

	opts := []multiplayer.Option{multiplayer.WithLogger(logger)}
	if store != nil {
		opts = append(opts, multiplayer.WithResultSaver(store))
	}
	factory := func(seed uint64) (*multiplayer.Match, error) {
		return blokus.NewMatch(cfg, variantName(), seed, opts...)
	}

	if flagWatch {
		// The viewer owns the terminal; keep logs out of it.
		logger.SetOutput(io.Discard)
		res, done, err := tui.RunViewer(factory, seed(), cfg.Viewer.Tick)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if done {
			printResult(res)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := seed()
	for i := range max(flagGames, 1) {
		match, err := factory(base + uint64(i))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		res, err := match.Run(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if flagGames <= 1 {
			printBoard(match)
		}
		printResult(res)
	}
}

// printBoard prints the final position, coloured when stdout is a terminal.
func printBoard(match *multiplayer.Match) {
	s := match.State()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(tui.RenderBoard(s))
		fmt.Println()
		fmt.Println(tui.RenderScores(s, match.PlayerName))
		fmt.Println()
		return
	}
	fmt.Print(s.Board.String())
	fmt.Println()
}

func printResult(res multiplayer.MatchResult) {
	winners := make([]string, len(res.Winners))
	for i, c := range res.Winners {
		winners[i] = c.String()
	}
	outcome := "winner " + strings.Join(winners, ", ")
	if res.Draw {
		outcome = "draw " + strings.Join(winners, ", ")
	}
	fmt.Printf("%s  %s  %s after %d turns (%s)\n",
		shortID(string(res.MatchID)), res.Variant, outcome, res.Turns, res.Reason)
	for _, cr := range res.Colors {
		fmt.Printf("  %-6s  %-8s  %3d pts  %2d pieces  %d fallbacks\n",
			cr.Color, cr.Player, cr.Score, cr.Placed, cr.Fallbacks)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
