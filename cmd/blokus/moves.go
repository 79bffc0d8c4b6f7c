package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

var (
	flagColors  string
	flagToMove  string
	flagWorkers int
	flagTimeout time.Duration
	flagCount   bool
)

var movesCmd = &cobra.Command{
	Use:   "moves <fixture>",
	Short: "List the legal moves of a board fixture",
	Long: `Read a board in the fixture format and list the legal placements of
the color to move, in generation order.

The fixture has one row per line and one token per cell: "__" for an
empty cell, otherwise a color code (R, B, Y, G) followed by an occupant
code naming the shape. Shapes that appear on the board count as placed,
so colors on the board are past their opening move.

Rules other than the board size and turn order come from the config.

Examples:
  blokus moves position.txt
  blokus moves position.txt --colors RED,BLUE --to-move BLUE
  blokus moves position.txt --count --workers 8 --timeout 500ms`,
	Args: cobra.ExactArgs(1),
	Run:  runMoves,
}

func init() {
	movesCmd.Flags().StringVar(&flagColors, "colors", "", "Comma separated turn order (default from config)")
	movesCmd.Flags().StringVar(&flagToMove, "to-move", "", "Color to move (default: first in turn order)")
	movesCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Move generation goroutines (0 = config, then GOMAXPROCS)")
	movesCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Abort generation after this long (0 = no limit)")
	movesCmd.Flags().BoolVar(&flagCount, "count", false, "Only print the number of moves")
}

func runMoves(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	if flagColors != "" {
		cfg.Rules.Colors = strings.Split(flagColors, ",")
	}
	workers := flagWorkers
	if workers == 0 {
		workers = cfg.Match.Workers
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The fixture decides the board size.
	board, err := core.ParseBoard(string(data), core.AllColors())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", args[0], err)
		os.Exit(1)
	}
	cfg.Board.Size = board.Size

	rules, err := cfg.BuildRules(seed())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	state, err := core.StateFromString(rules, string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", args[0], err)
		os.Exit(1)
	}
	deriveInventories(state)

	if flagToMove != "" {
		color, ok := core.ParseColor(flagToMove)
		if !ok || !state.IsActive(color) {
			fmt.Fprintf(os.Stderr, "Error: %q is not one of the colors %v\n", flagToMove, rules.Colors)
			os.Exit(1)
		}
		for state.Active[0] != color {
			state.Active = append(state.Active[1:], state.Active[0])
		}
	}

	ctx := context.Background()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	start := time.Now()
	moves, err := core.CollectMovesParallel(ctx, state, workers)
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(os.Stderr, "Error: move generation did not finish within %s\n", flagTimeout)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	color, _ := state.CurrentColor()
	if flagCount {
		fmt.Println(len(moves))
		return
	}

	fmt.Printf("%s to move, %d legal placements (%s)\n", color, len(moves), elapsed.Round(time.Microsecond))
	fmt.Printf("  %s\n", inventoryLine(state, color))
	for _, m := range moves {
		fmt.Printf("  %s\n", m.Piece)
	}
	if len(moves) == 0 {
		if core.ValidateSkipMove(state, core.SkipMove{Player: color}) == nil {
			fmt.Println("  skip")
		} else {
			fmt.Println("  none: the color would be eliminated")
		}
	}
}

// deriveInventories treats every shape whose occupant code appears on the
// board as placed by that color and advances Turn by the number of such
// pieces. Placement order is unknown, so Deployed stays empty.
func deriveInventories(s *core.State) {
	placed := 0
	for _, color := range s.Rules.Colors {
		for _, at := range s.OwnedCells(color) {
			cell, err := s.Board.CellAt(at)
			if err != nil || !s.Undeployed[color].Has(cell.Shape) {
				continue
			}
			s.Undeployed[color] = s.Undeployed[color].Without(cell.Shape)
			placed++
		}
	}
	s.Turn = placed
}

// inventoryLine lists the shapes color still holds.
func inventoryLine(s *core.State, color core.Color) string {
	shapes := s.UndeployedShapes(color)
	if len(shapes) == 0 {
		return "holds no shapes"
	}
	names := make([]string, len(shapes))
	for i, id := range shapes {
		names[i] = id.String()
	}
	return fmt.Sprintf("holds %d shapes: %s", len(shapes), strings.Join(names, " "))
}
