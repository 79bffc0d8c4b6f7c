package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blokus/internal/platform/tui"
	"github.com/vovakirdan/tui-blokus/internal/storage"
)

var (
	flagLimit   int
	flagMatchID string
	flagTUI     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show stored match results",
	Long: `Display recent matches and per-color statistics.

Examples:
  blokus scores
  blokus scores --limit 50
  blokus scores --match 3f2c9a1e-...
  blokus scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent matches to show")
	scoresCmd.Flags().StringVar(&flagMatchID, "match", "", "Show a single match by id")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse results in the interactive scoreboard")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagTUI:
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case flagMatchID != "":
		showMatch(store, flagMatchID)
	default:
		showRecent(store)
	}
}

func showMatch(store *storage.Store, id string) {
	rec, err := store.MatchByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving match: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no match %q\n", id)
		os.Exit(1)
	}

	fmt.Printf("Match %s (%s)\n", rec.MatchID, rec.Variant)
	fmt.Printf("  %s, %d turns, %d rounds, %s\n", rec.EndReason, rec.Turns, rec.Rounds, rec.Duration)
	fmt.Printf("  played %s\n\n", rec.CreatedAt.Format("2006-01-02 15:04"))
	for _, sr := range rec.Scores {
		mark := ""
		if sr.Winner {
			mark = "*"
		}
		fmt.Printf("  %-1s %-6s  %-8s  %3d pts  %2d pieces  %3d squares  %d fallbacks\n",
			mark, sr.Color, sr.Player, sr.Score, sr.Placed, sr.Squares, sr.Fallbacks)
	}
}

func showRecent(store *storage.Store) {
	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'blokus play' to record the first one!")
		return
	}

	fmt.Printf("  %-8s  %-10s  %-20s  %5s  %s\n", "Match", "Variant", "Result", "Turns", "Date")
	fmt.Printf("  %-8s  %-10s  %-20s  %5s  %s\n", "-----", "-------", "------", "-----", "----")
	for _, rec := range matches {
		result := strings.Join(rec.Winners, ",")
		if rec.Draw {
			result = "draw " + result
		}
		fmt.Printf("  %-8s  %-10s  %-20s  %5d  %s\n",
			shortID(rec.MatchID), rec.Variant, result, rec.Turns, rec.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.ColorStats()
	if err != nil || len(stats) == 0 {
		return
	}
	colors := make([]string, 0, len(stats))
	for c := range stats {
		colors = append(colors, c)
	}
	sort.Strings(colors)

	fmt.Println()
	fmt.Printf("  %-6s  %5s  %4s  %4s  %5s\n", "Color", "Games", "Wins", "Best", "Avg")
	for _, c := range colors {
		st := stats[c]
		fmt.Printf("  %-6s  %5d  %4d  %4d  %5.1f\n", st.Key, st.Games, st.Wins, st.HighScore, st.AvgScore)
	}
}
