package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blokus/internal/platform/tui"
	"github.com/vovakirdan/tui-blokus/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start blokus with a variant picker menu",
	Long: `Start blokus in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to watch a match of the selected
variant. After the match, Esc returns to the menu. Tab opens the results.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Results
  Q            - Quit

Examples:
  blokus menu
  blokus menu --db ./results.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	// The menu owns the terminal; keep logs out of it.
	logger := newLogger(cfg, "blokus")
	logger.SetOutput(io.Discard)

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	if err := tui.RunSession(store, cfg, logger, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
