package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/registry"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List all available players",
	Long:  `Shows the players that can be seated in a match via config or --players.`,
	Run:   runPlayers,
}

func runPlayers(cmd *cobra.Command, args []string) {
	players := registry.List()

	if len(players) == 0 {
		fmt.Println("No players available.")
		return
	}

	fmt.Println("Available players:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range players {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, p := range players {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'blokus play --players <id>,<id>' to seat them.")
}
