// Package registry provides a global registry for player factories.
// Move sources register themselves in init() functions, allowing the
// platform to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-blokus/internal/multiplayer"
)

// PlayerInfo contains metadata about a registered player.
type PlayerInfo struct {
	ID          string
	Description string
}

// Options parameterize a new player.
type Options struct {
	// Seed drives any randomness so that matches can be replayed.
	Seed uint64
	// Workers bounds move generation goroutines; 0 means GOMAXPROCS.
	Workers int
}

// Factory creates a new player.
type Factory func(opts Options) multiplayer.Player

type entry struct {
	factory     Factory
	description string
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a player factory to the registry.
// Panics if a player with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: player %q already registered", id))
	}
	entries[id] = entry{factory: f, description: description}
}

// List returns information about all registered players, sorted by ID.
func List() []PlayerInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PlayerInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, PlayerInfo{ID: id, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a player by its ID.
// Returns an error if the ID is not registered.
func Create(id string, opts Options) (multiplayer.Player, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown player %q", id)
	}

	return e.factory(opts), nil
}

// Exists checks if a player with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
