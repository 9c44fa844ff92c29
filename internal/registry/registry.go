// Package registry provides a global registry for matchup factories.
// Matchups register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/centipede-arena/internal/config"
	"github.com/vovakirdan/centipede-arena/internal/core"
)

// Game is the interface the platform drives. Implementations contain pure
// logic with no external dependencies (especially no Bubble Tea).
type Game interface {
	// ID returns a unique identifier for this matchup (e.g., "predictive-vs-evasive").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or restarts the match.
	// Returns an error when the game's configuration cannot produce a valid board.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one tick unless paused.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered matchup.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance from a configuration.
type Factory func(cfg config.Config) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Typically called from an init() function.
// Panics if the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f(config.Default())
	titles[id] = g.Title()
}

// List returns information about all registered matchups, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a registered matchup with the given configuration.
// Returns an error if the ID is not registered.
func Create(id string, cfg config.Config) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(cfg), nil
}

// Exists checks if a matchup with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
