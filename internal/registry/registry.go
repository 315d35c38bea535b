// Package registry maps game IDs to constructors. Games register themselves
// in init() so the CLI and the SSH server can build them by ID.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tetris2048/internal/config"
	"github.com/vovakirdan/tetris2048/internal/core"
)

// Game is the interface every playable game implements.
// Games contain pure logic with no Bubble Tea dependency; the platform
// maps input, drives the clock and renders the screen buffer.
type Game interface {
	// ID is the stable identifier used for score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// Options configures a game at creation.
type Options struct {
	// Config is the loaded game configuration. The zero value selects
	// the built-in defaults.
	Config config.Tetris2048Config

	// Difficulty overrides Config.Difficulty.Preset when set.
	Difficulty config.DifficultyPreset
}

// Factory builds a new game instance.
type Factory func(opts Options) Game

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a game factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// Create builds the game registered under id.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(opts), nil
}
