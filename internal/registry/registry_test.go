package registry

import (
	"testing"

	"github.com/vovakirdan/tetris2048/internal/config"
	"github.com/vovakirdan/tetris2048/internal/core"
)

type stubGame struct {
	id   string
	opts Options
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-a", func(opts Options) Game { return &stubGame{id: "stub-a", opts: opts} })

	g, err := Create("stub-a", Options{Difficulty: config.DifficultyHard})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("ID() = %q, want stub-a", g.ID())
	}
	if got := g.(*stubGame).opts.Difficulty; got != config.DifficultyHard {
		t.Errorf("factory received Difficulty %q, want %q", got, config.DifficultyHard)
	}
}

func TestCreateReturnsFreshInstances(t *testing.T) {
	Register("stub-fresh", func(opts Options) Game { return &stubGame{id: "stub-fresh"} })

	a, _ := Create("stub-fresh", Options{})
	b, _ := Create("stub-fresh", Options{})
	if a == b {
		t.Error("Create() should return a new game each call")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist", Options{}); err == nil {
		t.Error("Create() of unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func(Options) Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering the same id twice should panic")
		}
	}()
	Register("stub-dup", func(Options) Game { return &stubGame{id: "stub-dup"} })
}
