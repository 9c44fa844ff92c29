package registry

import (
	"testing"

	"github.com/vovakirdan/centipede-arena/internal/config"
	"github.com/vovakirdan/centipede-arena/internal/core"
)

type stubGame struct {
	cfg config.Config
}

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return "Stub Game" }
func (g *stubGame) Reset(core.RuntimeConfig) error       { return nil }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func(cfg config.Config) Game { return &stubGame{cfg: cfg} })

	if !Exists("zz-stub") {
		t.Fatal("Exists() should report a registered game")
	}

	cfg := config.Default()
	cfg.Board.Width = 33
	g, err := Create("zz-stub", cfg)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if got := g.(*stubGame).cfg.Board.Width; got != 33 {
		t.Errorf("factory received width %d, expected 33", got)
	}

	found := false
	games := List()
	for i, info := range games {
		if i > 0 && games[i-1].ID > info.ID {
			t.Errorf("List() not sorted: %q before %q", games[i-1].ID, info.ID)
		}
		if info.ID == "zz-stub" {
			found = true
			if info.Title != "Stub Game" {
				t.Errorf("Title = %q, expected %q", info.Title, "Stub Game")
			}
		}
	}
	if !found {
		t.Error("List() should include the registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist", config.Default()); err == nil {
		t.Error("Create() of an unknown ID should fail")
	}
	if Exists("does-not-exist") {
		t.Error("Exists() should be false for an unknown ID")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func(cfg config.Config) Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("zz-dup", func(cfg config.Config) Game { return &stubGame{} })
}
