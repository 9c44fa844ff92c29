package centipede

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/centipede-arena/internal/config"
	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/registry"
)

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(config.Default(), ShooterPredictive, CentipedeEvasive)
	if err := g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

func TestMatchupsRegistered(t *testing.T) {
	for _, id := range []string{
		"predictive-vs-evasive",
		"predictive-vs-passive",
		"reactive-vs-evasive",
		"reactive-vs-passive",
	} {
		if !registry.Exists(id) {
			t.Errorf("matchup %q not registered", id)
		}
	}

	if DefaultMatchup != "predictive-vs-evasive" {
		t.Errorf("DefaultMatchup = %q", DefaultMatchup)
	}

	g, err := registry.Create(DefaultMatchup, config.Default())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Predictive Shooter vs Evasive Centipede" {
		t.Errorf("Title = %q", g.Title())
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed must agree on every tick.
	g1 := newGame(t, 12345)
	g2 := newGame(t, 12345)

	for i := 0; i < 500; i++ {
		s1, s2 := g1.Snapshot(), g2.Snapshot()
		if !s1.Equal(s2) {
			t.Fatalf("tick %d: snapshots diverge\n%+v\n%+v", i, s1, s2)
		}
		if s1.GameOver {
			break
		}
		g1.Tick()
		g2.Tick()
	}
}

func TestInvariantsHold(t *testing.T) {
	for _, matchup := range []struct {
		s ShooterStrategy
		c CentipedeStrategy
	}{
		{ShooterPredictive, CentipedeEvasive},
		{ShooterPredictive, CentipedePassive},
		{ShooterReactive, CentipedeEvasive},
		{ShooterReactive, CentipedePassive},
	} {
		for seed := int64(1); seed <= 10; seed++ {
			g := New(config.Default(), matchup.s, matchup.c)
			if err := g.Reset(core.RuntimeConfig{Seed: seed}); err != nil {
				t.Fatalf("Reset: %v", err)
			}
			checkInvariants(t, g, 2000)
		}
	}
}

func TestInvariantsHoldWithCustomTuning(t *testing.T) {
	cfg := config.Default()
	cfg.Scoring.PointsPerSegment = 25
	cfg.Agents.EvadeCooldown = 0
	cfg.Agents.EvadeChance = 0.5

	for seed := int64(1); seed <= 10; seed++ {
		g := New(cfg, ShooterPredictive, CentipedeEvasive)
		if err := g.Reset(core.RuntimeConfig{Seed: seed}); err != nil {
			t.Fatalf("Reset: %v", err)
		}
		checkInvariants(t, g, 2000)
	}
}

func checkInvariants(t *testing.T, g *Game, ticks int) {
	t.Helper()

	w, h := g.Config().Board.Width, g.Config().Board.Height
	points := g.Config().Scoring.PointsPerSegment
	lastScore := 0
	wasOver := false

	for i := 0; i < ticks; i++ {
		g.Tick()
		s, err := g.World()
		if err != nil {
			t.Fatalf("World: %v", err)
		}

		if !s.Player.In(w, h) {
			t.Fatalf("%s seed %d tick %d: player %v out of bounds", g.ID(), g.Seed(), i, s.Player)
		}
		seen := make(map[Position]bool, len(s.Segments))
		for _, seg := range s.Segments {
			if !seg.In(w, h) {
				t.Fatalf("%s seed %d tick %d: segment %v out of bounds", g.ID(), g.Seed(), i, seg)
			}
			if seen[seg] {
				t.Fatalf("%s seed %d tick %d: duplicate segment %v in %v", g.ID(), g.Seed(), i, seg, s.Segments)
			}
			seen[seg] = true
		}
		for _, b := range s.Bullets {
			if !b.In(w, h) {
				t.Fatalf("%s seed %d tick %d: bullet %v out of bounds", g.ID(), g.Seed(), i, b)
			}
		}
		for _, m := range s.Mushrooms {
			if !m.In(w, h) {
				t.Fatalf("%s seed %d tick %d: mushroom %v out of bounds", g.ID(), g.Seed(), i, m)
			}
		}

		if s.Score < lastScore || (s.Score-lastScore)%points != 0 {
			t.Fatalf("%s seed %d tick %d: score went from %d to %d", g.ID(), g.Seed(), i, lastScore, s.Score)
		}
		lastScore = s.Score

		if wasOver && !s.GameOver {
			t.Fatalf("%s seed %d tick %d: GameOver was cleared", g.ID(), g.Seed(), i)
		}
		wasOver = s.GameOver
		if s.GameOver {
			return
		}
	}
}

func TestStepPauseAndSingleStep(t *testing.T) {
	g := newGame(t, 1)
	in := core.NewInputFrame()

	g.Step(in)
	if g.State().Tick != 1 {
		t.Fatalf("Tick = %d, want 1", g.State().Tick)
	}

	in.Set(core.ActionPause)
	g.Step(in)
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	if g.State().Tick != 1 {
		t.Errorf("Tick = %d after pausing, want 1", g.State().Tick)
	}

	in.Clear()
	g.Step(in)
	if g.State().Tick != 1 {
		t.Errorf("paused game advanced to tick %d", g.State().Tick)
	}

	in.Set(core.ActionStep)
	g.Step(in)
	if g.State().Tick != 2 {
		t.Errorf("Tick = %d after single step, want 2", g.State().Tick)
	}

	in.Clear()
	in.Set(core.ActionPause)
	g.Step(in)
	if g.State().Paused || g.State().Tick != 3 {
		t.Errorf("after resume: paused=%v tick=%d", g.State().Paused, g.State().Tick)
	}
}

func TestTickStopsAfterGameOver(t *testing.T) {
	g := newGame(t, 3)
	s, _ := g.World()
	s.Segments = nil
	g.Tick()

	if !g.State().GameOver {
		t.Fatal("expected game over with no segments")
	}
	if g.Winner() != SideShooter {
		t.Errorf("Winner = %v, want shooter", g.Winner())
	}

	tick := g.State().Tick
	g.Tick()
	g.Step(core.NewInputFrame())
	if g.State().Tick != tick {
		t.Errorf("Tick advanced after game over: %d -> %d", tick, g.State().Tick)
	}
}

func TestResetRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Centipede.Length = 50

	g := New(cfg, ShooterReactive, CentipedePassive)
	err := g.Reset(core.RuntimeConfig{Seed: 1})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("Reset error = %v, want ErrInvalidConfig", err)
	}
	if _, err := g.World(); err == nil {
		t.Error("World should fail before a successful Reset")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 5)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Score: 0") {
		t.Errorf("render missing score header:\n%s", out)
	}
	if !strings.Contains(out, "P") || !strings.Contains(out, "OOOOOOOO") {
		t.Errorf("render missing entities:\n%s", out)
	}

	small := core.NewScreen(40, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Errorf("expected too-small message, got:\n%s", small.String())
	}
}

func TestParseMatchupID(t *testing.T) {
	s, c, err := ParseMatchupID("reactive-vs-passive")
	if err != nil {
		t.Fatalf("ParseMatchupID: %v", err)
	}
	if s != ShooterReactive || c != CentipedePassive {
		t.Errorf("got %v, %v", s, c)
	}

	for _, bad := range []string{"", "reactive", "reactive-vs-", "sniper-vs-passive", "reactive-vs-sleepy"} {
		if _, _, err := ParseMatchupID(bad); err == nil {
			t.Errorf("ParseMatchupID(%q) succeeded, want error", bad)
		}
	}
}

func TestStateReportsWinner(t *testing.T) {
	g := newGame(t, 11)
	if w := g.State().Winner; w != "" {
		t.Errorf("Winner = %q before game over", w)
	}

	s, _ := g.World()
	s.Segments = []Position{{X: 3, Y: g.Config().Board.Height - 1}}
	g.Tick()

	st := g.State()
	if !st.GameOver || st.Winner != "centipede" {
		t.Errorf("state = %+v, want centipede win", st)
	}
}

func TestSnapshotBoardMatchesLiveBoard(t *testing.T) {
	g := newGame(t, 21)
	for range 25 {
		g.Tick()
	}

	cfg := g.Config()
	got := g.Snapshot().Board(cfg.Board.Width, cfg.Board.Height).String()
	if want := g.Board().String(); got != want {
		t.Errorf("snapshot board differs:\n%s\nwant:\n%s", got, want)
	}
}
