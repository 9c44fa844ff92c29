package driver

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/centipede-arena/internal/config"
	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
)

type countingRenderer struct {
	frames int
	scores []int
}

func (r *countingRenderer) Render(_ centipede.Board, score int) {
	r.frames++
	r.scores = append(r.scores, score)
}

type countingSleeper struct {
	calls int
	last  time.Duration
}

func (s *countingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.calls++
	s.last = d
	return ctx.Err()
}

type countingRecorder struct {
	ticks []uint64
}

func (r *countingRecorder) Record(s centipede.Snapshot) {
	r.ticks = append(r.ticks, s.Tick)
}

func newMatch(t *testing.T, seed int64) *centipede.Game {
	t.Helper()
	g := centipede.New(config.Default(), centipede.ShooterPredictive, centipede.CentipedeEvasive)
	if err := g.Reset(core.RuntimeConfig{Seed: seed}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

func TestRunStopsAtTickLimit(t *testing.T) {
	r := &countingRenderer{}
	s := &countingSleeper{}
	rec := &countingRecorder{}

	d := New(newMatch(t, 1), Options{
		Renderer: r,
		Sleeper:  s,
		Recorder: rec,
		Delay:    200 * time.Millisecond,
		MaxTicks: 10,
	})

	res, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Completed || res.Winner != "" {
		t.Fatalf("result = %+v, want an incomplete match", res)
	}
	if res.Ticks != 10 {
		t.Errorf("Ticks = %d, want 10", res.Ticks)
	}
	if r.frames != 11 {
		t.Errorf("frames = %d, want 11 (initial + one per tick)", r.frames)
	}
	if s.calls != 10 || s.last != 200*time.Millisecond {
		t.Errorf("sleeper calls=%d last=%v", s.calls, s.last)
	}
	if len(rec.ticks) != 11 || rec.ticks[0] != 0 || rec.ticks[10] != 10 {
		t.Errorf("recorded ticks = %v", rec.ticks)
	}
	for i := 1; i < len(r.scores); i++ {
		if r.scores[i] < r.scores[i-1] {
			t.Fatalf("score decreased between frames: %v", r.scores)
		}
	}
}

func TestRunToCompletion(t *testing.T) {
	g := newMatch(t, 2)
	world, err := g.World()
	if err != nil {
		t.Fatalf("World: %v", err)
	}
	// A lone segment on the player row ends the match on the next tick.
	world.Segments = []centipede.Position{{X: 5, Y: world.Height() - 1}}

	res, err := New(g, Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Completed || res.Ticks != 1 {
		t.Fatalf("result = %+v, want completion after one tick", res)
	}
	if res.Winner != centipede.SideCentipede {
		t.Errorf("Winner = %q, want centipede", res.Winner)
	}
	if res.MatchupID != "predictive-vs-evasive" || res.Seed != 2 {
		t.Errorf("result header = %q/%d", res.MatchupID, res.Seed)
	}
}

func TestRunShooterWins(t *testing.T) {
	g := newMatch(t, 3)
	world, _ := g.World()
	world.Segments = []centipede.Position{{X: 5, Y: 5}}
	world.Bullets = []centipede.Position{{X: 5, Y: 6}}
	world.Player = centipede.Position{X: 15, Y: world.Height() - 1}

	res, err := New(g, Options{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Completed || res.Winner != centipede.SideShooter {
		t.Fatalf("result = %+v, want shooter win", res)
	}
	if res.Score != 10 {
		t.Errorf("Score = %d, want 10", res.Score)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &countingRenderer{}
	res, err := New(newMatch(t, 4), Options{Renderer: r}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if res.Completed || res.Ticks != 0 {
		t.Errorf("result = %+v, want no ticks", res)
	}
	if r.frames != 1 {
		t.Errorf("frames = %d, want only the initial frame", r.frames)
	}
}

func TestTimerSleeperCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := TimerSleeper{}.Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep did not return promptly after cancellation")
	}

	if err := (TimerSleeper{}).Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep: %v", err)
	}
}

func TestTextRenderer(t *testing.T) {
	b := centipede.NewBoard(4, 2)
	b.Set(0, 0, centipede.EntitySegment)
	b.Set(3, 0, centipede.EntityMushroom)
	b.Set(1, 1, centipede.EntityPlayer)

	var buf bytes.Buffer
	TextRenderer{W: &buf}.Render(b, 10)

	want := "Score: 10\n" +
		"+----+\n" +
		"|O  M|\n" +
		"| P  |\n" +
		"+----+\n"
	if buf.String() != want {
		t.Errorf("Render output:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	TextRenderer{W: &buf, Clear: true}.Render(b, 0)
	if !strings.HasPrefix(buf.String(), clearScreen) {
		t.Error("Clear renderer did not emit the clear sequence")
	}
}

func TestWriteSummary(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{Result{Score: 80, Winner: centipede.SideShooter, Completed: true}, "Game Over! Final Score: 80\nShooter wins!\n"},
		{Result{Score: 20, Winner: centipede.SideCentipede, Completed: true}, "Game Over! Final Score: 20\nCentipede wins!\n"},
		{Result{Score: 5, Ticks: 9}, "Match stopped after 9 ticks. Score: 5\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		WriteSummary(&buf, tt.res)
		if buf.String() != tt.want {
			t.Errorf("WriteSummary(%+v) = %q, want %q", tt.res, buf.String(), tt.want)
		}
	}
}
