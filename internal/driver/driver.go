// Package driver runs a centipede match headlessly: it ticks the game,
// hands each frame to a Renderer and paces the loop with a Sleeper.
package driver

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
)

// Match is the part of a centipede game the driver needs.
// *centipede.Game implements it.
type Match interface {
	ID() string
	Seed() int64
	Tick()
	State() core.GameState
	Board() centipede.Board
	Winner() centipede.Side
	Snapshot() centipede.Snapshot
}

// Recorder receives a snapshot of every tick, starting with tick 0.
type Recorder interface {
	Record(s centipede.Snapshot)
}

// Options configures a Driver. Zero values pick no-op collaborators.
type Options struct {
	Renderer Renderer
	Sleeper  Sleeper
	Recorder Recorder
	Logger   *log.Logger

	// Delay is the pause between ticks.
	Delay time.Duration
	// MaxTicks stops the match early when positive.
	MaxTicks int
}

// Result summarizes a finished or interrupted match.
type Result struct {
	MatchupID string
	Seed      int64
	Score     int
	Winner    centipede.Side // empty unless Completed
	Ticks     uint64
	Completed bool
}

// Driver owns the tick loop for one match.
type Driver struct {
	match Match
	opts  Options
}

// New creates a driver for m.
func New(m Match, opts Options) *Driver {
	if opts.Renderer == nil {
		opts.Renderer = NopRenderer{}
	}
	if opts.Sleeper == nil {
		opts.Sleeper = NoSleep{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Driver{match: m, opts: opts}
}

// Run renders the opening board, then repeatedly ticks, records, renders
// and sleeps until the match ends. Cancelling ctx or hitting MaxTicks stops
// the loop with Completed set to false; cancellation also returns ctx.Err().
func (d *Driver) Run(ctx context.Context) (Result, error) {
	m := d.match
	logger := d.opts.Logger.With("matchup", m.ID(), "seed", m.Seed())
	logger.Info("match started")

	d.record()
	d.opts.Renderer.Render(m.Board(), m.State().Score)

	for !m.State().GameOver {
		if err := ctx.Err(); err != nil {
			logger.Warn("match interrupted", "tick", m.State().Tick, "error", err)
			return d.result(), err
		}
		if d.opts.MaxTicks > 0 && m.State().Tick >= uint64(d.opts.MaxTicks) {
			logger.Warn("tick limit reached", "limit", d.opts.MaxTicks)
			return d.result(), nil
		}

		m.Tick()
		d.record()

		st := m.State()
		d.opts.Renderer.Render(m.Board(), st.Score)
		logger.Debug("tick", "tick", st.Tick, "score", st.Score)

		if st.GameOver {
			break
		}
		if err := d.opts.Sleeper.Sleep(ctx, d.opts.Delay); err != nil {
			logger.Warn("match interrupted", "tick", st.Tick, "error", err)
			return d.result(), err
		}
	}

	res := d.result()
	logger.Info("match finished", "score", res.Score, "winner", res.Winner, "ticks", res.Ticks)
	return res, nil
}

func (d *Driver) record() {
	if d.opts.Recorder != nil {
		d.opts.Recorder.Record(d.match.Snapshot())
	}
}

func (d *Driver) result() Result {
	st := d.match.State()
	res := Result{
		MatchupID: d.match.ID(),
		Seed:      d.match.Seed(),
		Score:     st.Score,
		Ticks:     st.Tick,
		Completed: st.GameOver,
	}
	if st.GameOver {
		res.Winner = d.match.Winner()
	}
	return res
}
