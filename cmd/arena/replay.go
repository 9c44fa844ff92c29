package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/centipede-arena/internal/driver"
	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
	"github.com/vovakirdan/centipede-arena/internal/replay"
)

var flagReplayDelay float64

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect and verify recorded matches",
	Long: `Work with Parquet recordings written by 'arena run --record'.

Examples:
  arena replay verify match.parquet
  arena replay show match.parquet --delay 0.05`,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Re-simulate a recording and report the first diverging tick",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayVerify,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Play back a recording in the terminal",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayShow,
}

func init() {
	replayShowCmd.Flags().Float64Var(&flagReplayDelay, "delay", -1, "Seconds between frames (default from the recording)")

	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayShowCmd)
}

func runReplayVerify(_ *cobra.Command, args []string) {
	rec, err := replay.Load(args[0])
	if err != nil {
		fail("%v", err)
	}

	err = replay.Verify(rec)
	var div *replay.Divergence
	switch {
	case errors.As(err, &div):
		fmt.Printf("DIVERGED at row %d\n", div.Index)
		fmt.Printf("  recorded:  tick %d score %d segments %v\n", div.Want.Tick, div.Want.Score, div.Want.Segments)
		fmt.Printf("  simulated: tick %d score %d segments %v\n", div.Got.Tick, div.Got.Score, div.Got.Segments)
		os.Exit(1)
	case err != nil:
		fail("%v", err)
	}

	last := rec.Rows[len(rec.Rows)-1]
	fmt.Printf("OK: %s seed %d reproduced %d ticks (final score %d)\n",
		rec.MatchupID, rec.Seed, last.Tick, last.Score)
}

func runReplayShow(_ *cobra.Command, args []string) {
	rec, err := replay.Load(args[0])
	if err != nil {
		fail("%v", err)
	}

	delay := rec.Config.Pacing.Delay()
	if flagReplayDelay >= 0 {
		rec.Config.Pacing.DelaySeconds = flagReplayDelay
		delay = rec.Config.Pacing.Delay()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tty := isTerminal()
	renderer := driver.TextRenderer{W: os.Stdout, Clear: tty, Color: tty}
	sleeper := driver.TimerSleeper{}
	w, h := rec.Config.Board.Width, rec.Config.Board.Height

	for i, row := range rec.Rows {
		snap := row.Snapshot()
		renderer.Render(snap.Board(w, h), snap.Score)
		if i == len(rec.Rows)-1 {
			break
		}
		if err := sleeper.Sleep(ctx, delay); err != nil {
			return
		}
	}

	last := rec.Rows[len(rec.Rows)-1].Snapshot()
	res := driver.Result{Score: last.Score, Ticks: last.Tick, Completed: last.GameOver}
	if last.GameOver {
		res.Winner = centipede.SideCentipede
		if len(last.Segments) == 0 {
			res.Winner = centipede.SideShooter
		}
	}
	driver.WriteSummary(os.Stdout, res)
}
