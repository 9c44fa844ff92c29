package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/centipede-arena/internal/driver"
	"github.com/vovakirdan/centipede-arena/internal/replay"
)

var (
	flagRunDelay    float64
	flagRunMaxTicks int
	flagRunNoClear  bool
	flagRunNoSave   bool
	flagRunRecord   string
)

var runCmd = &cobra.Command{
	Use:   "run [matchup]",
	Short: "Run a match and print every frame",
	Long: `Run a single match in the terminal. Each tick prints the score and the
bordered board; the match ends when the centipede is destroyed or reaches
the bottom row.

Board legend:
  P  shooter     O  centipede segment
  M  mushroom    ·  bullet

Examples:
  arena run
  arena run reactive-vs-passive --seed 7
  arena run --delay 0 --no-clear > match.txt
  arena run --record match.parquet`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().Float64Var(&flagRunDelay, "delay", -1, "Seconds between ticks (default from config)")
	runCmd.Flags().IntVar(&flagRunMaxTicks, "max-ticks", -1, "Stop after this many ticks (default from config, 0 = no limit)")
	runCmd.Flags().BoolVar(&flagRunNoClear, "no-clear", false, "Do not clear the terminal between frames")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not record the result in the match database")
	runCmd.Flags().StringVar(&flagRunRecord, "record", "", "Write a tick-by-tick Parquet recording to this path")
}

func runRun(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()
	id := matchupArg(args)

	if flagRunDelay >= 0 {
		cfg.Pacing.DelaySeconds = flagRunDelay
	}
	if flagRunMaxTicks >= 0 {
		cfg.Pacing.MaxTicks = flagRunMaxTicks
	}
	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}

	match, err := newMatch(id, cfg, seed())
	if err != nil {
		fail("%v", err)
	}

	tty := isTerminal()
	opts := driver.Options{
		Renderer: driver.TextRenderer{W: os.Stdout, Clear: tty && !flagRunNoClear, Color: tty},
		Sleeper:  driver.TimerSleeper{},
		Logger:   logger,
		Delay:    cfg.Pacing.Delay(),
		MaxTicks: cfg.Pacing.MaxTicks,
	}

	var recorder *replay.Recorder
	if flagRunRecord != "" {
		recorder = replay.NewRecorder(id, match.Seed(), cfg)
		opts.Recorder = recorder
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, runErr := driver.New(match, opts).Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fail("%v", runErr)
	}

	driver.WriteSummary(os.Stdout, res)

	if !flagRunNoSave {
		store := openStore(logger)
		if store != nil {
			saveResult(store, logger, res)
			store.Close()
		}
	}

	if recorder != nil {
		if err := recorder.WriteFile(flagRunRecord); err != nil {
			fail("%v", err)
		}
		logger.Info("recording written", "path", flagRunRecord, "ticks", recorder.Len())
	}
}
