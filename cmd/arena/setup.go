package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/centipede-arena/internal/config"
	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/driver"
	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
	"github.com/vovakirdan/centipede-arena/internal/registry"
	"github.com/vovakirdan/centipede-arena/internal/storage"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the process logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena",
	})

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig applies --config and --difficulty.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	config.ApplyDifficulty(&cfg, preset)
	return cfg
}

// matchupArg returns the matchup named in args, or the default one.
func matchupArg(args []string) string {
	id := centipede.DefaultMatchup
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown matchup %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'arena list' to see available matchups.")
		os.Exit(1)
	}
	return id
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openStore opens the match history database. Failures are logged and the
// command continues without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// isTerminal reports whether stdout is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// newMatch creates and resets a registered matchup.
func newMatch(id string, cfg config.Config, seed int64) (*centipede.Game, error) {
	game, err := registry.Create(id, cfg)
	if err != nil {
		return nil, err
	}
	g, ok := game.(*centipede.Game)
	if !ok {
		return nil, fmt.Errorf("matchup %q is not a centipede match", id)
	}
	if err := g.Reset(core.RuntimeConfig{Seed: seed}); err != nil {
		return nil, err
	}
	return g, nil
}

// saveResult records a finished match. Failures are logged only.
func saveResult(store *storage.Store, logger *log.Logger, res driver.Result) {
	if store == nil || !res.Completed {
		return
	}
	_, err := store.SaveMatch(storage.Match{
		MatchupID: res.MatchupID,
		Score:     res.Score,
		Winner:    string(res.Winner),
		Ticks:     int(res.Ticks),
		Seed:      res.Seed,
		Completed: res.Completed,
	})
	if err != nil {
		logger.Warn("could not save match", "error", err)
	}
}
