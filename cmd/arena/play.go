package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/platform/tui"
	"github.com/vovakirdan/centipede-arena/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [matchup]",
	Short: "Watch a match in the interactive viewer",
	Long: `Watch a match in a full-screen viewer.

Controls:
  P/Space    - Pause
  N          - Single step while paused
  +/-        - Faster / slower
  R          - New match with a fresh seed
  Ctrl+S     - Save a screenshot to ~/.arcade/screenshots
  Esc/B      - Back
  Q/Ctrl+C   - Quit

Examples:
  arena play
  arena play reactive-vs-evasive --difficulty hard
  arena play --config ./my-arena.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()
	id := matchupArg(args)

	game, err := registry.Create(id, cfg)
	if err != nil {
		fail("creating matchup: %v", err)
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: cfg.Pacing.Delay(),
		Seed:         flagSeed,
	}

	store := openStore(logger)
	_, runErr := tui.Run(game, store, rc)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running viewer: %v", runErr)
	}
}
