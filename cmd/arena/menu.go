package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
	"github.com/vovakirdan/centipede-arena/internal/platform/tui"
	"github.com/vovakirdan/centipede-arena/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick matchups from an interactive menu",
	Long: `Start the arena in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to watch a matchup and Tab for
match history. Leaving the viewer with Esc returns to the menu.

Examples:
  arena menu
  arena menu --difficulty easy
  arena menu --db ./arena.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()
	cfg := loadConfig()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: cfg.Pacing.Delay(),
		Seed:         flagSeed,
	}

	last := centipede.DefaultMatchup
	for {
		menuResult, err := tui.RunMenu(store, rc, last)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rc = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		last = menuResult.MatchupID
		game, err := registry.Create(last, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating matchup: %v\n", err)
			continue
		}

		goBack, runErr := tui.Run(game, store, rc)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
			return
		}
		if !goBack {
			return
		}
	}
}
