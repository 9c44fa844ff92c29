// arena pits a shooter agent against a centipede agent on a small grid and
// lets you watch, batch-simulate, record and verify their matches.
//
// Usage:
//
//	arena list                      - List available matchups
//	arena run [matchup]             - Run a match in the terminal
//	arena play [matchup]            - Watch a match in the interactive viewer
//	arena menu                      - Pick matchups interactively
//	arena simulate [matchup] -n 100 - Run many matches headlessly
//	arena scores [matchup]          - Show match history
//	arena replay verify <file>      - Re-simulate a recorded match
//
// Global flags:
//
//	--seed <value>        - RNG seed (0 = random based on time)
//	--db <path>           - Database path (default: ~/.arcade/arena.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import matchups to register them
	_ "github.com/vovakirdan/centipede-arena/internal/games/centipede"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Centipede Arena - watch agents fight it out in your terminal",
	Long: `Centipede Arena runs matches between a shooter agent and a centipede
agent. The shooter tracks the centipede's head and fires; the centipede
marches down the board and dodges incoming fire.

Available commands:
  list      - Show all matchups
  run       - Run a match and print each frame
  play      - Watch a match in the interactive viewer
  menu      - Interactive matchup picker
  simulate  - Run many matches and report win rates
  scores    - View match history
  replay    - Inspect and verify recorded matches

Examples:
  arena list
  arena run predictive-vs-evasive --seed 42
  arena play reactive-vs-passive
  arena simulate --all -n 200
  arena run --record match.parquet && arena replay verify match.parquet`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arena.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}
