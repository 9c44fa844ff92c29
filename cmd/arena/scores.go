package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/centipede-arena/internal/platform/tui"
	"github.com/vovakirdan/centipede-arena/internal/registry"
	"github.com/vovakirdan/centipede-arena/internal/storage"
)

var (
	flagScoresClear       bool
	flagScoresInteractive bool
	flagScoresLimit       int
	flagScoresRecent      int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [matchup]",
	Short: "Show match history",
	Long: `Without a matchup, show totals for every matchup that has been played.
With a matchup, show its best matches. --recent lists the latest
matches across every matchup.

Examples:
  arena scores
  arena scores predictive-vs-evasive
  arena scores predictive-vs-evasive --clear
  arena scores --recent 20
  arena scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history of the given matchup")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse history in the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of matches to show")
	scoresCmd.Flags().IntVar(&flagScoresRecent, "recent", 0, "Show the N most recent matches of any matchup")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening match database: %v", err)
	}
	defer store.Close()

	if flagScoresInteractive {
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if flagScoresRecent > 0 {
		if err := printRecent(os.Stdout, store, flagScoresRecent); err != nil {
			fail("%v", err)
		}
		return
	}

	if len(args) == 0 {
		if flagScoresClear {
			fail("--clear needs a matchup")
		}
		printAllStats(store)
		return
	}

	id := matchupArg(args)
	if flagScoresClear {
		if err := store.ClearMatches(id); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared history for %s.\n", id)
		return
	}
	printMatchup(store, id)
}

func printAllStats(store *storage.Store) {
	stats, err := store.AllStats()
	if err != nil {
		fail("retrieving stats: %v", err)
	}

	if len(stats) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'arena run' or 'arena simulate --save' to fill the history.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-24s  %7s  %7s  %9s  %4s  %9s  %s\n",
		"Matchup", "Matches", "Shooter", "Centipede", "Best", "Avg score", "Last played")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-24s  %7d  %7d  %9d  %4d  %9.1f  %s\n",
			id, s.Matches, s.ShooterWins, s.CentipedeWins, s.HighScore, s.AvgScore,
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printMatchup(store *storage.Store, id string) {
	game, err := registry.Create(id, loadConfig())
	if err != nil {
		fail("creating matchup: %v", err)
	}

	matches, err := store.TopMatches(id, flagScoresLimit)
	if err != nil {
		fail("retrieving matches: %v", err)
	}

	fmt.Printf("Best matches - %s\n", game.Title())
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'arena run %s' to record the first one.\n", id)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-9s  %-6s  %-20s  %s\n", "Rank", "Score", "Winner", "Ticks", "Seed", "Date")
	fmt.Printf("  %-4s  %-6s  %-9s  %-6s  %-20s  %s\n", "----", "-----", "------", "-----", "----", "----")
	for i, m := range matches {
		fmt.Printf("  %-4d  %-6d  %-9s  %-6d  %-20d  %s\n",
			i+1, m.Score, m.Winner, m.Ticks, m.Seed, m.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(id); err == nil {
		fmt.Println()
		fmt.Printf("Played: %d  Shooter win rate: %.1f%%  Best: %d\n",
			stats.Matches, stats.ShooterWinRate()*100, stats.HighScore)
	}
}

// printRecent lists the newest matches, newest first.
func printRecent(w io.Writer, store *storage.Store, limit int) error {
	matches, err := store.RecentMatches(limit)
	if err != nil {
		return fmt.Errorf("retrieving recent matches: %w", err)
	}

	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-24s  %-6s  %-9s  %-6s  %-20s  %s\n", "Matchup", "Score", "Winner", "Ticks", "Seed", "Date")
	for _, m := range matches {
		fmt.Fprintf(w, "  %-24s  %-6d  %-9s  %-6d  %-20d  %s\n",
			m.MatchupID, m.Score, m.Winner, m.Ticks, m.Seed, m.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
