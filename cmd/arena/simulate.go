package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/centipede-arena/internal/config"
	"github.com/vovakirdan/centipede-arena/internal/driver"
	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
	"github.com/vovakirdan/centipede-arena/internal/registry"
)

var (
	flagSimCount    int
	flagSimAll      bool
	flagSimSave     bool
	flagSimMaxTicks int
	flagSimWorkers  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [matchup]",
	Short: "Run many matches headlessly and report win rates",
	Long: `Run N matches per matchup without rendering or pacing. Seeds run
consecutively from --seed, so a simulation is reproducible.

Examples:
  arena simulate -n 500
  arena simulate reactive-vs-passive -n 100 --seed 1
  arena simulate --all -n 200 --save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVarP(&flagSimCount, "count", "n", 100, "Matches per matchup")
	simulateCmd.Flags().BoolVar(&flagSimAll, "all", false, "Simulate every registered matchup")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record every finished match in the database")
	simulateCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 5000, "Abandon a match after this many ticks (0 = no limit)")
	simulateCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Matches run in parallel")
}

// simSummary aggregates the results of one matchup.
type simSummary struct {
	matchupID  string
	matches    int
	shooter    int
	centipede  int
	unfinished int
	totalScore int
	totalTicks uint64
}

func (s *simSummary) add(res driver.Result) {
	s.matches++
	s.totalScore += res.Score
	s.totalTicks += res.Ticks
	switch {
	case !res.Completed:
		s.unfinished++
	case res.Winner == centipede.SideShooter:
		s.shooter++
	default:
		s.centipede++
	}
}

func runSimulate(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg := loadConfig()

	if flagSimCount <= 0 {
		fail("--count must be positive")
	}

	ids := []string{matchupArg(args)}
	if flagSimAll {
		ids = ids[:0]
		for _, g := range registry.List() {
			ids = append(ids, g.ID)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := seed()
	summaries := make([]simSummary, 0, len(ids))
	var all []driver.Result
	for _, id := range ids {
		results, err := simulate(ctx, id, cfg, base)
		if err != nil {
			fail("%v", err)
		}
		sum := simSummary{matchupID: id}
		for _, res := range results {
			sum.add(res)
		}
		summaries = append(summaries, sum)
		all = append(all, results...)
		logger.Info("matchup simulated", "matchup", id, "matches", sum.matches, "shooter_wins", sum.shooter)
	}

	if flagSimSave {
		if store := openStore(logger); store != nil {
			for _, res := range all {
				saveResult(store, logger, res)
			}
			store.Close()
		}
	}

	printSummaries(summaries, base)
}

// simulate runs flagSimCount matches of one matchup on a bounded pool of
// goroutines. Results are ordered by seed.
func simulate(ctx context.Context, id string, cfg config.Config, base int64) ([]driver.Result, error) {
	results := make([]driver.Result, flagSimCount)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(flagSimWorkers, 1))
	for i := range results {
		g.Go(func() error {
			match, err := newMatch(id, cfg, base+int64(i))
			if err != nil {
				return err
			}
			res, err := driver.New(match, driver.Options{MaxTicks: flagSimMaxTicks}).Run(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulating %s: %w", id, err)
	}
	return results, nil
}

func printSummaries(summaries []simSummary, base int64) {
	fmt.Printf("Simulated %d matches per matchup from seed %d\n\n", flagSimCount, base)
	fmt.Printf("  %-24s  %7s  %7s  %9s  %10s  %9s  %9s\n",
		"Matchup", "Matches", "Shooter", "Centipede", "Unfinished", "Avg score", "Avg ticks")
	for _, s := range summaries {
		fmt.Printf("  %-24s  %7d  %6.1f%%  %8.1f%%  %10d  %9.1f  %9.1f\n",
			s.matchupID, s.matches,
			percent(s.shooter, s.matches), percent(s.centipede, s.matches),
			s.unfinished,
			float64(s.totalScore)/float64(s.matches),
			float64(s.totalTicks)/float64(s.matches))
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
