package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackbot/internal/arena"
	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/storage"
)

var (
	flagSimDifficulty string
	flagSimGames      int
	flagSimMaxPieces  int
	flagSimJunkEvery  int
	flagSimJunkLines  int
	flagSimParallel   int
	flagSimFast       bool
	flagSimNoSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play a batch of headless games",
	Long: `Play several games without a UI and print one line per game plus a
summary. Game i uses seed --seed+i, so a batch is reproducible.

With --fast the move and think delays are dropped and games run as fast as
the CPU allows. Results are stored in the run history unless --no-save is set.

Examples:
  stackbot sim --fast
  stackbot sim --difficulty easy --games 50 --parallel 8 --fast
  stackbot sim --difficulty hard --junk-every 8 --max-pieces 1000 --fast`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVarP(&flagSimDifficulty, "difficulty", "d", "medium", "Difficulty tier (easy, medium, hard)")
	simCmd.Flags().IntVarP(&flagSimGames, "games", "n", 10, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMaxPieces, "max-pieces", -1, "Stop each game after this many pieces (-1 = config, 0 = unlimited)")
	simCmd.Flags().IntVar(&flagSimJunkEvery, "junk-every", -1, "Add junk after every N pieces (-1 = config, 0 = never)")
	simCmd.Flags().IntVar(&flagSimJunkLines, "junk-lines", -1, "Rows of junk per event (-1 = config)")
	simCmd.Flags().IntVarP(&flagSimParallel, "parallel", "p", 0, "Concurrent games (0 = number of CPUs)")
	simCmd.Flags().BoolVar(&flagSimFast, "fast", false, "Skip move and think delays")
	simCmd.Flags().BoolVar(&flagSimNoSave, "no-save", false, "Do not record results in the run history")
}

func runSim(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("sim")
	if err != nil {
		return err
	}

	difficulty, err := config.ParseDifficulty(flagSimDifficulty)
	if err != nil {
		return err
	}
	if flagSimGames <= 0 {
		return fmt.Errorf("--games must be positive, got %d", flagSimGames)
	}

	cfg, err := loadBot()
	if err != nil {
		return err
	}
	if flagSimFast {
		config.ApplyFastPreset(&cfg)
	}
	profile, err := cfg.Profile(difficulty)
	if err != nil {
		return err
	}

	base := arena.Config{
		Profile:   profile,
		Seed:      seed(),
		MaxPieces: override(flagSimMaxPieces, cfg.Arena.MaxPieces),
		JunkEvery: override(flagSimJunkEvery, cfg.Arena.JunkEvery),
		JunkLines: override(flagSimJunkLines, cfg.Arena.JunkLines),
	}

	var store *storage.Store
	if !flagSimNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting batch",
		"difficulty", difficulty,
		"games", flagSimGames,
		"seed", base.Seed,
		"max_pieces", base.MaxPieces,
		"junk_every", base.JunkEvery,
	)

	out := cmd.OutOrStdout()
	start := time.Now()
	results, err := arena.RunBatch(ctx, arena.Batch{
		Base:     base,
		Games:    flagSimGames,
		Parallel: flagSimParallel,
		OnResult: func(r arena.Result) {
			fmt.Fprintf(out, "seed %-20d score %-8d lines %-5d pieces %-5d %-10s %s\n",
				r.Seed, r.Score, r.Lines, r.Pieces, r.Reason, r.Duration.Round(time.Millisecond))
			if store == nil {
				return
			}
			if _, err := store.SaveRun(storage.Run{
				Difficulty: string(r.Difficulty),
				Seed:       r.Seed,
				Pieces:     r.Pieces,
				Lines:      r.Lines,
				Score:      r.Score,
				JunkLines:  r.JunkLines,
				Duration:   r.Duration,
			}); err != nil {
				logger.Warn("could not save run", "seed", r.Seed, "error", err)
			}
		},
	}, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	s := arena.Summarize(finished(results))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %d games in %s\n", difficulty, s.Games, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "  best score  %d\n", s.BestScore)
	fmt.Fprintf(out, "  avg score   %.1f\n", s.AvgScore)
	fmt.Fprintf(out, "  avg lines   %.1f\n", s.AvgLines)
	fmt.Fprintf(out, "  avg pieces  %.1f\n", s.AvgPieces)
	fmt.Fprintf(out, "  top-outs    %d\n", s.TopOuts)
	if err != nil {
		logger.Warn("batch interrupted")
	}
	return nil
}

// override returns flag unless it is negative.
func override(flag, fromConfig int) int {
	if flag < 0 {
		return fromConfig
	}
	return flag
}

// finished drops matches that never ended, e.g. after an interrupt.
func finished(results []arena.Result) []arena.Result {
	out := results[:0:0]
	for _, r := range results {
		if r.Reason != arena.EndNone && r.Reason != arena.EndCancelled {
			out = append(out, r)
		}
	}
	return out
}
