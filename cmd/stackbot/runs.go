package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/platform/tui"
	"github.com/vovakirdan/stackbot/internal/storage"
)

var (
	flagRunsLimit       int
	flagRunsInteractive bool
	flagRunsClear       bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [difficulty]",
	Short: "Show recorded run history",
	Long: `List the best recorded runs, optionally for one difficulty, followed
by per-difficulty averages.

Examples:
  stackbot runs
  stackbot runs hard --limit 20
  stackbot runs -i
  stackbot runs easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "l", 10, "Number of runs to list")
	runsCmd.Flags().BoolVarP(&flagRunsInteractive, "interactive", "i", false, "Browse runs in a table")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the selected runs")
}

func runRuns(cmd *cobra.Command, args []string) error {
	difficulty := ""
	if len(args) == 1 {
		d, err := config.ParseDifficulty(args[0])
		if err != nil {
			return err
		}
		difficulty = string(d)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagRunsClear {
		n, err := store.ClearRuns(difficulty)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d runs\n", n)
		return nil
	}

	if flagRunsInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunRuns(store, difficulty, width, height)
	}

	runs, err := store.TopRuns(difficulty, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out, "Try 'stackbot sim --fast' to record some.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTIER\tSCORE\tLINES\tPIECES\tSEED\tDATE")
	for i, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			i+1, r.Difficulty, r.Score, r.Lines, r.Pieces, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sums, err := store.Summaries()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tGAMES\tBEST\tAVG SCORE\tAVG LINES\tAVG PIECES")
	for _, s := range sums {
		if difficulty != "" && s.Difficulty != difficulty {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.1f\t%.1f\n",
			s.Difficulty, s.Games, s.BestScore, s.AvgScore, s.AvgLines, s.AvgPieces)
	}
	return w.Flush()
}
