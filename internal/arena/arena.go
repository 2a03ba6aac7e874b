package arena

import (
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Play runs one match to completion. Cancelling ctx ends it early; the
// partial result is returned together with the context error.
func Play(ctx context.Context, cfg Config, logger *log.Logger) (Result, error) {
	m := NewMatch(cfg, logger)
	m.Start()
	defer m.Stop()

	for !m.Done() {
		if err := ctx.Err(); err != nil {
			m.Cancel()
			return m.Result(), err
		}
		select {
		case <-ctx.Done():
			m.Cancel()
			return m.Result(), ctx.Err()
		case p := <-m.Moves():
			m.Handle(p)
		}
	}
	return m.Result(), nil
}

// Batch describes many matches of the same profile. Match i uses seed
// Base.Seed+i.
type Batch struct {
	Base     Config
	Games    int
	Parallel int // Concurrent matches; 0 uses GOMAXPROCS

	// OnResult, if set, is called once per finished match. Calls are
	// serialized but arrive in completion order.
	OnResult func(Result)
}

// RunBatch plays every match in b and returns the results indexed by game.
// The first error cancels the remaining matches.
func RunBatch(ctx context.Context, b Batch, logger *log.Logger) ([]Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	parallel := b.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, max(b.Games, 0))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i := range results {
		cfg := b.Base
		cfg.Seed = b.Base.Seed + int64(i)
		g.Go(func() error {
			r, err := Play(ctx, cfg, logger)
			results[i] = r
			if err != nil {
				return err
			}
			if b.OnResult != nil {
				mu.Lock()
				b.OnResult(r)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	logger.Debug("batch finished", "games", len(results), "parallel", parallel)
	return results, nil
}

// Stats aggregates a set of results.
type Stats struct {
	Games     int
	BestScore int
	AvgScore  float64
	AvgLines  float64
	AvgPieces float64
	TopOuts   int
}

// Summarize folds results into Stats.
func Summarize(results []Result) Stats {
	var s Stats
	if len(results) == 0 {
		return s
	}
	var score, lines, pieces int
	for _, r := range results {
		s.Games++
		s.BestScore = max(s.BestScore, r.Score)
		score += r.Score
		lines += r.Lines
		pieces += r.Pieces
		if r.Reason == EndToppedOut || r.Reason == EndNoMove {
			s.TopOuts++
		}
	}
	n := float64(s.Games)
	s.AvgScore = float64(score) / n
	s.AvgLines = float64(lines) / n
	s.AvgPieces = float64(pieces) / n
	return s
}
