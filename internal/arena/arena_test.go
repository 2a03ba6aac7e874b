package arena

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/stackbot/internal/bot"
	"github.com/vovakirdan/stackbot/internal/config"
)

func fastProfile(t *testing.T, d config.Difficulty) config.Profile {
	t.Helper()
	cfg := config.DefaultBotConfig()
	config.ApplyFastPreset(&cfg)
	p, err := cfg.Profile(d)
	if err != nil {
		t.Fatalf("Profile(%s): %v", d, err)
	}
	return p
}

func TestPlayStopsAtMaxPieces(t *testing.T) {
	r, err := Play(context.Background(), Config{
		Profile:   fastProfile(t, config.DifficultyHard),
		Seed:      11,
		MaxPieces: 25,
	}, nil)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if r.Reason != EndMaxPieces {
		t.Fatalf("Reason = %q, want %q (result %+v)", r.Reason, EndMaxPieces, r)
	}
	if r.Pieces != 25 {
		t.Errorf("Pieces = %d, want 25", r.Pieces)
	}
	if r.Difficulty != config.DifficultyHard || r.Seed != 11 {
		t.Errorf("unexpected identity: %+v", r)
	}
	if r.Stale != 0 {
		t.Errorf("Stale = %d, want 0", r.Stale)
	}
}

func TestPlayDeterministic(t *testing.T) {
	cfg := Config{
		Profile:   fastProfile(t, config.DifficultyEasy),
		Seed:      3,
		MaxPieces: 40,
	}
	a, err := Play(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	b, err := Play(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	a.Duration, b.Duration = 0, 0
	if a != b {
		t.Errorf("same seed produced different results:\n%+v\n%+v", a, b)
	}
}

func TestPlayAddsJunk(t *testing.T) {
	r, err := Play(context.Background(), Config{
		Profile:   fastProfile(t, config.DifficultyMedium),
		Seed:      5,
		MaxPieces: 10,
		JunkEvery: 2,
		JunkLines: 1,
	}, nil)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if r.JunkLines != r.Pieces/2 {
		t.Errorf("JunkLines = %d after %d pieces, want %d", r.JunkLines, r.Pieces, r.Pieces/2)
	}
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := Play(ctx, Config{Profile: fastProfile(t, config.DifficultyMedium), Seed: 1}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if r.Reason != EndCancelled {
		t.Errorf("Reason = %q, want %q", r.Reason, EndCancelled)
	}
}

func TestMatchDropsStaleProposals(t *testing.T) {
	m := NewMatch(Config{Profile: fastProfile(t, config.DifficultyMedium), Seed: 2}, nil)

	if m.Handle(bot.Proposal{Generation: 0, Move: bot.Move{HardDrop: true}}) {
		t.Error("stale proposal should not change the board")
	}
	if got := m.Result().Stale; got != 1 {
		t.Errorf("Stale = %d, want 1", got)
	}
	if m.Game().Stats().Pieces != 0 {
		t.Error("stale proposal was applied")
	}
}

func TestMatchNoMoveEnds(t *testing.T) {
	m := NewMatch(Config{Profile: fastProfile(t, config.DifficultyMedium), Seed: 2}, nil)

	m.Handle(bot.Proposal{Generation: 1, NoMove: true})
	if !m.Done() || m.Reason() != EndNoMove {
		t.Errorf("Done = %v, Reason = %q", m.Done(), m.Reason())
	}
	if m.Handle(bot.Proposal{Generation: 1, Move: bot.Move{HardDrop: true}}) {
		t.Error("a finished match should ignore proposals")
	}
}

func TestMatchDurationFixedAfterEnd(t *testing.T) {
	m := NewMatch(Config{Profile: fastProfile(t, config.DifficultyMedium), Seed: 2}, nil)
	m.Start()
	defer m.Stop()

	time.Sleep(5 * time.Millisecond)
	m.Cancel()
	first := m.Result().Duration
	if first <= 0 {
		t.Fatalf("Duration = %v, want > 0", first)
	}

	time.Sleep(20 * time.Millisecond)
	if d := m.Result().Duration; d != first {
		t.Errorf("Duration grew after the match ended: %v then %v", first, d)
	}
}

func TestMatchHandleAdvancesGeneration(t *testing.T) {
	m := NewMatch(Config{Profile: fastProfile(t, config.DifficultyMedium), Seed: 2}, nil)

	if !m.Handle(bot.Proposal{Generation: 1, Move: bot.Move{Column: 0, HardDrop: true}}) {
		t.Fatal("current proposal should be applied")
	}
	if m.Game().Stats().Pieces != 1 {
		t.Errorf("Pieces = %d, want 1", m.Game().Stats().Pieces)
	}
	// The same generation is now stale.
	if m.Handle(bot.Proposal{Generation: 1, Move: bot.Move{Column: 0, HardDrop: true}}) {
		t.Error("reused generation should be dropped")
	}
}

func TestRunBatch(t *testing.T) {
	var seen []int64
	results, err := RunBatch(context.Background(), Batch{
		Base: Config{
			Profile:   fastProfile(t, config.DifficultyMedium),
			Seed:      100,
			MaxPieces: 15,
		},
		Games:    4,
		Parallel: 2,
		OnResult: func(r Result) { seen = append(seen, r.Seed) },
	}, nil)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("len(results) = %d, want 4", len(results))
	}
	for i, r := range results {
		if r.Seed != 100+int64(i) {
			t.Errorf("results[%d].Seed = %d, want %d", i, r.Seed, 100+i)
		}
		if r.Pieces != 15 {
			t.Errorf("results[%d].Pieces = %d, want 15", i, r.Pieces)
		}
	}
	if len(seen) != 4 {
		t.Errorf("OnResult called %d times, want 4", len(seen))
	}
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunBatch(ctx, Batch{
		Base:  Config{Profile: fastProfile(t, config.DifficultyEasy), Seed: 1},
		Games: 3,
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		{Score: 100, Lines: 2, Pieces: 10, Reason: EndToppedOut},
		{Score: 300, Lines: 4, Pieces: 30, Reason: EndMaxPieces},
	})
	if s.Games != 2 || s.BestScore != 300 || s.AvgScore != 200 || s.AvgLines != 3 || s.AvgPieces != 20 || s.TopOuts != 1 {
		t.Errorf("Summarize = %+v", s)
	}
	if (Summarize(nil) != Stats{}) {
		t.Error("empty summary should be zero")
	}
}
