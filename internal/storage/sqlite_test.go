package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Difficulty: "easy", Seed: 1, Pieces: 40, Lines: 3, Score: 300, Duration: 1500 * time.Millisecond},
		{Difficulty: "easy", Seed: 2, Pieces: 80, Lines: 9, Score: 900},
		{Difficulty: "easy", Seed: 3, Pieces: 20, Lines: 1, Score: 100},
		{Difficulty: "hard", Seed: 4, Pieces: 500, Lines: 190, Score: 90000, JunkLines: 12},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	easy, err := store.TopRuns("easy", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(easy) != 3 {
		t.Fatalf("expected 3 easy runs, got %d", len(easy))
	}
	wantScores := []int{900, 300, 100}
	for i, want := range wantScores {
		if easy[i].Score != want {
			t.Errorf("easy[%d].Score = %d, expected %d", i, easy[i].Score, want)
		}
	}
	if easy[1].Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, expected 1.5s", easy[1].Duration)
	}
	if easy[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].Difficulty != "hard" || all[0].JunkLines != 12 {
		t.Errorf("unexpected top runs: %+v", all)
	}
}

func TestStoreSummaries(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{Difficulty: "medium", Pieces: 10, Lines: 2, Score: 200},
		{Difficulty: "medium", Pieces: 30, Lines: 4, Score: 600},
		{Difficulty: "easy", Pieces: 5, Lines: 0, Score: 0},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	sums, err := store.Summaries()
	if err != nil {
		t.Fatalf("Summaries() failed: %v", err)
	}
	if len(sums) != 2 || sums[0].Difficulty != "easy" || sums[1].Difficulty != "medium" {
		t.Fatalf("unexpected summaries: %+v", sums)
	}

	m := sums[1]
	if m.Games != 2 || m.BestScore != 600 || m.AvgScore != 400 || m.AvgLines != 3 || m.AvgPieces != 20 {
		t.Errorf("medium summary = %+v", m)
	}

	single, err := store.Summary("medium")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if single.Games != m.Games || single.BestScore != m.BestScore {
		t.Errorf("Summary(medium) = %+v, expected it to match %+v", single, m)
	}
}

func TestStoreSummaryEmpty(t *testing.T) {
	store := openTestStore(t)

	sum, err := store.Summary("hard")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Games != 0 || sum.BestScore != 0 || !sum.LastPlayed.IsZero() {
		t.Errorf("empty summary = %+v", sum)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Difficulty: "easy", Score: 1})
	store.SaveRun(Run{Difficulty: "hard", Score: 2})

	n, err := store.ClearRuns("easy")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("cleared %d runs, expected 1", n)
	}

	left, _ := store.TopRuns("", 10)
	if len(left) != 1 || left[0].Difficulty != "hard" {
		t.Errorf("unexpected remaining runs: %+v", left)
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveRun(Run{Difficulty: "medium", Seed: 99, Score: 1234})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns("medium", 1)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Seed != 99 || runs[0].Score != 1234 {
		t.Errorf("runs after reopen = %+v", runs)
	}
}
