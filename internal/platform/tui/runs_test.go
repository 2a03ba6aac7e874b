package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stackbot/internal/storage"
)

func TestRunsModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.Run{Difficulty: "easy", Seed: 7, Score: 4321, Lines: 12, Pieces: 60})
	store.SaveRun(storage.Run{Difficulty: "hard", Seed: 8, Score: 98765, Lines: 80, Pieces: 300})

	m := NewRunsModel(store, "", 100, 30)
	view := m.View()
	for _, want := range []string{"RUN HISTORY", "4321", "98765"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// all -> easy
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	view = m.View()
	if !strings.Contains(view, "4321") || strings.Contains(view, "98765") {
		t.Errorf("easy tab should only list easy runs:\n%s", view)
	}
	if !strings.Contains(view, "1 games") {
		t.Errorf("easy tab should show its summary:\n%s", view)
	}
}

func TestRunsModelEmpty(t *testing.T) {
	m := NewRunsModel(nil, "hard", 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("expected the empty message")
	}
}

func TestRunRows(t *testing.T) {
	rows := RunRows([]storage.Run{{Difficulty: "medium", Score: 10, Lines: 1, Pieces: 5, Seed: 3}})
	if len(rows) != 1 || rows[0][0] != "#1" || rows[0][2] != "10" || rows[0][6] != "" {
		t.Errorf("RunRows = %v", rows)
	}
}
