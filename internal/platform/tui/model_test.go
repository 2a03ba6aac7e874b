package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/core"
	"github.com/vovakirdan/stackbot/internal/storage"
)

func fastProfile(t *testing.T) config.Profile {
	t.Helper()
	cfg := config.DefaultBotConfig()
	config.ApplyFastPreset(&cfg)
	p, err := cfg.Profile(config.DifficultyMedium)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	return p
}

func newTestWatch(t *testing.T, arenaCfg config.ArenaConfig, store *storage.Store) WatchModel {
	t.Helper()
	m := NewWatchModel(WatchConfig{
		Profile: fastProfile(t),
		Arena:   arenaCfg,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1},
		Store:   store,
	})
	m.Match().Start()
	t.Cleanup(m.Close)
	return m
}

func nextProposal(t *testing.T, m WatchModel) ProposalMsg {
	t.Helper()
	select {
	case p := <-m.Match().Moves():
		return ProposalMsg{Match: m.Match(), Proposal: p}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a proposal")
		return ProposalMsg{}
	}
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m WatchModel, msg tea.Msg) WatchModel {
	t.Helper()
	next, _ := m.Update(msg)
	wm, ok := next.(WatchModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return wm
}

func TestWatchAppliesProposals(t *testing.T) {
	m := newTestWatch(t, config.ArenaConfig{}, nil)

	for i := 1; i <= 3; i++ {
		m = update(t, m, nextProposal(t, m))
		if got := m.Match().Game().Stats().Pieces; got != i {
			t.Fatalf("after %d proposals Pieces = %d", i, got)
		}
	}
}

func TestWatchPauseHoldsProposal(t *testing.T) {
	m := newTestWatch(t, config.ArenaConfig{}, nil)

	m = update(t, m, keyMsg('p'))
	m = update(t, m, nextProposal(t, m))
	if m.Match().Game().Stats().Pieces != 0 {
		t.Fatal("proposal applied while paused")
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("header should show paused")
	}

	m = update(t, m, keyMsg('p'))
	if m.Match().Game().Stats().Pieces != 1 {
		t.Error("held proposal should apply on resume")
	}
}

func TestWatchIgnoresOldMatch(t *testing.T) {
	m := newTestWatch(t, config.ArenaConfig{}, nil)
	old := m.Match()
	msg := nextProposal(t, m)

	m = update(t, m, keyMsg('r'))
	if m.Match() == old {
		t.Fatal("restart should create a new match")
	}
	m = update(t, m, msg)
	if m.Match().Game().Stats().Pieces != 0 {
		t.Error("proposal from the replaced match was applied")
	}
}

func TestWatchSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := newTestWatch(t, config.ArenaConfig{MaxPieces: 3}, store)
	for !m.Match().Done() {
		m = update(t, m, nextProposal(t, m))
	}

	runs, err := store.TopRuns(string(config.DifficultyMedium), 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Pieces != 3 || runs[0].Seed != 1 {
		t.Errorf("stored runs = %+v", runs)
	}
	if !strings.Contains(m.View(), "finished") {
		t.Error("header should report the finished match")
	}
}

func TestWatchViewAndQuit(t *testing.T) {
	m := newTestWatch(t, config.ArenaConfig{}, nil)

	view := m.View()
	for _, want := range []string{"stackbot", "medium", "seed 1", "NEXT"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "abc")
	s.SetColor(0, 1, '█', core.ColorCyan)

	out := RenderScreen(s)
	if !strings.Contains(out, "abc") || !strings.Contains(out, "█") {
		t.Errorf("RenderScreen lost content: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected two lines, got %q", out)
	}
}
