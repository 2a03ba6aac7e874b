package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stackbot/internal/arena"
	"github.com/vovakirdan/stackbot/internal/bot"
	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/core"
	"github.com/vovakirdan/stackbot/internal/storage"
)

// chromeHeight is the rows used by the header and help bar.
const chromeHeight = 2

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// WatchConfig configures a WatchModel.
type WatchConfig struct {
	Profile config.Profile
	Arena   config.ArenaConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Finished runs are saved here when set
	Logger  *log.Logger
	Label   string // Shown in the header, e.g. the SSH user
}

// WatchModel is the Bubble Tea model for watching the bot play one match
// after another.
type WatchModel struct {
	cfg    WatchConfig
	seed   int64
	match  *arena.Match
	screen *core.Screen
	keys   WatchKeyMap
	help   help.Model

	live     *liveMatch
	pending  *bot.Proposal // Arrived while paused
	paused   bool
	saved    bool
	quitting bool
}

// liveMatch tracks the current match across model copies so Close can
// reach it from another goroutine.
type liveMatch struct {
	mu    sync.Mutex
	match *arena.Match
}

func (l *liveMatch) set(m *arena.Match) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.match = m
}

func (l *liveMatch) get() *arena.Match {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.match
}

// NewWatchModel creates a model and its first match. The match starts in
// Init.
func NewWatchModel(cfg WatchConfig) WatchModel {
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	m := WatchModel{
		cfg:    cfg,
		seed:   cfg.Runtime.Seed,
		screen: core.NewScreen(cfg.Runtime.ScreenW, max(cfg.Runtime.ScreenH-chromeHeight, 0)),
		keys:   DefaultWatchKeyMap(),
		help:   help.New(),
		live:   &liveMatch{},
	}
	m.match = m.newMatch()
	m.live.set(m.match)
	return m
}

func (m WatchModel) newMatch() *arena.Match {
	return arena.NewMatch(arena.Config{
		Profile:   m.cfg.Profile,
		Seed:      m.seed,
		MaxPieces: m.cfg.Arena.MaxPieces,
		JunkEvery: m.cfg.Arena.JunkEvery,
		JunkLines: m.cfg.Arena.JunkLines,
	}, m.cfg.Logger)
}

// Init starts the bot and the refresh loop.
func (m WatchModel) Init() tea.Cmd {
	m.match.Start()
	return tea.Batch(waitForProposal(m.match), tickCmd(m.cfg.Runtime.TickRate))
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cfg.Runtime.ScreenW = msg.Width
		m.cfg.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-chromeHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case ProposalMsg:
		return m.handleProposal(msg)

	case TickMsg:
		return m, tickCmd(m.cfg.Runtime.TickRate)
	}
	return m, nil
}

func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.match.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Pause):
		if m.match.Done() {
			return m, nil
		}
		m.paused = !m.paused
		if !m.paused && m.pending != nil {
			p := *m.pending
			m.pending = nil
			return m.apply(p)
		}

	case key.Matches(msg, m.keys.Restart):
		m.match.Stop()
		m.seed++
		m.match = m.newMatch()
		m.live.set(m.match)
		m.paused, m.pending, m.saved = false, nil, false
		m.match.Start()
		return m, waitForProposal(m.match)
	}
	return m, nil
}

func (m WatchModel) handleProposal(msg ProposalMsg) (tea.Model, tea.Cmd) {
	if msg.Match != m.match {
		return m, nil
	}
	if m.paused {
		p := msg.Proposal
		m.pending = &p
		return m, nil
	}
	return m.apply(msg.Proposal)
}

func (m WatchModel) apply(p bot.Proposal) (tea.Model, tea.Cmd) {
	m.match.Handle(p)
	if m.match.Done() {
		m.finish()
		return m, nil
	}
	return m, waitForProposal(m.match)
}

// finish stops the engine and records the run once.
func (m *WatchModel) finish() {
	m.match.Stop()
	if m.saved || m.cfg.Store == nil {
		return
	}
	m.saved = true

	r := m.match.Result()
	if _, err := m.cfg.Store.SaveRun(storage.Run{
		Difficulty: string(r.Difficulty),
		Seed:       r.Seed,
		Pieces:     r.Pieces,
		Lines:      r.Lines,
		Score:      r.Score,
		JunkLines:  r.JunkLines,
		Duration:   r.Duration,
	}); err != nil {
		m.cfg.Logger.Warn("could not save run", "error", err)
	}
}

// Close stops the engine of whichever match is current. It is safe to call
// from any goroutine and on any copy of the model.
func (m WatchModel) Close() {
	m.live.get().Stop()
}

// Match returns the match currently on screen.
func (m WatchModel) Match() *arena.Match {
	return m.match
}

// View renders the header, the board and the help bar.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	m.match.Game().Render(m.screen)

	return m.header() + "\n" + RenderScreen(m.screen) + "\n" + statusStyle.Render(m.help.View(m.keys))
}

func (m WatchModel) header() string {
	title := fmt.Sprintf("stackbot · %s · seed %d", m.cfg.Profile.Difficulty, m.seed)
	if m.cfg.Label != "" {
		title = m.cfg.Label + " · " + title
	}

	status := "playing"
	r := m.match.Result()
	switch {
	case m.match.Done():
		status = fmt.Sprintf("finished (%s) in %s", r.Reason, r.Duration.Round(time.Second))
	case m.paused:
		status = "paused"
	}
	if r.Random > 0 {
		status += fmt.Sprintf(" · %d slips", r.Random)
	}
	return headerStyle.Render(title) + "  " + statusStyle.Render(status)
}

// RunWatch plays matches in the local terminal until the user quits.
func RunWatch(cfg WatchConfig) error {
	p := tea.NewProgram(NewWatchModel(cfg), tea.WithAltScreen())

	final, err := p.Run()
	if m, ok := final.(WatchModel); ok {
		m.Close()
	}
	return err
}
