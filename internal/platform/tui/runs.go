package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/storage"
)

const maxRuns = 100

// RunsModel is a browsable table of stored runs, one tab per difficulty.
type RunsModel struct {
	store   *storage.Store
	tabs    []string // "" means every difficulty
	cursor  int
	runs    []storage.Run
	summary storage.Summary
	err     error

	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRunsModel creates the history view, starting on the given difficulty.
func NewRunsModel(store *storage.Store, start string, width, height int) RunsModel {
	tabs := []string{""}
	for _, d := range config.Difficulties() {
		tabs = append(tabs, string(d))
	}

	m := RunsModel{
		store:  store,
		tabs:   tabs,
		help:   help.New(),
		keys:   DefaultRunsKeyMap(),
		width:  width,
		height: height,
	}
	for i, t := range tabs {
		if t == start {
			m.cursor = i
		}
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Tier", Width: 7},
		{Title: "Score", Width: 9},
		{Title: "Lines", Width: 6},
		{Title: "Pieces", Width: 7},
		{Title: "Seed", Width: 20},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *RunsModel) load() {
	difficulty := m.tabs[m.cursor]
	m.runs, m.summary, m.err = nil, storage.Summary{}, nil

	if m.store != nil {
		m.runs, m.err = m.store.TopRuns(difficulty, maxRuns)
		if m.err == nil && difficulty != "" {
			m.summary, m.err = m.store.Summary(difficulty)
		}
	}

	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

// RunRows formats runs as table rows, ranked in the given order.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		date := ""
		if !r.CreatedAt.IsZero() {
			date = r.CreatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Difficulty,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Pieces),
			fmt.Sprintf("%d", r.Seed),
			date,
		}
	}
	return rows
}

// Init implements tea.Model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.createTable()
		m.table.SetRows(RunRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders tabs, the summary line, the table and help.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("RUN HISTORY", m.width)))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		name := t
		if name == "" {
			name = "all"
		}
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	if m.summary.Games > 0 {
		fmt.Fprintf(&b, "%d games · best %d · avg score %.0f · avg lines %.1f\n\n",
			m.summary.Games, m.summary.BestScore, m.summary.AvgScore, m.summary.AvgLines)
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m RunsModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load runs: " + m.err.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nTry `stackbot sim` first.")
	}
	return m.table.View()
}

// RunRuns shows the run history browser.
func RunRuns(store *storage.Store, start string, width, height int) error {
	p := tea.NewProgram(NewRunsModel(store, start, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
