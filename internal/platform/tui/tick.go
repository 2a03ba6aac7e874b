// Package tui renders bot matches in the terminal with Bubble Tea, locally
// or over SSH via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stackbot/internal/arena"
	"github.com/vovakirdan/stackbot/internal/bot"
)

// TickMsg refreshes the view so elapsed time keeps moving while the bot
// thinks.
type TickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ProposalMsg carries one engine proposal into the Update loop. Match
// identifies the match it belongs to so proposals from a replaced match are
// ignored.
type ProposalMsg struct {
	Match    *arena.Match
	Proposal bot.Proposal
}

// waitForProposal blocks until the match's engine proposes a move. It
// yields nil if the engine stops first.
func waitForProposal(m *arena.Match) tea.Cmd {
	return func() tea.Msg {
		select {
		case p := <-m.Moves():
			return ProposalMsg{Match: m, Proposal: p}
		case <-m.Stopped():
			return nil
		}
	}
}
