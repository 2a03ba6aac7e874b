// Package arena pits the bot against the reference game. A Match wires one
// game to one engine; Play and RunBatch drive matches headlessly.
package arena

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stackbot/internal/bot"
	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/game"
)

// EndReason says why a match stopped.
type EndReason string

const (
	EndNone      EndReason = ""
	EndToppedOut EndReason = "topped_out"
	EndNoMove    EndReason = "no_move"
	EndMaxPieces EndReason = "max_pieces"
	EndCancelled EndReason = "cancelled"
)

// Config describes one match.
type Config struct {
	Profile   config.Profile
	Seed      int64
	MaxPieces int // 0 plays until the bot tops out
	JunkEvery int // Add junk after every N pieces; 0 disables
	JunkLines int // Rows added per junk event
}

// Result is the outcome of a finished match.
type Result struct {
	Difficulty config.Difficulty
	Seed       int64
	Pieces     int
	Lines      int
	Score      int
	JunkLines  int
	Stale      int // Proposals dropped because the board had moved on
	Random     int // Deliberate mistakes the bot made
	Reason     EndReason
	Duration   time.Duration
}

// Match owns a game and the engine proposing moves for it. Handle must be
// called from a single goroutine; the engine only ever sees copies.
type Match struct {
	cfg    Config
	game   *game.Game
	engine *bot.Engine
	logger *log.Logger

	started time.Time
	ended   time.Time
	stale   int
	random  int
	reason  EndReason
}

// NewMatch creates a match and pushes the opening snapshot to the engine.
// The engine is not started yet.
func NewMatch(cfg Config, logger *log.Logger) *Match {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("seed", cfg.Seed)

	m := &Match{
		cfg:  cfg,
		game: game.New(cfg.Seed),
		engine: bot.NewEngine(cfg.Profile, bot.Options{
			Rand:            rand.New(rand.NewSource(cfg.Seed)),
			Logger:          logger,
			OncePerSnapshot: true,
		}),
		logger: logger,
	}
	m.push()
	return m
}

func (m *Match) push() {
	s := m.game.Snapshot()
	m.engine.Update(s.Grid, &s.Current, &s.Next)
}

// Start launches the engine's decision loop.
func (m *Match) Start() {
	if m.started.IsZero() {
		m.started = time.Now()
	}
	m.engine.Start()
}

// Stop halts the engine and waits for its loop to exit.
func (m *Match) Stop() {
	m.engine.Stop()
	<-m.engine.Done()
}

// Stopped is closed once the engine's loop has exited.
func (m *Match) Stopped() <-chan struct{} {
	return m.engine.Done()
}

// Moves is where the engine's proposals arrive.
func (m *Match) Moves() <-chan bot.Proposal {
	return m.engine.Moves()
}

// Game exposes the authoritative game for rendering.
func (m *Match) Game() *game.Game {
	return m.game
}

// Done reports whether the match has ended.
func (m *Match) Done() bool {
	return m.reason != EndNone
}

// Reason returns why the match ended, or EndNone while it is running.
func (m *Match) Reason() EndReason {
	return m.reason
}

// Handle applies a proposal to the game. Proposals computed for an older
// snapshot are dropped. It reports whether the board changed.
func (m *Match) Handle(p bot.Proposal) bool {
	if m.Done() {
		return false
	}
	if p.Generation != m.engine.Generation() {
		m.stale++
		m.logger.Debug("dropping stale proposal", "gen", p.Generation)
		return false
	}
	if p.NoMove {
		m.end(EndNoMove)
		return false
	}

	if _, err := m.game.Apply(p.Move); err != nil {
		m.end(EndToppedOut)
		return false
	}
	if p.Move.Random {
		m.random++
	}

	stats := m.game.Stats()
	if m.cfg.JunkEvery > 0 && stats.Pieces%m.cfg.JunkEvery == 0 {
		m.game.AddJunkLines(max(m.cfg.JunkLines, 1))
	}

	switch {
	case m.game.Over():
		m.end(EndToppedOut)
	case m.cfg.MaxPieces > 0 && stats.Pieces >= m.cfg.MaxPieces:
		m.end(EndMaxPieces)
	default:
		m.push()
	}
	return true
}

// Cancel ends a running match early.
func (m *Match) Cancel() {
	if !m.Done() {
		m.end(EndCancelled)
	}
}

func (m *Match) end(reason EndReason) {
	m.reason = reason
	m.ended = time.Now()
	s := m.game.Stats()
	m.logger.Info("match finished",
		"reason", reason,
		"pieces", s.Pieces,
		"lines", s.Lines,
		"score", s.Score,
	)
}

// Result summarizes the match so far. Once the match has ended its
// duration is fixed.
func (m *Match) Result() Result {
	s := m.game.Stats()
	var elapsed time.Duration
	switch {
	case m.started.IsZero():
	case !m.ended.IsZero():
		elapsed = m.ended.Sub(m.started)
	default:
		elapsed = time.Since(m.started)
	}
	return Result{
		Difficulty: m.cfg.Profile.Difficulty,
		Seed:       m.cfg.Seed,
		Pieces:     s.Pieces,
		Lines:      s.Lines,
		Score:      s.Score,
		JunkLines:  s.JunkLines,
		Stale:      m.stale,
		Random:     m.random,
		Reason:     m.reason,
		Duration:   elapsed,
	}
}
