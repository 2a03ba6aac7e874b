package bot

import (
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/tetris"
)

// idlePoll bounds how long an idle loop waits before re-checking the
// snapshot. Snapshot updates wake it sooner.
const idlePoll = 50 * time.Millisecond

var (
	// ErrNoPiece means no current piece has been set yet.
	ErrNoPiece = errors.New("bot: no current piece")

	// ErrNoMove means the current piece has no legal placement.
	ErrNoMove = errors.New("bot: no legal placement")
)

// Move is a proposed placement. The game applies exactly Rotations
// clockwise turns, shifts one column at a time to Column, then hard drops.
type Move struct {
	Rotations int
	Column    int
	HardDrop  bool
	Score     float64
	Random    bool // Deliberate mistake injected by the profile's error rate
}

// Proposal is what the decision loop emits. Generation identifies the
// snapshot the move was computed from, so a game can discard proposals for
// a board it has already changed. NoMove reports an imminent loss.
type Proposal struct {
	Move       Move
	Generation uint64
	NoMove     bool
}

// Options configures an Engine.
type Options struct {
	// Rand is the source for tie-breaks and deliberate mistakes.
	// Nil uses a fixed seed.
	Rand *rand.Rand

	// Logger receives decision logs. Nil discards them.
	Logger *log.Logger

	// Sleep pays the think delay. Nil uses time.Sleep.
	Sleep func(time.Duration)

	// OncePerSnapshot suppresses repeated proposals for a snapshot that has
	// already been answered.
	OncePerSnapshot bool
}

type snapshot struct {
	grid       tetris.Grid
	current    tetris.Piece
	next       tetris.Piece
	hasCurrent bool
	hasNext    bool
	gen        uint64
}

// Engine holds the latest board snapshot pushed by the game and runs the
// background decision loop. Setters may be called from any goroutine.
type Engine struct {
	profile config.Profile
	logger  *log.Logger
	once    bool

	searchMu sync.Mutex
	searcher *Searcher

	mu      sync.Mutex
	snap    snapshot
	running bool
	stop    chan struct{}
	done    chan struct{}

	moves chan Proposal
	wake  chan struct{}
}

// NewEngine creates an idle engine for the given profile.
func NewEngine(profile config.Profile, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	searcher := NewSearcher(profile, opts.Rand)
	if opts.Sleep != nil {
		searcher.SetSleep(opts.Sleep)
	}

	done := make(chan struct{})
	close(done)

	return &Engine{
		profile:  profile,
		logger:   logger.With("difficulty", profile.Difficulty),
		once:     opts.OncePerSnapshot,
		searcher: searcher,
		done:     done,
		moves:    make(chan Proposal, 1),
		wake:     make(chan struct{}, 1),
	}
}

// Profile returns the engine's difficulty profile.
func (e *Engine) Profile() config.Profile {
	return e.profile
}

// SetGrid replaces the board snapshot with a copy of g.
func (e *Engine) SetGrid(g tetris.Grid) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap.grid = g
	e.snap.gen++
	e.notify()
}

// SetGridRows replaces the board snapshot from a caller-owned matrix.
// Cells outside the board are ignored.
func (e *Engine) SetGridRows(rows [][]int) {
	e.SetGrid(tetris.GridFromRows(rows))
}

// SetPieces replaces the current and next piece snapshots. Either may be nil.
func (e *Engine) SetPieces(current, next *tetris.Piece) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap.hasCurrent = current != nil
	e.snap.hasNext = next != nil
	e.snap.current, e.snap.next = tetris.Piece{}, tetris.Piece{}
	if current != nil {
		e.snap.current = *current
	}
	if next != nil {
		e.snap.next = *next
	}
	e.snap.gen++
	e.notify()
}

// Update replaces the grid and both pieces as one snapshot.
func (e *Engine) Update(g tetris.Grid, current, next *tetris.Piece) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap = snapshot{grid: g, gen: e.snap.gen + 1}
	if current != nil {
		e.snap.current, e.snap.hasCurrent = *current, true
	}
	if next != nil {
		e.snap.next, e.snap.hasNext = *next, true
	}
	e.notify()
}

// notify wakes an idle loop without blocking.
func (e *Engine) notify() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Generation returns the number of snapshot updates received so far.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.gen
}

func (e *Engine) read() snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap
}

// Decide searches the current snapshot once and returns the proposal.
// It returns ErrNoPiece if no current piece is known.
func (e *Engine) Decide() (Proposal, error) {
	s := e.read()
	if !s.hasCurrent {
		return Proposal{}, ErrNoPiece
	}

	var next *tetris.Piece
	if s.hasNext {
		next = &s.next
	}

	e.searchMu.Lock()
	d, ok := e.searcher.Decide(s.grid, s.current, next)
	e.searchMu.Unlock()

	if !ok {
		return Proposal{Generation: s.gen, NoMove: true}, ErrNoMove
	}
	return Proposal{
		Move: Move{
			Rotations: d.Rotations,
			Column:    d.Column,
			HardDrop:  true,
			Score:     d.Score,
			Random:    d.Random,
		},
		Generation: s.gen,
	}, nil
}

// Moves returns the channel proposals are delivered on. It is shared across
// restarts and never closed; select on Done to notice the loop exiting.
func (e *Engine) Moves() <-chan Proposal {
	return e.moves
}

// Start launches the decision loop. Calling Start on a running engine is a
// no-op. After a Stop, Start waits for the previous loop to exit so only
// one loop ever runs.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	prev := e.done
	e.mu.Unlock()
	<-prev

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	go e.run(e.stop, e.done)
	e.logger.Debug("decision loop started")
}

// Stop asks the loop to exit at its next boundary. A search already in
// progress runs to completion first. Stop is idempotent.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	close(e.stop)
}

// Running reports whether the loop has been started and not stopped.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Done returns a channel closed once the current loop has exited.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done
}

func (e *Engine) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer e.logger.Debug("decision loop stopped")

	var answered uint64
	var hasAnswered bool

	for {
		select {
		case <-stop:
			return
		default:
		}

		if e.once && hasAnswered && e.Generation() == answered {
			if !e.waitIdle(stop) {
				return
			}
			continue
		}

		p, err := e.Decide()
		if errors.Is(err, ErrNoPiece) {
			if !e.waitIdle(stop) {
				return
			}
			continue
		}

		e.logDecision(p, err)
		select {
		case e.moves <- p:
			answered, hasAnswered = p.Generation, true
		case <-stop:
			return
		}

		if !sleepOrStop(e.profile.MoveDelay, stop) {
			return
		}
	}
}

// waitIdle blocks until the snapshot changes or idlePoll elapses. It
// reports false if stop fires first.
func (e *Engine) waitIdle(stop <-chan struct{}) bool {
	t := time.NewTimer(idlePoll)
	defer t.Stop()
	select {
	case <-stop:
		return false
	case <-e.wake:
		return true
	case <-t.C:
		return true
	}
}

func (e *Engine) logDecision(p Proposal, err error) {
	if err != nil {
		e.logger.Warn("no legal placement", "gen", p.Generation)
		return
	}
	e.logger.Debug("proposing move",
		"gen", p.Generation,
		"rotations", p.Move.Rotations,
		"column", p.Move.Column,
		"score", p.Move.Score,
		"random", p.Move.Random,
	)
}

// sleepOrStop waits for d and reports false if stop fired first.
func sleepOrStop(d time.Duration, stop <-chan struct{}) bool {
	if d <= 0 {
		select {
		case <-stop:
			return false
		default:
			return true
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-stop:
		return false
	}
}
