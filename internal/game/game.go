// Package game is the authoritative falling-block game that consumes the
// bot's proposals. It owns the real board; the bot only ever sees copies.
package game

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/stackbot/internal/bot"
	"github.com/vovakirdan/stackbot/internal/tetris"
)

// ErrGameOver is returned by Apply once the stack has reached the spawn row.
var ErrGameOver = errors.New("game: game over")

// linesPerLevel is how many cleared rows advance one level.
const linesPerLevel = 10

// Stats summarizes a game in progress.
type Stats struct {
	Score     int
	Lines     int
	Level     int
	Pieces    int
	JunkLines int
	GameOver  bool
}

// Snapshot is a copy of what the bot needs to decide the next move.
type Snapshot struct {
	Grid    tetris.Grid
	Current tetris.Piece
	Next    tetris.Piece
}

// Game is a single-player board fed by a seeded piece sequence.
type Game struct {
	rng *rand.Rand

	grid    tetris.Grid
	current tetris.Piece
	next    tetris.Piece

	score  int
	lines  int
	pieces int
	junk   int
	over   bool
}

// New starts a game whose piece sequence and junk gaps derive from seed.
func New(seed int64) *Game {
	g := &Game{}
	g.Reset(seed)
	return g
}

// Reset clears the board and restarts the piece sequence from seed.
func (g *Game) Reset(seed int64) {
	*g = Game{rng: rand.New(rand.NewSource(seed))}
	g.current = g.randomPiece()
	g.next = g.randomPiece()
	g.over = tetris.Collides(&g.grid, g.current, 0, 0)
}

func (g *Game) randomPiece() tetris.Piece {
	kinds := tetris.AllKinds()
	return tetris.SpawnPiece(kinds[g.rng.Intn(len(kinds))])
}

// Snapshot returns copies of the board and both pieces.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{Grid: g.grid, Current: g.current, Next: g.next}
}

// Grid returns a copy of the board.
func (g *Game) Grid() tetris.Grid {
	return g.grid
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.over
}

// Level is one plus every ten rows cleared.
func (g *Game) Level() int {
	return g.lines/linesPerLevel + 1
}

// Stats returns the running totals.
func (g *Game) Stats() Stats {
	return Stats{
		Score:     g.score,
		Lines:     g.lines,
		Level:     g.Level(),
		Pieces:    g.pieces,
		JunkLines: g.junk,
		GameOver:  g.over,
	}
}

// Apply plays m against the current piece: rotate, shift one column at a
// time toward the target, hard drop and lock. A rotation or shift that
// would collide is skipped, so the piece lands as close to the proposal as
// the board allows. It returns the number of rows cleared.
func (g *Game) Apply(m bot.Move) (int, error) {
	if g.over {
		return 0, ErrGameOver
	}

	p := g.current
	for range m.Rotations {
		if r := p.Rotated(1); !tetris.Collides(&g.grid, r, 0, 0) {
			p = r
		}
	}

	for p.X != m.Column {
		dx := 1
		if m.Column < p.X {
			dx = -1
		}
		if tetris.Collides(&g.grid, p, dx, 0) {
			break
		}
		p = p.Moved(dx, 0)
	}

	p = tetris.Drop(&g.grid, p)
	tetris.Place(&g.grid, p)
	lockedAbove := p.Y < 0
	cleared := tetris.ClearLines(&g.grid)

	g.score += cleared * cleared * 100 * g.Level()
	g.lines += cleared
	g.pieces++

	g.current = g.next
	g.next = g.randomPiece()
	if lockedAbove || tetris.Collides(&g.grid, g.current, 0, 0) {
		g.over = true
	}
	return cleared, nil
}

// AddJunkLines pushes the stack up by n rows and fills the bottom with junk
// rows, each with a single random gap. Cells pushed past the top are lost.
// The current piece is lifted until it no longer overlaps; the game ends if
// it has to leave the board entirely.
func (g *Game) AddJunkLines(n int) {
	if g.over || n <= 0 {
		return
	}
	n = min(n, tetris.Rows)

	copy(g.grid[:], g.grid[n:])
	for y := tetris.Rows - n; y < tetris.Rows; y++ {
		gap := g.rng.Intn(tetris.Cols)
		for x := range tetris.Cols {
			g.grid[y][x] = tetris.CellJunk
		}
		g.grid[y][gap] = tetris.CellEmpty
	}
	g.junk += n

	// Lift the falling piece clear of the new stack. Cells above the board
	// never collide, so this always terminates.
	for tetris.Collides(&g.grid, g.current, 0, 0) {
		g.current = g.current.Moved(0, -1)
	}
	if g.current.Y+g.current.Shape.Height() <= 0 {
		g.over = true
	}
}
