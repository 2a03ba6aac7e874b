package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/stackbot/internal/bot"
	"github.com/vovakirdan/stackbot/internal/core"
	"github.com/vovakirdan/stackbot/internal/tetris"
)

func TestNewGameDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 20 {
		sa, sb := a.Snapshot(), b.Snapshot()
		if sa != sb {
			t.Fatal("games with the same seed diverged")
		}
		if _, err := a.Apply(bot.Move{Column: 0, HardDrop: true}); err != nil {
			break
		}
		if _, err := b.Apply(bot.Move{Column: 0, HardDrop: true}); err != nil {
			break
		}
	}
}

func TestNewGameSpawnsAtSpawnColumn(t *testing.T) {
	g := New(1)
	s := g.Snapshot()
	if s.Current.X != tetris.SpawnX || s.Current.Y != 0 {
		t.Errorf("current at (%d, %d), want (%d, 0)", s.Current.X, s.Current.Y, tetris.SpawnX)
	}
	if !s.Current.Kind.Valid() || !s.Next.Kind.Valid() {
		t.Errorf("invalid kinds: %v, %v", s.Current.Kind, s.Next.Kind)
	}
	if g.Over() {
		t.Error("fresh game should not be over")
	}
}

// withCurrent forces the current piece so tests do not depend on the seed.
func withCurrent(g *Game, k tetris.Kind) {
	g.current = tetris.SpawnPiece(k)
}

func TestApplyPlacesAtColumn(t *testing.T) {
	g := New(1)
	withCurrent(g, tetris.KindO)

	lines, err := g.Apply(bot.Move{Column: 0, HardDrop: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if lines != 0 {
		t.Errorf("lines = %d, want 0", lines)
	}

	grid := g.Grid()
	for _, pos := range [][2]int{{0, 18}, {1, 18}, {0, 19}, {1, 19}} {
		if grid[pos[1]][pos[0]] != tetris.Cell(tetris.KindO) {
			t.Errorf("expected O at %v", pos)
		}
	}
	if g.Stats().Pieces != 1 {
		t.Errorf("Pieces = %d, want 1", g.Stats().Pieces)
	}
}

func TestApplyStopsAtWall(t *testing.T) {
	g := New(1)
	withCurrent(g, tetris.KindO)

	if _, err := g.Apply(bot.Move{Column: 50, HardDrop: true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	grid := g.Grid()
	if grid[19][tetris.Cols-1] == tetris.CellEmpty || grid[19][tetris.Cols-2] == tetris.CellEmpty {
		t.Errorf("O should rest against the right wall:\n%s", grid.String())
	}
}

func TestApplyRotatesVertical(t *testing.T) {
	g := New(1)
	withCurrent(g, tetris.KindI)

	if _, err := g.Apply(bot.Move{Rotations: 1, Column: 9, HardDrop: true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	grid := g.Grid()
	for y := 16; y < tetris.Rows; y++ {
		if grid[y][9] != tetris.Cell(tetris.KindI) {
			t.Errorf("expected vertical I at (9, %d)", y)
		}
	}
}

func TestApplyClearsAndScores(t *testing.T) {
	g := New(1)
	for x := range tetris.Cols {
		if x != 4 {
			g.grid[19][x] = tetris.CellJunk
		}
	}
	withCurrent(g, tetris.KindI)

	lines, err := g.Apply(bot.Move{Rotations: 1, Column: 4, HardDrop: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if lines != 1 {
		t.Fatalf("lines = %d, want 1", lines)
	}
	s := g.Stats()
	if s.Score != 100 || s.Lines != 1 || s.Level != 1 {
		t.Errorf("stats = %+v, want score 100, lines 1, level 1", s)
	}
}

func TestScoreScalesWithLevel(t *testing.T) {
	g := New(1)
	g.lines = 10
	for x := range tetris.Cols {
		if x != 0 {
			g.grid[18][x] = tetris.CellJunk
			g.grid[19][x] = tetris.CellJunk
		}
	}
	withCurrent(g, tetris.KindI)

	lines, _ := g.Apply(bot.Move{Rotations: 1, Column: 0, HardDrop: true})
	if lines != 2 {
		t.Fatalf("lines = %d, want 2", lines)
	}
	// Two rows at level 2.
	if g.Stats().Score != 2*2*100*2 {
		t.Errorf("Score = %d, want %d", g.Stats().Score, 800)
	}
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	g := New(1)
	for y := 2; y < tetris.Rows; y++ {
		for x := range tetris.Cols {
			if x != 0 {
				g.grid[y][x] = tetris.CellJunk
			}
		}
	}
	withCurrent(g, tetris.KindO)

	if _, err := g.Apply(bot.Move{Column: tetris.SpawnX, HardDrop: true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !g.Over() {
		t.Fatalf("game should be over:\n%s", g.grid.String())
	}
	if _, err := g.Apply(bot.Move{}); !errors.Is(err, ErrGameOver) {
		t.Errorf("Apply after game over: err = %v, want ErrGameOver", err)
	}
}

func TestAddJunkLines(t *testing.T) {
	g := New(7)
	g.grid[19][3] = tetris.Cell(tetris.KindT)

	g.AddJunkLines(2)

	if g.grid[17][3] != tetris.Cell(tetris.KindT) {
		t.Error("existing stack should shift up by two rows")
	}
	for y := 18; y < tetris.Rows; y++ {
		gaps := 0
		for x := range tetris.Cols {
			switch g.grid[y][x] {
			case tetris.CellEmpty:
				gaps++
			case tetris.CellJunk:
			default:
				t.Errorf("unexpected cell %d in junk row %d", g.grid[y][x], y)
			}
		}
		if gaps != 1 {
			t.Errorf("row %d has %d gaps, want 1", y, gaps)
		}
	}
	if g.Stats().JunkLines != 2 {
		t.Errorf("JunkLines = %d, want 2", g.Stats().JunkLines)
	}
}

func TestAddJunkLinesEndsGameWhenFull(t *testing.T) {
	g := New(3)
	withCurrent(g, tetris.KindO)
	g.AddJunkLines(tetris.Rows)
	if !g.Over() {
		t.Error("filling the whole board with junk should end the game")
	}
}

func TestAddJunkLinesLiftsCurrentPiece(t *testing.T) {
	g := New(5)
	withCurrent(g, tetris.KindO)
	for y := 2; y < tetris.Rows; y++ {
		for x := 1; x < tetris.Cols; x++ {
			g.grid[y][x] = tetris.CellJunk
		}
	}

	g.AddJunkLines(1)

	if g.Over() {
		t.Fatal("a piece that can be lifted clear should not end the game")
	}
	cur := g.Snapshot().Current
	if cur.Y != -1 {
		t.Errorf("current piece at row %d, want -1", cur.Y)
	}
	grid := g.Grid()
	if tetris.Collides(&grid, cur, 0, 0) {
		t.Error("lifted piece still overlaps the stack")
	}

	// Locking it half above the top ends the game.
	if _, err := g.Apply(bot.Move{Column: cur.X, HardDrop: true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !g.Over() {
		t.Error("a piece locked above the top should end the game")
	}
}

func TestRender(t *testing.T) {
	g := New(5)
	g.grid[19][0] = tetris.CellJunk

	s := core.NewScreen(60, 24)
	g.Render(s)

	out := s.String()
	for _, want := range []string{"NEXT", "Score  0", "Lines  0", "Level  1", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	small := core.NewScreen(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("expected a too-small message")
	}
}

func TestCellColor(t *testing.T) {
	if CellColor(tetris.CellJunk) != core.ColorGray {
		t.Error("junk should be gray")
	}
	if CellColor(tetris.CellEmpty) != core.ColorDefault {
		t.Error("empty should use the default color")
	}
	if CellColor(tetris.Cell(tetris.KindI)) == CellColor(tetris.Cell(tetris.KindZ)) {
		t.Error("I and Z should differ")
	}
}
