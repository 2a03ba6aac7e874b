package game

import (
	"fmt"

	"github.com/vovakirdan/stackbot/internal/core"
	"github.com/vovakirdan/stackbot/internal/tetris"
)

const (
	cellWidth  = 2 // Each board cell is drawn two characters wide
	boardW     = tetris.Cols*cellWidth + 2
	boardH     = tetris.Rows + 2
	panelGap   = 2
	panelWidth = 14

	// MinWidth and MinHeight are the smallest screen Render can use.
	MinWidth  = boardW + panelGap + panelWidth
	MinHeight = boardH
)

var kindColors = map[tetris.Cell]core.Color{
	tetris.Cell(tetris.KindI): core.ColorCyan,
	tetris.Cell(tetris.KindO): core.ColorYellow,
	tetris.Cell(tetris.KindT): core.ColorMagenta,
	tetris.Cell(tetris.KindL): core.ColorOrange,
	tetris.Cell(tetris.KindJ): core.ColorBlue,
	tetris.Cell(tetris.KindS): core.ColorGreen,
	tetris.Cell(tetris.KindZ): core.ColorRed,
	tetris.CellJunk:           core.ColorGray,
}

// CellColor returns the display color for a board cell value.
func CellColor(c tetris.Cell) core.Color {
	if col, ok := kindColors[c]; ok {
		return col
	}
	return core.ColorDefault
}

// Render draws the board, the waiting current piece, the next-piece preview
// and the running totals, centered on dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	x0 := (dst.Width() - MinWidth) / 2
	y0 := (dst.Height() - MinHeight) / 2
	board := core.NewRect(x0, y0, boardW, boardH)
	dst.DrawBox(board, core.ColorGray)

	inner := board.Inset(1)
	for y := range tetris.Rows {
		for x := range tetris.Cols {
			if c := g.grid[y][x]; c != tetris.CellEmpty {
				drawBlock(dst, inner.X+x*cellWidth, inner.Y+y, CellColor(c))
			}
		}
	}
	if !g.over {
		drawPiece(dst, inner.X, inner.Y, g.current)
	}

	px := board.Right() + panelGap
	dst.DrawText(px, y0, "NEXT")
	preview := g.next
	preview.X, preview.Y = 0, 0
	drawPiece(dst, px, y0+1, preview)

	s := g.Stats()
	lines := []string{
		fmt.Sprintf("Score  %d", s.Score),
		fmt.Sprintf("Lines  %d", s.Lines),
		fmt.Sprintf("Level  %d", s.Level),
		fmt.Sprintf("Pieces %d", s.Pieces),
	}
	if s.JunkLines > 0 {
		lines = append(lines, fmt.Sprintf("Junk   %d", s.JunkLines))
	}
	for i, l := range lines {
		dst.DrawText(px, y0+6+i, l)
	}

	if g.over {
		msg := " GAME OVER "
		dst.DrawTextColor(board.X+(board.W-len(msg))/2, board.Y+board.H/2, msg, core.ColorRed)
	}
}

func drawPiece(dst *core.Screen, ox, oy int, p tetris.Piece) {
	color := CellColor(tetris.Cell(p.Kind))
	p.Shape.Cells(func(row, col int) {
		y := p.Y + row
		if y < 0 {
			return
		}
		drawBlock(dst, ox+(p.X+col)*cellWidth, oy+y, color)
	})
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetColor(x, y, '█', c)
	dst.SetColor(x+1, y, '█', c)
}
