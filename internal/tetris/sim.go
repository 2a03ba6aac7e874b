package tetris

// Collides reports whether p, offset by (dx, dy), overlaps a wall, the floor
// or an occupied cell. Cells above the board (row < 0) never collide so that
// pieces can spawn partially off-board.
func Collides(g *Grid, p Piece, dx, dy int) bool {
	hit := false
	p.Shape.Cells(func(row, col int) {
		if hit {
			return
		}
		x := p.X + col + dx
		y := p.Y + row + dy
		switch {
		case x < 0 || x >= Cols:
			hit = true
		case y >= Rows:
			hit = true
		case y >= 0 && g[y][x] != CellEmpty:
			hit = true
		}
	})
	return hit
}

// Place writes p's identity into every occupied in-board cell. Cells above
// the board are dropped silently.
func Place(g *Grid, p Piece) {
	v := Cell(p.Kind)
	if v == CellEmpty {
		// A kindless piece still has to occupy its cells.
		v = CellJunk
	}
	p.Shape.Cells(func(row, col int) {
		x := p.X + col
		y := p.Y + row
		if InBounds(x, y) {
			g[y][x] = v
		}
	})
}

// ClearLines removes full rows and returns how many were removed.
//
// Rows are scanned once by increasing index. A full row is removed, an
// empty row is inserted at the top, and the scan continues with the next
// index without re-inspecting the row that shifted into the cleared slot.
func ClearLines(g *Grid) int {
	cleared := 0
	for y := 0; y < Rows; y++ {
		if !g.RowFull(y) {
			continue
		}
		for yy := y; yy > 0; yy-- {
			g[yy] = g[yy-1]
		}
		g[0] = [Cols]Cell{}
		cleared++
	}
	return cleared
}

// Drop moves p straight down until the next step would collide and returns
// the resting piece.
func Drop(g *Grid, p Piece) Piece {
	if p.Shape.Size() == 0 {
		return p
	}
	for !Collides(g, p, 0, 1) {
		p.Y++
	}
	return p
}

// Lock places p on a copy of g, clears full rows, and returns the new grid
// together with the number of rows cleared.
func Lock(g Grid, p Piece) (Grid, int) {
	Place(&g, p)
	lines := ClearLines(&g)
	return g, lines
}
