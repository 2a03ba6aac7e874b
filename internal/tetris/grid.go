package tetris

import "strings"

// Board dimensions. The grid contract is fixed; nothing resizes it.
const (
	Rows = 20
	Cols = 10
)

// SpawnX is the anchor column new pieces appear at.
const SpawnX = Cols/2 - 1

// Cell is a single grid value: 0 is empty, 1..7 a piece identity, CellJunk
// an opponent-inserted block. Any non-zero value counts as occupied.
type Cell uint8

const (
	CellEmpty Cell = 0
	CellJunk  Cell = 8
)

// Grid is the playfield, row 0 at the top. It is a plain array so that
// assignment is a deep copy.
type Grid [Rows][Cols]Cell

// GridFromRows converts a caller-supplied matrix into a Grid.
// Cells outside Rows×Cols are ignored and negative values read as empty.
func GridFromRows(rows [][]int) Grid {
	var g Grid
	for y := 0; y < len(rows) && y < Rows; y++ {
		for x := 0; x < len(rows[y]) && x < Cols; x++ {
			if v := rows[y][x]; v > 0 {
				g[y][x] = Cell(min(v, 255))
			}
		}
	}
	return g
}

// ToRows returns the grid as a freshly allocated matrix.
func (g *Grid) ToRows() [][]int {
	out := make([][]int, Rows)
	for y := range Rows {
		out[y] = make([]int, Cols)
		for x := range Cols {
			out[y][x] = int(g[y][x])
		}
	}
	return out
}

// InBounds reports whether (x, y) is inside the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}

// Filled reports whether the cell at (x, y) is occupied.
// Out-of-bounds coordinates are reported empty.
func (g *Grid) Filled(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	return g[y][x] != CellEmpty
}

// RowFull reports whether every cell of row y is occupied.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= Rows {
		return false
	}
	for x := range Cols {
		if g[y][x] == CellEmpty {
			return false
		}
	}
	return true
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for y := range Rows {
		for x := range Cols {
			if g[y][x] != CellEmpty {
				n++
			}
		}
	}
	return n
}

// String renders the grid with '.' for empty cells, 'X' for junk and the
// piece letter otherwise.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((Cols + 1) * Rows)
	for y := range Rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range Cols {
			switch c := g[y][x]; {
			case c == CellEmpty:
				sb.WriteByte('.')
			case Kind(c).Valid():
				sb.WriteString(Kind(c).String())
			default:
				sb.WriteByte('X')
			}
		}
	}
	return sb.String()
}
