// Package tetris models the falling-block board: the shape catalogue, the
// fixed-size grid, and the pure collision, placement and line-clear functions
// shared by the decision engine and the reference game.
//
// Everything here is a value type. Grids and pieces are copied by assignment,
// so a simulation never aliases the caller's state.
package tetris

import "strings"

// MaxShapeSize bounds the bounding box of any catalogued shape.
const MaxShapeSize = 4

// Shape is a rectangular boolean matrix of at most 4x4 cells.
// Cells outside h×w are always false, which keeps Shape comparable with ==.
type Shape struct {
	h, w  int
	cells [MaxShapeSize][MaxShapeSize]bool
}

// NewShape builds a shape from rows of 0/1 values.
// Rows or columns beyond MaxShapeSize are ignored.
func NewShape(rows [][]int) Shape {
	var s Shape
	s.h = min(len(rows), MaxShapeSize)
	for r := 0; r < s.h; r++ {
		s.w = max(s.w, min(len(rows[r]), MaxShapeSize))
	}
	for r := 0; r < s.h; r++ {
		for c := 0; c < len(rows[r]) && c < MaxShapeSize; c++ {
			s.cells[r][c] = rows[r][c] != 0
		}
	}
	return s
}

// Height returns the number of rows.
func (s Shape) Height() int { return s.h }

// Width returns the number of columns.
func (s Shape) Width() int { return s.w }

// At reports whether the cell at (row, col) is occupied.
// Out-of-range coordinates are empty.
func (s Shape) At(row, col int) bool {
	if row < 0 || row >= s.h || col < 0 || col >= s.w {
		return false
	}
	return s.cells[row][col]
}

// Rotate returns the shape turned 90° clockwise. An r×c shape becomes c×r
// with rotated[c][r-1-row] = shape[row][c].
func (s Shape) Rotate() Shape {
	out := Shape{h: s.w, w: s.h}
	for row := 0; row < s.h; row++ {
		for col := 0; col < s.w; col++ {
			out.cells[col][s.h-1-row] = s.cells[row][col]
		}
	}
	return out
}

// RotateN applies n clockwise quarter-turns one step at a time.
func (s Shape) RotateN(n int) Shape {
	for i := 0; i < n; i++ {
		s = s.Rotate()
	}
	return s
}

// Cells calls fn for every occupied (row, col) offset.
func (s Shape) Cells(fn func(row, col int)) {
	for row := 0; row < s.h; row++ {
		for col := 0; col < s.w; col++ {
			if s.cells[row][col] {
				fn(row, col)
			}
		}
	}
}

// Size returns the number of occupied cells.
func (s Shape) Size() int {
	n := 0
	s.Cells(func(_, _ int) { n++ })
	return n
}

// String renders the shape as rows of '#' and '.', mostly for test output.
func (s Shape) String() string {
	var sb strings.Builder
	for row := 0; row < s.h; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < s.w; col++ {
			if s.cells[row][col] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
