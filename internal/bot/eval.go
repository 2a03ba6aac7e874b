package bot

import (
	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/tetris"
)

// Metrics are the structural features of a board after a placement.
type Metrics struct {
	Heights      [tetris.Cols]int
	MaxHeight    int
	Holes        int
	Bumpiness    int
	LinesCleared int
	EdgeTouch    int
	WellDepth    int
	Overhang     int
}

// Measure computes the metrics of g, which must already have its full rows
// cleared; lines is the number of rows that clear removed.
func Measure(g *tetris.Grid, lines int) Metrics {
	m := Metrics{LinesCleared: lines}

	// Column heights and holes in one top-down pass per column.
	for x := range tetris.Cols {
		seen := false
		for y := range tetris.Rows {
			if g[y][x] != tetris.CellEmpty {
				if !seen {
					m.Heights[x] = tetris.Rows - y
					seen = true
				}
			} else if seen {
				m.Holes++
			}
		}
		m.MaxHeight = max(m.MaxHeight, m.Heights[x])
	}

	for x := 0; x < tetris.Cols-1; x++ {
		m.Bumpiness += abs(m.Heights[x] - m.Heights[x+1])
	}

	for y := range tetris.Rows {
		if g[y][0] != tetris.CellEmpty {
			m.EdgeTouch++
		}
		if g[y][tetris.Cols-1] != tetris.CellEmpty {
			m.EdgeTouch++
		}
	}

	// The walls count as full-height neighbors.
	for x := range tetris.Cols {
		left, right := tetris.Rows, tetris.Rows
		if x > 0 {
			left = m.Heights[x-1]
		}
		if x < tetris.Cols-1 {
			right = m.Heights[x+1]
		}
		h := m.Heights[x]
		if h < left-1 && h < right-1 {
			m.WellDepth += min(left, right) - h
		}
	}

	for y := 0; y < tetris.Rows-1; y++ {
		for x := 1; x < tetris.Cols-1; x++ {
			if g[y][x] == tetris.CellEmpty && g[y+1][x] == tetris.CellEmpty &&
				g[y][x-1] != tetris.CellEmpty && g[y][x+1] != tetris.CellEmpty {
				m.Overhang++
			}
		}
	}

	return m
}

// Score is the weighted sum of m under w. Higher is better.
func Score(w config.Weights, m Metrics) float64 {
	return w.Height*float64(m.MaxHeight) +
		w.Holes*float64(m.Holes) +
		w.Bumpiness*float64(m.Bumpiness) +
		w.CompleteLines*float64(m.LinesCleared) +
		w.EdgeTouch*float64(m.EdgeTouch) +
		w.WellDepth*float64(m.WellDepth) +
		w.Overhang*float64(m.Overhang)
}

// Evaluate measures and scores g in one step.
func Evaluate(w config.Weights, g *tetris.Grid, lines int) float64 {
	return Score(w, Measure(g, lines))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
