// Package bot implements the placement-decision engine: move enumeration,
// board evaluation, one-piece lookahead search, and the background decision
// loop that proposes moves to the game that owns the real board.
package bot

import "github.com/vovakirdan/stackbot/internal/tetris"

// MinProbeColumn is the leftmost anchor column tried during enumeration.
// It sits left of the wall so shapes with empty leading columns can still
// reach column 0.
const MinProbeColumn = -2

// maxRotations bounds the quarter-turns tried per piece.
const maxRotations = 4

// Candidate is one placement: turn the piece clockwise Rotations times from
// its current orientation, move it to Column, and drop it.
type Candidate struct {
	Rotations int
	Column    int
}

// PossibleMoves lists every collision-free (rotation, column) for p on g,
// probing at row 0. Rotations stop when a quarter-turn leaves the shape
// unchanged, so only the O piece yields a single rotation state. Half-turn
// symmetric pieces keep all four states and repeat placements.
// An empty result means the piece has no legal spawn.
func PossibleMoves(g *tetris.Grid, p tetris.Piece) []Candidate {
	moves := make([]Candidate, 0, maxRotations*(tetris.Cols-MinProbeColumn))
	shape := p.Shape

	for rotation := 0; rotation < maxRotations; rotation++ {
		if rotation > 0 {
			prev := shape
			shape = shape.Rotate()
			if shape == prev {
				break
			}
		}

		trial := tetris.Piece{Kind: p.Kind, Shape: shape, Y: 0}
		for x := MinProbeColumn; x < tetris.Cols; x++ {
			trial.X = x
			if !tetris.Collides(g, trial, 0, 0) {
				moves = append(moves, Candidate{Rotations: rotation, Column: x})
			}
		}
	}
	return moves
}

// Simulate materializes c for p on a private copy of g: rotate, move to the
// target column at row 0, drop, lock and clear. It returns the resulting
// grid and the number of rows cleared.
func Simulate(g tetris.Grid, p tetris.Piece, c Candidate) (tetris.Grid, int) {
	trial := p.Rotated(c.Rotations)
	trial.X = c.Column
	trial.Y = 0
	trial = tetris.Drop(&g, trial)
	return tetris.Lock(g, trial)
}
