package tetris

import "fmt"

// Kind identifies a tetromino. The numeric value is the cell value written
// into the grid when the piece locks, so it doubles as a color index.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindL
	KindJ
	KindS
	KindZ
)

// NumKinds is the number of catalogued tetrominoes.
const NumKinds = 7

// shapes holds the spawn orientation of every kind, indexed by Kind-1.
var shapes = [NumKinds]Shape{
	NewShape([][]int{{1, 1, 1, 1}}),
	NewShape([][]int{{1, 1}, {1, 1}}),
	NewShape([][]int{{1, 1, 1}, {0, 1, 0}}),
	NewShape([][]int{{1, 1, 1}, {1, 0, 0}}),
	NewShape([][]int{{1, 1, 1}, {0, 0, 1}}),
	NewShape([][]int{{1, 1, 0}, {0, 1, 1}}),
	NewShape([][]int{{0, 1, 1}, {1, 1, 0}}),
}

var kindNames = [NumKinds]string{"I", "O", "T", "L", "J", "S", "Z"}

// AllKinds returns every catalogued kind in catalogue order.
func AllKinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindL, KindJ, KindS, KindZ}
}

// Valid reports whether k is one of the catalogued kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindZ
}

// Shape returns the spawn orientation for k, or an empty shape for an
// unknown kind.
func (k Kind) Shape() Shape {
	if !k.Valid() {
		return Shape{}
	}
	return shapes[k-1]
}

// String returns the conventional single-letter name.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k-1]
}

// Piece is a shape anchored at (X, Y) in grid coordinates. Y may be negative
// while a piece is still partially above the board.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// NewPiece returns a piece of kind k in spawn orientation at (x, y).
func NewPiece(k Kind, x, y int) Piece {
	return Piece{Kind: k, Shape: k.Shape(), X: x, Y: y}
}

// SpawnPiece returns a piece of kind k at the standard spawn position.
func SpawnPiece(k Kind) Piece {
	return NewPiece(k, SpawnX, 0)
}

// Rotated returns a copy of p turned n quarter-turns clockwise.
func (p Piece) Rotated(n int) Piece {
	p.Shape = p.Shape.RotateN(n)
	return p
}

// Moved returns a copy of p translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}
