// Package tetris2048 implements a falling-block puzzle that mixes Tetris line
// clears with 2048 tile merges. Locked tiles live in a Grid whose resolution
// pipeline merges equal vertical pairs, clears full rows and lets unsupported
// tiles fall until the board is stable.
package tetris2048

// Canonical board dimensions.
const (
	DefaultWidth  = 12
	DefaultHeight = 20
)

// Geometry holds the board dimensions. It is created once and handed to every
// component by value, so no component can change the board size of another.
type Geometry struct {
	Width  int
	Height int
}

// DefaultGeometry returns the canonical 12x20 board.
func DefaultGeometry() Geometry {
	return Geometry{Width: DefaultWidth, Height: DefaultHeight}
}

// Area returns the number of cells on the board.
func (g Geometry) Area() int {
	return g.Width * g.Height
}

// Contains reports whether (x, y) lies on the board.
func (g Geometry) Contains(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Point is a board coordinate. X grows to the right, Y grows upward with
// row 0 at the bottom of the board.
type Point struct {
	X int
	Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Direction is a translation a tetromino may attempt.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirDown
)

// Delta returns the (dx, dy) translation for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	default:
		return 0, 0
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}
