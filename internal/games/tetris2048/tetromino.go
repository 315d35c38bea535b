package tetris2048

// Type identifies one of the seven tetromino shapes.
type Type int

const (
	TypeI Type = iota
	TypeO
	TypeZ
	TypeL
	TypeJ
	TypeS
	TypeT
)

// AllTypes lists every tetromino type in canonical order.
var AllTypes = []Type{TypeI, TypeO, TypeZ, TypeL, TypeJ, TypeS, TypeT}

// String returns the single-letter name of the type.
func (t Type) String() string {
	switch t {
	case TypeI:
		return "I"
	case TypeO:
		return "O"
	case TypeZ:
		return "Z"
	case TypeL:
		return "L"
	case TypeJ:
		return "J"
	case TypeS:
		return "S"
	case TypeT:
		return "T"
	default:
		return "?"
	}
}

// ParseType converts a single-letter name into a Type.
func ParseType(s string) (Type, bool) {
	for _, t := range AllTypes {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// ParseSequence converts a string of piece letters such as "IOT" into types.
// Unknown letters are skipped.
func ParseSequence(s string) []Type {
	var seq []Type
	for _, r := range s {
		if t, ok := ParseType(string(r)); ok {
			seq = append(seq, t)
		}
	}
	return seq
}

// shapes holds the local matrix of every type, drawn top row first.
var shapes = map[Type][]string{
	TypeI: {
		".#..",
		".#..",
		".#..",
		".#..",
	},
	TypeO: {
		"##",
		"##",
	},
	TypeZ: {
		"...",
		"##.",
		".##",
	},
	TypeL: {
		".#.",
		".#.",
		".##",
	},
	TypeJ: {
		".#.",
		".#.",
		"##.",
	},
	TypeS: {
		"...",
		".##",
		"##.",
	},
	TypeT: {
		"...",
		"###",
		".#.",
	},
}

// ShapeSize returns the side of the square local matrix for t.
func ShapeSize(t Type) int {
	return len(shapes[t])
}

// Tetromino is the falling piece. It owns its tiles until the grid locks it.
//
// The local matrix is square with row 0 at the top. The anchor is the board
// coordinate of the matrix's bottom-left cell, so local cell (row, col) sits
// at board (anchor.X+col, anchor.Y+n-1-row).
type Tetromino struct {
	kind     Type
	matrix   [][]*Tile
	position Point
}

// NewTetromino creates a tetromino of the given type anchored at pos. value is
// called once per occupied cell to pick the tile number.
func NewTetromino(kind Type, pos Point, value func() int) *Tetromino {
	shape := shapes[kind]
	n := len(shape)

	t := &Tetromino{
		kind:     kind,
		matrix:   make([][]*Tile, n),
		position: pos,
	}
	for row := range n {
		t.matrix[row] = make([]*Tile, n)
		for col := range n {
			if shape[row][col] == '#' {
				t.matrix[row][col] = NewTile(value(), t.cellPosition(row, col))
			}
		}
	}
	return t
}

// Type returns the shape of the tetromino.
func (t *Tetromino) Type() Type {
	return t.kind
}

// Position returns the anchor of the local matrix.
func (t *Tetromino) Position() Point {
	return t.position
}

// Size returns the side of the local matrix.
func (t *Tetromino) Size() int {
	return len(t.matrix)
}

// TileAt returns the tile in local cell (row, col), or nil.
func (t *Tetromino) TileAt(row, col int) *Tile {
	if row < 0 || row >= len(t.matrix) || col < 0 || col >= len(t.matrix) {
		return nil
	}
	return t.matrix[row][col]
}

func (t *Tetromino) cellPosition(row, col int) Point {
	n := len(t.matrix)
	return Point{X: t.position.X + col, Y: t.position.Y + (n - 1) - row}
}

// Each calls fn for every tile the tetromino owns with its board position.
func (t *Tetromino) Each(fn func(p Point, tile *Tile)) {
	for row, line := range t.matrix {
		for col, tile := range line {
			if tile != nil {
				fn(t.cellPosition(row, col), tile)
			}
		}
	}
}

// Cells returns the board positions of all occupied cells.
func (t *Tetromino) Cells() []Point {
	cells := make([]Point, 0, 4)
	t.Each(func(p Point, _ *Tile) {
		cells = append(cells, p)
	})
	return cells
}

// fits reports whether every occupied cell of matrix, anchored at pos, is
// within the horizontal bounds, not below the floor and not on an occupied
// cell. Cells above the top of the board are allowed.
func fits(matrix [][]*Tile, pos Point, g *Grid) bool {
	n := len(matrix)
	geom := g.Geometry()
	for row, line := range matrix {
		for col, tile := range line {
			if tile == nil {
				continue
			}
			x := pos.X + col
			y := pos.Y + (n - 1) - row
			if x < 0 || x >= geom.Width || y < 0 {
				return false
			}
			if y < geom.Height && g.IsOccupied(x, y) {
				return false
			}
		}
	}
	return true
}

// CanBeMoved reports whether the tetromino can be translated in dir.
func (t *Tetromino) CanBeMoved(dir Direction, g *Grid) bool {
	dx, dy := dir.Delta()
	return fits(t.matrix, t.position.Add(dx, dy), g)
}

// Move translates the tetromino and its tiles in dir. It returns false and
// leaves the tetromino unchanged when the move is blocked. A blocked move
// down means the piece has landed.
func (t *Tetromino) Move(dir Direction, g *Grid) bool {
	if !t.CanBeMoved(dir, g) {
		return false
	}
	dx, dy := dir.Delta()
	t.position = t.position.Add(dx, dy)
	t.Each(func(_ Point, tile *Tile) {
		tile.Move(dx, dy)
	})
	return true
}

// Rotate turns the tetromino 90 degrees clockwise. The rotation is discarded
// when the turned shape would leave the board sideways, go below the floor
// or overlap a locked tile.
func (t *Tetromino) Rotate(g *Grid) bool {
	n := len(t.matrix)
	rotated := make([][]*Tile, n)
	for row := range n {
		rotated[row] = make([]*Tile, n)
		for col := range n {
			rotated[row][col] = t.matrix[n-1-col][row]
		}
	}

	if !fits(rotated, t.position, g) {
		return false
	}

	t.matrix = rotated
	for row, line := range t.matrix {
		for col, tile := range line {
			if tile != nil {
				tile.SetPosition(t.cellPosition(row, col))
			}
		}
	}
	return true
}

// HardDrop moves the tetromino down until it is blocked and returns the
// number of rows travelled.
func (t *Tetromino) HardDrop(g *Grid) int {
	rows := 0
	for t.Move(DirDown, g) {
		rows++
	}
	return rows
}

// Ghost returns the cells the tetromino would occupy if dropped now. The
// tetromino itself is not moved.
func (t *Tetromino) Ghost(g *Grid) []Point {
	shadow := t.Clone()
	shadow.HardDrop(g)
	return shadow.Cells()
}

// Clone returns a deep copy that owns its own tiles.
func (t *Tetromino) Clone() *Tetromino {
	c := &Tetromino{
		kind:     t.kind,
		matrix:   make([][]*Tile, len(t.matrix)),
		position: t.position,
	}
	for row, line := range t.matrix {
		c.matrix[row] = make([]*Tile, len(line))
		for col, tile := range line {
			if tile != nil {
				c.matrix[row][col] = tile.clone()
			}
		}
	}
	return c
}

// MinBoundedTileMatrix returns the tiles to lock and the board coordinate of
// the returned matrix's bottom-left cell. With dropEmpty the matrix is
// trimmed to the rows and columns that hold tiles; otherwise the full local
// matrix is returned.
func (t *Tetromino) MinBoundedTileMatrix(dropEmpty bool) ([][]*Tile, Point) {
	n := len(t.matrix)
	minRow, maxRow, minCol, maxCol := 0, n-1, 0, n-1

	if dropEmpty {
		minRow, maxRow, minCol, maxCol = n, -1, n, -1
		for row, line := range t.matrix {
			for col, tile := range line {
				if tile == nil {
					continue
				}
				minRow = min(minRow, row)
				maxRow = max(maxRow, row)
				minCol = min(minCol, col)
				maxCol = max(maxCol, col)
			}
		}
		if maxRow < 0 {
			return nil, t.position
		}
	}

	tiles := make([][]*Tile, maxRow-minRow+1)
	for row := minRow; row <= maxRow; row++ {
		tiles[row-minRow] = make([]*Tile, maxCol-minCol+1)
		copy(tiles[row-minRow], t.matrix[row][minCol:maxCol+1])
	}
	return tiles, t.cellPosition(maxRow, minCol)
}
