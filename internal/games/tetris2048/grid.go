package tetris2048

import "github.com/vovakirdan/tetris2048/internal/games/tetris2048/labeling"

// Grid is the board of locked tiles. The matrix is indexed [row][col] with
// row 0 at the bottom; every non-nil slot owns exactly one live tile.
type Grid struct {
	geom     Geometry
	matrix   [][]*Tile
	score    int
	gameOver bool
}

// Resolution summarizes what happened while a locked piece was resolved.
type Resolution struct {
	Merges      int  // Equal pairs merged
	RowsCleared int  // Full rows removed
	Falls       int  // Gravity steps applied
	Passes      int  // Pipeline passes run, including the final quiet one
	Points      int  // Score gained
	GameOver    bool // The piece locked above the top of the board
}

// Changed reports whether the pipeline modified the board.
func (r Resolution) Changed() bool {
	return r.Merges > 0 || r.RowsCleared > 0 || r.Falls > 0
}

// NewGrid creates an empty grid.
func NewGrid(geom Geometry) *Grid {
	g := &Grid{
		geom:   geom,
		matrix: make([][]*Tile, geom.Height),
	}
	for row := range g.matrix {
		g.matrix[row] = make([]*Tile, geom.Width)
	}
	return g
}

// Geometry returns the board dimensions.
func (g *Grid) Geometry() Geometry {
	return g.geom
}

// Score returns the accumulated score.
func (g *Grid) Score() int {
	return g.score
}

// GameOver reports whether a piece has locked above the top.
func (g *Grid) GameOver() bool {
	return g.gameOver
}

// IsInside reports whether (x, y) is on the board.
func (g *Grid) IsInside(x, y int) bool {
	return g.geom.Contains(x, y)
}

// IsOccupied reports whether (x, y) holds a tile. Cells off the board are
// never occupied.
func (g *Grid) IsOccupied(x, y int) bool {
	return g.At(x, y) != nil
}

// At returns the tile at (x, y), or nil.
func (g *Grid) At(x, y int) *Tile {
	if !g.IsInside(x, y) {
		return nil
	}
	return g.matrix[y][x]
}

// TileCount returns the number of locked tiles.
func (g *Grid) TileCount() int {
	n := 0
	for _, line := range g.matrix {
		for _, tile := range line {
			if tile != nil {
				n++
			}
		}
	}
	return n
}

// Values returns the tile numbers indexed [row][col], 0 for empty cells.
func (g *Grid) Values() [][]int {
	values := make([][]int, len(g.matrix))
	for row, line := range g.matrix {
		values[row] = make([]int, len(line))
		for col, tile := range line {
			if tile != nil {
				values[row][col] = tile.Number()
			}
		}
	}
	return values
}

// MaxTile returns the largest tile number on the board.
func (g *Grid) MaxTile() int {
	best := 0
	for _, line := range g.matrix {
		for _, tile := range line {
			if tile != nil && tile.Number() > best {
				best = tile.Number()
			}
		}
	}
	return best
}

// UpdateGrid locks tiles into the matrix. tiles is drawn top row first and
// anchor is the board coordinate of its bottom-left cell. A tile that lands
// above the top sets game over; the remaining tiles are still placed. It
// never merges or clears and returns the game over flag.
func (g *Grid) UpdateGrid(tiles [][]*Tile, anchor Point) bool {
	rows := len(tiles)
	for row, line := range tiles {
		for col, tile := range line {
			if tile == nil {
				continue
			}
			p := Point{X: anchor.X + col, Y: anchor.Y + (rows - 1) - row}
			if g.IsInside(p.X, p.Y) {
				tile.SetPosition(p)
				g.matrix[p.Y][p.X] = tile
			} else {
				g.gameOver = true
			}
		}
	}
	return g.gameOver
}

// ApplyMerge scans each column from the bottom and merges equal vertical
// pairs into the lower tile. After a merge the scan skips the emptied slot,
// so three equal stacked tiles only merge the bottom pair in one call.
func (g *Grid) ApplyMerge() bool {
	return g.applyMerge() > 0
}

func (g *Grid) applyMerge() int {
	merges := 0
	for col := 0; col < g.geom.Width; col++ {
		for row := 0; row < g.geom.Height-1; row++ {
			lower, upper := g.matrix[row][col], g.matrix[row+1][col]
			if lower == nil || upper == nil || lower.Number() != upper.Number() {
				continue
			}
			lower.SetNumber(lower.Number() * 2)
			g.score += lower.Number()
			g.matrix[row+1][col] = nil
			merges++
			row++
		}
	}
	return merges
}

// IsFull reports whether every column of row holds a tile.
func (g *Grid) IsFull(row int) bool {
	if row < 0 || row >= g.geom.Height {
		return false
	}
	for _, tile := range g.matrix[row] {
		if tile == nil {
			return false
		}
	}
	return true
}

// ClearFullRows removes full rows until none is left. Each cleared row adds
// the sum of its tile numbers to the score, the rows above shift down and an
// empty row enters at the top. It returns the number of rows cleared and the
// points they were worth.
func (g *Grid) ClearFullRows() (rows, points int) {
	for {
		full := -1
		for row := 0; row < g.geom.Height; row++ {
			if g.IsFull(row) {
				full = row
				break
			}
		}
		if full < 0 {
			break
		}

		for _, tile := range g.matrix[full] {
			points += tile.Number()
		}
		g.removeRow(full)
		rows++
	}
	g.score += points
	return rows, points
}

func (g *Grid) removeRow(row int) {
	for r := row; r < g.geom.Height-1; r++ {
		g.matrix[r] = g.matrix[r+1]
		for _, tile := range g.matrix[r] {
			if tile != nil {
				tile.Move(0, -1)
			}
		}
	}
	g.matrix[g.geom.Height-1] = make([]*Tile, g.geom.Width)
}

// ApplyGravity lets every component that does not touch the floor fall one
// row at a time until all components are grounded. It returns the number of
// steps taken.
func (g *Grid) ApplyGravity() int {
	steps := 0
	for {
		labels := labeling.Label(g.geom.Height, g.geom.Width, func(row, col int) bool {
			return g.matrix[row][col] != nil
		})
		if labels.FreeCount() == 0 {
			return steps
		}

		free := labels.Free()
		// Bottom-up, so the slot below a free cell is already vacated.
		for row := 1; row < g.geom.Height; row++ {
			for col := 0; col < g.geom.Width; col++ {
				if free[row][col] {
					g.relocate(col, row, row-1)
				}
			}
		}
		steps++
	}
}

// relocate moves the tile at (x, from) into (x, to) and empties the old slot.
func (g *Grid) relocate(x, from, to int) {
	tile := g.matrix[from][x]
	g.matrix[from][x] = nil
	tile.Move(0, to-from)
	g.matrix[to][x] = tile
}

// Resolve runs the pipeline on the current board: merge once, clear full
// rows until none is left, then apply gravity until every tile is grounded.
// Passes repeat until one changes nothing, which leaves no equal vertical
// pair, no full row and no floating tile behind.
func (g *Grid) Resolve() Resolution {
	var res Resolution
	start := g.score
	for {
		res.Passes++
		merges := g.applyMerge()
		rows, _ := g.ClearFullRows()
		falls := g.ApplyGravity()

		res.Merges += merges
		res.RowsCleared += rows
		res.Falls += falls
		if merges == 0 && rows == 0 && falls == 0 {
			break
		}
	}
	res.Points = g.score - start
	return res
}

// Lock transfers the landed tetromino's tiles to the grid and resolves the
// board. Nothing is resolved once the game is over.
func (g *Grid) Lock(t *Tetromino) Resolution {
	tiles, anchor := t.MinBoundedTileMatrix(true)
	if g.UpdateGrid(tiles, anchor) {
		return Resolution{GameOver: true}
	}
	return g.Resolve()
}
