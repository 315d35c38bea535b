package tetris2048

import (
	"testing"

	"github.com/vovakirdan/tetris2048/internal/games/tetris2048/labeling"
)

// place puts a tile with value n at (x, y).
func place(g *Grid, x, y, n int) {
	g.matrix[y][x] = NewTile(n, Point{X: x, Y: y})
}

// fillRow occupies every column of row y except the listed ones, alternating
// 2 and 4 so no horizontal or vertical neighbours are equal to each other.
func fillRow(g *Grid, y int, skip ...int) {
	for x := 0; x < g.geom.Width; x++ {
		skipped := false
		for _, s := range skip {
			if s == x {
				skipped = true
			}
		}
		if skipped {
			continue
		}
		n := 2
		if (x+y)%2 == 1 {
			n = 4
		}
		place(g, x, y, n)
	}
}

// assertResolved checks the board a finished pipeline leaves behind.
func assertResolved(t *testing.T, g *Grid) {
	t.Helper()
	geom := g.Geometry()

	for x := 0; x < geom.Width; x++ {
		for y := 0; y < geom.Height-1; y++ {
			lower, upper := g.At(x, y), g.At(x, y+1)
			if lower != nil && upper != nil && lower.Number() == upper.Number() {
				t.Errorf("equal vertical pair %d at (%d,%d)-(%d,%d)", lower.Number(), x, y, x, y+1)
			}
		}
	}
	for y := 0; y < geom.Height; y++ {
		if g.IsFull(y) {
			t.Errorf("row %d is still full", y)
		}
	}
	res := labeling.Label(geom.Height, geom.Width, func(row, col int) bool {
		return g.IsOccupied(col, row)
	})
	if n := res.FreeCount(); n != 0 {
		t.Errorf("%d free cells remain after gravity", n)
	}
	for y := 0; y < geom.Height; y++ {
		for x := 0; x < geom.Width; x++ {
			if tile := g.At(x, y); tile != nil && tile.Position() != (Point{X: x, Y: y}) {
				t.Errorf("tile in slot (%d,%d) reports position %v", x, y, tile.Position())
			}
		}
	}
}

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(DefaultGeometry())

	if g.TileCount() != 0 || g.Score() != 0 || g.GameOver() {
		t.Errorf("new grid: tiles=%d score=%d over=%v", g.TileCount(), g.Score(), g.GameOver())
	}
	if len(g.Values()) != DefaultHeight || len(g.Values()[0]) != DefaultWidth {
		t.Errorf("Values() is %dx%d, want %dx%d", len(g.Values()[0]), len(g.Values()), DefaultWidth, DefaultHeight)
	}
}

func TestIsInsideAndOccupied(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	place(g, 0, 0, 2)

	tests := []struct {
		x, y     int
		inside   bool
		occupied bool
	}{
		{0, 0, true, true},
		{1, 0, true, false},
		{-1, 0, false, false},
		{12, 0, false, false},
		{0, 20, false, false},
		{0, -1, false, false},
	}
	for _, tt := range tests {
		if got := g.IsInside(tt.x, tt.y); got != tt.inside {
			t.Errorf("IsInside(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.inside)
		}
		if got := g.IsOccupied(tt.x, tt.y); got != tt.occupied {
			t.Errorf("IsOccupied(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.occupied)
		}
	}
}

func TestUpdateGridPlacesTiles(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	tiles := [][]*Tile{
		{NewTile(2, Point{}), nil},
		{NewTile(4, Point{}), NewTile(8, Point{})},
	}

	if g.UpdateGrid(tiles, Point{X: 3, Y: 0}) {
		t.Fatal("UpdateGrid() reported game over on an empty board")
	}

	want := map[Point]int{{3, 1}: 2, {3, 0}: 4, {4, 0}: 8}
	for p, n := range want {
		tile := g.At(p.X, p.Y)
		if tile == nil || tile.Number() != n {
			t.Errorf("At(%d,%d) = %v, want %d", p.X, p.Y, tile, n)
			continue
		}
		if tile.Position() != p {
			t.Errorf("tile at %v reports position %v", p, tile.Position())
		}
	}
	if g.TileCount() != 3 {
		t.Errorf("TileCount() = %d, want 3", g.TileCount())
	}
	if g.Score() != 0 {
		t.Errorf("UpdateGrid must not score, got %d", g.Score())
	}
}

func TestUpdateGridAboveTopSetsGameOver(t *testing.T) {
	geom := DefaultGeometry()
	g := NewGrid(geom)
	tiles := [][]*Tile{
		{NewTile(2, Point{})},
		{NewTile(4, Point{})},
		{NewTile(8, Point{})},
	}

	// Bottom cell on the top row, the two above it outside the board.
	if !g.UpdateGrid(tiles, Point{X: 0, Y: geom.Height - 1}) {
		t.Fatal("UpdateGrid() should report game over")
	}
	if !g.GameOver() {
		t.Error("GameOver() should be true")
	}
	if tile := g.At(0, geom.Height-1); tile == nil || tile.Number() != 8 {
		t.Error("cells inside the board are still placed after game over")
	}
}

func TestUpdateGridNeverMerges(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	place(g, 0, 0, 2)

	g.UpdateGrid([][]*Tile{{NewTile(2, Point{})}}, Point{X: 0, Y: 1})

	if g.TileCount() != 2 {
		t.Errorf("TileCount() = %d, want 2", g.TileCount())
	}
}

func TestApplyMergeTwoStacked(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	place(g, 4, 0, 2)
	place(g, 4, 1, 2)

	if !g.ApplyMerge() {
		t.Fatal("ApplyMerge() = false, want true")
	}
	if tile := g.At(4, 0); tile == nil || tile.Number() != 4 {
		t.Errorf("lower cell = %v, want 4", tile)
	}
	if g.IsOccupied(4, 1) {
		t.Error("upper cell should be empty")
	}
	if g.Score() != 4 {
		t.Errorf("Score() = %d, want 4", g.Score())
	}
	if g.At(4, 0).Background != tileColors[4][0] {
		t.Error("merged tile should take the colour of its new value")
	}
}

func TestApplyMergeColumnScan(t *testing.T) {
	tests := []struct {
		name   string
		column []int // bottom first, 0 = empty
		want   []int
		score  int
		merged bool
	}{
		{"three stacked", []int{2, 2, 2}, []int{4, 0, 2}, 4, true},
		{"four stacked", []int{2, 2, 2, 2}, []int{4, 0, 4, 0}, 8, true},
		{"upper pair only", []int{8, 4, 4}, []int{8, 8, 0}, 8, true},
		{"result not rescanned", []int{4, 2, 2}, []int{4, 4, 0}, 4, true},
		{"different values", []int{2, 4, 8}, []int{2, 4, 8}, 0, false},
		{"gap between equals", []int{2, 0, 2}, []int{2, 0, 2}, 0, false},
		{"floating pair", []int{0, 0, 16, 16}, []int{0, 0, 32, 0}, 32, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(DefaultGeometry())
			for y, n := range tt.column {
				if n != 0 {
					place(g, 7, y, n)
				}
			}
			before := g.TileCount()

			merged := g.ApplyMerge()
			if merged != tt.merged {
				t.Errorf("ApplyMerge() = %v, want %v", merged, tt.merged)
			}
			for y, n := range tt.want {
				got := 0
				if tile := g.At(7, y); tile != nil {
					got = tile.Number()
				}
				if got != n {
					t.Errorf("row %d = %d, want %d", y, got, n)
				}
			}
			if g.Score() != tt.score {
				t.Errorf("Score() = %d, want %d", g.Score(), tt.score)
			}
			if removed, want := before-g.TileCount(), countMerges(tt.column, tt.want); removed != want {
				t.Errorf("removed %d tiles, want one per merge (%d)", removed, want)
			}
		})
	}
}

// countMerges is the number of tiles that disappear between two columns.
func countMerges(before, after []int) int {
	n := 0
	for _, v := range before {
		if v != 0 {
			n++
		}
	}
	for _, v := range after {
		if v != 0 {
			n--
		}
	}
	return n
}

func TestApplyMergeIgnoresHorizontalPairs(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	place(g, 0, 0, 2)
	place(g, 1, 0, 2)

	if g.ApplyMerge() {
		t.Error("horizontal neighbours must not merge")
	}
}

func TestIsFull(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	fillRow(g, 0)
	fillRow(g, 1, 5)

	if !g.IsFull(0) {
		t.Error("IsFull(0) = false, want true")
	}
	if g.IsFull(1) {
		t.Error("IsFull(1) = true, want false")
	}
	if g.IsFull(-1) || g.IsFull(DefaultHeight) {
		t.Error("rows off the board are never full")
	}
}

func TestClearFullRowsSingle(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	fillRow(g, 0)
	place(g, 3, 1, 8)

	sum := 0
	for _, n := range g.Values()[0] {
		sum += n
	}

	rows, points := g.ClearFullRows()
	if rows != 1 {
		t.Errorf("rows cleared = %d, want 1", rows)
	}
	if points != sum || g.Score() != sum {
		t.Errorf("points = %d, score = %d, want %d", points, g.Score(), sum)
	}

	tile := g.At(3, 0)
	if tile == nil || tile.Number() != 8 {
		t.Fatalf("former row-1 tile should be at row 0, got %v", tile)
	}
	if tile.Position() != (Point{X: 3, Y: 0}) {
		t.Errorf("shifted tile position = %v, want {3 0}", tile.Position())
	}
	if g.TileCount() != 1 {
		t.Errorf("TileCount() = %d, want 1", g.TileCount())
	}
	for x := 0; x < DefaultWidth; x++ {
		if g.IsOccupied(x, DefaultHeight-1) {
			t.Errorf("top row should be empty, column %d occupied", x)
		}
	}
}

func TestClearFullRowsFixpoint(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	fillRow(g, 0)
	fillRow(g, 1)
	fillRow(g, 2, 0)
	fillRow(g, 3)

	rows, _ := g.ClearFullRows()
	if rows != 3 {
		t.Errorf("rows cleared = %d, want 3", rows)
	}
	if g.IsOccupied(0, 0) {
		t.Error("the gap of the partial row should now be at row 0")
	}
	if !g.IsOccupied(1, 0) || g.IsOccupied(1, 1) {
		t.Error("only the partial row should remain, at the bottom")
	}

	if rows, points := g.ClearFullRows(); rows != 0 || points != 0 {
		t.Errorf("second call cleared %d rows for %d points, want none", rows, points)
	}
}

func TestApplyGravityDropsFloatingTile(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	tile := NewTile(16, Point{X: 2, Y: 6})
	g.matrix[6][2] = tile

	steps := g.ApplyGravity()
	if steps != 6 {
		t.Errorf("ApplyGravity() = %d, want 6", steps)
	}
	if g.At(2, 0) != tile {
		t.Fatal("the same tile should land on row 0")
	}
	if g.IsOccupied(2, 6) {
		t.Error("old slot should be cleared")
	}
	if tile.Position() != (Point{X: 2, Y: 0}) {
		t.Errorf("tile position = %v, want {2 0}", tile.Position())
	}
	assertResolved(t, g)
}

func TestApplyGravityKeepsGroundedComponents(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	place(g, 0, 0, 2)
	place(g, 0, 1, 4)
	place(g, 1, 1, 8) // hangs off the grounded column

	if steps := g.ApplyGravity(); steps != 0 {
		t.Errorf("ApplyGravity() = %d, want 0", steps)
	}
	if !g.IsOccupied(1, 1) {
		t.Error("tile connected to a grounded component must not fall")
	}
}

func TestApplyGravityStackedFreeComponents(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	place(g, 5, 0, 2)
	// An overhang resting on nothing, with another piece floating above it.
	place(g, 6, 3, 4)
	place(g, 7, 3, 8)
	place(g, 7, 6, 16)

	g.ApplyGravity()

	if !g.IsOccupied(6, 0) || !g.IsOccupied(7, 0) {
		t.Error("the overhang should land on the floor")
	}
	if tile := g.At(7, 1); tile == nil || tile.Number() != 16 {
		t.Errorf("the upper tile should land on the overhang, got %v", tile)
	}
	if g.TileCount() != 4 {
		t.Errorf("TileCount() = %d, want 4", g.TileCount())
	}
	assertResolved(t, g)
}

func TestResolveSinglePieceScenario(t *testing.T) {
	geom := DefaultGeometry()
	g := NewGrid(geom)

	tm := NewTetromino(TypeO, Point{X: 5, Y: geom.Height - 1}, two)
	tm.HardDrop(g)
	tiles, anchor := tm.MinBoundedTileMatrix(true)

	if g.UpdateGrid(tiles, anchor) {
		t.Fatal("game over after a single piece")
	}
	for _, p := range []Point{{5, 0}, {6, 0}, {5, 1}, {6, 1}} {
		if tile := g.At(p.X, p.Y); tile == nil || tile.Number() != 2 {
			t.Errorf("At(%d,%d) = %v, want 2", p.X, p.Y, tile)
		}
	}
	if g.Score() != 0 {
		t.Errorf("Score() after lock = %d, want 0", g.Score())
	}

	// Both columns hold a vertical pair of 2s.
	res := g.Resolve()
	if res.Merges != 2 || res.Points != 8 || g.Score() != 8 {
		t.Errorf("Resolve() = %+v, score %d, want 2 merges for 8 points", res, g.Score())
	}
	if g.At(5, 0).Number() != 4 || g.At(6, 0).Number() != 4 {
		t.Error("row 0 should hold two 4s")
	}
	if g.IsOccupied(5, 1) || g.IsOccupied(6, 1) {
		t.Error("row 1 should be empty")
	}
	assertResolved(t, g)
}

func TestLockMergeClearGravity(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	fillRow(g, 0, 11)

	eight := func() int { return 8 }
	tm := NewTetromino(TypeI, Point{X: 10, Y: 10}, eight)
	tm.HardDrop(g)

	res := g.Lock(tm)

	// The I merges into two 16s, the bottom one completes row 0 and the
	// row is cleared. The remaining 16 falls to the floor.
	if res.Merges != 2 {
		t.Errorf("Merges = %d, want 2", res.Merges)
	}
	if res.RowsCleared != 1 {
		t.Errorf("RowsCleared = %d, want 1", res.RowsCleared)
	}
	if res.Falls != 1 {
		t.Errorf("Falls = %d, want 1", res.Falls)
	}
	if res.Passes != 2 {
		t.Errorf("Passes = %d, want 2", res.Passes)
	}
	// 16+16 from merges, 2*6 + 4*5 + 16 from the cleared row.
	if want := 32 + 48; res.Points != want || g.Score() != want {
		t.Errorf("Points = %d, score = %d, want %d", res.Points, g.Score(), want)
	}
	if g.TileCount() != 1 {
		t.Errorf("TileCount() = %d, want 1", g.TileCount())
	}
	if tile := g.At(11, 0); tile == nil || tile.Number() != 16 {
		t.Errorf("At(11,0) = %v, want 16", tile)
	}
	assertResolved(t, g)
}

func TestResolveRepeatsUntilStable(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	// A floating 4 above a grounded 4: gravity brings them together and the
	// next pass merges them.
	place(g, 0, 0, 4)
	place(g, 0, 3, 4)

	res := g.Resolve()
	if res.Merges != 1 || g.Score() != 8 {
		t.Errorf("Resolve() = %+v, score %d, want one merge for 8", res, g.Score())
	}
	if tile := g.At(0, 0); tile == nil || tile.Number() != 8 {
		t.Errorf("At(0,0) = %v, want 8", tile)
	}
	if !res.Changed() {
		t.Error("Changed() = false, want true")
	}
	assertResolved(t, g)

	if quiet := g.Resolve(); quiet.Changed() || quiet.Passes != 1 {
		t.Errorf("resolving a stable board = %+v, want one quiet pass", quiet)
	}
}

func TestLockAboveTopStops(t *testing.T) {
	geom := DefaultGeometry()
	g := NewGrid(geom)
	for y := 0; y < geom.Height; y++ {
		place(g, 0, y, 2<<(y%2))
		place(g, 1, y, 2<<((y+1)%2))
	}
	score := g.Score()

	tm := NewTetromino(TypeO, Point{X: 0, Y: geom.Height - 1}, two)
	res := g.Lock(tm)

	if !res.GameOver || !g.GameOver() {
		t.Fatal("locking above the top should end the game")
	}
	if res.Changed() || g.Score() != score {
		t.Error("nothing is resolved after game over")
	}
}

func TestMaxTile(t *testing.T) {
	g := NewGrid(DefaultGeometry())
	if g.MaxTile() != 0 {
		t.Errorf("MaxTile() = %d, want 0", g.MaxTile())
	}
	place(g, 0, 0, 8)
	place(g, 1, 0, 128)
	place(g, 2, 0, 2)
	if g.MaxTile() != 128 {
		t.Errorf("MaxTile() = %d, want 128", g.MaxTile())
	}
}
