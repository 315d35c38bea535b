package tetris2048

import "github.com/vovakirdan/tetris2048/internal/core"

// tileColors maps every power of two from 2 to 2048 to its background and
// foreground colour.
var tileColors = map[int][2]core.Color{
	2:    {core.ColorTile2, core.ColorTileText},
	4:    {core.ColorTile4, core.ColorTileText},
	8:    {core.ColorTile8, core.ColorTileTextLight},
	16:   {core.ColorTile16, core.ColorTileTextLight},
	32:   {core.ColorTile32, core.ColorTileTextLight},
	64:   {core.ColorTile64, core.ColorTileTextLight},
	128:  {core.ColorTile128, core.ColorTileTextLight},
	256:  {core.ColorTile256, core.ColorTileTextLight},
	512:  {core.ColorTile512, core.ColorTileTextLight},
	1024: {core.ColorTile1024, core.ColorTileTextLight},
	2048: {core.ColorTile2048, core.ColorTileTextLight},
}

// Tile is a single numbered block. While a tile is live its number is a
// positive power of two. A tile is removed by clearing the slot that holds
// it, never by zeroing its number.
type Tile struct {
	number     int
	position   Point
	Background core.Color
	Foreground core.Color
}

// NewTile creates a tile with the given value at pos.
func NewTile(number int, pos Point) *Tile {
	t := &Tile{
		position:   pos,
		Background: core.ColorGray,
		Foreground: core.ColorWhite,
	}
	t.SetNumber(number)
	return t
}

// Number returns the tile value.
func (t *Tile) Number() int {
	return t.number
}

// SetNumber changes the tile value and recolours it. Values outside the
// palette keep their previous colours.
func (t *Tile) SetNumber(n int) {
	t.number = n
	if c, ok := tileColors[n]; ok {
		t.Background = c[0]
		t.Foreground = c[1]
	}
}

// Position returns the tile's board position.
func (t *Tile) Position() Point {
	return t.position
}

// SetPosition places the tile at p.
func (t *Tile) SetPosition(p Point) {
	t.position = p
}

// Move translates the tile. Callers are responsible for keeping it on the board.
func (t *Tile) Move(dx, dy int) {
	t.position = t.position.Add(dx, dy)
}

// clone returns an independent copy of the tile.
func (t *Tile) clone() *Tile {
	c := *t
	return &c
}
