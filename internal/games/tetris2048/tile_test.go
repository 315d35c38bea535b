package tetris2048

import (
	"testing"

	"github.com/vovakirdan/tetris2048/internal/core"
)

func TestNewTileColors(t *testing.T) {
	tests := []struct {
		number int
		bg     core.Color
	}{
		{2, core.ColorTile2},
		{4, core.ColorTile4},
		{64, core.ColorTile64},
		{2048, core.ColorTile2048},
	}

	for _, tt := range tests {
		tile := NewTile(tt.number, Point{})
		if tile.Number() != tt.number {
			t.Errorf("Number() = %d, want %d", tile.Number(), tt.number)
		}
		if tile.Background != tt.bg {
			t.Errorf("NewTile(%d).Background = %d, want %d", tt.number, tile.Background, tt.bg)
		}
	}
}

func TestSetNumberOutsidePaletteKeepsColors(t *testing.T) {
	tile := NewTile(2048, Point{})
	tile.SetNumber(4096)

	if tile.Number() != 4096 {
		t.Errorf("Number() = %d, want 4096", tile.Number())
	}
	if tile.Background != core.ColorTile2048 {
		t.Errorf("Background = %d, want previous colour %d", tile.Background, core.ColorTile2048)
	}
}

func TestTileMove(t *testing.T) {
	tile := NewTile(2, Point{X: 3, Y: 4})
	tile.Move(-1, 2)

	if got := tile.Position(); got != (Point{X: 2, Y: 6}) {
		t.Errorf("Position() = %v, want {2 6}", got)
	}

	// No bounds checks.
	tile.Move(-10, -10)
	if got := tile.Position(); got != (Point{X: -8, Y: -4}) {
		t.Errorf("Position() = %v, want {-8 -4}", got)
	}

	tile.SetPosition(Point{X: 1, Y: 1})
	if got := tile.Position(); got != (Point{X: 1, Y: 1}) {
		t.Errorf("Position() = %v, want {1 1}", got)
	}
}
