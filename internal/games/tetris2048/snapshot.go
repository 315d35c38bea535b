package tetris2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// PieceSnapshot describes a tetromino.
type PieceSnapshot struct {
	Type     string
	Position Point
	Cells    []Point
	Values   []int
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Score     int
	HighScore int
	Board     [][]int // [row][col], row 0 at the bottom
	MaxTile   int
	Current   *PieceSnapshot
	Next      *PieceSnapshot
	Stats     Stats
	State     GameStateType
}

func snapshotPiece(t *Tetromino) *PieceSnapshot {
	if t == nil {
		return nil
	}
	ps := &PieceSnapshot{
		Type:     t.Type().String(),
		Position: t.Position(),
	}
	t.Each(func(p Point, tile *Tile) {
		ps.Cells = append(ps.Cells, p)
		ps.Values = append(ps.Values, tile.Number())
	})
	return ps
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.isOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	var board [][]int
	if g.grid != nil {
		board = g.grid.Values()
	}

	return Snapshot{
		Tick:      g.tick,
		Score:     g.Score(),
		HighScore: g.HighScore(),
		Board:     board,
		MaxTile:   g.MaxTile(),
		Current:   snapshotPiece(g.current),
		Next:      snapshotPiece(g.next),
		Stats:     g.stats,
		State:     state,
	}
}
