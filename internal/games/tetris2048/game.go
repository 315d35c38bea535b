package tetris2048

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vovakirdan/tetris2048/internal/config"
	"github.com/vovakirdan/tetris2048/internal/core"
	"github.com/vovakirdan/tetris2048/internal/registry"
	"github.com/vovakirdan/tetris2048/internal/telemetry"
)

// GameID is the registry and score-table identifier of the game.
const GameID = "tetris2048"

// Stats counts what happened during the current run.
type Stats struct {
	Pieces      int // Tetrominoes locked
	RowsCleared int
	Merges      int
	Falls       int // Gravity steps
}

// Game drives one run: the active and next tetromino, the grid, the speed
// tier and the pause state. It contains no I/O.
type Game struct {
	cfg        config.Tetris2048Config
	geom       Geometry
	rng        *rand.Rand
	supplier   Supplier
	fixed      Supplier // Supplier installed by SetSupplier, kept across resets
	sequence   []Type   // Piece order from the spawn config
	difficulty *config.DifficultyManager

	grid    *Grid
	current *Tetromino
	next    *Tetromino

	tick        uint64
	tickRate    int
	fallCounter int

	screenW int
	screenH int

	paused    bool
	tooSmall  bool
	toppedOut bool // The next piece had no room to spawn
	exited    bool // Player left through the pause menu

	highScore int
	last      Resolution
	stats     Stats
}

// New creates a game with the given configuration.
func New(cfg config.Tetris2048Config) *Game {
	g := &Game{}
	g.Configure(cfg)
	return g
}

func init() {
	registry.Register(GameID, func(opts registry.Options) registry.Game {
		cfg := opts.Config
		if cfg == (config.Tetris2048Config{}) {
			cfg = config.DefaultTetris2048Config()
		}
		if opts.Difficulty != "" {
			config.ApplyPreset(&cfg, opts.Difficulty)
		}
		return New(cfg)
	})
}

// Configure replaces the configuration. It takes effect on the next Reset.
func (g *Game) Configure(cfg config.Tetris2048Config) {
	g.cfg = cfg
	g.geom = Geometry{Width: cfg.Board.Width, Height: cfg.Board.Height}
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty, cfg.Speed)
	g.sequence = ParseSequence(cfg.Spawn.Sequence)
}

// Config returns the active configuration.
func (g *Game) Config() config.Tetris2048Config {
	return g.cfg
}

// SetSupplier makes every following Reset draw shapes from s instead of the
// seeded random supplier.
func (g *Game) SetSupplier(s Supplier) {
	g.fixed = s
}

// SetHighScore sets the best score to display next to the current one.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// HighScore returns the best known score, including the current run.
func (g *Game) HighScore() int {
	return max(g.highScore, g.Score())
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris 2048"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	switch {
	case g.fixed != nil:
		g.supplier = g.fixed
	case len(g.sequence) > 0:
		g.supplier = NewSequenceSupplier(g.sequence...)
	default:
		g.supplier = NewRandomSupplier(g.rng)
	}

	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.fallCounter = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.toppedOut = false
	g.exited = false
	g.last = Resolution{}
	g.stats = Stats{}

	g.grid = NewGrid(g.geom)
	g.current = g.spawn()
	g.next = g.spawn()

	g.checkScreenSize()
}

// spawn creates the next tetromino at a random column with its anchor on
// the top row.
func (g *Game) spawn() *Tetromino {
	kind := g.supplier.Next()
	n := ShapeSize(kind)
	col := g.rng.Intn(max(g.geom.Width-n+1, 1))
	return NewTetromino(kind, Point{X: col, Y: g.geom.Height - 1}, g.tileValue)
}

func (g *Game) tileValue() int {
	if g.rng.Float64() < g.cfg.Spawn.FourProbability {
		return 4
	}
	return 2
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick. At most one movement action is
// applied, then the piece falls automatically every FallTicks ticks.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.isOver() {
		g.paused = !g.paused
	}

	if g.paused || g.isOver() {
		return core.StepResult{State: g.State()}
	}

	// Only the most recent key of the tick moves the piece.
	locked := false
	switch in.Last {
	case core.ActionHardDrop:
		g.current.HardDrop(g.grid)
		g.lock()
		locked = true
	case core.ActionRotate:
		g.current.Rotate(g.grid)
	case core.ActionLeft:
		g.current.Move(DirLeft, g.grid)
	case core.ActionRight:
		g.current.Move(DirRight, g.grid)
	case core.ActionDown:
		if !g.current.Move(DirDown, g.grid) {
			g.lock()
			locked = true
		}
	}

	if !locked && !g.isOver() {
		g.fallCounter++
		if g.fallCounter >= g.FallTicks() {
			g.fallCounter = 0
			if !g.current.Move(DirDown, g.grid) {
				g.lock()
				locked = true
			}
		}
	}

	return core.StepResult{State: g.State(), Locked: locked}
}

// FallTicks returns the number of ticks between automatic falls.
func (g *Game) FallTicks() int {
	return g.difficulty.FallTicks(g.tickRate, g.Score(), int(g.tick))
}

// lock hands the landed piece to the grid, resolves the board and promotes
// the next piece.
func (g *Game) lock() {
	_, span := telemetry.Tracer("grid").Start(context.Background(), "grid.resolve")
	res := g.grid.Lock(g.current)
	span.SetAttributes(
		attribute.String("piece", g.current.Type().String()),
		attribute.Int("merges", res.Merges),
		attribute.Int("rows_cleared", res.RowsCleared),
		attribute.Int("falls", res.Falls),
		attribute.Int("passes", res.Passes),
		attribute.Int("points", res.Points),
		attribute.Int("score", g.grid.Score()),
		attribute.Bool("game_over", res.GameOver),
	)
	span.End()

	g.last = res
	g.stats.Pieces++
	g.stats.Merges += res.Merges
	g.stats.RowsCleared += res.RowsCleared
	g.stats.Falls += res.Falls
	g.fallCounter = 0

	if res.GameOver {
		g.current = nil
		return
	}

	g.current = g.next
	g.next = g.spawn()
	if !fits(g.current.matrix, g.current.position, g.grid) {
		g.toppedOut = true
	}
}

// Click handles a mouse click at screen cell (x, y). The pause button
// pauses; while paused the overlay offers Continue and Exit.
func (g *Game) Click(x, y int) {
	if g.tooSmall || g.isOver() {
		return
	}

	l := g.layout()
	if g.paused {
		switch {
		case l.continueBtn.Contains(x, y):
			g.paused = false
		case l.exitBtn.Contains(x, y):
			g.paused = false
			g.exited = true
		}
		return
	}

	if l.pauseBtn.Contains(x, y) {
		g.paused = true
	}
}

func (g *Game) isOver() bool {
	if g.grid == nil {
		return false
	}
	return g.grid.GameOver() || g.toppedOut || g.exited
}

// Score returns the current score.
func (g *Game) Score() int {
	if g.grid == nil {
		return 0
	}
	return g.grid.Score()
}

// MaxTile returns the largest value on the board.
func (g *Game) MaxTile() int {
	if g.grid == nil {
		return 0
	}
	return g.grid.MaxTile()
}

// Grid returns the board of locked tiles.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Current returns the falling tetromino, or nil once the game is over.
func (g *Game) Current() *Tetromino {
	return g.current
}

// Next returns the tetromino that spawns after the current one locks.
func (g *Game) Next() *Tetromino {
	return g.next
}

// LastResolution returns the outcome of the most recent lock.
func (g *Game) LastResolution() Resolution {
	return g.last
}

// Stats returns the run counters.
func (g *Game) Stats() Stats {
	return g.stats
}

// Difficulty returns the active speed tier.
func (g *Game) Difficulty() config.DifficultyPreset {
	return g.difficulty.Preset()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.isOver(),
		Paused:   g.paused || g.tooSmall,
	}
}
