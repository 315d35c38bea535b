package tetris2048

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tetris2048/internal/core"
)

const (
	cellWidth  = 4  // Characters per board column
	panelWidth = 20 // Side panel width
	panelGap   = 2
	panelRows  = 22 // Rows the side panel needs
	overlayW   = 24
	overlayH   = 7
	buttonW    = 10
	buttonH    = 3
)

// layout holds the screen rectangles of the board and the clickable buttons.
type layout struct {
	board       core.Rect
	panelX      int
	pauseBtn    core.Rect
	overlay     core.Rect
	continueBtn core.Rect
	exitBtn     core.Rect
}

func (g *Game) minSize() (int, int) {
	boardW := g.geom.Width*cellWidth + 2
	boardH := g.geom.Height + 2
	return boardW + panelGap + panelWidth, max(boardH, panelRows) + 1
}

func (g *Game) layout() layout {
	boardW := g.geom.Width*cellWidth + 2
	boardH := g.geom.Height + 2
	minW, _ := g.minSize()

	originX := max((g.screenW-minW)/2, 0)
	originY := 1

	var l layout
	l.board = core.NewRect(originX, originY, boardW, boardH)
	l.panelX = originX + boardW + panelGap
	l.pauseBtn = core.NewRect(l.panelX, originY+max(boardH, panelRows)-buttonH, buttonW, buttonH)

	l.overlay = core.NewRect(
		l.board.X+(l.board.W-overlayW)/2,
		l.board.Y+(l.board.H-overlayH)/2,
		overlayW, overlayH,
	)
	l.continueBtn = core.NewRect(l.overlay.X+1, l.overlay.Y+3, buttonW, buttonH)
	l.exitBtn = core.NewRect(l.overlay.Right()-1-buttonW, l.overlay.Y+3, buttonW, buttonH)
	return l
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	dst.DrawTextCentered(0, "TETRIS 2048")
	g.renderBoard(dst, l)
	g.renderPanel(dst, l)

	switch {
	case g.isOver():
		g.renderGameOver(dst, l)
	case g.paused:
		g.renderPaused(dst, l)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, g.screenW, g.screenH))
}

// cellOrigin returns the screen position of board cell (x, y).
func (g *Game) cellOrigin(l layout, x, y int) (int, int) {
	return l.board.X + 1 + x*cellWidth, l.board.Y + 1 + (g.geom.Height - 1 - y)
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	dst.DrawBoxColor(l.board, core.ColorGray)

	for y := 0; y < g.geom.Height; y++ {
		for x := 0; x < g.geom.Width; x++ {
			sx, sy := g.cellOrigin(l, x, y)
			if tile := g.grid.At(x, y); tile != nil {
				drawTile(dst, sx, sy, tile)
			} else {
				dst.SetColor(sx+1, sy, '·', core.ColorDarkGray)
			}
		}
	}

	if g.current == nil || g.isOver() {
		if g.current != nil {
			g.renderPiece(dst, l, g.current)
		}
		return
	}

	for _, p := range g.current.Ghost(g.grid) {
		if p.Y >= g.geom.Height || g.grid.IsOccupied(p.X, p.Y) {
			continue
		}
		sx, sy := g.cellOrigin(l, p.X, p.Y)
		dst.DrawTextColor(sx, sy, strings.Repeat("░", cellWidth), core.ColorGray)
	}
	g.renderPiece(dst, l, g.current)
}

func (g *Game) renderPiece(dst *core.Screen, l layout, t *Tetromino) {
	t.Each(func(p Point, tile *Tile) {
		if p.Y >= g.geom.Height {
			return
		}
		sx, sy := g.cellOrigin(l, p.X, p.Y)
		drawTile(dst, sx, sy, tile)
	})
}

// drawTile draws a tile's number centered in its cell.
func drawTile(dst *core.Screen, x, y int, tile *Tile) {
	dst.DrawTextColor(x, y, tileLabel(tile.Number()), tile.Background)
}

// tileLabel centers a number in cellWidth characters.
func tileLabel(n int) string {
	s := strconv.Itoa(n)
	if len(s) >= cellWidth {
		return s[:cellWidth]
	}
	left := (cellWidth - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", cellWidth-len(s)-left)
}

func (g *Game) renderPanel(dst *core.Screen, l layout) {
	x, y := l.panelX, l.board.Y

	dst.DrawTextColor(x, y, "SCORE", core.ColorGray)
	dst.DrawTextColor(x, y+1, strconv.Itoa(g.Score()), core.ColorYellow)
	dst.DrawTextColor(x, y+3, "HIGH SCORE", core.ColorGray)
	dst.DrawTextColor(x, y+4, strconv.Itoa(g.HighScore()), core.ColorOrange)
	dst.DrawTextColor(x, y+6, "SPEED", core.ColorGray)
	dst.DrawText(x, y+7, g.Difficulty().Label())

	dst.DrawTextColor(x, y+9, "NEXT:", core.ColorGray)
	if g.next != nil {
		n := g.next.Size()
		for row := range n {
			for col := range n {
				if tile := g.next.TileAt(row, col); tile != nil {
					drawTile(dst, x+col*cellWidth, y+10+row, tile)
				}
			}
		}
	}

	dst.DrawText(x, y+15, fmt.Sprintf("Max tile %d", g.grid.MaxTile()))
	dst.DrawText(x, y+16, fmt.Sprintf("Lines    %d", g.stats.RowsCleared))
	dst.DrawText(x, y+17, fmt.Sprintf("Tiles    %d/%d", g.grid.TileCount(), g.geom.Area()))
	if last := g.LastResolution(); last.Points > 0 {
		dst.DrawTextColor(x, y+18, fmt.Sprintf("Last     +%d", last.Points), core.ColorGreen)
	}

	dst.DrawBoxColor(l.pauseBtn, core.ColorCyan)
	dst.DrawTextColor(l.pauseBtn.X+2, l.pauseBtn.Y+1, "Pause", core.ColorCyan)
}

func (g *Game) drawOverlay(dst *core.Screen, l layout, color core.Color) {
	dst.DrawRect(l.overlay, ' ')
	dst.DrawBoxColor(l.overlay, color)
}

func centerIn(r core.Rect, y int, text string) (int, int) {
	return r.X + (r.W-len(text))/2, y
}

func (g *Game) renderPaused(dst *core.Screen, l layout) {
	g.drawOverlay(dst, l, core.ColorCyan)
	x, y := centerIn(l.overlay, l.overlay.Y+1, "PAUSED")
	dst.DrawTextColor(x, y, "PAUSED", core.ColorCyan)

	dst.DrawBoxColor(l.continueBtn, core.ColorGreen)
	dst.DrawTextColor(l.continueBtn.X+1, l.continueBtn.Y+1, "Continue", core.ColorGreen)
	dst.DrawBoxColor(l.exitBtn, core.ColorRed)
	dst.DrawTextColor(l.exitBtn.X+3, l.exitBtn.Y+1, "Exit", core.ColorRed)
}

func (g *Game) renderGameOver(dst *core.Screen, l layout) {
	g.drawOverlay(dst, l, core.ColorRed)

	title := "GAME OVER"
	x, y := centerIn(l.overlay, l.overlay.Y+1, title)
	dst.DrawTextColor(x, y, title, core.ColorRed)

	score := fmt.Sprintf("Score: %d", g.Score())
	x, y = centerIn(l.overlay, l.overlay.Y+3, score)
	dst.DrawTextColor(x, y, score, core.ColorYellow)

	if g.Score() > g.highScore {
		best := "New high score!"
		x, y = centerIn(l.overlay, l.overlay.Y+4, best)
		dst.DrawTextColor(x, y, best, core.ColorOrange)
	}

	hint := "R restart  Q quit"
	x, y = centerIn(l.overlay, l.overlay.Y+5, hint)
	dst.DrawText(x, y, hint)
}
