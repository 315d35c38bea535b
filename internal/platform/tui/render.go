package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris2048/internal/core"
)

const (
	tileTextDark  = lipgloss.Color("#776e65")
	tileTextLight = lipgloss.Color("#f9f6f2")
)

func tileStyle(bg lipgloss.Color, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(fg).Bold(true)
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorRed:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

	// Tiles paint their whole cell.
	core.ColorTile2:    tileStyle("#eee4da", tileTextDark),
	core.ColorTile4:    tileStyle("#ede0c8", tileTextDark),
	core.ColorTile8:    tileStyle("#f2b179", tileTextLight),
	core.ColorTile16:   tileStyle("#f59563", tileTextLight),
	core.ColorTile32:   tileStyle("#f67c5f", tileTextLight),
	core.ColorTile64:   tileStyle("#f65e3b", tileTextLight),
	core.ColorTile128:  tileStyle("#edcf72", tileTextLight),
	core.ColorTile256:  tileStyle("#edcc61", tileTextLight),
	core.ColorTile512:  tileStyle("#edc850", tileTextLight),
	core.ColorTile1024: tileStyle("#edc53f", tileTextLight),
	core.ColorTile2048: tileStyle("#edc22e", tileTextLight),

	core.ColorTileText:      lipgloss.NewStyle().Foreground(tileTextDark),
	core.ColorTileTextLight: lipgloss.NewStyle().Foreground(tileTextLight),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
