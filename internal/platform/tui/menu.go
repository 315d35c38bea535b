package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris2048/internal/config"
	"github.com/vovakirdan/tetris2048/internal/core"
	"github.com/vovakirdan/tetris2048/internal/storage"
)

// Menu entries, in display order.
const (
	menuPlay = iota
	menuDifficulty
	menuScores
	menuQuit
	menuItemCount
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#edc22e"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the main menu: start a run, pick
// the speed tier or open the scoreboard.
type MenuModel struct {
	cursor         int
	difficulty     config.DifficultyPreset
	width          int
	height         int
	store          *storage.Store
	logger         *log.Logger
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a menu. The stored difficulty setting, when present,
// overrides preset.
func NewMenuModel(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := MenuModel{
		difficulty: preset,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}

	if store != nil {
		v, ok, err := store.Setting(storage.SettingDifficulty)
		switch {
		case err != nil:
			logger.Warn("could not load difficulty", "error", err)
		case ok:
			if p, perr := config.ParsePreset(v); perr == nil {
				m.difficulty = p
			}
		}
	}
	if m.difficulty == "" {
		m.difficulty = config.DifficultyEasy
	}

	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < menuItemCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.cursor == menuDifficulty {
			m.cycleDifficulty(-1)
		}

	case MenuActionRight:
		if m.cursor == menuDifficulty {
			m.cycleDifficulty(1)
		}

	case MenuActionSelect:
		switch m.cursor {
		case menuPlay:
			m.play = true
			return m, tea.Quit
		case menuDifficulty:
			m.cycleDifficulty(1)
		case menuScores:
			m.openScoreboard = true
			return m, tea.Quit
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// cycleDifficulty moves to the neighbouring speed tier and persists it.
func (m *MenuModel) cycleDifficulty(delta int) {
	idx := 0
	for i, p := range config.Presets {
		if p == m.difficulty {
			idx = i
		}
	}
	n := len(config.Presets)
	m.difficulty = config.Presets[((idx+delta)%n+n)%n]

	if m.store != nil {
		if err := m.store.SetSetting(storage.SettingDifficulty, string(m.difficulty)); err != nil {
			m.logger.Warn("could not save difficulty", "error", err)
		}
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("T E T R I S   2 0 4 8"), m.width))
	b.WriteString("\n\n")

	items := []string{
		"Play",
		fmt.Sprintf("Speed: < %s >", m.difficulty.Label()),
		"High Scores",
		"Quit",
	}

	for i, item := range items {
		line := "  " + item
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Left/Right: Speed  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Difficulty returns the selected speed tier.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.difficulty
}

// WantsPlay returns true if the user started a run.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	Play            bool
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	model := NewMenuModel(store, logger, cfg, preset)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Difficulty: preset}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Difficulty: preset, Quit: true}, nil
	}

	result := MenuResult{
		Difficulty:      m.Difficulty(),
		Config:          m.Config(),
		Play:            m.WantsPlay(),
		WantsScoreboard: m.WantsScoreboard(),
	}
	result.Quit = !result.Play && !result.WantsScoreboard

	return result, nil
}
