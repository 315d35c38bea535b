package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris2048/internal/config"
	"github.com/vovakirdan/tetris2048/internal/storage"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return model
}

func TestMenuDifficultyPersisted(t *testing.T) {
	store := openTestStore(t)
	m := NewMenuModel(store, nil, testRuntime(), config.DifficultyEasy)

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Difficulty() != config.DifficultyNormal {
		t.Fatalf("Difficulty() = %q, want normal", m.Difficulty())
	}

	v, ok, err := store.Setting(storage.SettingDifficulty)
	if err != nil || !ok || v != "normal" {
		t.Fatalf("stored difficulty = (%q, %v, %v), want normal", v, ok, err)
	}

	again := NewMenuModel(store, nil, testRuntime(), config.DifficultyEasy)
	if again.Difficulty() != config.DifficultyNormal {
		t.Errorf("a new menu should start on the stored tier, got %q", again.Difficulty())
	}
}

func TestMenuDifficultyWraps(t *testing.T) {
	m := NewMenuModel(nil, nil, testRuntime(), config.DifficultyEasy)
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("left from easy = %q, want hard", m.Difficulty())
	}
}

func TestMenuSelections(t *testing.T) {
	m := NewMenuModel(nil, nil, testRuntime(), config.DifficultyEasy)

	play := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !play.WantsPlay() {
		t.Error("enter on the first item should start a game")
	}

	scores := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !scores.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	quit := menuUpdate(t, m, runeKey('q'))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(nil, nil, testRuntime(), config.DifficultyHard)
	view := m.View()
	for _, want := range []string{"Play", "Speed: < Hard >", "High Scores", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	for _, e := range []storage.ScoreEntry{
		{GameID: "stub", Difficulty: "easy", Score: 10},
		{GameID: "stub", Difficulty: "hard", Score: 30},
		{GameID: "stub", Difficulty: "hard", Score: 20},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "stub", 100, 30)
	if len(m.tabs) != 1+len(config.Presets) {
		t.Fatalf("tabs = %d, want All plus one per preset", len(m.tabs))
	}
	if len(m.scores) != 3 {
		t.Errorf("All tab shows %d scores, want 3", len(m.scores))
	}

	counts := []int{3, 1, 0, 2}
	for i := 1; i < len(counts); i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(ScoreboardModel)
		if len(m.scores) != counts[i] {
			t.Errorf("%s tab shows %d scores, want %d", m.tabs[m.tabCursor].Title, len(m.scores), counts[i])
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
