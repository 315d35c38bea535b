package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, difficulty string, score int) ScoreEntry {
	t.Helper()
	e, err := store.SaveScore(ScoreEntry{GameID: "tetris2048", Difficulty: difficulty, Score: score, MaxTile: score / 10})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	return e
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAssignsRunID(t *testing.T) {
	store := openTestStore(t)

	a := save(t, store, "easy", 100)
	b := save(t, store, "easy", 100)

	if a.RunID == "" || b.RunID == "" {
		t.Fatal("SaveScore should generate a run id")
	}
	if a.RunID == b.RunID {
		t.Errorf("run ids should be unique, both are %q", a.RunID)
	}
	if a.ID == 0 || b.ID <= a.ID {
		t.Errorf("IDs should increase, got %d then %d", a.ID, b.ID)
	}

	kept, err := store.SaveScore(ScoreEntry{RunID: "fixed-run", GameID: "tetris2048", Score: 1})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if kept.RunID != "fixed-run" {
		t.Errorf("RunID = %q, want fixed-run", kept.RunID)
	}

	if _, err := store.SaveScore(ScoreEntry{RunID: "fixed-run", GameID: "tetris2048", Score: 2}); err == nil {
		t.Error("saving the same run twice should fail")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "easy", 100)
	save(t, store, "easy", 50)
	save(t, store, "easy", 200)
	save(t, store, "hard", 500)

	scores, err := store.TopScores("tetris2048", "easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].MaxTile != 20 || scores[0].Difficulty != "easy" {
		t.Errorf("entry fields not round-tripped: %+v", scores[0])
	}

	hard, err := store.TopScores("tetris2048", "hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hard) != 1 {
		t.Errorf("Expected 1 hard score, got %d", len(hard))
	}

	all, err := store.TopScores("tetris2048", "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("empty difficulty should match every run, got %v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "normal", (i+1)*100)
	}

	scores, err := store.TopScores("tetris2048", "normal", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris2048", "easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "easy", 100)
	save(t, store, "easy", 300)
	save(t, store, "hard", 900)

	tests := []struct {
		difficulty string
		want       int
	}{
		{"easy", 300},
		{"hard", 900},
		{"normal", 0},
		{"", 900},
	}
	for _, tt := range tests {
		high, err := store.HighScore("tetris2048", tt.difficulty)
		if err != nil {
			t.Fatalf("HighScore(%q) failed: %v", tt.difficulty, err)
		}
		if high != tt.want {
			t.Errorf("HighScore(%q) = %d, want %d", tt.difficulty, high, tt.want)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "easy", 100)
	if _, err := store.SaveScore(ScoreEntry{GameID: "other", Score: 300}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	if err := store.ClearScores("tetris2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.AllScores("tetris2048", "")
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	other, _ := store.AllScores("other", "")
	if len(other) != 1 {
		t.Errorf("Other game scores should not be affected by clearing")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "easy", i*10)
	}

	scores, err := store.AllScores("tetris2048", "")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}

	save(t, store, "hard", 5)
	hard, err := store.AllScores("tetris2048", "hard")
	if err != nil {
		t.Fatalf("AllScores(hard) failed: %v", err)
	}
	if len(hard) != 1 || hard[0].Score != 5 {
		t.Errorf("AllScores(hard) = %+v, want the single hard score", hard)
	}
}

func TestStoreSettings(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Setting(SettingDifficulty)
	if err != nil {
		t.Fatalf("Setting() failed: %v", err)
	}
	if ok {
		t.Error("unset key should report ok = false")
	}

	if err := store.SetSetting(SettingDifficulty, "normal"); err != nil {
		t.Fatalf("SetSetting() failed: %v", err)
	}
	if err := store.SetSetting(SettingDifficulty, "hard"); err != nil {
		t.Fatalf("SetSetting() failed: %v", err)
	}

	value, ok, err := store.Setting(SettingDifficulty)
	if err != nil {
		t.Fatalf("Setting() failed: %v", err)
	}
	if !ok || value != "hard" {
		t.Errorf("Setting() = %q, %v, want hard, true", value, ok)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("tetris2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	save(t, store, "easy", 100)
	save(t, store, "hard", 300)

	stats, err = store.GetGameStats("tetris2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.BestTile != 30 {
		t.Errorf("BestTile = %d, want 30", stats.BestTile)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
