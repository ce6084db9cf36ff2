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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, run := range []struct{ score, level int }{{100, 1}, {50, 1}, {1700, 2}} {
		if _, err := store.SaveScore("platformer", run.score, run.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different game
	if _, err := store.SaveScore("other", 500, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 1700 || scores[0].Level != 2 {
		t.Errorf("Expected top entry 1700 on level 2, got %+v", scores[0])
	}
	if scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, 1)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("platformer", 100, 1)
	store.SaveScore("platformer", 300, 1)
	store.SaveScore("platformer", 200, 2)

	high, err = store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("platformer", 100, 1)
	store.SaveLevelClear(LevelClear{GameID: "platformer", Level: 1, Score: 900, Ticks: 1200})
	store.SaveScore("other", 300, 1)

	if err := store.ClearScores("platformer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("platformer", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	clears, _ := store.BestLevelClears("platformer")
	if len(clears) != 0 {
		t.Errorf("Expected 0 level clears after clear, got %d", len(clears))
	}

	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Errorf("Other game scores should not be affected")
	}
}

func TestStoreBestLevelClears(t *testing.T) {
	store := openTestStore(t)

	records := []LevelClear{
		{GameID: "platformer", Level: 1, Score: 900, Ticks: 1500},
		{GameID: "platformer", Level: 1, Score: 700, Ticks: 1100},
		{GameID: "platformer", Level: 2, Score: 2100, Ticks: 2400},
		{GameID: "platformer", Level: 1, Score: 1000, Ticks: 1100},
		{GameID: "other", Level: 1, Score: 5, Ticks: 10},
	}
	for _, r := range records {
		if _, err := store.SaveLevelClear(r); err != nil {
			t.Fatalf("SaveLevelClear() failed: %v", err)
		}
	}

	clears, err := store.BestLevelClears("platformer")
	if err != nil {
		t.Fatalf("BestLevelClears() failed: %v", err)
	}
	if len(clears) != 2 {
		t.Fatalf("Expected one clear per level, got %d: %+v", len(clears), clears)
	}

	// Fastest wins, higher score breaks the tie
	if clears[0].Level != 1 || clears[0].Ticks != 1100 || clears[0].Score != 1000 {
		t.Errorf("Level 1 best = %+v", clears[0])
	}
	if clears[1].Level != 2 || clears[1].Ticks != 2400 {
		t.Errorf("Level 2 best = %+v", clears[1])
	}
}

func TestStoreSaveLevelClearRejectsInvalidLevel(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveLevelClear(LevelClear{GameID: "platformer", Level: 0}); err == nil {
		t.Error("SaveLevelClear() should reject level 0")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() on empty store failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", stats)
	}

	store.SaveScore("platformer", 100, 1)
	store.SaveScore("platformer", 300, 2)

	stats, err = store.GetGameStats("platformer")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.BestLevel != 2 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
