package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.ecofun/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".ecofun", "test.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.AddPoints("mia", 120, "fallblock", ""); err != nil {
		t.Fatalf("AddPoints() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	total, err := store.TotalPoints("mia")
	if err != nil {
		t.Fatalf("TotalPoints() failed: %v", err)
	}
	if total != 120 {
		t.Errorf("Expected 120 points after reopen, got %d", total)
	}
}

func TestStoreTopScoresOrderAndLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveScore("fallblock", (i+1)*100); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("other", 9000)

	scores, err := store.TopScores("fallblock", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	for _, s := range scores {
		if s.GameID != "fallblock" {
			t.Errorf("Got score from %q", s.GameID)
		}
	}
}

func TestStoreSaveRound(t *testing.T) {
	store := newTestStore(t)

	id, err := store.SaveRound(ScoreEntry{
		GameID:  "fallblock",
		Player:  "mia",
		Score:   1400,
		Level:   3,
		Lines:   12,
		Outcome: "lost",
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	scores, err := store.AllScores("fallblock")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 round, got %d", len(scores))
	}

	got := scores[0]
	if got.ID != id || got.Player != "mia" || got.Level != 3 || got.Lines != 12 || got.Outcome != "lost" {
		t.Errorf("Round not stored as saved: %+v", got)
	}
	if _, err := uuid.Parse(got.SessionID); err != nil {
		t.Errorf("Generated session id %q is not a UUID: %v", got.SessionID, err)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestStoreSaveRoundKeepsSessionID(t *testing.T) {
	store := newTestStore(t)
	session := NewSessionID()

	store.SaveRound(ScoreEntry{GameID: "fallblock", Score: 10, SessionID: session})

	scores, _ := store.AllScores("fallblock")
	if len(scores) != 1 || scores[0].SessionID != session {
		t.Errorf("Expected session %s, got %+v", session, scores)
	}
}

func TestStoreSaveRoundRequiresGame(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.SaveRound(ScoreEntry{Score: 10}); err == nil {
		t.Error("Expected error for empty game id")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := newTestStore(t)

	high, err := store.HighScore("fallblock")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("fallblock", 100)
	store.SaveScore("fallblock", 300)
	store.SaveScore("fallblock", 200)

	high, err = store.HighScore("fallblock")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := newTestStore(t)

	store.SaveScore("fallblock", 100)
	store.SaveScore("fallblock", 200)
	store.SaveScore("other", 300)
	store.AddPoints("mia", 50, "fallblock", "")

	if err := store.ClearScores("fallblock"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("fallblock", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("Other games should not be affected by clearing fallblock")
	}
	if total, _ := store.TotalPoints("mia"); total != 50 {
		t.Errorf("Clearing scores must not touch the points ledger, got %d", total)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := newTestStore(t)

	empty, err := store.GetGameStats("fallblock")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRound(ScoreEntry{GameID: "fallblock", Score: 100, Lines: 2, Outcome: "lost"})
	store.SaveRound(ScoreEntry{GameID: "fallblock", Score: 300, Lines: 20, Outcome: "won"})

	stats, err := store.GetGameStats("fallblock")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 300 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 || stats.TotalScore != 400 || stats.TotalLines != 22 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestStorePointsLedger(t *testing.T) {
	store := newTestStore(t)

	total, err := store.TotalPoints("mia")
	if err != nil {
		t.Fatalf("TotalPoints() failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected 0 for unknown player, got %d", total)
	}

	store.AddPoints("mia", 200, "fallblock", "s1")
	store.AddPoints("mia", 350, "fallblock", "s2")
	store.AddPoints("leo", 90, "fallblock", "s3")

	if total, _ := store.TotalPoints("mia"); total != 550 {
		t.Errorf("Expected 550, got %d", total)
	}

	history, err := store.PointsHistory("mia", 10)
	if err != nil {
		t.Fatalf("PointsHistory() failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(history))
	}
	if history[0].SessionID != "s2" || history[1].SessionID != "s1" {
		t.Errorf("Expected newest first, got %+v", history)
	}

	leaders, err := store.PointsLeaders(10)
	if err != nil {
		t.Fatalf("PointsLeaders() failed: %v", err)
	}
	if len(leaders) != 2 || leaders[0].Player != "mia" || leaders[0].Points != 550 {
		t.Errorf("Unexpected leaders: %+v", leaders)
	}
}

func TestStoreAddPointsRejectsInvalid(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name   string
		player string
		points int
	}{
		{"negative", "mia", -5},
		{"no player", "", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.AddPoints(tt.player, tt.points, "fallblock", ""); err == nil {
				t.Error("Expected error")
			}
		})
	}

	if total, _ := store.TotalPoints("mia"); total != 0 {
		t.Errorf("Rejected awards were stored: %d", total)
	}
}

func TestStoreAddZeroPoints(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.AddPoints("mia", 0, "fallblock", ""); err != nil {
		t.Fatalf("AddPoints(0) failed: %v", err)
	}
	if history, _ := store.PointsHistory("mia", 0); len(history) != 1 {
		t.Errorf("Expected a zero award to be recorded, got %d", len(history))
	}
}
