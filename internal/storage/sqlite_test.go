package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stepcoins/internal/kv"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	v, err := store.Version()
	if err != nil {
		t.Fatalf("Version() failed: %v", err)
	}
	if v != 2 {
		t.Errorf("schema version = %d, expected 2", v)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.KV("alice", nil).Set(kv.KeyScore, 9)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if got := store.KV("alice", nil).Get(kv.KeyScore); got != 9 {
		t.Errorf("score after reopen = %d, expected 9", got)
	}
}

func TestKVNamespaces(t *testing.T) {
	store := openTestStore(t)
	logger := log.New(io.Discard)

	alice := store.KV("alice", logger)
	bob := store.KV("bob", logger)

	if alice.Get(kv.KeyConsumedSteps) != 0 {
		t.Error("unset key should read as 0")
	}

	alice.Set(kv.KeyConsumedSteps, 30)
	alice.Set(kv.KeyConsumedSteps, 40)
	bob.Set(kv.KeyConsumedSteps, 10)

	if got := alice.Get(kv.KeyConsumedSteps); got != 40 {
		t.Errorf("alice consumed = %d, expected 40", got)
	}
	if got := bob.Get(kv.KeyConsumedSteps); got != 10 {
		t.Errorf("bob consumed = %d, expected 10", got)
	}
}

func TestDailySteps(t *testing.T) {
	store := openTestStore(t)
	today := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	if got, err := store.DailySteps(DefaultUser, today); err != nil || got != 0 {
		t.Fatalf("DailySteps() on empty db = %d, %v", got, err)
	}

	if err := store.RecordDailySteps(DefaultUser, yesterday, 4200); err != nil {
		t.Fatalf("RecordDailySteps() failed: %v", err)
	}
	if err := store.RecordDailySteps(DefaultUser, today, 1000); err != nil {
		t.Fatalf("RecordDailySteps() failed: %v", err)
	}
	// Same day again replaces the total
	if err := store.RecordDailySteps(DefaultUser, today.Add(2*time.Hour), 1500); err != nil {
		t.Fatalf("RecordDailySteps() failed: %v", err)
	}

	tests := []struct {
		day      time.Time
		expected int
	}{
		{today, 1500},
		{yesterday, 4200},
		{today.AddDate(0, 0, -5), 0},
	}
	for _, tc := range tests {
		got, err := store.DailySteps(DefaultUser, tc.day)
		if err != nil {
			t.Fatalf("DailySteps(%s) failed: %v", DayKey(tc.day), err)
		}
		if got != tc.expected {
			t.Errorf("DailySteps(%s) = %d, expected %d", DayKey(tc.day), got, tc.expected)
		}
	}

	history, err := store.StepHistory(DefaultUser, 7)
	if err != nil {
		t.Fatalf("StepHistory() failed: %v", err)
	}
	if len(history) != 2 || history[0].Day != "2026-03-14" || history[0].Steps != 1500 {
		t.Errorf("StepHistory() = %+v", history)
	}
}

func TestSessions(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore(DefaultUser)
	if err != nil || best != 0 {
		t.Fatalf("BestScore() on empty db = %d, %v", best, err)
	}

	scores := []int{3, 11, 7}
	for _, sc := range scores {
		id, err := store.SaveSession(SessionRecord{
			User:      DefaultUser,
			Score:     sc,
			Collected: sc,
			Spent:     sc * 10,
			Misses:    5,
			Duration:  42 * time.Second,
		})
		if err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
		if id == "" {
			t.Error("SaveSession() should assign an id")
		}
	}
	if _, err := store.SaveSession(SessionRecord{User: "other", Score: 99}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	best, err = store.BestScore(DefaultUser)
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 11 {
		t.Errorf("BestScore() = %d, expected 11", best)
	}

	recent, err := store.RecentSessions(DefaultUser, 2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentSessions() returned %d, expected 2", len(recent))
	}
	if recent[0].Score != 7 || recent[1].Score != 11 {
		t.Errorf("RecentSessions() order = %d, %d; expected newest first", recent[0].Score, recent[1].Score)
	}
	if recent[0].Duration != 42*time.Second || recent[0].Spent != 70 {
		t.Errorf("RecentSessions()[0] = %+v", recent[0])
	}
}

func TestSaveSessionKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSession(SessionRecord{ID: "fixed-id", User: DefaultUser, Score: 1})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("id = %q, expected fixed-id", id)
	}
	if _, err := store.SaveSession(SessionRecord{ID: "fixed-id", User: DefaultUser}); err == nil {
		t.Error("duplicate id should fail")
	}
}
