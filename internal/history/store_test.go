package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/spellquest/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(id string, completed time.Time) *GameResult {
	return &GameResult{
		ID:             id,
		UserID:         "player-1",
		CreatedAt:      completed.UTC().Format(time.RFC3339),
		Settings:       quiz.DefaultSettings(),
		TotalQuestions: 5,
		CorrectAnswers: 4,
		IncorrectAnswers: 1,
		Score:          80,
		CompletedAt:    completed.UTC(),
		TimeSpent:      32,
		QuizDuration:   40,
		AverageTime:    6.4,
	}
}

func TestSaveAndLoadAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		r := sampleResult(fmt.Sprintf("round-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := s.SaveResult(ctx, r); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
	}

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(LoadAll) = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].ID != "round-2" || got[2].ID != "round-0" {
		t.Errorf("order = %s..%s, want round-2..round-0", got[0].ID, got[2].ID)
	}
	if got[0].Score != 80 || got[0].TotalQuestions != 5 {
		t.Errorf("round trip lost fields: %+v", got[0])
	}
}

func TestSaveTrimsToRetentionCap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	n := quiz.MaxHistoryEntries + 5
	for i := 0; i < n; i++ {
		r := sampleResult(fmt.Sprintf("round-%03d", i), base.Add(time.Duration(i)*time.Minute))
		if err := s.SaveResult(ctx, r); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
	}

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != quiz.MaxHistoryEntries {
		t.Fatalf("len(LoadAll) = %d, want %d", len(got), quiz.MaxHistoryEntries)
	}
	// The oldest rounds were dropped.
	if got[len(got)-1].ID != "round-005" {
		t.Errorf("oldest kept = %s, want round-005", got[len(got)-1].ID)
	}
}

func TestPendingAndMarkSynced(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	pending := sampleResult("pending-1", base)
	pending.PendingSync = true
	synced := sampleResult("synced-1", base.Add(time.Minute))

	if err := s.SaveResult(ctx, pending); err != nil {
		t.Fatalf("save pending: %v", err)
	}
	if err := s.SaveResult(ctx, synced); err != nil {
		t.Fatalf("save synced: %v", err)
	}

	got, err := s.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(got) != 1 || got[0].ID != "pending-1" {
		t.Fatalf("Pending = %v, want [pending-1]", got)
	}

	if err := s.MarkSynced(ctx, "pending-1"); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	got, err = s.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending after sync: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Pending after sync = %v, want empty", got)
	}

	all, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	for _, r := range all {
		if r.PendingSync {
			t.Errorf("result %s still flagged pending in payload", r.ID)
		}
	}

	if err := s.MarkSynced(ctx, "no-such-id"); err == nil {
		t.Error("MarkSynced(unknown) = nil, want error")
	}
}

func TestClearHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveResult(ctx, sampleResult("r1", time.Now())); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if err := s.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadAll after clear = %v, want empty", got)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.LoadPreferences(ctx); !errors.Is(err, ErrNoPreferences) {
		t.Fatalf("LoadPreferences on empty store = %v, want ErrNoPreferences", err)
	}

	p := &Preferences{
		UserID:   "player-1",
		UserName: "Mira",
		Settings: quiz.DefaultSettings(),
	}
	if err := s.SavePreferences(ctx, p); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	got, err := s.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.UserName != "Mira" || got.UserID != "player-1" {
		t.Errorf("loaded = %+v", got)
	}
	if got.LastUpdated.IsZero() {
		t.Error("LastUpdated not stamped")
	}

	// Second save overwrites the single row.
	p.UserName = "Noa"
	if err := s.SavePreferences(ctx, p); err != nil {
		t.Fatalf("second SavePreferences: %v", err)
	}
	got, err = s.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.UserName != "Noa" {
		t.Errorf("UserName = %q, want Noa", got.UserName)
	}

	if err := s.ClearPreferences(ctx); err != nil {
		t.Fatalf("ClearPreferences: %v", err)
	}
	if _, err := s.LoadPreferences(ctx); !errors.Is(err, ErrNoPreferences) {
		t.Errorf("LoadPreferences after clear = %v, want ErrNoPreferences", err)
	}
}
