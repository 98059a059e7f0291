package history

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	perfect := sampleResult("r1", base)
	perfect.Score = 100
	perfect.CorrectAnswers = 5
	perfect.IncorrectAnswers = 0
	perfect.BestStreak = 5

	pending := sampleResult("r2", base.Add(time.Minute))
	pending.PendingSync = true

	st := Summarize([]*GameResult{perfect, pending, sampleResult("r3", base.Add(2*time.Minute))})

	if st.Games != 3 {
		t.Errorf("Games = %d, want 3", st.Games)
	}
	if st.Questions != 15 {
		t.Errorf("Questions = %d, want 15", st.Questions)
	}
	if st.BestScore != 100 {
		t.Errorf("BestScore = %d, want 100", st.BestScore)
	}
	if st.BestStreak != 5 {
		t.Errorf("BestStreak = %d, want 5", st.BestStreak)
	}
	if st.PerfectRounds != 1 {
		t.Errorf("PerfectRounds = %d, want 1", st.PerfectRounds)
	}
	if st.PendingSync != 1 {
		t.Errorf("PendingSync = %d, want 1", st.PendingSync)
	}
	// (100 + 80 + 80) / 3 rounds to 87.
	if st.AverageScore != 87 {
		t.Errorf("AverageScore = %d, want 87", st.AverageScore)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	st := Summarize(nil)
	if st.Games != 0 || st.AverageScore != 0 || st.BestScore != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero", st)
	}
}
