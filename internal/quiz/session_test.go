package quiz

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/spellquest/internal/quizgen"
)

func makeQuestions(n int) []*quizgen.Question {
	qs := make([]*quizgen.Question, n)
	for i := range qs {
		qs[i] = &quizgen.Question{
			ID:     i + 1,
			Prompt: fmt.Sprintf("Spell the word #%d", i+1),
			Answer: fmt.Sprintf("word%d", i+1),
		}
	}
	return qs
}

func startedSession(t *testing.T, settings Settings, n int) *Session {
	t.Helper()
	s := NewSession(settings)
	if err := s.LoadQuestions(makeQuestions(n)); err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestLoadQuestionsEmpty(t *testing.T) {
	s := NewSession(DefaultSettings())
	if err := s.LoadQuestions(nil); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("LoadQuestions(nil) = %v, want ErrNoQuestions", err)
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("state after rejected load = %v, want idle", got)
	}
}

func TestStartBeforeLoad(t *testing.T) {
	s := NewSession(DefaultSettings())
	err := s.Start()
	var serr *StateError
	if !errors.As(err, &serr) {
		t.Fatalf("Start from idle = %v, want *StateError", err)
	}
	if serr.State != StateIdle {
		t.Errorf("StateError.State = %v, want idle", serr.State)
	}
}

func TestSubmitAndAdvanceToCompletion(t *testing.T) {
	settings := DefaultSettings()
	settings.TimerEnabled = false
	s := startedSession(t, settings, 3)

	answers := []string{"word1", "nope", "WORD3"}
	wantCorrect := []bool{true, false, true}
	for i, a := range answers {
		correct, err := s.SubmitAnswer(a)
		if err != nil {
			t.Fatalf("SubmitAnswer(%q): %v", a, err)
		}
		if correct != wantCorrect[i] {
			t.Errorf("SubmitAnswer(%q) = %v, want %v", a, correct, wantCorrect[i])
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance after %q: %v", a, err)
		}
	}

	if got := s.State(); got != StateCompleted {
		t.Fatalf("state = %v, want completed", got)
	}
	if got, want := s.CorrectCount(), 2; got != want {
		t.Errorf("CorrectCount = %d, want %d", got, want)
	}
	if got, want := s.IncorrectCount(), 1; got != want {
		t.Errorf("IncorrectCount = %d, want %d", got, want)
	}
	if got := s.CorrectCount() + s.IncorrectCount(); got != 3 {
		t.Errorf("answered total = %d, want 3", got)
	}
	// Index freezes on the last served question.
	if got, want := s.CurrentIndex(), 2; got != want {
		t.Errorf("CurrentIndex = %d, want %d", got, want)
	}
}

func TestDoubleSubmit(t *testing.T) {
	s := startedSession(t, DefaultSettings(), 2)
	if _, err := s.SubmitAnswer("word1"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := s.SubmitAnswer("word1"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second submit = %v, want ErrAlreadyAnswered", err)
	}
	if got := s.CorrectCount(); got != 1 {
		t.Errorf("CorrectCount after double submit = %d, want 1", got)
	}
}

func TestCorrectBoundCompletion(t *testing.T) {
	settings := DefaultSettings()
	settings.CorrectAnswersEnabled = true
	settings.MaxCorrectAnswers = 3
	s := startedSession(t, settings, 5)

	for i := 0; i < 3; i++ {
		if _, err := s.SubmitAnswer(fmt.Sprintf("word%d", i+1)); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	if got := s.State(); got != StateCompleted {
		t.Fatalf("state = %v, want completed at correct bound", got)
	}
	if got, want := s.CurrentIndex(), 2; got != want {
		t.Errorf("CurrentIndex = %d, want %d (frozen at third question)", got, want)
	}
}

func TestIncorrectBoundCompletion(t *testing.T) {
	settings := DefaultSettings()
	settings.IncorrectAnswersEnabled = true
	settings.MaxIncorrectAnswers = 2
	s := startedSession(t, settings, 5)

	for i := 0; i < 2; i++ {
		if _, err := s.SubmitAnswer("wrong"); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if got := s.State(); got != StateCompleted {
		t.Errorf("state = %v, want completed at incorrect bound", got)
	}
}

func TestQuestionTimeout(t *testing.T) {
	settings := DefaultSettings()
	settings.TimerPerQuestion = 5
	s := startedSession(t, settings, 2)

	var res TickResult
	for i := 0; i < 5; i++ {
		var err error
		res, err = s.Tick(ChannelQuestion)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if !res.TimedOut {
		t.Fatal("fifth tick did not time out")
	}
	if res.Completed {
		t.Fatal("timeout on first of two questions completed the quiz")
	}

	// Exactly one synthesized submission, counted once.
	if got := s.IncorrectCount(); got != 1 {
		t.Errorf("IncorrectCount = %d, want 1", got)
	}
	q := s.Questions()[0]
	if !q.Answered || q.Correct || q.UserAnswer != "" {
		t.Errorf("question 0 after timeout = %+v, want answered incorrect empty", q)
	}
	if got, want := q.TimeSpent, 5; got != want {
		t.Errorf("TimeSpent = %d, want %d", got, want)
	}

	// Advanced to the next question with a fresh countdown.
	if got := s.CurrentIndex(); got != 1 {
		t.Errorf("CurrentIndex = %d, want 1", got)
	}
	if got, want := s.TimeRemaining(), 5; got != want {
		t.Errorf("TimeRemaining = %d, want %d", got, want)
	}
}

func TestQuestionTimeoutAfterSubmitDoesNotDoubleCount(t *testing.T) {
	settings := DefaultSettings()
	settings.TimerPerQuestion = 5
	s := startedSession(t, settings, 2)

	if _, err := s.SubmitAnswer("word1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := s.Tick(ChannelQuestion); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if got := s.CorrectCount() + s.IncorrectCount(); got != 1 {
		t.Errorf("answered total = %d, want 1", got)
	}
}

func TestOverallTimerExpiry(t *testing.T) {
	settings := DefaultSettings()
	settings.OverallTimerEnabled = true
	settings.OverallTimerDuration = 2
	s := startedSession(t, settings, 5)

	res, err := s.Tick(ChannelOverall)
	if err != nil {
		t.Fatalf("first overall tick: %v", err)
	}
	if res.TimedOut || res.Completed {
		t.Fatalf("first overall tick = %+v, want still running", res)
	}

	res, err = s.Tick(ChannelOverall)
	if err != nil {
		t.Fatalf("second overall tick: %v", err)
	}
	if !res.TimedOut || !res.Completed {
		t.Fatalf("second overall tick = %+v, want timed out and completed", res)
	}
	if got := s.State(); got != StateCompleted {
		t.Errorf("state = %v, want completed", got)
	}
}

func TestDisabledTimersAreInert(t *testing.T) {
	settings := DefaultSettings()
	settings.TimerEnabled = false
	s := startedSession(t, settings, 2)

	for i := 0; i < 100; i++ {
		res, err := s.Tick(ChannelQuestion)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if res.TimedOut {
			t.Fatal("disabled question timer timed out")
		}
	}
	res, err := s.Tick(ChannelOverall)
	if err != nil {
		t.Fatalf("overall tick: %v", err)
	}
	if res.TimedOut || res.Completed {
		t.Errorf("disabled overall timer = %+v, want inert", res)
	}
	if got := s.State(); got != StateActive {
		t.Errorf("state = %v, want still active", got)
	}
}

func TestTickAfterCompletion(t *testing.T) {
	s := startedSession(t, DefaultSettings(), 1)
	if _, err := s.SubmitAnswer("word1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	var serr *StateError
	if _, err := s.Tick(ChannelQuestion); !errors.As(err, &serr) {
		t.Errorf("tick after completion = %v, want *StateError", err)
	}
}

func TestRestartResetsCountersAndTimers(t *testing.T) {
	s := startedSession(t, DefaultSettings(), 3)
	if _, err := s.SubmitAnswer("word1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.Tick(ChannelQuestion); err != nil {
		t.Fatalf("tick: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if got := s.CorrectCount(); got != 0 {
		t.Errorf("CorrectCount after restart = %d, want 0", got)
	}
	if got := s.CurrentIndex(); got != 0 {
		t.Errorf("CurrentIndex after restart = %d, want 0", got)
	}
	if got, want := s.TimeRemaining(), DefaultSettings().TimerPerQuestion; got != want {
		t.Errorf("TimeRemaining after restart = %d, want %d", got, want)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	s := startedSession(t, DefaultSettings(), 2)
	if err := s.Complete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.Complete(); err != nil {
		t.Errorf("second complete = %v, want nil", err)
	}
	if got := s.State(); got != StateCompleted {
		t.Errorf("state = %v, want completed", got)
	}
}

func TestRetryKeepsBestStreakResetClearsIt(t *testing.T) {
	s := startedSession(t, DefaultSettings(), 2)
	for i := 0; i < 2; i++ {
		if _, err := s.SubmitAnswer(fmt.Sprintf("word%d", i+1)); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if got := s.BestStreak(); got != 2 {
		t.Fatalf("BestStreak = %d, want 2", got)
	}

	if err := s.Retry(makeQuestions(2)); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if got := s.State(); got != StateReady {
		t.Errorf("state after retry = %v, want ready", got)
	}
	if got := s.BestStreak(); got != 2 {
		t.Errorf("BestStreak after retry = %d, want 2", got)
	}
	if got := s.CurrentStreak(); got != 0 {
		t.Errorf("CurrentStreak after retry = %d, want 0", got)
	}

	s.Reset()
	if got := s.State(); got != StateIdle {
		t.Errorf("state after reset = %v, want idle", got)
	}
	if got := s.BestStreak(); got != 0 {
		t.Errorf("BestStreak after reset = %d, want 0", got)
	}
	if qs := s.Questions(); qs != nil {
		t.Errorf("Questions after reset = %v, want nil", qs)
	}
}

func TestRetryFromActiveRejected(t *testing.T) {
	s := startedSession(t, DefaultSettings(), 2)
	var serr *StateError
	if err := s.Retry(makeQuestions(2)); !errors.As(err, &serr) {
		t.Errorf("Retry while active = %v, want *StateError", err)
	}
}

func TestMarkResultSavedOnce(t *testing.T) {
	s := startedSession(t, DefaultSettings(), 1)
	if !s.MarkResultSaved() {
		t.Error("first MarkResultSaved = false, want true")
	}
	if s.MarkResultSaved() {
		t.Error("second MarkResultSaved = true, want false")
	}
	if err := s.Complete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.Retry(makeQuestions(1)); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.MarkResultSaved() {
		t.Error("MarkResultSaved after retry+start = false, want true")
	}
}

func TestUntimedTimeSpentUsesClock(t *testing.T) {
	settings := DefaultSettings()
	settings.TimerEnabled = false
	s := NewSession(settings)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if err := s.LoadQuestions(makeQuestions(1)); err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	base = base.Add(7 * time.Second)
	if _, err := s.SubmitAnswer("word1"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got, want := s.Questions()[0].TimeSpent, 7; got != want {
		t.Errorf("TimeSpent = %d, want %d", got, want)
	}
	if got, want := s.Duration(), 7; got != want {
		t.Errorf("Duration = %d, want %d", got, want)
	}
}
