package results

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/quiz"
	"github.com/abhisek/spellquest/internal/quizgen"
	"github.com/abhisek/spellquest/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// completedSession plays through a five-word round with one miss.
func completedSession(t *testing.T) *quiz.Session {
	t.Helper()
	settings := quiz.DefaultSettings()
	settings.Username = "Mira"
	settings.TimerEnabled = false

	qs := make([]*quizgen.Question, 5)
	for i := range qs {
		qs[i] = &quizgen.Question{
			ID:     i + 1,
			Prompt: fmt.Sprintf("definition %d", i+1),
			Answer: fmt.Sprintf("word%d", i+1),
		}
	}

	s := quiz.NewSession(settings)
	if err := s.LoadQuestions(qs); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	for i, q := range qs {
		answer := q.Answer
		if i == 2 {
			answer = "wrong"
		}
		if _, err := s.SubmitAnswer(answer); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if s.State() != quiz.StateCompleted {
		t.Fatalf("state = %v, want completed", s.State())
	}
	return s
}

func testRecorder(t *testing.T) *history.Recorder {
	t.Helper()
	store, err := history.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return history.NewRecorder(store, nil, nil)
}

func TestResultsScreen_SaveOnInit(t *testing.T) {
	sess := completedSession(t)
	s := New(testRecorder(t), sess, "u1", nil)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	msg, ok := cmd().(resultSavedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want resultSavedMsg", cmd())
	}
	if msg.Err != nil {
		t.Fatalf("save: %v", msg.Err)
	}
	if msg.Result == nil {
		t.Fatal("expected a saved result")
	}
	if msg.Result.Score != 80 {
		t.Errorf("Score = %d, want 80", msg.Result.Score)
	}
	if !msg.Result.PendingSync {
		t.Error("no remote configured, result should be pending sync")
	}
}

func TestResultsScreen_SaveOnce(t *testing.T) {
	sess := completedSession(t)
	rec := testRecorder(t)
	s := New(rec, sess, "u1", nil)

	first := s.saveResult()().(resultSavedMsg)
	if first.Result == nil || first.Err != nil {
		t.Fatalf("first save = (%v, %v)", first.Result, first.Err)
	}

	second := s.saveResult()().(resultSavedMsg)
	if second.Result != nil || second.Err != nil {
		t.Errorf("second save = (%v, %v), want (nil, nil)", second.Result, second.Err)
	}
}

func TestResultsScreen_RetryReplaces(t *testing.T) {
	sess := completedSession(t)
	replayCalled := false
	s := New(testRecorder(t), sess, "u1", func() screen.Screen {
		replayCalled = true
		return nil
	})

	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	cmd()
	if !replayCalled {
		t.Error("expected the replay factory invoked")
	}
}

func TestResultsScreen_View(t *testing.T) {
	sess := completedSession(t)
	s := New(testRecorder(t), sess, "u1", nil)

	view := s.View(80, 24)
	if !strings.Contains(view, "80%") {
		t.Errorf("view missing score, got:\n%s", view)
	}
	if !strings.Contains(view, "4 correct") {
		t.Error("view missing correct count")
	}
}

// An early-ended round scores against every generated word, so three
// correct answers out of ten show 30%, not 100%.
func TestResultsScreen_ViewEarlyFinish(t *testing.T) {
	settings := quiz.DefaultSettings()
	settings.TimerEnabled = false
	settings.NumberOfQuestions = 10

	qs := make([]*quizgen.Question, 10)
	for i := range qs {
		qs[i] = &quizgen.Question{
			ID:     i + 1,
			Prompt: fmt.Sprintf("definition %d", i+1),
			Answer: fmt.Sprintf("word%d", i+1),
		}
	}
	sess := quiz.NewSession(settings)
	if err := sess.LoadQuestions(qs); err != nil {
		t.Fatal(err)
	}
	if err := sess.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := sess.SubmitAnswer(qs[i].Answer); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := sess.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if err := sess.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	s := New(testRecorder(t), sess, "u1", nil)
	view := s.View(80, 24)
	if !strings.Contains(view, "30%") {
		t.Errorf("view missing whole-round score, got:\n%s", view)
	}
	if strings.Contains(view, "100%") {
		t.Error("answered-only score leaked into the view")
	}
	if !strings.Contains(view, "7 unanswered") {
		t.Error("view missing the unanswered count")
	}
	for _, a := range s.earned {
		if a.ID == "first_perfect" {
			t.Error("a 30% round must not earn the perfect badge")
		}
	}
}

func TestResultsScreen_Achievements(t *testing.T) {
	sess := completedSession(t)
	s := New(testRecorder(t), sess, "u1", nil)

	// 4/5 with no miss before question 3 means a best streak of 3 at
	// most, so streak_master must not appear; persistence badges need
	// ten questions.
	for _, a := range s.earned {
		if a.ID == "first_perfect" {
			t.Error("80% round must not earn the perfect badge")
		}
		if a.ID == "streak_master" {
			t.Error("best streak of 3 must not earn streak_master")
		}
	}
}
