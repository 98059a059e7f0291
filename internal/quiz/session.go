// Package quiz implements the session state machine and the countdown
// channels that drive it. A Session is an explicitly owned container;
// callers construct one per attempt and inject it where needed; there
// is no process-wide instance.
package quiz

import (
	"time"

	"github.com/abhisek/spellquest/internal/quizgen"
)

// Channel names one of the two independent countdown tracks.
type Channel int

const (
	// ChannelQuestion is the per-question countdown.
	ChannelQuestion Channel = iota
	// ChannelOverall is the whole-quiz countdown.
	ChannelOverall
)

func (c Channel) String() string {
	if c == ChannelOverall {
		return "overall"
	}
	return "question"
}

// TickResult reports what a countdown decrement caused.
type TickResult struct {
	// Remaining is the channel's value after the decrement.
	Remaining int

	// TimedOut is true when the decrement drove the channel to zero.
	TimedOut bool

	// Completed is true when the tick terminated the session, either
	// through the last question timing out or overall-timer expiry.
	Completed bool
}

// Session holds one quiz attempt: settings snapshot, question sequence,
// counters, streaks, and both countdowns. All operations are
// synchronous; wrong-state calls return a *StateError.
type Session struct {
	settings  Settings
	questions []*quizgen.Question

	state   State
	current int

	correctCount   int
	incorrectCount int
	currentStreak  int
	bestStreak     int

	quizStart     time.Time
	questionStart time.Time

	timeRemaining        int
	overallRemaining     int
	overallActive        bool

	resultSaved bool

	now func() time.Time
}

// NewSession creates an idle session with the given settings snapshot.
func NewSession(settings Settings) *Session {
	return &Session{
		settings: settings,
		now:      time.Now,
	}
}

// LoadQuestions seeds the question sequence and resets the index,
// moving the session to ready. An empty sequence is rejected so the
// caller can redirect instead of rendering a hollow quiz.
func (s *Session) LoadQuestions(qs []*quizgen.Question) error {
	if s.state == StateActive {
		return &StateError{Op: "load questions", State: s.state}
	}
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	s.questions = qs
	s.current = 0
	s.state = StateReady
	return nil
}

// Start begins the attempt: counters zeroed, both countdowns
// initialized from settings (zero when their flag is off), start time
// stamped. Start is not idempotent: calling it again while active
// restarts timers and counters, which the play surface relies on for
// the "restart" action.
func (s *Session) Start() error {
	if s.state != StateReady && s.state != StateActive {
		return &StateError{Op: "start", State: s.state}
	}

	s.state = StateActive
	s.current = 0
	s.correctCount = 0
	s.incorrectCount = 0
	s.currentStreak = 0
	s.quizStart = s.now()
	s.questionStart = s.quizStart
	s.resultSaved = false

	s.timeRemaining = 0
	if s.settings.TimerEnabled {
		s.timeRemaining = s.settings.TimerPerQuestion
	}
	s.overallRemaining = 0
	s.overallActive = false
	if s.settings.OverallTimerEnabled {
		s.overallRemaining = s.settings.OverallTimerDuration
		s.overallActive = true
	}
	return nil
}

// SubmitAnswer records the player's answer on the current question:
// outcome, time spent, counters, and streaks. It does not advance the
// index; advancement is a separate phase so the UI can show
// correctness feedback in between.
func (s *Session) SubmitAnswer(answer string) (bool, error) {
	if s.state != StateActive {
		return false, &StateError{Op: "submit answer", State: s.state}
	}
	q := s.questions[s.current]
	if q.Answered {
		return false, ErrAlreadyAnswered
	}

	correct := quizgen.CheckAnswer(answer, q.Answer)
	s.recordOutcome(q, answer, correct, s.elapsedOnQuestion())
	return correct, nil
}

// recordOutcome fills a question's submission fields exactly once and
// updates counters and streaks.
func (s *Session) recordOutcome(q *quizgen.Question, answer string, correct bool, timeSpent int) {
	q.Answered = true
	q.UserAnswer = answer
	q.Correct = correct
	q.TimeSpent = timeSpent

	if correct {
		s.correctCount++
		s.currentStreak++
		if s.currentStreak > s.bestStreak {
			s.bestStreak = s.currentStreak
		}
	} else {
		s.incorrectCount++
		s.currentStreak = 0
	}
}

// elapsedOnQuestion returns seconds spent on the current question: the
// countdown delta when the per-question timer runs, wall clock
// otherwise.
func (s *Session) elapsedOnQuestion() int {
	if s.settings.TimerEnabled {
		return s.settings.TimerPerQuestion - s.timeRemaining
	}
	return int(s.now().Sub(s.questionStart).Seconds())
}

// Advance moves to the next question, or completes the session when an
// end predicate holds. Predicates are evaluated in order: sequence
// exhausted, correct-answer bound, incorrect-answer bound. On
// completion the index freezes at the last served question.
func (s *Session) Advance() error {
	if s.state != StateActive {
		return &StateError{Op: "advance", State: s.state}
	}

	exhausted := s.current+1 >= len(s.questions)
	correctBound := s.settings.CorrectAnswersEnabled && s.correctCount >= s.settings.MaxCorrectAnswers
	incorrectBound := s.settings.IncorrectAnswersEnabled && s.incorrectCount >= s.settings.MaxIncorrectAnswers

	if exhausted || correctBound || incorrectBound {
		s.finish()
		return nil
	}

	s.current++
	s.questionStart = s.now()
	s.timeRemaining = 0
	if s.settings.TimerEnabled {
		s.timeRemaining = s.settings.TimerPerQuestion
	}
	return nil
}

// Tick decrements the named countdown by one second. A channel whose
// feature flag is off is inert. The question channel reaching zero
// synthesizes exactly one timeout submission followed by an advance;
// the overall channel reaching zero force-completes the whole quiz,
// a distinct termination path from the per-question timeout.
func (s *Session) Tick(ch Channel) (TickResult, error) {
	if s.state != StateActive {
		return TickResult{}, &StateError{Op: "tick " + ch.String(), State: s.state}
	}

	switch ch {
	case ChannelOverall:
		if !s.settings.OverallTimerEnabled || !s.overallActive {
			return TickResult{Remaining: s.overallRemaining}, nil
		}
		if s.overallRemaining > 0 {
			s.overallRemaining--
		}
		if s.overallRemaining == 0 {
			s.finish()
			return TickResult{TimedOut: true, Completed: true}, nil
		}
		return TickResult{Remaining: s.overallRemaining}, nil

	default:
		if !s.settings.TimerEnabled {
			return TickResult{Remaining: s.timeRemaining}, nil
		}
		if s.timeRemaining > 0 {
			s.timeRemaining--
		}
		if s.timeRemaining > 0 {
			return TickResult{Remaining: s.timeRemaining}, nil
		}

		// Question timed out: one implicit empty submission, then advance.
		q := s.questions[s.current]
		if !q.Answered {
			s.recordOutcome(q, "", false, s.settings.TimerPerQuestion)
		}
		if err := s.Advance(); err != nil {
			return TickResult{}, err
		}
		return TickResult{
			Remaining: s.timeRemaining,
			TimedOut:  true,
			Completed: s.state == StateCompleted,
		}, nil
	}
}

// Complete terminates the attempt manually, e.g. the finish action when
// no limit is configured. Calling it on an already completed session is
// a no-op.
func (s *Session) Complete() error {
	if s.state == StateCompleted {
		return nil
	}
	if s.state != StateActive {
		return &StateError{Op: "complete", State: s.state}
	}
	s.finish()
	return nil
}

// finish is the single completion path: flags flip together and both
// countdowns are deactivated, so completion happens exactly once.
func (s *Session) finish() {
	s.state = StateCompleted
	s.timeRemaining = 0
	s.overallActive = false
}

// Retry returns a completed session to ready with a fresh question
// sequence, reusing the same settings. The best streak survives a
// retry: it is the same player re-attempting the same configuration.
func (s *Session) Retry(qs []*quizgen.Question) error {
	if s.state != StateCompleted {
		return &StateError{Op: "retry", State: s.state}
	}
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	s.questions = qs
	s.current = 0
	s.state = StateReady
	s.correctCount = 0
	s.incorrectCount = 0
	s.currentStreak = 0
	s.quizStart = time.Time{}
	s.timeRemaining = 0
	s.overallRemaining = 0
	s.overallActive = false
	s.resultSaved = false
	return nil
}

// Reset abandons the attempt entirely and returns to idle. Unlike
// Retry, the best streak is cleared: the configuration is gone, so
// the streak's context is too.
func (s *Session) Reset() {
	s.questions = nil
	s.current = 0
	s.state = StateIdle
	s.correctCount = 0
	s.incorrectCount = 0
	s.currentStreak = 0
	s.bestStreak = 0
	s.quizStart = time.Time{}
	s.timeRemaining = 0
	s.overallRemaining = 0
	s.overallActive = false
	s.resultSaved = false
}

// MarkResultSaved claims the one result-save slot for this attempt.
// It returns true exactly once per completed session; later calls (a
// re-rendered results screen, a repeated keypress) report false so the
// caller skips the duplicate write.
func (s *Session) MarkResultSaved() bool {
	if s.resultSaved {
		return false
	}
	s.resultSaved = true
	return true
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Settings returns the settings snapshot the session was built with.
func (s *Session) Settings() Settings { return s.settings }

// Questions returns the question sequence. The session retains
// ownership; treat it as read-only outside submission.
func (s *Session) Questions() []*quizgen.Question { return s.questions }

// CurrentIndex returns the 0-based index of the question being served.
func (s *Session) CurrentIndex() int { return s.current }

// CurrentQuestion returns the active question, or nil outside
// ready/active/completed states.
func (s *Session) CurrentQuestion() *quizgen.Question {
	if s.current < len(s.questions) {
		return s.questions[s.current]
	}
	return nil
}

// CorrectCount returns correct submissions so far.
func (s *Session) CorrectCount() int { return s.correctCount }

// IncorrectCount returns incorrect submissions so far.
func (s *Session) IncorrectCount() int { return s.incorrectCount }

// CurrentStreak returns the running streak of consecutive correct answers.
func (s *Session) CurrentStreak() int { return s.currentStreak }

// BestStreak returns the best streak seen this attempt (and, across
// retries, this sitting).
func (s *Session) BestStreak() int { return s.bestStreak }

// TimeRemaining returns the per-question countdown value.
func (s *Session) TimeRemaining() int { return s.timeRemaining }

// OverallTimeRemaining returns the whole-quiz countdown value.
func (s *Session) OverallTimeRemaining() int { return s.overallRemaining }

// StartedAt returns when Start was called, zero before that.
func (s *Session) StartedAt() time.Time { return s.quizStart }

// Duration returns wall-clock seconds since Start.
func (s *Session) Duration() int {
	if s.quizStart.IsZero() {
		return 0
	}
	return int(s.now().Sub(s.quizStart).Round(time.Second).Seconds())
}
