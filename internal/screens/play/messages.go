package play

import (
	"github.com/abhisek/spellquest/internal/quiz"
)

// quizReadyMsg is sent when question generation and player resolution
// are done and the round can start.
type quizReadyMsg struct {
	Session *quiz.Session
	UserID  string
	Err     error
}

// timerTickMsg is sent every second per active countdown channel. The
// generation stamp lets stale ticks from a finished round be dropped.
type timerTickMsg struct {
	Gen     int
	Channel quiz.Channel
}

// feedbackDoneMsg dismisses the answer feedback overlay.
type feedbackDoneMsg struct{}
