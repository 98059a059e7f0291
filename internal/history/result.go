// Package history persists finished rounds and player preferences in a
// local SQLite database, and reconciles them with the remote store.
package history

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/spellquest/internal/quiz"
)

// QuestionResult is the per-question slice of a saved round.
type QuestionResult struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	UserAnswer    string `json:"userAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	TimeSpent     int    `json:"timeSpent"`
}

// GameResult is one finished round as persisted locally and remotely.
// Field names match the wire shape of the remote game-history table.
type GameResult struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId,omitempty"`
	CreatedAt        string           `json:"created_at"`
	Settings         quiz.Settings    `json:"settings"`
	Questions        []QuestionResult `json:"questions"`
	TotalQuestions   int              `json:"totalQuestions"`
	CorrectAnswers   int              `json:"correctAnswers"`
	IncorrectAnswers int              `json:"incorrectAnswers"`
	Score            int              `json:"score"`
	BestStreak       int              `json:"bestStreak,omitempty"`
	CompletedAt      time.Time        `json:"completedAt"`
	TimeSpent        int              `json:"timeSpent"`
	QuizDuration     int              `json:"quizDuration"`
	AverageTime      float64          `json:"averageTimePerQuestion"`
	PendingSync      bool             `json:"pendingSync,omitempty"`
}

// NewResult captures a completed session as a GameResult. The whole
// generated sequence is recorded and counts toward the score; a round
// ended early by a bound, the overall deadline, or a quit keeps its
// unanswered words as misses rather than shrinking the denominator.
func NewResult(s *quiz.Session, userID string) *GameResult {
	now := time.Now().UTC()

	qs := make([]QuestionResult, 0, len(s.Questions()))
	var spent int
	for _, q := range s.Questions() {
		qs = append(qs, QuestionResult{
			Question:      q.Prompt,
			CorrectAnswer: q.Answer,
			UserAnswer:    q.UserAnswer,
			IsCorrect:     q.Correct,
			TimeSpent:     q.TimeSpent,
		})
		spent += q.TimeSpent
	}

	total := len(qs)
	score := 0
	avg := 0.0
	if total > 0 {
		score = int(math.Round(float64(s.CorrectCount()) / float64(total) * 100))
		avg = float64(spent) / float64(total)
	}

	return &GameResult{
		ID:               uuid.NewString(),
		UserID:           userID,
		CreatedAt:        now.Format(time.RFC3339),
		Settings:         s.Settings(),
		Questions:        qs,
		TotalQuestions:   total,
		CorrectAnswers:   s.CorrectCount(),
		IncorrectAnswers: s.IncorrectCount(),
		Score:            score,
		BestStreak:       s.BestStreak(),
		CompletedAt:      now,
		TimeSpent:        spent,
		QuizDuration:     s.Duration(),
		AverageTime:      avg,
	}
}
