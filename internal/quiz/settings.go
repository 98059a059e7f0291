package quiz

import (
	"errors"
	"fmt"

	"github.com/abhisek/spellquest/internal/quizgen"
	"github.com/abhisek/spellquest/internal/wordbank"
)

// Minimum values enforced when the corresponding feature is enabled.
const (
	MinQuestions      = 5
	MinTimerSeconds   = 5
	MaxHistoryEntries = 100
)

// Settings is the configuration snapshot a session is started with.
// The JSON tags match the persisted game-record shape.
type Settings struct {
	Username          string               `json:"username"`
	Difficulty        quizgen.Difficulty   `json:"difficulty"`
	NumberOfQuestions int                  `json:"numberOfQuestions"`
	TimerPerQuestion  int                  `json:"timerPerQuestion"`
	QuestionType      quizgen.QuestionType `json:"questionType"`
	Categories        []string             `json:"categories"`

	TimerEnabled     bool `json:"timerEnabled"`
	QuestionsEnabled bool `json:"questionsEnabled"`

	MinCorrectAnswers     int  `json:"minCorrectAnswers"`
	MaxCorrectAnswers     int  `json:"maxCorrectAnswers"`
	CorrectAnswersEnabled bool `json:"correctAnswersEnabled"`

	MinIncorrectAnswers     int  `json:"minIncorrectAnswers"`
	MaxIncorrectAnswers     int  `json:"maxIncorrectAnswers"`
	IncorrectAnswersEnabled bool `json:"incorrectAnswersEnabled"`

	OverallTimerEnabled  bool `json:"overallTimerEnabled"`
	OverallTimerDuration int  `json:"overallTimerDuration"`

	ChallengeMode string `json:"challengeMode,omitempty"`
}

// DefaultSettings returns the starting configuration for a new player.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:          quizgen.DifficultyEasy,
		NumberOfQuestions:   5,
		TimerPerQuestion:    10,
		QuestionType:        quizgen.TypeInput,
		Categories:          []string{wordbank.CategoryAll},
		TimerEnabled:        true,
		QuestionsEnabled:    true,
		MaxCorrectAnswers:   5,
		MaxIncorrectAnswers: 5,
		OverallTimerEnabled: false,
		OverallTimerDuration: 180,
	}
}

// Validate checks the invariants the setup form must respect. Bounds
// for disabled features are ignored.
func (s Settings) Validate() error {
	if len(s.Categories) == 0 {
		return errors.New("settings: at least one category is required")
	}
	if s.QuestionsEnabled && s.NumberOfQuestions < MinQuestions {
		return fmt.Errorf("settings: number of questions must be at least %d", MinQuestions)
	}
	if s.TimerEnabled && s.TimerPerQuestion < MinTimerSeconds {
		return fmt.Errorf("settings: per-question timer must be at least %ds", MinTimerSeconds)
	}
	if s.OverallTimerEnabled && s.OverallTimerDuration < 1 {
		return errors.New("settings: overall timer duration must be positive")
	}
	if s.CorrectAnswersEnabled && s.MaxCorrectAnswers < 1 {
		return errors.New("settings: max correct answers must be positive when enabled")
	}
	if s.IncorrectAnswersEnabled && s.MaxIncorrectAnswers < 1 {
		return errors.New("settings: max incorrect answers must be positive when enabled")
	}
	return nil
}
