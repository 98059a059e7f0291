package quizgen

// Difficulty is the player-facing difficulty selection.
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// QuestionType describes how the player answers.
type QuestionType string

const (
	// TypeInput means the player spells the word from its definition.
	TypeInput QuestionType = "input"

	// TypeMultipleChoice means the player picks the word from options.
	TypeMultipleChoice QuestionType = "multiple-choice"
)

// MaxChoices is the option count for multiple-choice questions: the
// canonical answer plus up to three distractors.
const MaxChoices = 4

// Question is one quiz item. Generation fills the immutable fields;
// the session fills the answer fields exactly once at submission time,
// after which the question is read-only for review and results.
type Question struct {
	// ID is the 1-based position within the generated sequence.
	ID int

	// Prompt is the clue shown to the player (the word's definition).
	Prompt string

	// Answer is the canonical correct spelling.
	Answer string

	// Options holds the multiple-choice option set. Empty for TypeInput.
	// Contains Answer exactly once.
	Options []string

	// Category and Difficulty are the source word's tags.
	Category   string
	Difficulty string

	// Synonyms back the optional hint display.
	Synonyms []string

	// Answered is true once the session has recorded a submission.
	Answered bool

	// UserAnswer is the submitted text; empty for a timeout submission.
	UserAnswer string

	// Correct records the outcome of the submission.
	Correct bool

	// TimeSpent is the seconds spent on this question.
	TimeSpent int
}
