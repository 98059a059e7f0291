// Package presets provides ready-made quiz configurations: year-level
// presets tuned to school stages, and challenge modes loaded from an
// embedded config file.
package presets

import (
	"fmt"
	"sort"

	"github.com/abhisek/spellquest/internal/quiz"
	"github.com/abhisek/spellquest/internal/quizgen"
)

// YearLevel identifies a school-stage preset.
type YearLevel string

const (
	Primary    YearLevel = "primary"
	JuniorHigh YearLevel = "junior-high"
	SeniorHigh YearLevel = "senior-high"
)

// Preset is a complete settings template for a year level.
type Preset struct {
	Label         string
	Description   string
	Difficulty    quizgen.Difficulty
	Questions     int
	TimerSeconds  int
	QuestionTypes []quizgen.QuestionType
	Categories    []string

	MaxCorrect   int
	MaxIncorrect int

	OverallTimerEnabled  bool
	OverallTimerDuration int
}

var yearLevels = map[YearLevel]Preset{
	Primary: {
		Label:         "Primary School",
		Description:   "Short words and a relaxed timer for young spellers",
		Difficulty:    quizgen.DifficultyEasy,
		Questions:     5,
		TimerSeconds:  12,
		QuestionTypes: []quizgen.QuestionType{quizgen.TypeMultipleChoice},
		Categories:    []string{"countries", "animals", "actions"},
		MaxCorrect:    5,
		MaxIncorrect:  3,
		OverallTimerDuration: 180,
	},
	JuniorHigh: {
		Label:         "Junior High School",
		Description:   "Longer rounds with typed answers",
		Difficulty:    quizgen.DifficultyEasy,
		Questions:     10,
		TimerSeconds:  10,
		QuestionTypes: []quizgen.QuestionType{quizgen.TypeInput, quizgen.TypeMultipleChoice},
		Categories:    []string{"countries", "animals", "actions"},
		MaxCorrect:    10,
		MaxIncorrect:  5,
		OverallTimerDuration: 600,
	},
	SeniorHigh: {
		Label:         "Senior High School",
		Description:   "Hard words, a tight timer, and a deadline for the whole round",
		Difficulty:    quizgen.DifficultyHard,
		Questions:     15,
		TimerSeconds:  8,
		QuestionTypes: []quizgen.QuestionType{quizgen.TypeInput, quizgen.TypeMultipleChoice},
		Categories:    []string{"countries", "animals", "actions"},
		MaxCorrect:    15,
		MaxIncorrect:  8,
		OverallTimerEnabled:  true,
		OverallTimerDuration: 900,
	},
}

// YearLevels returns the known levels in ascending stage order.
func YearLevels() []YearLevel {
	return []YearLevel{Primary, JuniorHigh, SeniorHigh}
}

// Get returns the preset for a year level.
func Get(level YearLevel) (Preset, error) {
	p, ok := yearLevels[level]
	if !ok {
		return Preset{}, fmt.Errorf("presets: unknown year level %q (known: %v)", level, sortedLevelStrings())
	}
	return p, nil
}

// Apply overlays a year-level preset onto existing settings, keeping
// the player identity fields. The first listed question type becomes
// the default; the form still lets the player switch.
func Apply(settings quiz.Settings, level YearLevel) (quiz.Settings, error) {
	p, err := Get(level)
	if err != nil {
		return settings, err
	}

	settings.Difficulty = p.Difficulty
	settings.NumberOfQuestions = p.Questions
	settings.TimerPerQuestion = p.TimerSeconds
	settings.QuestionType = p.QuestionTypes[0]
	settings.Categories = append([]string(nil), p.Categories...)
	settings.TimerEnabled = true
	settings.QuestionsEnabled = true
	settings.MinCorrectAnswers = 0
	settings.MaxCorrectAnswers = p.MaxCorrect
	settings.CorrectAnswersEnabled = false
	settings.MinIncorrectAnswers = 0
	settings.MaxIncorrectAnswers = p.MaxIncorrect
	settings.IncorrectAnswersEnabled = false
	settings.OverallTimerEnabled = p.OverallTimerEnabled
	settings.OverallTimerDuration = p.OverallTimerDuration
	return settings, nil
}

func sortedLevelStrings() []string {
	out := make([]string, 0, len(yearLevels))
	for l := range yearLevels {
		out = append(out, string(l))
	}
	sort.Strings(out)
	return out
}
