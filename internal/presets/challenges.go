package presets

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/spellquest/internal/quiz"
)

//go:embed games.json
var gamesConfig []byte

// NoChallenge is the sentinel entry that clears challenge overrides.
const NoChallenge = "No Challenge"

// Challenge is a named rule set that overrides parts of the player's
// settings for one round.
type Challenge struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Settings    ChallengeSettings `json:"settings"`
}

// ChallengeSettings mirrors the embedded config. NumberOfQuestions and
// TimerPerQuestion are optional; zero means "keep the player's value".
type ChallengeSettings struct {
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

	NumberOfQuestions int `json:"numberOfQuestions,omitempty"`
	TimerPerQuestion  int `json:"timerPerQuestion,omitempty"`
}

// challengeSchema guards the embedded config: a malformed entry is a
// packaging bug and should fail loudly at first use, not mid-game.
const challengeSchema = `{
  "type": "object",
  "required": ["challenges"],
  "properties": {
    "challenges": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "description", "settings"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "settings": {
            "type": "object",
            "required": [
              "timerEnabled", "questionsEnabled",
              "minCorrectAnswers", "maxCorrectAnswers", "correctAnswersEnabled",
              "minIncorrectAnswers", "maxIncorrectAnswers", "incorrectAnswersEnabled",
              "overallTimerEnabled", "overallTimerDuration"
            ],
            "properties": {
              "minCorrectAnswers": {"type": "integer", "minimum": 0},
              "maxCorrectAnswers": {"type": "integer", "minimum": 0},
              "minIncorrectAnswers": {"type": "integer", "minimum": 0},
              "maxIncorrectAnswers": {"type": "integer", "minimum": 0},
              "overallTimerDuration": {"type": "integer", "minimum": 0},
              "numberOfQuestions": {"type": "integer", "minimum": 1},
              "timerPerQuestion": {"type": "integer", "minimum": 1}
            }
          }
        }
      }
    }
  }
}`

var (
	loadOnce   sync.Once
	challenges []Challenge
	loadErr    error
)

func load() ([]Challenge, error) {
	loadOnce.Do(func() {
		if loadErr = validateConfig(gamesConfig); loadErr != nil {
			return
		}
		var cfg struct {
			Challenges []Challenge `json:"challenges"`
		}
		if err := json.Unmarshal(gamesConfig, &cfg); err != nil {
			loadErr = fmt.Errorf("presets: parse games config: %w", err)
			return
		}
		challenges = cfg.Challenges
	})
	return challenges, loadErr
}

func validateConfig(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("presets: games config is not valid JSON: %w", err)
	}

	var schemaDoc any
	if err := json.Unmarshal([]byte(challengeSchema), &schemaDoc); err != nil {
		return fmt.Errorf("presets: parse challenge schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://games.json", schemaDoc); err != nil {
		return fmt.Errorf("presets: add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema://games.json")
	if err != nil {
		return fmt.Errorf("presets: compile challenge schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("presets: games config rejected by schema: %w", err)
	}
	return nil
}

// Challenges returns every configured challenge mode in file order.
func Challenges() ([]Challenge, error) {
	return load()
}

// FindChallenge returns the named challenge, or false when unknown.
func FindChallenge(name string) (Challenge, bool) {
	all, err := load()
	if err != nil {
		return Challenge{}, false
	}
	for _, c := range all {
		if c.Name == name {
			return c, true
		}
	}
	return Challenge{}, false
}

// ApplyChallenge overlays a challenge's rules onto the player's
// settings. Unknown names clear any previous challenge and leave the
// rest untouched. NoChallenge keeps the player's configuration but
// switches the bound and deadline features off.
func ApplyChallenge(settings quiz.Settings, name string) quiz.Settings {
	c, ok := FindChallenge(name)
	if !ok {
		settings.ChallengeMode = ""
		return settings
	}

	settings.ChallengeMode = c.Name
	if c.Name == NoChallenge {
		settings.CorrectAnswersEnabled = false
		settings.IncorrectAnswersEnabled = false
		settings.OverallTimerEnabled = false
		return settings
	}

	settings.TimerEnabled = c.Settings.TimerEnabled
	settings.QuestionsEnabled = c.Settings.QuestionsEnabled
	settings.MinCorrectAnswers = c.Settings.MinCorrectAnswers
	settings.MaxCorrectAnswers = c.Settings.MaxCorrectAnswers
	settings.CorrectAnswersEnabled = c.Settings.CorrectAnswersEnabled
	settings.MinIncorrectAnswers = c.Settings.MinIncorrectAnswers
	settings.MaxIncorrectAnswers = c.Settings.MaxIncorrectAnswers
	settings.IncorrectAnswersEnabled = c.Settings.IncorrectAnswersEnabled
	settings.OverallTimerEnabled = c.Settings.OverallTimerEnabled
	settings.OverallTimerDuration = c.Settings.OverallTimerDuration

	if c.Settings.NumberOfQuestions > 0 {
		settings.NumberOfQuestions = c.Settings.NumberOfQuestions
		// Bounds above the question count can never trigger.
		if settings.MaxCorrectAnswers > settings.NumberOfQuestions {
			settings.MaxCorrectAnswers = settings.NumberOfQuestions
		}
		if settings.MaxIncorrectAnswers > settings.NumberOfQuestions {
			settings.MaxIncorrectAnswers = settings.NumberOfQuestions
		}
	}
	if c.Settings.TimerPerQuestion > 0 {
		settings.TimerPerQuestion = c.Settings.TimerPerQuestion
	}
	return settings
}

// ChallengeCompleted reports whether the finished round satisfied the
// named challenge's requirements. NoChallenge never completes.
func ChallengeCompleted(name string, correct, incorrect, duration int) bool {
	c, ok := FindChallenge(name)
	if !ok || c.Name == NoChallenge {
		return false
	}
	s := c.Settings
	if s.CorrectAnswersEnabled {
		if correct < s.MinCorrectAnswers || correct > s.MaxCorrectAnswers {
			return false
		}
	}
	if s.IncorrectAnswersEnabled {
		if incorrect < s.MinIncorrectAnswers || incorrect > s.MaxIncorrectAnswers {
			return false
		}
	}
	if s.OverallTimerEnabled && duration > 0 && duration > s.OverallTimerDuration {
		return false
	}
	return true
}

// CompletionMessage returns the congratulations line for a finished
// challenge.
func CompletionMessage(name string) string {
	messages := map[string]string{
		"Perfect Score":   "Amazing! You achieved a perfect score! Every answer was correct!",
		"Speed Challenge": "Lightning fast! You beat the clock and conquered the speed challenge!",
		"Lightning Round": "Spectacular! You dominated the lightning round with precision and speed!",
		"Marathon Mode":   "Marathon champion! You conquered the epic 30-question challenge!",
		"Survivor Mode":   "Ultimate survivor! You outlasted the challenge like a hero!",
		"One Shot Wonder": "Flawless execution! You're a one-shot wonder superstar!",
		"Time Pressure":   "Pressure handled! You stayed cool under the time crunch!",
		"Steady Pace":     "Steady wins the race! Your patience and accuracy paid off!",
	}
	if m, ok := messages[name]; ok {
		return m
	}
	return fmt.Sprintf("Congratulations! You completed the %s challenge!", name)
}
