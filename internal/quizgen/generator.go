// Package quizgen turns the word bank into ordered question sequences
// and owns the answer-matching policy.
package quizgen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/abhisek/spellquest/internal/wordbank"
)

var (
	// ErrInvalidCount is returned when fewer than one question is requested.
	ErrInvalidCount = errors.New("question count must be at least 1")
	// ErrNoCategories is returned when the category set is empty.
	ErrNoCategories = errors.New("at least one category is required")
)

// Generator produces question sequences from the word bank.
// The random source is injectable so tests can seed it.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator. A nil rng gets a time-seeded source.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// difficultyTags maps the requested difficulty onto source tags.
// Hard deliberately accepts medium-tagged words as well, so hard mode
// does not starve on the scarcer hard-only content. Easy stays strict.
func difficultyTags(d Difficulty) []string {
	if d == DifficultyHard {
		return []string{"hard", "medium"}
	}
	return []string{"easy"}
}

// Generate builds an ordered sequence of up to count questions matching
// the requested difficulty and categories. When the filtered pool is
// smaller than count, the whole pool is returned rather than an error.
func (g *Generator) Generate(count int, difficulty Difficulty, questionType QuestionType, categories []string) ([]*Question, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	pool, err := wordbank.Filter(categories, difficultyTags(difficulty))
	if err != nil {
		return nil, fmt.Errorf("filter word bank: %w", err)
	}

	shuffled := make([]wordbank.Word, len(pool))
	copy(shuffled, pool)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := count
	if n > len(shuffled) {
		n = len(shuffled)
	}

	questions := make([]*Question, 0, n)
	for i, w := range shuffled[:n] {
		q := &Question{
			ID:         i + 1,
			Prompt:     w.Definition,
			Answer:     w.Word,
			Category:   w.Category,
			Difficulty: w.Difficulty,
			Synonyms:   w.Synonyms,
		}
		if questionType == TypeMultipleChoice {
			q.Options = g.buildOptions(w.Word, pool)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// buildOptions assembles the option set: the answer plus up to
// MaxChoices-1 distinct distractors drawn without replacement from the
// pool, shuffled. With a tiny pool fewer options come back.
func (g *Generator) buildOptions(answer string, pool []wordbank.Word) []string {
	var candidates []string
	seen := map[string]bool{answer: true}
	for _, w := range pool {
		if !seen[w.Word] {
			seen[w.Word] = true
			candidates = append(candidates, w.Word)
		}
	}
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	k := MaxChoices - 1
	if k > len(candidates) {
		k = len(candidates)
	}

	options := append([]string{answer}, candidates[:k]...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
