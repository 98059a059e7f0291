// Package wordbank provides the static word dataset quizzes draw from.
// Words are embedded at build time and loaded once; the dataset is
// read-only shared data with no per-session ownership.
package wordbank

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	_ "embed"
)

//go:embed data.json
var rawData []byte

// Word is a single dataset entry. The definition doubles as the question
// prompt; synonyms feed optional hints.
type Word struct {
	Word       string   `json:"word"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"` // easy | medium | hard
	Definition string   `json:"definition"`
	Synonyms   []string `json:"synonyms"`
}

// CategoryAll is the sentinel that expands to every known category.
const CategoryAll = "all"

var (
	loadOnce sync.Once
	words    []Word
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		if err := json.Unmarshal(rawData, &words); err != nil {
			loadErr = fmt.Errorf("parse embedded word data: %w", err)
			return
		}
		for i, w := range words {
			if w.Word == "" || w.Category == "" || w.Difficulty == "" {
				loadErr = fmt.Errorf("word entry %d is missing required fields", i)
				return
			}
		}
	})
}

// All returns every word in the dataset. The returned slice is shared;
// callers must not mutate it.
func All() ([]Word, error) {
	load()
	return words, loadErr
}

// Categories returns the sorted set of categories present in the dataset.
func Categories() ([]string, error) {
	ws, err := All()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var cats []string
	for _, w := range ws {
		if !seen[w.Category] {
			seen[w.Category] = true
			cats = append(cats, w.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// Filter returns the words whose category is in categories and whose
// difficulty tag is in difficulties. A categories set containing
// CategoryAll matches every category.
func Filter(categories, difficulties []string) ([]Word, error) {
	ws, err := All()
	if err != nil {
		return nil, err
	}

	catSet := make(map[string]bool, len(categories))
	all := false
	for _, c := range categories {
		if c == CategoryAll {
			all = true
		}
		catSet[c] = true
	}
	diffSet := make(map[string]bool, len(difficulties))
	for _, d := range difficulties {
		diffSet[d] = true
	}

	var out []Word
	for _, w := range ws {
		if !all && !catSet[w.Category] {
			continue
		}
		if !diffSet[w.Difficulty] {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}
