package quizgen

import "strings"

// CheckAnswer compares a submitted spelling against the canonical
// answer. Comparison is whitespace-trimmed and case-insensitive; an
// empty submission is never correct. This is the single answer-matching
// policy for both input and multiple-choice questions.
func CheckAnswer(submitted, answer string) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return false
	}
	return strings.EqualFold(submitted, strings.TrimSpace(answer))
}
