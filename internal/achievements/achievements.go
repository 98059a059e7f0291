// Package achievements awards badges for a finished round.
package achievements

import (
	"math"

	"github.com/abhisek/spellquest/internal/quiz"
	"github.com/abhisek/spellquest/internal/quizgen"
)

// Achievement is a badge earned by a finished round.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Emoji       string
}

// Check returns the badges unlocked by a round's outcome, in a stable
// order. A zero-question round earns nothing.
func Check(correct, total, bestStreak int, settings quiz.Settings) []Achievement {
	if total <= 0 {
		return nil
	}
	percentage := int(math.Round(float64(correct) / float64(total) * 100))

	multiCategory := 0
	for _, c := range settings.Categories {
		if c != "" && c != "all" {
			multiCategory++
		}
	}

	candidates := []struct {
		a        Achievement
		unlocked bool
	}{
		{Achievement{"first_perfect", "Perfect Score!", "Got 100% on a quiz", "🏆"}, percentage == 100},
		{Achievement{"streak_master", "Streak Master", "Got 5 answers correct in a row", "🔥"}, bestStreak >= 5},
		{Achievement{"spelling_ninja", "Spelling Ninja", "Completed a hard difficulty quiz", "🥷"}, settings.Difficulty == quizgen.DifficultyHard},
		{Achievement{"speed_demon", "Speed Demon", "Completed a quiz with 5 seconds per question", "⚡"}, settings.TimerEnabled && settings.TimerPerQuestion <= 5},
		{Achievement{"multi_master", "Multi-Master", "Played 3 or more word categories at once", "🎯"}, multiCategory >= 3},
		{Achievement{"high_achiever", "High Achiever", "Scored 90% or higher", "⭐"}, percentage >= 90},
		{Achievement{"persistent_learner", "Persistent Learner", "Completed a 10+ question quiz", "📚"}, total >= 10},
	}

	var unlocked []Achievement
	for _, c := range candidates {
		if c.unlocked {
			unlocked = append(unlocked, c.a)
		}
	}
	return unlocked
}
