package history

import "math"

// Stats aggregates saved rounds for the stats command and the history
// screen header.
type Stats struct {
	Games         int
	Questions     int
	Correct       int
	Incorrect     int
	AverageScore  int
	BestScore     int
	BestStreak    int
	PerfectRounds int
	PendingSync   int
	TotalPlaySecs int
}

// Summarize folds a result list into aggregate stats.
func Summarize(results []*GameResult) Stats {
	var st Stats
	scoreSum := 0
	for _, r := range results {
		st.Games++
		st.Questions += r.TotalQuestions
		st.Correct += r.CorrectAnswers
		st.Incorrect += r.IncorrectAnswers
		st.TotalPlaySecs += r.QuizDuration
		scoreSum += r.Score
		if r.Score > st.BestScore {
			st.BestScore = r.Score
		}
		if r.BestStreak > st.BestStreak {
			st.BestStreak = r.BestStreak
		}
		if r.Score == 100 && r.TotalQuestions > 0 {
			st.PerfectRounds++
		}
		if r.PendingSync {
			st.PendingSync++
		}
	}
	if st.Games > 0 {
		st.AverageScore = int(math.Round(float64(scoreSum) / float64(st.Games)))
	}
	return st
}
