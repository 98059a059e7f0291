// Package results shows the outcome of a finished quiz round and
// persists it through the game recorder.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellquest/internal/achievements"
	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/presets"
	"github.com/abhisek/spellquest/internal/quiz"
	"github.com/abhisek/spellquest/internal/router"
	"github.com/abhisek/spellquest/internal/screen"
	"github.com/abhisek/spellquest/internal/ui/layout"
	"github.com/abhisek/spellquest/internal/ui/theme"
)

// resultSavedMsg reports the outcome of persisting the round.
type resultSavedMsg struct {
	Result *history.GameResult
	Err    error
}

// ResultsScreen implements screen.Screen for the post-round summary.
type ResultsScreen struct {
	recorder *history.Recorder
	session  *quiz.Session
	userID   string
	replay   func() screen.Screen

	result  *history.GameResult
	earned  []achievements.Achievement
	saveErr error
	saved   bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen for a completed session. replay
// builds a fresh play screen over the same session for the retry
// action.
func New(recorder *history.Recorder, session *quiz.Session, userID string, replay func() screen.Screen) *ResultsScreen {
	s := &ResultsScreen{
		recorder: recorder,
		session:  session,
		userID:   userID,
		replay:   replay,
	}
	s.earned = achievements.Check(
		session.CorrectCount(),
		len(session.Questions()),
		session.BestStreak(),
		session.Settings(),
	)
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return s.saveResult()
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Play again"},
		{Key: "Esc", Description: "Back"},
	}
}

// saveResult persists the round off the UI loop. The session's
// save-once guard makes re-entry harmless.
func (s *ResultsScreen) saveResult() tea.Cmd {
	return func() tea.Msg {
		result, err := s.recorder.Record(context.Background(), s.session, s.userID)
		return resultSavedMsg{Result: result, Err: err}
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultSavedMsg:
		s.saved = true
		s.result = msg.Result
		s.saveErr = msg.Err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			if s.replay == nil {
				return s, nil
			}
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: s.replay()}
			}
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	sess := s.session
	total := len(sess.Questions())

	// Score over the whole round, so a quiz cut short by the deadline
	// or a quit does not inflate the percentage.
	score := 0
	if total > 0 {
		score = int(float64(sess.CorrectCount())/float64(total)*100 + 0.5)
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")

	headline := "Round over!"
	if score == 100 && total > 0 {
		headline = "Perfect round! 🏆"
	} else if score >= 80 {
		headline = "Great spelling! 🐝"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), headline))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		fmt.Sprintf("Score: %d%%", score)))
	b.WriteString("\n")

	dur := sess.Duration()
	parts := []string{
		fmt.Sprintf("%s %d correct",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), sess.CorrectCount()),
		fmt.Sprintf("%s %d missed",
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"), sess.IncorrectCount()),
	}
	if skipped := total - sess.CorrectCount() - sess.IncorrectCount(); skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d unanswered", skipped))
	}
	parts = append(parts,
		fmt.Sprintf("★ best streak %d", sess.BestStreak()),
		fmt.Sprintf("%d:%02d", dur/60, dur%60))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), strings.Join(parts, "   ")))
	b.WriteString("\n")

	if name := sess.Settings().ChallengeMode; name != "" && name != presets.NoChallenge {
		b.WriteString("\n")
		if presets.ChallengeCompleted(name, sess.CorrectCount(), sess.IncorrectCount(), dur) {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
				presets.CompletionMessage(name)))
		} else {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
				fmt.Sprintf("%s: not this time!", name)))
		}
		b.WriteString("\n")
	}

	if len(s.earned) > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true), "Badges earned"))
		b.WriteString("\n")
		for _, a := range s.earned {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
				fmt.Sprintf("%s %s - %s", a.Emoji, a.Title, a.Description)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.renderSaveStatus(width))

	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		"[R] Play again    [Esc] Back"))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

func (s *ResultsScreen) renderSaveStatus(width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	switch {
	case !s.saved:
		return style.Render("Saving your round...")
	case s.saveErr != nil:
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render("Could not save this round: " + s.saveErr.Error())
	case s.result == nil:
		return style.Render("Round already saved.")
	case s.result.PendingSync:
		return style.Render("Saved locally; will sync when online.")
	default:
		return style.Render("Saved and synced.")
	}
}
