package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellquest/internal/ui/components"
	"github.com/abhisek/spellquest/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.session == nil {
		return renderLoading(width)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question: status line, prompt,
// and the answer surface.
func (s *PlayScreen) renderQuestionView(width int) string {
	q := s.session.CurrentQuestion()
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Word %d/%d", s.session.CurrentIndex()+1, len(s.session.Questions())))

	var rightParts []string
	rightParts = append(rightParts, fmt.Sprintf("%s %d",
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
		s.session.CorrectCount()))
	if s.session.CurrentStreak() >= 2 {
		rightParts = append(rightParts, fmt.Sprintf("%s %d",
			lipgloss.NewStyle().Foreground(theme.Primary).Render("★"),
			s.session.CurrentStreak()))
	}
	if s.settings.TimerEnabled {
		rightParts = append(rightParts, fmt.Sprintf("%s %ds",
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"),
			s.session.TimeRemaining()))
	}
	if s.settings.OverallTimerEnabled {
		rem := s.session.OverallTimeRemaining()
		rightParts = append(rightParts, fmt.Sprintf("total %d:%02d", rem/60, rem%60))
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(strings.Join(rightParts, "  "))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	progress := float64(s.session.CurrentIndex()) / float64(len(s.session.Questions()))
	b.WriteString("  " + components.NewProgressBar(progress, max(width-4, 4)).View())
	b.WriteString("\n\n")

	tagLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", q.Category, q.Difficulty))
	b.WriteString(tagLine)
	b.WriteString("\n\n")

	promptStyle := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, promptStyle.Render(q.Prompt)))
	b.WriteString("\n\n")

	if s.showHint && len(q.Synonyms) > 0 {
		hint := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Italic(true).
			Render("hint: " + strings.Join(q.Synonyms, ", "))
		b.WriteString(hint)
		b.WriteString("\n\n")
	}

	if s.mcActive() {
		b.WriteString(s.mc.View(width))
	} else {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View())
		b.WriteString(answerLine)
	}

	return b.String()
}

// renderFeedback renders the correct/incorrect/timeout overlay.
func (s *PlayScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	center := func(style lipgloss.Style, text string) {
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(text))
		b.WriteString("\n")
	}

	switch {
	case s.lastTimedOut:
		center(lipgloss.NewStyle().Foreground(theme.Error).Bold(true), "Time's up!")
	case s.lastCorrect:
		center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true), "Correct! 🐝")
	default:
		center(lipgloss.NewStyle().Foreground(theme.Error).Bold(true), "Not quite")
	}

	if q := s.feedbackQ; q != nil && !s.lastCorrect {
		center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("The word was: %s", q.Answer))
	}

	if s.lastCorrect && s.session.CurrentStreak() >= 3 {
		b.WriteString("\n")
		center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
			fmt.Sprintf("%d in a row!", s.session.CurrentStreak()))
	}

	b.WriteString("\n\n")
	center(lipgloss.NewStyle().Foreground(theme.TextDim), "Press any key to continue...")

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End this round early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Words you haven't answered will count as misses."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end round"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep spelling"))

	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Picking your words...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
