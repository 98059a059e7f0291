package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellquest/internal/ui/theme"
)

// ProgressBar is a thin horizontal progress indicator.
type ProgressBar struct {
	Percent float64
	Width   int
}

// NewProgressBar creates a bar filled to percent (0..1) across width cells.
func NewProgressBar(percent float64, width int) ProgressBar {
	return ProgressBar{Percent: percent, Width: width}
}

// View renders the bar.
func (p ProgressBar) View() string {
	w := p.Width
	if w < 4 {
		w = 4
	}

	filled := int(float64(w)*p.Percent + 0.5)
	if filled > w {
		filled = w
	}
	if filled < 0 {
		filled = 0
	}

	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", w-filled))
}
