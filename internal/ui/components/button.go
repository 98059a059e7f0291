package components

import "github.com/abhisek/spellquest/internal/ui/theme"

// Button renders a form action button; Active marks the focused one.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render(b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
