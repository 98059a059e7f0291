package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoiceCursor(t *testing.T) {
	m := NewMultiChoice([]string{"ant", "bee", "cat"})
	if m.Value() != "ant" {
		t.Errorf("initial value = %q, want ant", m.Value())
	}

	m = m.Update(keyPress('j'))
	m = m.Update(keyPress('j'))
	if m.Value() != "cat" {
		t.Errorf("after two downs value = %q, want cat", m.Value())
	}

	// Cursor stops at the edges.
	m = m.Update(keyPress('j'))
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	m = m.Update(keyPress('k'))
	if m.Value() != "bee" {
		t.Errorf("after up value = %q, want bee", m.Value())
	}
}

func TestMultiChoiceSelect(t *testing.T) {
	m := NewMultiChoice([]string{"ant", "bee"})
	if m = m.Select(1); m.Value() != "bee" {
		t.Errorf("Select(1) value = %q, want bee", m.Value())
	}
	if m = m.Select(7); m.Selected != 1 {
		t.Errorf("out-of-range Select moved the cursor to %d", m.Selected)
	}
}

func TestMultiChoiceView(t *testing.T) {
	m := NewMultiChoice([]string{"ant", "bee"})
	view := m.View(40)
	if !strings.Contains(view, "> 1) ant") {
		t.Errorf("view missing cursor on first option:\n%s", view)
	}
	if !strings.Contains(view, "2) bee") {
		t.Errorf("view missing second option:\n%s", view)
	}
}

func TestProgressBarFill(t *testing.T) {
	bar := NewProgressBar(0.5, 10).View()
	if got := strings.Count(bar, "━"); got != 5 {
		t.Errorf("filled cells = %d, want 5", got)
	}
	if got := strings.Count(bar, "─"); got != 5 {
		t.Errorf("empty cells = %d, want 5", got)
	}

	over := NewProgressBar(1.7, 10).View()
	if strings.Count(over, "━") != 10 {
		t.Error("overfull bar must clamp to its width")
	}
}

func TestButtonView(t *testing.T) {
	active := NewButton("START", true).View()
	idle := NewButton("START", false).View()
	if !strings.Contains(active, "START") || !strings.Contains(idle, "START") {
		t.Error("button label missing")
	}
}
