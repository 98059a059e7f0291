package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellquest/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default bee
	MascotCelebrating                      // Star eyes for a recent perfect score
)

const mascotIdle = `   \ _ /
  -=(o o)=-
   / ∪ \
  ≋≋≋≋≋≋≋`

const mascotCelebrating = `   \ _ /
  -=(★ ★)=-
   / ∪ \
  ≋≋≋≋≋≋≋`

// RenderMascot returns the bee mascot art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	art := mascotIdle
	fg := theme.Primary
	if v == MascotCelebrating {
		art = mascotCelebrating
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
