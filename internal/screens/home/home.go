// Package home is the top menu screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/remote"
	"github.com/abhisek/spellquest/internal/router"
	"github.com/abhisek/spellquest/internal/screen"
	historyscreen "github.com/abhisek/spellquest/internal/screens/history"
	"github.com/abhisek/spellquest/internal/screens/setup"
	"github.com/abhisek/spellquest/internal/ui/components"
	"github.com/abhisek/spellquest/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu          components.Menu
	stats         history.Stats
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(store *history.Store, recorder *history.Recorder, rem *remote.Store, playerName string) *HomeScreen {
	var stats history.Stats
	if store != nil {
		if results, err := store.LoadAll(context.Background()); err == nil {
			stats = history.Summarize(results)
		}
	}

	mascotVariant := MascotIdle
	if stats.PerfectRounds > 0 {
		mascotVariant = MascotCelebrating
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: setup.New(store, recorder, rem, playerName),
				}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: historyscreen.New(store, rem),
				}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		stats:         stats,
		mascotVariant: mascotVariant,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("SpellQuest") + "\n" +
		theme.Subtitle.Width(width).Render("The terminal spelling bee")
	sections = append(sections, title)

	if height >= 20 {
		sections = append(sections,
			lipgloss.PlaceHorizontal(width, lipgloss.Center, RenderMascot(h.mascotVariant)))
	}

	sections = append(sections, h.renderStatsBar(width))
	sections = append(sections,
		lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	content := strings.Join(sections, "\n\n")
	return lipgloss.PlaceVertical(height, lipgloss.Center, content)
}

func (h *HomeScreen) renderStatsBar(width int) string {
	if h.stats.Games == 0 {
		return theme.Hint.Width(width).Align(lipgloss.Center).
			Render("No rounds played yet. Start your first quiz!")
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	bar := dim.Render("Games ") + val.Render(fmt.Sprintf("%d", h.stats.Games)) +
		dim.Render("   Best ") + val.Render(fmt.Sprintf("%d%%", h.stats.BestScore)) +
		dim.Render("   Avg ") + val.Render(fmt.Sprintf("%d%%", h.stats.AverageScore))
	if h.stats.PendingSync > 0 {
		bar += dim.Render("   ") +
			lipgloss.NewStyle().Foreground(theme.Accent).
				Render(fmt.Sprintf("%d unsynced", h.stats.PendingSync))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}
