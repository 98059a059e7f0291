// Package history shows past quiz rounds, merged with the shared
// remote record when one is configured.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/remote"
	"github.com/abhisek/spellquest/internal/router"
	"github.com/abhisek/spellquest/internal/screen"
	"github.com/abhisek/spellquest/internal/ui/layout"
	"github.com/abhisek/spellquest/internal/ui/theme"
)

// historyLoadedMsg carries the merged result list.
type historyLoadedMsg struct {
	Results []*history.GameResult
	Stats   history.Stats
	Offline bool
	Err     error
}

// HistoryScreen implements screen.Screen for the round log.
type HistoryScreen struct {
	store  *history.Store
	remote *remote.Store

	results []*history.GameResult
	stats   history.Stats
	offline bool
	loaded  bool
	errMsg  string
	cursor  int
	offset  int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(store *history.Store, rem *remote.Store) *HistoryScreen {
	return &HistoryScreen{
		store:  store,
		remote: rem,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.loadHistory()
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// loadHistory reads local rounds and overlays the remote record when
// a connection is configured. Remote failures degrade to local-only.
func (s *HistoryScreen) loadHistory() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		local, err := s.store.LoadAll(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		merged := local
		offline := s.remote == nil
		if s.remote != nil {
			prefs, perr := s.store.LoadPreferences(ctx)
			if perr == nil {
				remoteResults, rerr := s.remote.FetchHistory(ctx, prefs.UserID)
				if rerr != nil {
					offline = true
				} else {
					merged = history.MergeWithRemote(local, remoteResults)
				}
			}
		}

		return historyLoadedMsg{
			Results: merged,
			Stats:   history.Summarize(merged),
			Offline: offline,
		}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.loaded = true
		s.results = msg.Results
		s.stats = msg.Stats
		s.offline = msg.Offline
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Could not load history: " + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading your rounds...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No rounds yet. Play your first quiz!")
	}

	var b strings.Builder
	b.WriteString(s.renderStats(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderRows(width, height))
	return b.String()
}

func (s *HistoryScreen) renderStats(width int) string {
	st := s.stats
	parts := []string{
		fmt.Sprintf("Rounds %d", st.Games),
		fmt.Sprintf("Avg %d%%", st.AverageScore),
		fmt.Sprintf("Best %d%%", st.BestScore),
		fmt.Sprintf("Perfect %d", st.PerfectRounds),
	}
	if st.PendingSync > 0 {
		parts = append(parts, fmt.Sprintf("%d unsynced", st.PendingSync))
	}
	if s.offline {
		parts = append(parts, "local only")
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(strings.Join(parts, "   "))
}

func (s *HistoryScreen) renderRows(width, height int) string {
	// Rows available after the stats line and header.
	visible := height - 6
	if visible < 3 {
		visible = 3
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}

	header := fmt.Sprintf("  %-12s %-7s %-9s %-6s %-18s %s",
		"Date", "Score", "Words", "Level", "Challenge", "")
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(header))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	end := s.offset + visible
	if end > len(s.results) {
		end = len(s.results)
	}
	for i := s.offset; i < end; i++ {
		b.WriteString(s.renderRow(i))
		b.WriteString("\n")
	}

	if end < len(s.results) {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("  ... %d more", len(s.results)-end)))
	}
	return b.String()
}

func (s *HistoryScreen) renderRow(i int) string {
	r := s.results[i]

	date := r.CreatedAt
	if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		date = t.Local().Format("Jan 02 15:04")
	}

	challenge := r.Settings.ChallengeMode
	if challenge == "" {
		challenge = "-"
	}
	sync := ""
	if r.PendingSync {
		sync = "●"
	}

	line := fmt.Sprintf("  %-12s %-7s %-9s %-6s %-18s %s",
		date,
		fmt.Sprintf("%d%%", r.Score),
		fmt.Sprintf("%d/%d", r.CorrectAnswers, r.CorrectAnswers+r.IncorrectAnswers),
		r.Settings.Difficulty,
		truncate(challenge, 18),
		sync,
	)

	if i == s.cursor {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸" + line[1:])
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(line)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
