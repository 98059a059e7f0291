// Package setup is the quiz configuration form shown before a round.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/presets"
	"github.com/abhisek/spellquest/internal/quiz"
	"github.com/abhisek/spellquest/internal/quizgen"
	"github.com/abhisek/spellquest/internal/remote"
	"github.com/abhisek/spellquest/internal/router"
	"github.com/abhisek/spellquest/internal/screen"
	"github.com/abhisek/spellquest/internal/screens/play"
	"github.com/abhisek/spellquest/internal/ui/components"
	"github.com/abhisek/spellquest/internal/ui/layout"
	"github.com/abhisek/spellquest/internal/ui/theme"
	"github.com/abhisek/spellquest/internal/wordbank"
)

// form fields, top to bottom
type field int

const (
	fieldName field = iota
	fieldPreset
	fieldChallenge
	fieldDifficulty
	fieldType
	fieldCount
	fieldTimer
	fieldOverall
	fieldCategories
	fieldStart
	fieldMax
)

// SetupScreen lets the player tune settings, pick a preset, or pick a
// challenge before starting a round.
type SetupScreen struct {
	store    *history.Store
	recorder *history.Recorder
	remote   *remote.Store

	settings     quiz.Settings
	nameInput    components.TextInput
	focus        field
	presetIdx    int // 0 = custom, 1.. = presets.YearLevels()
	challengeIdx int
	catCursor    int // cursor over the category row, 0 = "all"
	challenges   []presets.Challenge
	categories   []string
	errMsg       string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup form with defaults, seeding the player name
// from saved preferences when available.
func New(store *history.Store, recorder *history.Recorder, rem *remote.Store, playerName string) *SetupScreen {
	settings := quiz.DefaultSettings()
	settings.Username = playerName

	challenges, _ := presets.Challenges()

	nameInput := components.NewTextInput("Your name...", false, 24)
	nameInput.Model.SetValue(settings.Username)

	categories, _ := wordbank.Categories()

	return &SetupScreen{
		store:      store,
		recorder:   recorder,
		remote:     rem,
		settings:   settings,
		nameInput:  nameInput,
		challenges: challenges,
		categories: categories,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.nameInput.Init()
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
	}
	if s.focus == fieldCategories {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
	return hints
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.focus == fieldName {
			var cmd tea.Cmd
			s.nameInput, cmd = s.nameInput.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up":
		if s.focus > 0 {
			s.focus--
		}
		return s, nil
	case "down", "tab":
		if s.focus < fieldMax-1 {
			s.focus++
		}
		return s, nil
	case "enter":
		if s.focus == fieldStart {
			return s.start()
		}
		if s.focus == fieldCategories {
			s.toggleCategory()
			return s, nil
		}
		s.focus++
		return s, nil
	case "left":
		if s.focus != fieldName {
			s.adjust(-1)
			return s, nil
		}
	case "right":
		if s.focus != fieldName {
			s.adjust(1)
			return s, nil
		}
	case "space":
		if s.focus == fieldCategories {
			s.toggleCategory()
			return s, nil
		}
	}

	// Everything else goes to the name input while it has focus.
	if s.focus == fieldName {
		var cmd tea.Cmd
		s.nameInput, cmd = s.nameInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

// adjust changes the focused field's value by delta.
func (s *SetupScreen) adjust(delta int) {
	s.errMsg = ""
	switch s.focus {
	case fieldPreset:
		levels := presets.YearLevels()
		s.presetIdx = wrap(s.presetIdx+delta, len(levels)+1)
		if s.presetIdx == 0 {
			return // custom, keep current values
		}
		applied, err := presets.Apply(s.settings, levels[s.presetIdx-1])
		if err != nil {
			s.errMsg = err.Error()
			return
		}
		s.settings = applied
		s.challengeIdx = 0
		s.settings.ChallengeMode = ""

	case fieldChallenge:
		if len(s.challenges) == 0 {
			return
		}
		s.challengeIdx = wrap(s.challengeIdx+delta, len(s.challenges))
		s.settings = presets.ApplyChallenge(s.settings, s.challenges[s.challengeIdx].Name)
		s.presetIdx = 0

	case fieldDifficulty:
		if s.settings.Difficulty == quizgen.DifficultyEasy {
			s.settings.Difficulty = quizgen.DifficultyHard
		} else {
			s.settings.Difficulty = quizgen.DifficultyEasy
		}
		s.presetIdx = 0

	case fieldType:
		if s.settings.QuestionType == quizgen.TypeInput {
			s.settings.QuestionType = quizgen.TypeMultipleChoice
		} else {
			s.settings.QuestionType = quizgen.TypeInput
		}

	case fieldCount:
		n := s.settings.NumberOfQuestions + delta
		if n >= quiz.MinQuestions && n <= 30 {
			s.settings.NumberOfQuestions = n
		}
		s.presetIdx = 0

	case fieldTimer:
		// Left/right on the timer row first toggles, then adjusts.
		if !s.settings.TimerEnabled {
			s.settings.TimerEnabled = true
			return
		}
		n := s.settings.TimerPerQuestion + delta
		if n < quiz.MinTimerSeconds {
			s.settings.TimerEnabled = false
			return
		}
		if n <= 60 {
			s.settings.TimerPerQuestion = n
		}

	case fieldOverall:
		if !s.settings.OverallTimerEnabled {
			s.settings.OverallTimerEnabled = true
			return
		}
		n := s.settings.OverallTimerDuration + delta*30
		if n < 30 {
			s.settings.OverallTimerEnabled = false
			return
		}
		if n <= 1800 {
			s.settings.OverallTimerDuration = n
		}

	case fieldCategories:
		s.catCursor = wrap(s.catCursor+delta, len(s.categories)+1)
	}
}

// toggleCategory flips membership of the category under the cursor.
// Picking "all" collapses the selection; picking a specific category
// drops the all sentinel.
func (s *SetupScreen) toggleCategory() {
	if s.catCursor == 0 {
		s.settings.Categories = []string{wordbank.CategoryAll}
		return
	}
	cat := s.categories[s.catCursor-1]

	selected := make(map[string]bool)
	for _, c := range s.settings.Categories {
		if c != wordbank.CategoryAll {
			selected[c] = true
		}
	}
	if selected[cat] {
		delete(selected, cat)
	} else {
		selected[cat] = true
	}

	if len(selected) == 0 {
		s.settings.Categories = []string{wordbank.CategoryAll}
		return
	}
	out := make([]string, 0, len(selected))
	for _, c := range s.categories {
		if selected[c] {
			out = append(out, c)
		}
	}
	s.settings.Categories = out
}

// start validates and hands off to the play screen.
func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	s.settings.Username = strings.TrimSpace(s.nameInput.Value())
	if s.settings.Username == "" {
		s.errMsg = "enter your name first"
		s.focus = fieldName
		return s, nil
	}
	if err := s.settings.Validate(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	settings := s.settings
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: play.New(s.store, s.recorder, s.remote, settings),
		}
	}
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func (s *SetupScreen) View(width, height int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)
	value := lipgloss.NewStyle().Foreground(theme.Text)
	focused := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	row := func(f field, name, val string) string {
		cursor := "  "
		style := value
		if s.focus == f {
			cursor = "▸ "
			style = focused
		}
		return cursor + label.Render(name) + style.Render(val)
	}

	preset := "Custom"
	if s.presetIdx > 0 {
		p, err := presets.Get(presets.YearLevels()[s.presetIdx-1])
		if err == nil {
			preset = p.Label
		}
	}

	challenge := presets.NoChallenge
	if len(s.challenges) > 0 {
		challenge = s.challenges[s.challengeIdx].Name
	}

	timer := "off"
	if s.settings.TimerEnabled {
		timer = fmt.Sprintf("%ds per word", s.settings.TimerPerQuestion)
	}
	overall := "off"
	if s.settings.OverallTimerEnabled {
		overall = fmt.Sprintf("%ds total", s.settings.OverallTimerDuration)
	}

	var b strings.Builder
	b.WriteString(row(fieldName, "Player", s.nameInput.View()))
	b.WriteString("\n\n")
	b.WriteString(row(fieldPreset, "Year level", preset))
	b.WriteString("\n")
	b.WriteString(row(fieldChallenge, "Challenge", challenge))
	b.WriteString("\n\n")
	b.WriteString(row(fieldDifficulty, "Difficulty", string(s.settings.Difficulty)))
	b.WriteString("\n")
	b.WriteString(row(fieldType, "Answer mode", string(s.settings.QuestionType)))
	b.WriteString("\n")
	b.WriteString(row(fieldCount, "Questions", fmt.Sprintf("%d", s.settings.NumberOfQuestions)))
	b.WriteString("\n")
	b.WriteString(row(fieldTimer, "Word timer", timer))
	b.WriteString("\n")
	b.WriteString(row(fieldOverall, "Quiz timer", overall))
	b.WriteString("\n\n")
	b.WriteString(s.renderCategories())
	b.WriteString("\n\n")

	b.WriteString("  " + components.NewButton("START", s.focus == fieldStart).View())

	if s.errMsg != "" {
		b.WriteString("\n\n  " + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.PlaceVertical(height, lipgloss.Center, b.String()))
}

func (s *SetupScreen) renderCategories() string {
	selected := make(map[string]bool)
	allSelected := false
	for _, c := range s.settings.Categories {
		if c == wordbank.CategoryAll {
			allSelected = true
		}
		selected[c] = true
	}

	cursor := "  "
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)
	if s.focus == fieldCategories {
		cursor = "▸ "
		labelStyle = labelStyle.Foreground(theme.TextDim)
	}

	var parts []string
	for i, name := range append([]string{wordbank.CategoryAll}, s.categories...) {
		on := selected[name] || (allSelected && i > 0)
		mark := "○"
		if on {
			mark = "●"
		}
		entry := mark + " " + name

		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if on {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		if s.focus == fieldCategories && i == s.catCursor {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		parts = append(parts, style.Render(entry))
	}

	return cursor + labelStyle.Render("Categories") + strings.Join(parts, "  ")
}
