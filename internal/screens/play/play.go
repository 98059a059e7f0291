// Package play runs a quiz round: question display, answer input,
// countdowns, feedback, and the handoff to the results screen.
package play

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/spellquest/internal/history"
	"github.com/abhisek/spellquest/internal/quiz"
	"github.com/abhisek/spellquest/internal/quizgen"
	"github.com/abhisek/spellquest/internal/remote"
	"github.com/abhisek/spellquest/internal/router"
	"github.com/abhisek/spellquest/internal/screen"
	"github.com/abhisek/spellquest/internal/screens/results"
	"github.com/abhisek/spellquest/internal/ui/components"
	"github.com/abhisek/spellquest/internal/ui/layout"
)

// PlayScreen implements screen.Screen for an active quiz round.
type PlayScreen struct {
	store    *history.Store
	recorder *history.Recorder
	remote   *remote.Store

	settings quiz.Settings
	session  *quiz.Session
	userID   string
	sched    *quiz.Scheduler

	input components.TextInput
	mc    components.MultiChoice

	showingFeedback    bool
	showingQuitConfirm bool
	lastCorrect        bool
	lastTimedOut       bool
	feedbackQ          *quizgen.Question
	showHint           bool
	errMsg             string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a round for a fresh session built from settings.
func New(store *history.Store, recorder *history.Recorder, rem *remote.Store, settings quiz.Settings) *PlayScreen {
	return &PlayScreen{
		store:    store,
		recorder: recorder,
		remote:   rem,
		settings: settings,
		sched:    quiz.NewScheduler(),
		input:    newAnswerInput(),
	}
}

// Resume creates a round that replays an existing completed session
// with a regenerated question set, keeping its best streak.
func Resume(store *history.Store, recorder *history.Recorder, rem *remote.Store, session *quiz.Session, userID string) *PlayScreen {
	return &PlayScreen{
		store:    store,
		recorder: recorder,
		remote:   rem,
		settings: session.Settings(),
		session:  session,
		userID:   userID,
		sched:    quiz.NewScheduler(),
		input:    newAnswerInput(),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Spell the word...", false, 28)
}

func (s *PlayScreen) Init() tea.Cmd {
	return tea.Batch(
		s.prepareQuiz(),
		s.input.Init(),
	)
}

func (s *PlayScreen) Title() string {
	return "Quiz"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End round"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Hint"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)

	case timerTickMsg:
		return s.handleTimerTick(msg)

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward to the text input while a question is open.
	if s.questionOpen() && !s.mcActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *PlayScreen) mcActive() bool {
	return s.settings.QuestionType == quizgen.TypeMultipleChoice
}

// questionOpen reports whether the current question is accepting input.
func (s *PlayScreen) questionOpen() bool {
	return s.session != nil &&
		s.session.State() == quiz.StateActive &&
		!s.showingFeedback && !s.showingQuitConfirm
}

// prepareQuiz generates the question set and resolves the player,
// off the UI loop.
func (s *PlayScreen) prepareQuiz() tea.Cmd {
	return func() tea.Msg {
		qs, err := quizgen.New(nil).Generate(
			s.settings.NumberOfQuestions,
			s.settings.Difficulty,
			s.settings.QuestionType,
			s.settings.Categories,
		)
		if err != nil {
			return quizReadyMsg{Err: err}
		}

		// Replay path: reuse the finished session so streak history carries.
		if s.session != nil {
			if err := s.session.Retry(qs); err != nil {
				return quizReadyMsg{Err: err}
			}
			return quizReadyMsg{Session: s.session, UserID: s.userID}
		}

		userID, err := s.resolvePlayer(context.Background())
		if err != nil {
			return quizReadyMsg{Err: err}
		}

		session := quiz.NewSession(s.settings)
		if err := session.LoadQuestions(qs); err != nil {
			return quizReadyMsg{Err: err}
		}
		return quizReadyMsg{Session: session, UserID: userID}
	}
}

// resolvePlayer finds a stable player ID: saved preferences when the
// name matches, the remote roster when one is configured, a fresh UUID
// otherwise. Preferences are refreshed either way so the next launch
// remembers the player.
func (s *PlayScreen) resolvePlayer(ctx context.Context) (string, error) {
	userID := ""
	if prefs, err := s.store.LoadPreferences(ctx); err == nil && prefs.UserName == s.settings.Username {
		userID = prefs.UserID
	}
	if s.remote != nil {
		if p, err := s.remote.EnsurePlayer(ctx, s.settings.Username); err == nil {
			userID = p.ID
		}
	}
	if userID == "" {
		userID = uuid.NewString()
	}

	err := s.store.SavePreferences(ctx, &history.Preferences{
		UserID:   userID,
		UserName: s.settings.Username,
		Settings: s.settings,
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *PlayScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.session = msg.Session
	s.userID = msg.UserID
	if err := s.session.Start(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	gen := s.sched.Restart()
	var cmds []tea.Cmd
	if s.settings.TimerEnabled {
		cmds = append(cmds, tickCmd(gen, quiz.ChannelQuestion))
	}
	if s.settings.OverallTimerEnabled {
		cmds = append(cmds, tickCmd(gen, quiz.ChannelOverall))
	}

	s.resetAnswerSurface()
	cmds = append(cmds, s.input.Init())
	return s, tea.Batch(cmds...)
}

func (s *PlayScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || !s.sched.Valid(msg.Gen) {
		return s, nil
	}
	if s.session.State() != quiz.StateActive {
		return s, nil
	}

	// Feedback and quit-confirm overlays freeze the countdowns without
	// breaking the tick loop.
	if s.sched.Suspended() {
		return s, tickCmd(msg.Gen, msg.Channel)
	}

	q := s.session.CurrentQuestion()
	res, err := s.session.Tick(msg.Channel)
	if err != nil {
		return s, nil
	}

	if msg.Channel == quiz.ChannelOverall && res.Completed {
		s.sched.Cancel()
		return s, s.finishCmd()
	}

	if msg.Channel == quiz.ChannelQuestion && res.TimedOut {
		// The session already recorded the miss and advanced; show the
		// timeout feedback before moving on.
		s.showingFeedback = true
		s.lastCorrect = false
		s.lastTimedOut = true
		s.feedbackQ = q
		s.sched.Pause()
	}

	return s, tickCmd(msg.Gen, msg.Channel)
}

func (s *PlayScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if s.session == nil {
		return s, nil
	}

	s.showingFeedback = false
	s.feedbackQ = nil

	if s.session.State() == quiz.StateCompleted {
		s.sched.Cancel()
		return s, s.finishCmd()
	}

	// Submitted answers advance here; timeouts were advanced inside the
	// session when the countdown hit zero.
	if !s.lastTimedOut {
		if err := s.session.Advance(); err == nil && s.session.State() == quiz.StateCompleted {
			s.sched.Cancel()
			return s, s.finishCmd()
		}
	}
	s.lastTimedOut = false

	s.resetAnswerSurface()
	s.sched.Resume()
	return s, s.input.Init()
}

// resetAnswerSurface prepares a fresh input and option cursor for the
// question now current.
func (s *PlayScreen) resetAnswerSurface() {
	s.input = newAnswerInput()
	s.showHint = false
	if q := s.session.CurrentQuestion(); q != nil {
		s.mc = components.NewMultiChoice(q.Options)
	}
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back home.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.session == nil {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			s.sched.Cancel()
			_ = s.session.Complete()
			return s, s.finishCmd()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			s.sched.Resume()
			return s, nil
		}
		return s, nil
	}

	if s.showingFeedback {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if s.session.State() == quiz.StateActive {
		switch key {
		case "esc":
			s.showingQuitConfirm = true
			s.sched.Pause()
			return s, nil
		case "tab":
			s.showHint = !s.showHint
			return s, nil
		case "enter":
			return s.submitAnswer()
		}

		if s.mcActive() {
			switch key {
			case "1", "2", "3", "4":
				idx := int(key[0] - '1')
				if idx < len(s.mc.Options) {
					s.mc = s.mc.Select(idx)
					return s.submitAnswer()
				}
			default:
				s.mc = s.mc.Update(msg)
			}
			return s, nil
		}

		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// submitAnswer records the answer and switches to feedback.
func (s *PlayScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	q := s.session.CurrentQuestion()
	if q == nil {
		return s, nil
	}

	var answer string
	if s.mcActive() {
		answer = s.mc.Value()
	} else {
		answer = s.input.Value()
	}
	if answer == "" {
		return s, nil
	}

	correct, err := s.session.SubmitAnswer(answer)
	if err != nil {
		return s, nil
	}

	s.lastCorrect = correct
	s.lastTimedOut = false
	s.feedbackQ = q
	s.showingFeedback = true
	s.sched.Pause()
	return s, nil
}

// finishCmd swaps this screen for the results screen.
func (s *PlayScreen) finishCmd() tea.Cmd {
	session := s.session
	userID := s.userID
	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: results.New(s.recorder, session, userID, func() screen.Screen {
				return Resume(s.store, s.recorder, s.remote, session, userID)
			}),
		}
	}
}

// tickCmd schedules the next one-second tick for a countdown channel.
func tickCmd(gen int, ch quiz.Channel) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{Gen: gen, Channel: ch}
	})
}
