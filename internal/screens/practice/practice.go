// Package practice renders an active practice run: one question at a
// time, driven by the quiz machine, with mastery/queue/reward updates
// applied through the progress service after every resolved answer.
package practice

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/saisha/letterly/internal/catalog"
	runlib "github.com/saisha/letterly/internal/practice"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/quiz"
	"github.com/saisha/letterly/internal/router"
	"github.com/saisha/letterly/internal/screen"
	"github.com/saisha/letterly/internal/screens/summary"
	"github.com/saisha/letterly/internal/ui/components"
	"github.com/saisha/letterly/internal/ui/layout"
)

// PracticeScreen implements screen.Screen for an active run.
type PracticeScreen struct {
	svc    *progress.Service
	cat    *catalog.Catalog
	runner *runlib.Runner
	locale string

	machine *quiz.Machine
	options components.OptionList

	// production questions: optional typed echo of the target letter
	input       components.TextInput
	targetGlyph string

	// widget state for kinds the machine doesn't shuffle itself
	derived        bool // options derived from pairs/sequence
	derivedCorrect int

	// pending holds the machine's terminal resolution until the progress
	// pipeline consumes it. The machine fires the callback exactly once
	// per question, so one answer can never be recorded twice.
	pending *resolvedAnswer
	shownAt time.Time

	showingResult bool
	lastCorrect   bool
	lastResult    progress.Result

	quitConfirm bool
	finishing   bool
	saveNote    string
	errMsg      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New starts a practice run over the given plan.
func New(svc *progress.Service, cat *catalog.Catalog, plan *runlib.Plan, locale string) *PracticeScreen {
	return &PracticeScreen{
		svc:     svc,
		cat:     cat,
		runner:  runlib.NewRunner(plan),
		locale:  locale,
		machine: quiz.NewMachine(nil),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	s.showQuestion()
	return s.watchSaveErrors()
}

func (s *PracticeScreen) Title() string {
	return s.runner.Plan().Title
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop practicing"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingResult {
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
		}
	}
	if q := s.machine.Question(); q != nil && q.Kind == catalog.KindProduction {
		return []layout.KeyHint{
			{Key: "Enter", Description: "I said it!"},
			{Key: "Esc", Description: "Stop"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Stop"},
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case machineEventMsg:
		return s.handleMachineEvent(msg)

	case answerRecordedMsg:
		return s.handleAnswerRecorded(msg)

	case runFinishedMsg:
		return s.handleRunFinished(msg)

	case saveFailedMsg:
		s.saveNote = "Couldn't save just now — progress is kept and will save next time."
		return s, s.watchSaveErrors()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// resolvedAnswer is a terminal machine resolution awaiting recording.
type resolvedAnswer struct {
	correct bool
	choice  *int
}

// showQuestion arms the machine for the runner's current question and
// rebuilds the option widget.
func (s *PracticeScreen) showQuestion() {
	q := s.runner.Current()
	s.showingResult = false
	s.saveNote = ""
	s.pending = nil
	s.shownAt = time.Now()

	s.machine.SetQuestion(q, s.noteResolution)
	if q == nil {
		return
	}

	switch {
	case q.Kind.OptionBased():
		s.derived = false
		opts := q.OptionsFor(s.locale)
		display := make([]string, len(opts))
		for i, orig := range s.machine.Order() {
			display[i] = opts[orig]
		}
		s.options = components.NewOptionList(
			q.TextFor(s.locale), display, s.machine.DisplayIndexOf(q.CorrectIndex))

	case q.Kind == catalog.KindDragMatch:
		// One pair per pass: pick the match for the first left item
		// among all right items.
		s.derived = true
		display := make([]string, len(q.Pairs))
		for i, p := range q.Pairs {
			display[i] = p.Right
		}
		s.derivedCorrect = 0
		s.options = components.NewOptionList(
			q.TextFor(s.locale)+"  ["+q.Pairs[0].Left+"]", display, 0)

	case q.Kind == catalog.KindOrderSequence:
		// Ask for the first element of the correct order.
		s.derived = true
		display := make([]string, len(q.Sequence))
		copy(display, q.Sequence)
		s.derivedCorrect = q.CorrectOrder[0]
		s.options = components.NewOptionList(
			q.TextFor(s.locale), display, q.CorrectOrder[0])

	default:
		// Production: prompt plus a space to type the letter along.
		s.derived = false
		s.options = components.NewOptionList(q.TextFor(s.locale), nil, -1)
		s.targetGlyph = s.productionGlyph(q)
		if s.targetGlyph != "" {
			s.input = components.NewTextInput("type it!", false, 4)
		}
	}
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, popCmd()
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s, s.finishRun()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.showingResult {
		return s, s.nextQuestion()
	}

	if s.finishing {
		return s, nil
	}

	q := s.machine.Question()
	if q == nil {
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		if q.Kind == catalog.KindProduction && s.targetGlyph != "" {
			typed := strings.TrimSpace(s.input.Value())
			s.input.Submit(typed != "" && strings.EqualFold(typed, s.targetGlyph))
		}
		return s, s.commit()
	case "1", "2", "3", "4", "5", "6":
		if q.Kind != catalog.KindProduction {
			idx := int(key[0] - '1')
			if idx < len(s.options.Options) {
				s.options.Cursor = idx
				return s, s.commit()
			}
			return s, nil
		}
	}

	// Production questions feed remaining keys to the typed echo.
	if q.Kind == catalog.KindProduction {
		if s.targetGlyph == "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	// Cursor movement between commits.
	if s.machine.State() == quiz.StateIdle || s.machine.State() == quiz.StateSelected {
		var cmd tea.Cmd
		s.options, cmd = s.options.Update(msg)
		return s, cmd
	}
	return s, nil
}

// productionGlyph resolves the letter a production question is about, so
// the learner can type it alongside saying it. Empty when the question
// has no letter to resolve.
func (s *PracticeScreen) productionGlyph(q *catalog.Question) string {
	if q.AudioKey == "" {
		return ""
	}
	for i := range s.cat.Letters {
		if s.cat.Letters[i].AudioKey == q.AudioKey {
			return s.cat.Letters[i].Glyph
		}
	}
	return ""
}

// commit evaluates the current cursor position through the machine.
func (s *PracticeScreen) commit() tea.Cmd {
	q := s.machine.Question()
	if q == nil {
		return nil
	}

	var ev quiz.Event
	switch {
	case q.Kind == catalog.KindProduction:
		ev = s.machine.Continue()

	case s.derived:
		// Widget-owned correctness; the machine only sees the boolean.
		correct := s.options.Cursor == s.derivedCorrect
		s.options.Chosen = s.options.Cursor
		ev = s.machine.Resolve(correct, nil)

	default:
		ev = s.machine.Select(s.options.Cursor)
		if s.machine.State() == quiz.StateSelected {
			ev = s.machine.Commit()
		}
		s.options.Chosen = s.options.Cursor
	}

	s.applyMachineState()
	return s.scheduleEvent(ev)
}

// applyMachineState syncs the option widget with the machine.
func (s *PracticeScreen) applyMachineState() {
	switch s.machine.State() {
	case quiz.StateResolvedCorrect:
		s.options.Feedback = components.FeedbackCorrect
		s.options.Locked = true
	case quiz.StateRetryIncorrect:
		s.options.Feedback = components.FeedbackRetry
		s.options.Locked = true
	case quiz.StateFinalIncorrect:
		s.options.Feedback = components.FeedbackReveal
		s.options.Locked = true
	}
}

func (s *PracticeScreen) scheduleEvent(ev quiz.Event) tea.Cmd {
	if ev.Kind == quiz.EventNone {
		// Terminal resolution may have fired synchronously.
		return s.recordPending()
	}
	return tea.Tick(ev.After, func(time.Time) tea.Msg {
		return machineEventMsg{Event: ev}
	})
}

func (s *PracticeScreen) handleMachineEvent(msg machineEventMsg) (screen.Screen, tea.Cmd) {
	if !s.machine.Fire(msg.Event) {
		return s, nil
	}
	switch msg.Event.Kind {
	case quiz.EventRetryReset:
		s.options.Clear()
		return s, nil
	case quiz.EventAnswered:
		return s, s.recordPending()
	}
	return s, nil
}

// noteResolution is the machine's terminal callback.
func (s *PracticeScreen) noteResolution(correct bool, choiceIndex *int) {
	s.pending = &resolvedAnswer{correct: correct, choice: choiceIndex}
}

// recordPending pushes the held resolution through the progress
// pipeline, consuming it so repeated keypresses inside the feedback
// window cannot record the same answer again.
func (s *PracticeScreen) recordPending() tea.Cmd {
	res := s.pending
	if res == nil {
		return nil
	}
	s.pending = nil

	q := s.machine.Question()
	svc := s.svc
	questionID, skillID, kind := q.ID, q.SkillID, string(q.Kind)
	took := time.Since(s.shownAt)
	return func() tea.Msg {
		r, err := svc.RecordAnswer(context.Background(), questionID, skillID, kind, res.correct, res.choice, took)
		return answerRecordedMsg{Correct: res.correct, Result: r, Err: err}
	}
}

func (s *PracticeScreen) handleAnswerRecorded(msg answerRecordedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, progress.ErrSessionExpired) {
			s.errMsg = "Session expired — please restart Letterly."
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.runner.RecordResult(msg.Correct, msg.Result)
	s.lastCorrect = msg.Correct
	s.lastResult = msg.Result
	s.showingResult = true
	return s, nil
}

// nextQuestion advances the runner or finishes the run.
func (s *PracticeScreen) nextQuestion() tea.Cmd {
	if s.runner.Advance() {
		s.showQuestion()
		return nil
	}
	return s.finishRun()
}

// finishRun records lesson completion (lesson mode only) and moves to
// the summary screen.
func (s *PracticeScreen) finishRun() tea.Cmd {
	if s.finishing {
		return nil
	}
	s.finishing = true

	svc := s.svc
	plan := s.runner.Plan()
	return func() tea.Msg {
		if plan.Mode == runlib.ModeLesson {
			badges, err := svc.CompleteLesson(context.Background(), plan.LessonID)
			return runFinishedMsg{CompletionBadges: badges, Err: err}
		}
		return runFinishedMsg{}
	}
}

func (s *PracticeScreen) handleRunFinished(msg runFinishedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil && errors.Is(msg.Err, progress.ErrSessionExpired) {
		s.errMsg = "Session expired — please restart Letterly."
		return s, nil
	}

	sum := s.runner.Summary()
	sum.Badges = append(sum.Badges, msg.CompletionBadges...)

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, s.svc)}
	}
}

// watchSaveErrors re-arms the listener for background save failures.
func (s *PracticeScreen) watchSaveErrors() tea.Cmd {
	errs := s.svc.SaveErrors()
	return func() tea.Msg {
		return saveFailedMsg{Err: <-errs}
	}
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
