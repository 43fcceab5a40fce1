// Package quiz implements the per-question answer resolution state
// machine. Widgets report selections and commits; the machine owns the
// attempt count, feedback-display timing, and the single terminal
// onAnswer callback that drives the mastery/queue/reward pipeline.
package quiz

import (
	"math/rand"
	"time"

	"github.com/saisha/letterly/internal/catalog"
)

// State is the lifecycle position of the active question.
type State int

const (
	StateIdle State = iota
	StateSelected
	StateResolvedCorrect
	StateRetryIncorrect
	StateFinalIncorrect
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateResolvedCorrect:
		return "resolved-correct"
	case StateRetryIncorrect:
		return "retry-incorrect"
	case StateFinalIncorrect:
		return "final-incorrect"
	}
	return "unknown"
}

const (
	// MaxAttempts is how many tries a learner gets before the machine
	// reveals the answer and resolves the question as incorrect.
	MaxAttempts = 2

	// RetryDelay is how long incorrect feedback stays on screen before
	// the selection clears and the learner may try again.
	RetryDelay = 1500 * time.Millisecond

	// CorrectDelay is how long first-try-correct feedback stays on
	// screen before the terminal callback fires.
	CorrectDelay = 2 * time.Second
)

// AnswerFunc is the terminal callback. It is invoked exactly once per
// question lifecycle; choiceIndex is nil for widgets without a discrete
// option choice (production prompts).
type AnswerFunc func(correct bool, choiceIndex *int)

// EventKind identifies a delayed transition.
type EventKind int

const (
	EventNone EventKind = iota

	// EventRetryReset clears the selection and returns to idle so the
	// learner can try again.
	EventRetryReset

	// EventAnswered fires the terminal callback for a first-try-correct
	// resolution after the positive-feedback window.
	EventAnswered
)

// Event is a transition scheduled for later delivery. The caller arms a
// timer for After and hands the event back via Fire when it elapses.
// Stale events (the question changed, or a newer event superseded this
// one) are discarded by Fire, so a timer leaking past a navigation can
// never advance the wrong question.
type Event struct {
	Kind  EventKind
	After time.Duration
	token int
}

// Machine resolves answers for one question at a time.
type Machine struct {
	question *catalog.Question
	onAnswer AnswerFunc

	state    State
	attempts int
	selected int // display index, -1 when none
	order    []int
	answered bool

	// token invalidates pending events; bumped whenever the question
	// changes or a new event is armed.
	token int

	rng *rand.Rand
}

// NewMachine returns a machine with no active question. rng drives
// option shuffling; pass a seeded source in tests for determinism.
func NewMachine(rng *rand.Rand) *Machine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Machine{selected: -1, rng: rng}
}

// SetQuestion activates a question, invalidating any pending event from
// the previous one. The option order is reshuffled only when the
// question identity actually changes, never mid-question.
func (m *Machine) SetQuestion(q *catalog.Question, onAnswer AnswerFunc) {
	changed := m.question == nil || q == nil || m.question.ID != q.ID

	m.token++
	m.question = q
	m.onAnswer = onAnswer
	m.state = StateIdle
	m.attempts = 0
	m.selected = -1
	m.answered = false

	if q == nil {
		m.order = nil
		return
	}
	if changed {
		m.order = m.shuffleOrder(q)
	}
}

func (m *Machine) shuffleOrder(q *catalog.Question) []int {
	n := len(q.OptionsFor(catalog.FallbackLocale))
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if q.Shuffled() {
		for i := n - 1; i > 0; i-- {
			j := m.rng.Intn(i + 1)
			order[i], order[j] = order[j], order[i]
		}
	}
	return order
}

// Order maps display positions to original option indices.
func (m *Machine) Order() []int { return m.order }

// DisplayIndexOf returns the display position of an original option
// index, or -1. Used to highlight the revealed correct option.
func (m *Machine) DisplayIndexOf(original int) int {
	for i, o := range m.order {
		if o == original {
			return i
		}
	}
	return -1
}

// State returns the current lifecycle state.
func (m *Machine) State() State { return m.state }

// Attempts returns how many commits have been evaluated.
func (m *Machine) Attempts() int { return m.attempts }

// Selected returns the selected display index, or -1.
func (m *Machine) Selected() int { return m.selected }

// Question returns the active question, or nil.
func (m *Machine) Question() *catalog.Question { return m.question }

// Select records a selection at a display index. Auto-commit kinds
// (audio quizzes, error spotting) evaluate immediately; manual-commit
// kinds wait for Commit so the learner can change their mind.
func (m *Machine) Select(displayIndex int) Event {
	if m.question == nil || m.terminal() {
		return Event{}
	}
	if displayIndex < 0 || displayIndex >= len(m.order) {
		return Event{}
	}
	m.selected = displayIndex
	m.state = StateSelected
	if m.question.Kind.AutoCommit() {
		return m.Commit()
	}
	return Event{}
}

// ClearSelection returns a manual-commit question to idle.
func (m *Machine) ClearSelection() {
	if m.state != StateSelected {
		return
	}
	m.selected = -1
	m.state = StateIdle
}

// Commit evaluates the current selection against the correct index.
func (m *Machine) Commit() Event {
	if m.question == nil || m.state != StateSelected || m.selected < 0 {
		return Event{}
	}
	original := m.order[m.selected]
	return m.Resolve(original == m.question.CorrectIndex, &original)
}

// Continue resolves a production question as correct with no choice.
// Production prompts are ungraded; they gate pronunciation practice.
func (m *Machine) Continue() Event {
	if m.question == nil || m.question.Kind != catalog.KindProduction || m.terminal() {
		return Event{}
	}
	return m.Resolve(true, nil)
}

// Resolve applies one evaluated attempt. Widgets that compute their own
// correctness (drag-match, order-sequence) call this directly; option
// widgets go through Commit. The returned event, if any, must be handed
// back via Fire after its delay.
func (m *Machine) Resolve(correct bool, choiceIndex *int) Event {
	if m.question == nil || m.terminal() {
		return Event{}
	}
	m.attempts++
	// Any event still pending is superseded by this resolution.
	m.token++

	switch {
	case correct && m.attempts == 1:
		m.state = StateResolvedCorrect
		return m.arm(EventAnswered, CorrectDelay)

	case correct:
		m.state = StateResolvedCorrect
		m.fireTerminal(true, choiceIndex)
		return Event{}

	case m.attempts < MaxAttempts:
		m.state = StateRetryIncorrect
		return m.arm(EventRetryReset, RetryDelay)

	default:
		m.state = StateFinalIncorrect
		m.fireTerminal(false, choiceIndex)
		return Event{}
	}
}

// Fire delivers a previously scheduled event. Stale events are ignored
// and false is returned.
func (m *Machine) Fire(ev Event) bool {
	if ev.Kind == EventNone || ev.token != m.token {
		return false
	}
	switch ev.Kind {
	case EventRetryReset:
		m.selected = -1
		m.state = StateIdle
	case EventAnswered:
		choice := m.selectedOriginal()
		m.fireTerminal(true, choice)
	}
	return true
}

func (m *Machine) arm(kind EventKind, after time.Duration) Event {
	m.token++
	return Event{Kind: kind, After: after, token: m.token}
}

func (m *Machine) fireTerminal(correct bool, choiceIndex *int) {
	if m.answered || m.onAnswer == nil {
		return
	}
	m.answered = true
	m.onAnswer(correct, choiceIndex)
}

func (m *Machine) selectedOriginal() *int {
	if m.selected < 0 || m.selected >= len(m.order) {
		return nil
	}
	original := m.order[m.selected]
	return &original
}

func (m *Machine) terminal() bool {
	return m.state == StateResolvedCorrect || m.state == StateFinalIncorrect
}
