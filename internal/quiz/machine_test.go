package quiz

import (
	"math/rand"
	"testing"

	"github.com/saisha/letterly/internal/catalog"
)

func choiceQuestion(id string) *catalog.Question {
	return &catalog.Question{
		ID:      id,
		SkillID: "letter-a",
		Kind:    catalog.KindMultipleChoice,
		Text:    map[string]string{"en": "Which letter is A?"},
		Options: map[string][]string{
			"en": {"A", "B", "C", "D"},
		},
		CorrectIndex: 0,
	}
}

func audioQuestion(id string) *catalog.Question {
	q := choiceQuestion(id)
	q.Kind = catalog.KindAudioQuiz
	return q
}

type answerRecord struct {
	correct bool
	choice  *int
	calls   int
}

func (r *answerRecord) fn() AnswerFunc {
	return func(correct bool, choiceIndex *int) {
		r.correct = correct
		r.choice = choiceIndex
		r.calls++
	}
}

// newUnshuffledMachine returns a machine whose display order matches the
// original option order, so display indices in tests read naturally.
func newUnshuffledMachine() *Machine {
	return NewMachine(rand.New(rand.NewSource(1)))
}

func TestFirstTryCorrectDelaysCallback(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	m.SetQuestion(choiceQuestion("q1"), rec.fn())

	m.Select(0)
	if m.State() != StateSelected {
		t.Fatalf("state = %v, want selected", m.State())
	}

	ev := m.Commit()
	if m.State() != StateResolvedCorrect {
		t.Fatalf("state = %v, want resolved-correct", m.State())
	}
	if ev.Kind != EventAnswered || ev.After != CorrectDelay {
		t.Fatalf("event = %+v, want EventAnswered after %v", ev, CorrectDelay)
	}
	if rec.calls != 0 {
		t.Fatal("callback must wait for the feedback window")
	}

	if !m.Fire(ev) {
		t.Fatal("event should not be stale")
	}
	if rec.calls != 1 || !rec.correct {
		t.Errorf("callback = %d calls correct=%v, want 1 call correct", rec.calls, rec.correct)
	}
	if rec.choice == nil || *rec.choice != 0 {
		t.Errorf("choice = %v, want original index 0", rec.choice)
	}
}

func TestIncorrectThenCorrect(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	m.SetQuestion(choiceQuestion("q1"), rec.fn())

	m.Select(2)
	ev := m.Commit()
	if m.State() != StateRetryIncorrect {
		t.Fatalf("state = %v, want retry-incorrect", m.State())
	}
	if ev.Kind != EventRetryReset || ev.After != RetryDelay {
		t.Fatalf("event = %+v, want EventRetryReset after %v", ev, RetryDelay)
	}
	if rec.calls != 0 {
		t.Fatal("no terminal callback on a retryable miss")
	}

	// Delay elapses: selection clears, learner tries again.
	if !m.Fire(ev) {
		t.Fatal("retry event should fire")
	}
	if m.State() != StateIdle || m.Selected() != -1 {
		t.Fatalf("state = %v selected = %d, want idle/-1", m.State(), m.Selected())
	}

	// Second-try correct fires immediately, no feedback delay.
	m.Select(0)
	ev = m.Commit()
	if ev.Kind != EventNone {
		t.Fatalf("event = %+v, want none on second-try correct", ev)
	}
	if m.State() != StateResolvedCorrect {
		t.Fatalf("state = %v, want resolved-correct", m.State())
	}
	if rec.calls != 1 || !rec.correct {
		t.Errorf("callback = %d calls correct=%v, want immediate correct", rec.calls, rec.correct)
	}
}

func TestTwoMissesResolveIncorrect(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	m.SetQuestion(choiceQuestion("q1"), rec.fn())

	m.Select(1)
	ev := m.Commit()
	m.Fire(ev)

	m.Select(2)
	ev = m.Commit()
	if ev.Kind != EventNone {
		t.Fatalf("event = %+v, want none on final miss", ev)
	}
	if m.State() != StateFinalIncorrect {
		t.Fatalf("state = %v, want final-incorrect", m.State())
	}
	if m.Attempts() != MaxAttempts {
		t.Errorf("attempts = %d, want %d", m.Attempts(), MaxAttempts)
	}
	if rec.calls != 1 || rec.correct {
		t.Errorf("callback = %d calls correct=%v, want 1 incorrect call", rec.calls, rec.correct)
	}
	if rec.choice == nil || *rec.choice != 2 {
		t.Errorf("choice = %v, want original index 2", rec.choice)
	}
}

func TestStaleEventIgnored(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	m.SetQuestion(choiceQuestion("q1"), rec.fn())

	m.Select(0)
	ev := m.Commit() // EventAnswered pending

	// Question changes before the timer lands.
	next := &answerRecord{}
	m.SetQuestion(choiceQuestion("q2"), next.fn())

	if m.Fire(ev) {
		t.Fatal("event from the previous question must be discarded")
	}
	if rec.calls != 0 || next.calls != 0 {
		t.Errorf("callbacks = %d/%d, want none", rec.calls, next.calls)
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle for the fresh question", m.State())
	}
}

func TestResolutionSupersedesPendingEvent(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	m.SetQuestion(choiceQuestion("q1"), rec.fn())

	m.Select(1)
	retryEv := m.Commit()

	// The learner re-answers before the retry timer lands.
	m.Select(0)
	m.Commit() // second-try correct: resolves immediately

	if m.Fire(retryEv) {
		t.Fatal("superseded retry event must not fire")
	}
	if m.State() != StateResolvedCorrect {
		t.Errorf("state = %v, want the terminal state preserved", m.State())
	}
	if rec.calls != 1 {
		t.Errorf("callback fired %d times, want 1", rec.calls)
	}
}

func TestCallbackFiresExactlyOnce(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	m.SetQuestion(choiceQuestion("q1"), rec.fn())

	m.Select(0)
	ev := m.Commit()
	m.Fire(ev)
	m.Fire(ev) // double delivery

	// Terminal state: further input is ignored.
	m.Select(1)
	m.Commit()
	m.Continue()

	if rec.calls != 1 {
		t.Errorf("callback fired %d times, want exactly 1", rec.calls)
	}
	if m.Attempts() != 1 {
		t.Errorf("attempts = %d, want 1", m.Attempts())
	}
}

func TestAutoCommitKinds(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	q := audioQuestion("q1")
	m.SetQuestion(q, rec.fn())

	correctDisplay := m.DisplayIndexOf(q.CorrectIndex)
	ev := m.Select(correctDisplay)
	if m.State() != StateResolvedCorrect {
		t.Fatalf("state = %v, want resolved-correct straight from Select", m.State())
	}
	if ev.Kind != EventAnswered {
		t.Fatalf("event = %+v, want delayed answered event", ev)
	}
}

func TestAudioQuizShuffleIsStablePerQuestion(t *testing.T) {
	m := NewMachine(rand.New(rand.NewSource(3)))
	m.SetQuestion(audioQuestion("q1"), nil)

	order := append([]int(nil), m.Order()...)
	if len(order) != 4 {
		t.Fatalf("order len = %d, want 4", len(order))
	}
	seen := make(map[int]bool)
	for _, o := range order {
		seen[o] = true
	}
	for i := 0; i < 4; i++ {
		if !seen[i] {
			t.Fatalf("order %v is not a permutation of 0..3", order)
		}
	}

	// Re-activating the same question keeps the order.
	m.SetQuestion(audioQuestion("q1"), nil)
	for i, o := range m.Order() {
		if o != order[i] {
			t.Fatalf("order changed for the same question: %v -> %v", order, m.Order())
		}
	}
}

func TestManualKindsKeepCatalogOrder(t *testing.T) {
	m := NewMachine(rand.New(rand.NewSource(7)))
	m.SetQuestion(choiceQuestion("q1"), nil) // Shuffle flag unset

	for i, o := range m.Order() {
		if o != i {
			t.Fatalf("order = %v, want identity for an unshuffled question", m.Order())
		}
	}
}

func TestProductionContinue(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	q := &catalog.Question{
		ID:      "q1",
		SkillID: "letter-a",
		Kind:    catalog.KindProduction,
		Text:    map[string]string{"en": "Say the letter A out loud"},
	}
	m.SetQuestion(q, rec.fn())

	ev := m.Continue()
	if ev.Kind != EventAnswered {
		t.Fatalf("event = %+v, want delayed answered event", ev)
	}
	m.Fire(ev)

	if rec.calls != 1 || !rec.correct {
		t.Errorf("callback = %d calls correct=%v, want 1 correct call", rec.calls, rec.correct)
	}
	if rec.choice != nil {
		t.Errorf("choice = %v, want nil for production", rec.choice)
	}
}

func TestContinueOnlyForProduction(t *testing.T) {
	m := newUnshuffledMachine()
	m.SetQuestion(choiceQuestion("q1"), nil)

	if ev := m.Continue(); ev.Kind != EventNone {
		t.Errorf("Continue on a choice question = %+v, want no-op", ev)
	}
	if m.Attempts() != 0 {
		t.Errorf("attempts = %d, want 0", m.Attempts())
	}
}

func TestClearSelection(t *testing.T) {
	m := newUnshuffledMachine()
	m.SetQuestion(choiceQuestion("q1"), nil)

	m.Select(2)
	m.ClearSelection()
	if m.State() != StateIdle || m.Selected() != -1 {
		t.Errorf("state = %v selected = %d, want idle/-1", m.State(), m.Selected())
	}

	// Commit without a selection is a no-op.
	if ev := m.Commit(); ev.Kind != EventNone {
		t.Errorf("commit without selection = %+v, want no-op", ev)
	}
}

func TestResolveDirectForDerivedWidgets(t *testing.T) {
	m := newUnshuffledMachine()
	rec := &answerRecord{}
	q := &catalog.Question{
		ID:      "q1",
		SkillID: "letter-a",
		Kind:    catalog.KindDragMatch,
		Text:    map[string]string{"en": "Match the letters"},
		Pairs:   []catalog.Pair{{Left: "A", Right: "a"}},
	}
	m.SetQuestion(q, rec.fn())

	ev := m.Resolve(false, nil)
	if m.State() != StateRetryIncorrect {
		t.Fatalf("state = %v, want retry-incorrect", m.State())
	}
	m.Fire(ev)

	m.Resolve(true, nil)
	if rec.calls != 1 || !rec.correct {
		t.Errorf("callback = %d calls correct=%v, want 1 correct call", rec.calls, rec.correct)
	}
}
