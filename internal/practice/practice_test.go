package practice

import (
	"errors"
	"testing"
	"time"

	"github.com/saisha/letterly/internal/catalog"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/reviewqueue"
	"github.com/saisha/letterly/internal/rewards"
)

func testCatalog() *catalog.Catalog {
	mc := func(id, skill string) catalog.Question {
		return catalog.Question{
			ID: id, SkillID: skill, Kind: catalog.KindMultipleChoice,
			Text:    map[string]string{"en": "pick"},
			Options: map[string][]string{"en": {"x", "y"}},
		}
	}
	seq := func(id, skill string) catalog.Question {
		return catalog.Question{
			ID: id, SkillID: skill, Kind: catalog.KindOrderSequence,
			Text:         map[string]string{"en": "sort"},
			Sequence:     []string{"a", "b"},
			CorrectOrder: []int{0, 1},
		}
	}

	return &catalog.Catalog{
		Locales: []string{"en"},
		Lessons: []catalog.Lesson{
			{
				ID: "lesson-a", SkillID: "letter-a",
				Title:     map[string]string{"en": "The Letter A", "es": "La Letra A"},
				Questions: []catalog.Question{mc("a1", "letter-a"), mc("a2", "letter-a"), seq("a3", "letter-a")},
			},
			{
				ID: "lesson-b", SkillID: "letter-b",
				Title:     map[string]string{"en": "The Letter B"},
				Questions: []catalog.Question{mc("b1", "letter-b"), mc("b2", "letter-b")},
			},
		},
	}
}

func TestBuildLessonPlan(t *testing.T) {
	cat := testCatalog()

	plan, err := BuildLessonPlan(cat, "lesson-a", "es")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.Mode != ModeLesson || plan.LessonID != "lesson-a" {
		t.Errorf("plan = %+v", plan)
	}
	if plan.Title != "La Letra A" {
		t.Errorf("title = %q, want the es title", plan.Title)
	}
	if len(plan.Questions) != 3 {
		t.Errorf("questions = %d, want all 3 including order-sequence", len(plan.Questions))
	}

	// Missing locale falls back to english.
	plan, err = BuildLessonPlan(cat, "lesson-b", "es")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.Title != "The Letter B" {
		t.Errorf("title = %q, want english fallback", plan.Title)
	}

	if _, err := BuildLessonPlan(cat, "nope", "en"); err == nil {
		t.Error("unknown lesson should error")
	}
}

func TestBuildReviewPlan(t *testing.T) {
	cat := testCatalog()
	due := []reviewqueue.Item{
		{QuestionID: "b2"},
		{QuestionID: "gone"}, // no longer in the catalog
		{QuestionID: "a3"},   // order-sequence: skipped outside its lesson
		{QuestionID: "a1"},
	}

	plan, err := BuildReviewPlan(cat, due, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.Mode != ModeReview {
		t.Errorf("mode = %v", plan.Mode)
	}
	if len(plan.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(plan.Questions))
	}
	// Queue order is preserved.
	if plan.Questions[0].ID != "b2" || plan.Questions[1].ID != "a1" {
		t.Errorf("order = %s, %s; want b2, a1", plan.Questions[0].ID, plan.Questions[1].ID)
	}
}

func TestBuildReviewPlanLimit(t *testing.T) {
	cat := testCatalog()
	due := []reviewqueue.Item{
		{QuestionID: "a1"}, {QuestionID: "a2"}, {QuestionID: "b1"},
	}

	plan, err := BuildReviewPlan(cat, due, 2)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(plan.Questions) != 2 {
		t.Errorf("questions = %d, want limit of 2", len(plan.Questions))
	}
}

func TestBuildReviewPlanEmpty(t *testing.T) {
	if _, err := BuildReviewPlan(testCatalog(), nil, 0); !errors.Is(err, ErrNothingToPractice) {
		t.Errorf("err = %v, want ErrNothingToPractice", err)
	}
}

func TestBuildWeakPlanRoundRobins(t *testing.T) {
	cat := testCatalog()

	plan, err := BuildWeakPlan(cat, []string{"letter-a", "letter-b"}, 4)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.Mode != ModeWeak {
		t.Errorf("mode = %v", plan.Mode)
	}
	// Alternates skills; order-sequence a3 is excluded from the pools.
	want := []string{"a1", "b1", "a2", "b2"}
	if len(plan.Questions) != len(want) {
		t.Fatalf("questions = %d, want %d", len(plan.Questions), len(want))
	}
	for i, id := range want {
		if plan.Questions[i].ID != id {
			t.Errorf("questions[%d] = %s, want %s", i, plan.Questions[i].ID, id)
		}
	}
}

func TestBuildWeakPlanUnknownSkill(t *testing.T) {
	if _, err := BuildWeakPlan(testCatalog(), []string{"letter-z"}, 5); !errors.Is(err, ErrNothingToPractice) {
		t.Errorf("err = %v, want ErrNothingToPractice", err)
	}
}

func TestRunnerWalksPlan(t *testing.T) {
	plan, err := BuildLessonPlan(testCatalog(), "lesson-b", "en")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	r := NewRunner(plan)

	if q := r.Current(); q == nil || q.ID != "b1" {
		t.Fatalf("current = %v, want b1", q)
	}
	pos, total := r.Position()
	if pos != 1 || total != 2 {
		t.Errorf("position = %d/%d, want 1/2", pos, total)
	}

	r.RecordResult(true, progress.Result{Points: 17, Evicted: false})
	if !r.Advance() {
		t.Fatal("one question should remain")
	}
	if q := r.Current(); q == nil || q.ID != "b2" {
		t.Fatalf("current = %v, want b2", q)
	}

	r.RecordResult(false, progress.Result{
		Points:    0,
		Evicted:   true,
		NewBadges: []rewards.Award{{EarnedAt: time.Now()}},
	})
	if r.Advance() {
		t.Fatal("run should be over")
	}
	if !r.Done() {
		t.Fatal("Done should report true")
	}

	sum := r.Summary()
	if sum.Answered != 2 || sum.Correct != 1 {
		t.Errorf("answered/correct = %d/%d, want 2/1", sum.Answered, sum.Correct)
	}
	if sum.Points != 17 {
		t.Errorf("points = %d, want 17", sum.Points)
	}
	if sum.Evicted != 1 {
		t.Errorf("evicted = %d, want 1", sum.Evicted)
	}
	if len(sum.Badges) != 1 {
		t.Errorf("badges = %d, want 1", len(sum.Badges))
	}
	if sum.Accuracy() != 50 {
		t.Errorf("accuracy = %.1f, want 50", sum.Accuracy())
	}
}

func TestSummaryAccuracyEmptyRun(t *testing.T) {
	if got := (Summary{}).Accuracy(); got != 0 {
		t.Errorf("accuracy = %.1f, want 0 for an empty run", got)
	}
}
