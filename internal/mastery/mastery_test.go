package mastery

import (
	"testing"
	"time"

	"github.com/saisha/letterly/internal/store"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name     string
		attempts int
		correct  int
		want     int
	}{
		{"no attempts", 0, 0, 0},
		{"one correct is damped", 1, 1, 20},
		{"two correct", 2, 2, 40},
		{"saturated perfect", 5, 5, 100},
		{"saturated imperfect", 5, 4, 80},
		{"beyond saturation", 10, 8, 80},
		{"half right early", 2, 1, 20},
		{"rounding", 3, 2, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFor(tt.attempts, tt.correct); got != tt.want {
				t.Errorf("LevelFor(%d, %d) = %d, want %d", tt.attempts, tt.correct, got, tt.want)
			}
		})
	}
}

func TestUpdateCounters(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := Update(SkillMastery{SkillID: "letter-a"}, true, now)
	if first.Attempts != 1 || first.CorrectAnswers != 1 {
		t.Errorf("first = %d/%d attempts/correct, want 1/1", first.CorrectAnswers, first.Attempts)
	}
	if first.Level != 20 {
		t.Errorf("first level = %d, want 20", first.Level)
	}
	if !first.LastPracticed.Equal(now) {
		t.Errorf("last practiced = %v, want %v", first.LastPracticed, now)
	}

	second := Update(first, false, now)
	if second.Attempts != 2 || second.CorrectAnswers != 1 {
		t.Errorf("second = %d/%d attempts/correct, want 1/2", second.CorrectAnswers, second.Attempts)
	}
	if second.Level != 20 {
		t.Errorf("second level = %d, want 20", second.Level)
	}
}

func TestUpdateIsPure(t *testing.T) {
	now := time.Now()
	current := SkillMastery{SkillID: "letter-a", Attempts: 3, CorrectAnswers: 2, ReviewIntervalDays: 4}
	_ = Update(current, true, now)

	if current.Attempts != 3 || current.CorrectAnswers != 2 || current.ReviewIntervalDays != 4 {
		t.Errorf("input record was modified: %+v", current)
	}
}

func TestUpdateReviewInterval(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		prev    int
		correct bool
		want    int
	}{
		{"first correct doubles the floor", 0, true, 2},
		{"correct doubles", 4, true, 8},
		{"correct caps at max", 16, true, 30},
		{"correct stays at cap", 30, true, 30},
		{"incorrect resets", 16, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Update(SkillMastery{ReviewIntervalDays: tt.prev}, tt.correct, now)
			if got.ReviewIntervalDays != tt.want {
				t.Errorf("interval = %d, want %d", got.ReviewIntervalDays, tt.want)
			}
			wantReview := now.AddDate(0, 0, tt.want)
			if !got.NextReview.Equal(wantReview) {
				t.Errorf("next review = %v, want %v", got.NextReview, wantReview)
			}
		})
	}
}

func TestTrackerGetUnknownSkill(t *testing.T) {
	tr := NewTracker(nil)
	sm := tr.Get("letter-z")
	if sm.SkillID != "letter-z" {
		t.Errorf("skill id = %q, want letter-z", sm.SkillID)
	}
	if sm.Attempts != 0 || sm.Level != 0 {
		t.Errorf("expected zero record, got %+v", sm)
	}
	if sm.ReviewIntervalDays != MinReviewIntervalDays {
		t.Errorf("interval = %d, want %d", sm.ReviewIntervalDays, MinReviewIntervalDays)
	}
}

func TestTrackerRecordAnswer(t *testing.T) {
	tr := NewTracker(nil)
	now := time.Now()

	updated, prev := tr.RecordAnswer("letter-a", true, now)
	if prev != 0 {
		t.Errorf("prev level = %d, want 0", prev)
	}
	if updated.Level != 20 {
		t.Errorf("level = %d, want 20", updated.Level)
	}

	updated, prev = tr.RecordAnswer("letter-a", true, now)
	if prev != 20 {
		t.Errorf("prev level = %d, want 20", prev)
	}
	if updated.Level != 40 {
		t.Errorf("level = %d, want 40", updated.Level)
	}

	// Tracker state persists between calls.
	if got := tr.Get("letter-a").Attempts; got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestNewTrackerNormalizes(t *testing.T) {
	snap := &store.ProgressData{
		Skills: map[string]*store.SkillMasteryData{
			"letter-a": {
				SkillID:        "letter-a",
				Level:          999, // stale cache, must be recomputed
				Attempts:       5,
				CorrectAnswers: 4,
			},
			"letter-b": {
				SkillID:            "letter-b",
				Attempts:           2,
				CorrectAnswers:     7, // corrupt: more correct than attempts
				ReviewIntervalDays: -3,
				LastPracticed:      "not-a-timestamp",
			},
		},
	}

	tr := NewTracker(snap)

	a := tr.Get("letter-a")
	if a.Level != 80 {
		t.Errorf("letter-a level = %d, want 80 (recomputed)", a.Level)
	}

	b := tr.Get("letter-b")
	if b.CorrectAnswers != 2 {
		t.Errorf("letter-b correct = %d, want clamped to 2", b.CorrectAnswers)
	}
	if b.Level != 40 {
		t.Errorf("letter-b level = %d, want 40", b.Level)
	}
	if b.ReviewIntervalDays != MinReviewIntervalDays {
		t.Errorf("letter-b interval = %d, want %d", b.ReviewIntervalDays, MinReviewIntervalDays)
	}
	if !b.LastPracticed.IsZero() {
		t.Errorf("letter-b last practiced should be zero for a bad timestamp")
	}
}

func TestTrackerCountAtLeast(t *testing.T) {
	tr := NewTracker(&store.ProgressData{
		Skills: map[string]*store.SkillMasteryData{
			"letter-a": {Attempts: 5, CorrectAnswers: 5}, // 100
			"letter-b": {Attempts: 5, CorrectAnswers: 4}, // 80
			"letter-c": {Attempts: 5, CorrectAnswers: 2}, // 40
		},
	})

	if got := tr.CountAtLeast(80); got != 2 {
		t.Errorf("CountAtLeast(80) = %d, want 2", got)
	}
	if got := tr.CountAtLeast(90); got != 1 {
		t.Errorf("CountAtLeast(90) = %d, want 1", got)
	}
}

func TestTrackerSnapshotRoundTrip(t *testing.T) {
	tr := NewTracker(nil)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tr.RecordAnswer("letter-a", true, now)
	tr.RecordAnswer("letter-a", false, now)

	reloaded := NewTracker(&store.ProgressData{Skills: tr.SnapshotData()})
	got := reloaded.Get("letter-a")
	want := tr.Get("letter-a")

	if got.Attempts != want.Attempts || got.CorrectAnswers != want.CorrectAnswers {
		t.Errorf("counters = %d/%d, want %d/%d", got.CorrectAnswers, got.Attempts, want.CorrectAnswers, want.Attempts)
	}
	if got.Level != want.Level {
		t.Errorf("level = %d, want %d", got.Level, want.Level)
	}
	if got.ReviewIntervalDays != want.ReviewIntervalDays {
		t.Errorf("interval = %d, want %d", got.ReviewIntervalDays, want.ReviewIntervalDays)
	}
	if !got.LastPracticed.Equal(want.LastPracticed) {
		t.Errorf("last practiced = %v, want %v", got.LastPracticed, want.LastPracticed)
	}
}
