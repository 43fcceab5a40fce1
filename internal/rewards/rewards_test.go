package rewards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saisha/letterly/internal/mastery"
	"github.com/saisha/letterly/internal/store"
)

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name      string
		correct   bool
		updated   mastery.SkillMastery
		prevLevel int
		want      int
	}{
		{
			name:    "incorrect earns nothing",
			correct: false,
			updated: mastery.SkillMastery{Level: 40, Attempts: 3},
			want:    0,
		},
		{
			name:      "first attempt correct",
			correct:   true,
			updated:   mastery.SkillMastery{Level: 20, Attempts: 1},
			prevLevel: 0,
			want:      17, // 10 base + 2 improvement + 5 first attempt
		},
		{
			name:      "later improvement",
			correct:   true,
			updated:   mastery.SkillMastery{Level: 60, Attempts: 3},
			prevLevel: 40,
			want:      12, // 10 base + 2 improvement
		},
		{
			name:      "no improvement",
			correct:   true,
			updated:   mastery.SkillMastery{Level: 80, Attempts: 10},
			prevLevel: 80,
			want:      10,
		},
		{
			name:      "level drop never subtracts",
			correct:   true,
			updated:   mastery.SkillMastery{Level: 70, Attempts: 8},
			prevLevel: 90,
			want:      10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePoints(tt.correct, tt.updated, tt.prevLevel)
			if got != tt.want {
				t.Errorf("points = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdateStreak(t *testing.T) {
	day := func(d, hour int) time.Time {
		return time.Date(2026, 3, d, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		lastActive time.Time
		now        time.Time
		wantInc    int
		wantReset  bool
	}{
		{"same day", day(1, 9), day(1, 22), 0, false},
		{"next calendar day", day(1, 9), day(2, 9), 1, false},
		{"late night to early morning", day(1, 23), day(2, 1), 1, false},
		{"two days later", day(1, 9), day(3, 9), 1, true},
		{"a week later", day(1, 9), day(8, 9), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateStreak(tt.lastActive, tt.now)
			if got.CurrentStreak != tt.wantInc || got.ShouldReset != tt.wantReset {
				t.Errorf("UpdateStreak = %+v, want increment %d reset %v", got, tt.wantInc, tt.wantReset)
			}
		})
	}
}

func TestBadgeQualifies(t *testing.T) {
	cat := DefaultCatalog()

	facts := Facts{
		SessionStreak: 5,
		SkillLevels: map[string]int{
			"letter-a": 85, "letter-b": 90, "letter-c": 80, "letter-d": 40,
		},
		CompletedLessons: 5,
		DailyStreak:      3,
	}

	tests := []struct {
		badgeID string
		want    bool
	}{
		{"accuracy-spark", true},   // streak 5 >= 5
		{"accuracy-flame", false},  // streak 5 < 10
		{"mastery-bronze", true},   // 3 skills >= 80
		{"mastery-silver", false},  // needs 10
		{"completion-explorer", true},
		{"completion-adventurer", false},
		{"streak-3", true},
		{"streak-7", false},
	}

	for _, tt := range tests {
		t.Run(tt.badgeID, func(t *testing.T) {
			b := cat.ByID(tt.badgeID)
			if b == nil {
				t.Fatalf("badge %s not in catalog", tt.badgeID)
			}
			if got := b.Qualifies(facts); got != tt.want {
				t.Errorf("Qualifies = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMasteryBadgeMinLevel(t *testing.T) {
	gold := DefaultCatalog().ByID("mastery-gold")

	levels := make(map[string]int)
	for i := 0; i < 20; i++ {
		levels[string(rune('a'+i))] = 85 // high, but below the gold bar
	}
	if gold.Qualifies(Facts{SkillLevels: levels}) {
		t.Error("20 skills at 85 must not earn the level-90 badge")
	}

	for k := range levels {
		levels[k] = 90
	}
	if !gold.Qualifies(Facts{SkillLevels: levels}) {
		t.Error("20 skills at 90 should earn the gold badge")
	}
}

type recordingEventRepo struct {
	badges    []store.BadgeEventData
	appendErr error
}

func (r *recordingEventRepo) AppendAnswerEvent(context.Context, store.AnswerEventData) error {
	return nil
}

func (r *recordingEventRepo) AppendBadgeEvent(_ context.Context, data store.BadgeEventData) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.badges = append(r.badges, data)
	return nil
}

func (r *recordingEventRepo) SkillAccuracy(context.Context, string) (float64, error) {
	return 0, nil
}

func (r *recordingEventRepo) AnswerTotals(context.Context) ([]store.SkillTotals, error) {
	return nil, nil
}

func (r *recordingEventRepo) BadgeCounts(context.Context) (map[string]int, int, error) {
	return nil, 0, nil
}

func TestCheckAndAwardBadges(t *testing.T) {
	repo := &recordingEventRepo{}
	a := NewAllocator(DefaultCatalog(), repo)
	ctx := context.Background()
	now := time.Now()

	earned := map[string]bool{}
	facts := Facts{SessionStreak: 5, DailyStreak: 3, Earned: earned}

	awards := a.CheckAndAwardBadges(ctx, facts, "sess", "learner", now)
	if len(awards) != 2 {
		t.Fatalf("awards = %d, want 2 (accuracy-spark, streak-3)", len(awards))
	}
	for _, aw := range awards {
		earned[aw.Badge.ID] = true
	}
	if len(repo.badges) != 2 {
		t.Errorf("persisted events = %d, want 2", len(repo.badges))
	}

	// Same facts again: nothing new.
	again := a.CheckAndAwardBadges(ctx, facts, "sess", "learner", now)
	if len(again) != 0 {
		t.Errorf("re-check awarded %d badges, want 0", len(again))
	}

	// Progress to the next tier awards only the new badge.
	facts.SessionStreak = 10
	tier2 := a.CheckAndAwardBadges(ctx, facts, "sess", "learner", now)
	if len(tier2) != 1 || tier2[0].Badge.ID != "accuracy-flame" {
		t.Errorf("tier-2 awards = %+v, want accuracy-flame only", tier2)
	}

	if len(a.SessionAwards) != 3 {
		t.Errorf("session awards = %d, want 3", len(a.SessionAwards))
	}
	a.ResetSession()
	if len(a.SessionAwards) != 0 {
		t.Error("ResetSession should clear session awards")
	}
}

func TestAllocatorReportsPersistFailure(t *testing.T) {
	repo := &recordingEventRepo{appendErr: errors.New("disk full")}
	a := NewAllocator(DefaultCatalog(), repo)

	var reported []error
	a.OnPersistError(func(err error) { reported = append(reported, err) })

	awards := a.CheckAndAwardBadges(context.Background(), Facts{DailyStreak: 3}, "s", "l", time.Now())
	if len(awards) != 1 {
		t.Fatalf("awards = %d, want 1 (award survives a persist failure)", len(awards))
	}
	if len(reported) != 1 {
		t.Fatalf("reported errors = %d, want 1", len(reported))
	}
	if !errors.Is(reported[0], repo.appendErr) {
		t.Errorf("reported error %v does not wrap the repo failure", reported[0])
	}
}

func TestAllocatorNilEventRepo(t *testing.T) {
	a := NewAllocator(DefaultCatalog(), nil)
	awards := a.CheckAndAwardBadges(context.Background(), Facts{DailyStreak: 3}, "s", "l", time.Now())
	if len(awards) != 1 {
		t.Fatalf("awards = %d, want 1", len(awards))
	}
}
