package reviewqueue

import (
	"testing"
	"time"

	"github.com/saisha/letterly/internal/store"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestFirstAttemptKeepsDefaultDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		correct bool
	}{
		{"correct", true},
		{"incorrect", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(nil)
			it, evicted := s.RecordAnswer("q1", "letter-a", tt.correct, testNow)
			if evicted {
				t.Fatal("first answer must not evict")
			}
			if it.Difficulty != DefaultDifficulty {
				t.Errorf("difficulty = %d, want %d on first attempt", it.Difficulty, DefaultDifficulty)
			}
		})
	}
}

func TestCorrectAnswerEasesAndDefers(t *testing.T) {
	s := NewScheduler(nil)
	s.RecordAnswer("q1", "letter-a", false, testNow) // enters at 5, wrong -> stays 5

	it, evicted := s.RecordAnswer("q1", "letter-a", true, testNow)
	if evicted {
		t.Fatal("single correct must not evict")
	}
	if it.Difficulty != DefaultDifficulty-1 {
		t.Errorf("difficulty = %d, want %d", it.Difficulty, DefaultDifficulty-1)
	}
	if it.CorrectStreak != 1 || it.IncorrectStreak != 0 {
		t.Errorf("streaks = %d/%d correct/incorrect, want 1/0", it.CorrectStreak, it.IncorrectStreak)
	}
	wantReview := testNow.AddDate(0, 0, 2) // streak 1 * 2 days
	if !it.NextReview.Equal(wantReview) {
		t.Errorf("next review = %v, want %v", it.NextReview, wantReview)
	}
}

func TestIncorrectAnswerHardensAndResurfaces(t *testing.T) {
	s := NewScheduler(nil)
	s.RecordAnswer("q1", "letter-a", false, testNow)

	it, _ := s.RecordAnswer("q1", "letter-a", false, testNow)
	if it.Difficulty != DefaultDifficulty+2 {
		t.Errorf("difficulty = %d, want %d", it.Difficulty, DefaultDifficulty+2)
	}
	if it.CorrectStreak != 0 || it.IncorrectStreak != 2 {
		t.Errorf("streaks = %d/%d correct/incorrect, want 0/2", it.CorrectStreak, it.IncorrectStreak)
	}
	if !it.NextReview.Equal(testNow) {
		t.Errorf("next review = %v, want due immediately", it.NextReview)
	}
	if !it.IsDue(testNow) {
		t.Error("item should be due right after an incorrect answer")
	}
}

func TestDifficultyClamps(t *testing.T) {
	// Max: keep answering wrong.
	s := NewScheduler(nil)
	for i := 0; i < 6; i++ {
		s.RecordAnswer("q1", "letter-a", false, testNow)
	}
	if got := s.Get("q1").Difficulty; got != MaxDifficulty {
		t.Errorf("difficulty = %d, want clamped to %d", got, MaxDifficulty)
	}

	// Min: restore an easy item and answer correctly.
	s = NewScheduler(&store.ProgressData{
		ReviewQueue: []*store.ReviewItemData{
			{QuestionID: "q2", SkillID: "letter-b", Difficulty: MinDifficulty},
		},
	})
	it, _ := s.RecordAnswer("q2", "letter-b", true, testNow)
	if it.Difficulty != MinDifficulty {
		t.Errorf("difficulty = %d, want clamped to %d", it.Difficulty, MinDifficulty)
	}
}

func TestEvictionAfterConsecutiveCorrect(t *testing.T) {
	s := NewScheduler(nil)
	s.RecordAnswer("q1", "letter-a", true, testNow)

	it, evicted := s.RecordAnswer("q1", "letter-a", true, testNow)
	if !evicted {
		t.Fatal("second consecutive correct should evict")
	}
	if it.CorrectStreak != EvictionStreak {
		t.Errorf("streak = %d, want %d", it.CorrectStreak, EvictionStreak)
	}
	if s.Get("q1") != nil {
		t.Error("evicted item should leave the queue")
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}

func TestIncorrectResetsCorrectStreak(t *testing.T) {
	s := NewScheduler(nil)
	s.RecordAnswer("q1", "letter-a", true, testNow)
	s.RecordAnswer("q1", "letter-a", false, testNow)

	// The eviction counter starts over: two more corrects needed.
	_, evicted := s.RecordAnswer("q1", "letter-a", true, testNow)
	if evicted {
		t.Fatal("streak was reset, one correct must not evict")
	}
	_, evicted = s.RecordAnswer("q1", "letter-a", true, testNow)
	if !evicted {
		t.Fatal("second correct after reset should evict")
	}
}

func TestNewSchedulerDropsEvictedItems(t *testing.T) {
	s := NewScheduler(&store.ProgressData{
		ReviewQueue: []*store.ReviewItemData{
			{QuestionID: "done", SkillID: "letter-a", Difficulty: 3, CorrectStreak: EvictionStreak},
			{QuestionID: "live", SkillID: "letter-b", Difficulty: 4, CorrectStreak: 1},
		},
	})

	if s.Get("done") != nil {
		t.Error("item at eviction streak should not be restored")
	}
	if s.Get("live") == nil {
		t.Error("live item should be restored")
	}
}

func TestNewSchedulerNormalizes(t *testing.T) {
	s := NewScheduler(&store.ProgressData{
		ReviewQueue: []*store.ReviewItemData{
			{QuestionID: "q1", SkillID: "letter-a", Difficulty: 99, CorrectStreak: 1, IncorrectStreak: 3},
			{QuestionID: "q2", SkillID: "letter-b", Difficulty: -4},
		},
	})

	q1 := s.Get("q1")
	if q1.Difficulty != MaxDifficulty {
		t.Errorf("q1 difficulty = %d, want %d", q1.Difficulty, MaxDifficulty)
	}
	// Exactly one streak may be non-zero.
	if q1.CorrectStreak != 1 || q1.IncorrectStreak != 0 {
		t.Errorf("q1 streaks = %d/%d, want 1/0", q1.CorrectStreak, q1.IncorrectStreak)
	}

	if got := s.Get("q2").Difficulty; got != MinDifficulty {
		t.Errorf("q2 difficulty = %d, want %d", got, MinDifficulty)
	}
}

func TestDueOrdering(t *testing.T) {
	s := NewScheduler(nil)
	s.RecordAnswer("q-late", "letter-a", false, testNow.Add(-2*time.Hour))
	s.RecordAnswer("q-later", "letter-b", false, testNow.Add(-1*time.Hour))
	s.RecordAnswer("q-future", "letter-c", true, testNow) // due in 2 days

	due := s.Due(testNow)
	if len(due) != 2 {
		t.Fatalf("due = %d items, want 2", len(due))
	}
	if due[0].QuestionID != "q-late" || due[1].QuestionID != "q-later" {
		t.Errorf("due order = %s, %s; want q-late, q-later", due[0].QuestionID, due[1].QuestionID)
	}
}

func TestWeakSkills(t *testing.T) {
	s := NewScheduler(&store.ProgressData{
		ReviewQueue: []*store.ReviewItemData{
			{QuestionID: "q1", SkillID: "letter-c", Difficulty: HardDifficulty},
			{QuestionID: "q2", SkillID: "letter-d", Difficulty: 3, IncorrectStreak: EvictionStreak},
			{QuestionID: "q3", SkillID: "letter-e", Difficulty: 3},
		},
	})

	levels := map[string]int{
		"letter-a": WeakLevel - 1, // weak by level
		"letter-b": WeakLevel,     // fine
		"letter-e": 95,            // fine, easy item
	}

	got := s.WeakSkills(levels)
	want := []string{"letter-a", "letter-c", "letter-d"}
	if len(got) != len(want) {
		t.Fatalf("weak skills = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weak[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewScheduler(nil)
	s.RecordAnswer("q1", "letter-a", false, testNow)
	s.RecordAnswer("q2", "letter-b", true, testNow)

	reloaded := NewScheduler(&store.ProgressData{ReviewQueue: s.SnapshotData()})
	if reloaded.Len() != s.Len() {
		t.Fatalf("len = %d, want %d", reloaded.Len(), s.Len())
	}
	for _, id := range []string{"q1", "q2"} {
		got, want := reloaded.Get(id), s.Get(id)
		if got == nil {
			t.Fatalf("%s missing after reload", id)
		}
		if got.Difficulty != want.Difficulty || got.CorrectStreak != want.CorrectStreak || got.IncorrectStreak != want.IncorrectStreak {
			t.Errorf("%s = %+v, want %+v", id, got, want)
		}
		if !got.NextReview.Equal(want.NextReview) {
			t.Errorf("%s next review = %v, want %v", id, got.NextReview, want.NextReview)
		}
	}
}
