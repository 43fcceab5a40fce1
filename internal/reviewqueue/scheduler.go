package reviewqueue

import (
	"sort"
	"time"

	"github.com/saisha/letterly/internal/store"
)

// Scheduler tracks per-question review state, independent of skill-level
// mastery. Questions enter on first attempt and leave once answered
// correctly twice in a row.
type Scheduler struct {
	items map[string]*Item
}

// NewScheduler creates a scheduler, loading queue state from snapshot data.
// Items that already reached the eviction streak are not restored: they have
// left spaced repetition.
func NewScheduler(snap *store.ProgressData) *Scheduler {
	s := &Scheduler{items: make(map[string]*Item)}

	if snap == nil {
		return s
	}

	for _, rd := range snap.ReviewQueue {
		if rd.CorrectStreak >= EvictionStreak {
			continue
		}
		it := &Item{
			QuestionID:      rd.QuestionID,
			SkillID:         rd.SkillID,
			Difficulty:      clampDifficulty(rd.Difficulty),
			CorrectStreak:   rd.CorrectStreak,
			IncorrectStreak: rd.IncorrectStreak,
		}
		// Exactly one streak may be non-zero; the correct streak wins.
		if it.CorrectStreak > 0 {
			it.IncorrectStreak = 0
		}
		if ts, err := time.Parse(time.RFC3339, rd.LastAttempt); err == nil {
			it.LastAttempt = ts
		}
		if ts, err := time.Parse(time.RFC3339, rd.NextReview); err == nil {
			it.NextReview = ts
		}
		s.items[rd.QuestionID] = it
	}

	return s
}

// RecordAnswer updates the review state for a question. A correct answer
// eases the question and pushes its review out; an incorrect answer hardens
// it and makes it due immediately. A question's first attempt enters the
// queue at the default difficulty; adjustments start on repeat attempts.
// Returns the updated item and whether it was evicted from the queue
// (learned).
func (s *Scheduler) RecordAnswer(questionID, skillID string, correct bool, now time.Time) (Item, bool) {
	it := s.items[questionID]
	created := it == nil
	if created {
		it = &Item{
			QuestionID: questionID,
			SkillID:    skillID,
			Difficulty: DefaultDifficulty,
		}
	}

	it.LastAttempt = now

	if correct {
		it.CorrectStreak++
		it.IncorrectStreak = 0
		if !created {
			it.Difficulty = clampDifficulty(it.Difficulty - 1)
		}
		intervalDays := min(it.CorrectStreak*2, MaxIntervalDays)
		it.NextReview = now.AddDate(0, 0, intervalDays)
	} else {
		it.CorrectStreak = 0
		it.IncorrectStreak++
		if !created {
			it.Difficulty = clampDifficulty(it.Difficulty + 2)
		}
		// Wrong answers resurface in the very next review pass.
		it.NextReview = now
	}

	if it.CorrectStreak >= EvictionStreak {
		delete(s.items, questionID)
		return *it, true
	}

	s.items[questionID] = it
	return *it, false
}

// Due returns the items due for review, most overdue first.
func (s *Scheduler) Due(now time.Time) []Item {
	var due []Item
	for _, it := range s.items {
		if it.IsDue(now) {
			due = append(due, *it)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReview.Equal(due[j].NextReview) {
			return due[i].NextReview.Before(due[j].NextReview)
		}
		return due[i].QuestionID < due[j].QuestionID
	})
	return due
}

// WeakSkills returns skill IDs needing attention: any skill whose mastery
// level is below WeakLevel, unioned with skills whose queued questions are
// hard (difficulty >= HardDifficulty) or repeatedly missed
// (incorrectStreak >= EvictionStreak). Feeds "practice weak areas" selection.
func (s *Scheduler) WeakSkills(levels map[string]int) []string {
	weak := make(map[string]bool)

	for skillID, level := range levels {
		if level < WeakLevel {
			weak[skillID] = true
		}
	}
	for _, it := range s.items {
		if it.Difficulty >= HardDifficulty || it.IncorrectStreak >= EvictionStreak {
			weak[it.SkillID] = true
		}
	}

	ids := make([]string, 0, len(weak))
	for id := range weak {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns the queue item for a question, or nil if not in rotation.
func (s *Scheduler) Get(questionID string) *Item {
	return s.items[questionID]
}

// Len returns the number of questions currently in rotation.
func (s *Scheduler) Len() int {
	return len(s.items)
}

// SnapshotData exports the queue for persistence, ordered by next review.
func (s *Scheduler) SnapshotData() []*store.ReviewItemData {
	data := make([]*store.ReviewItemData, 0, len(s.items))
	for _, it := range s.items {
		data = append(data, &store.ReviewItemData{
			QuestionID:      it.QuestionID,
			SkillID:         it.SkillID,
			Difficulty:      it.Difficulty,
			LastAttempt:     it.LastAttempt.Format(time.RFC3339),
			NextReview:      it.NextReview.Format(time.RFC3339),
			CorrectStreak:   it.CorrectStreak,
			IncorrectStreak: it.IncorrectStreak,
		})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].NextReview != data[j].NextReview {
			return data[i].NextReview < data[j].NextReview
		}
		return data[i].QuestionID < data[j].QuestionID
	})
	return data
}

func clampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}
