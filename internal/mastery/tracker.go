package mastery

import (
	"time"

	"github.com/saisha/letterly/internal/store"
)

// Tracker provides mastery state management for all skills.
type Tracker struct {
	skills map[string]*SkillMastery
}

// NewTracker creates a tracker, loading state from snapshot data.
// Levels are recomputed from the counters on load: the stored level is a
// cache and the counters are the source of truth.
func NewTracker(snap *store.ProgressData) *Tracker {
	t := &Tracker{skills: make(map[string]*SkillMastery)}

	if snap == nil || snap.Skills == nil {
		return t
	}

	for id, sd := range snap.Skills {
		sm := &SkillMastery{
			SkillID:            id,
			Attempts:           sd.Attempts,
			CorrectAnswers:     sd.CorrectAnswers,
			ReviewIntervalDays: sd.ReviewIntervalDays,
		}
		if sm.CorrectAnswers > sm.Attempts {
			sm.CorrectAnswers = sm.Attempts
		}
		if sm.ReviewIntervalDays < MinReviewIntervalDays {
			sm.ReviewIntervalDays = MinReviewIntervalDays
		}
		sm.Level = LevelFor(sm.Attempts, sm.CorrectAnswers)
		if ts, err := time.Parse(time.RFC3339, sd.LastPracticed); err == nil {
			sm.LastPracticed = ts
		}
		if ts, err := time.Parse(time.RFC3339, sd.NextReview); err == nil {
			sm.NextReview = ts
		}
		t.skills[id] = sm
	}

	return t
}

// Get returns the mastery record for a skill, or a zero record if the skill
// hasn't been practiced yet. The returned value is a copy.
func (t *Tracker) Get(skillID string) SkillMastery {
	if sm, ok := t.skills[skillID]; ok {
		return *sm
	}
	return SkillMastery{SkillID: skillID, ReviewIntervalDays: MinReviewIntervalDays}
}

// RecordAnswer applies one answer to a skill and returns the updated record
// along with the level before the update.
func (t *Tracker) RecordAnswer(skillID string, correct bool, now time.Time) (SkillMastery, int) {
	current := t.Get(skillID)
	prevLevel := current.Level
	updated := Update(current, correct, now)
	t.skills[skillID] = &updated
	return updated, prevLevel
}

// Levels returns the current level per practiced skill.
func (t *Tracker) Levels() map[string]int {
	levels := make(map[string]int, len(t.skills))
	for id, sm := range t.skills {
		levels[id] = sm.Level
	}
	return levels
}

// CountAtLeast returns how many skills are at or above the given level.
func (t *Tracker) CountAtLeast(level int) int {
	n := 0
	for _, sm := range t.skills {
		if sm.Level >= level {
			n++
		}
	}
	return n
}

// All returns copies of every mastery record (for stats/UI).
func (t *Tracker) All() map[string]SkillMastery {
	result := make(map[string]SkillMastery, len(t.skills))
	for id, sm := range t.skills {
		result[id] = *sm
	}
	return result
}

// SnapshotData exports the current mastery state for persistence.
func (t *Tracker) SnapshotData() map[string]*store.SkillMasteryData {
	data := make(map[string]*store.SkillMasteryData, len(t.skills))
	for id, sm := range t.skills {
		data[id] = &store.SkillMasteryData{
			SkillID:            id,
			Level:              sm.Level,
			Attempts:           sm.Attempts,
			CorrectAnswers:     sm.CorrectAnswers,
			LastPracticed:      sm.LastPracticed.Format(time.RFC3339),
			NextReview:         sm.NextReview.Format(time.RFC3339),
			ReviewIntervalDays: sm.ReviewIntervalDays,
		}
	}
	return data
}
