package mastery

import (
	"math"
	"time"
)

const (
	// PracticeSaturation is the attempt count at which the practice-volume
	// damping factor reaches 1.0. Below it, accuracy alone can't produce a
	// high level — one lucky answer doesn't make a mastered skill.
	PracticeSaturation = 5

	// MaxReviewIntervalDays caps the exponential review backoff.
	MaxReviewIntervalDays = 30

	// MinReviewIntervalDays is the floor for the review interval.
	MinReviewIntervalDays = 1
)

// SkillMastery holds the mastery record for a single skill.
// Level is a cache: it is always recomputable from Attempts and
// CorrectAnswers via LevelFor.
type SkillMastery struct {
	SkillID            string
	Level              int // 0-100, derived
	Attempts           int
	CorrectAnswers     int
	LastPracticed      time.Time
	NextReview         time.Time
	ReviewIntervalDays int
}

// Accuracy returns the raw accuracy ratio.
func (sm *SkillMastery) Accuracy() float64 {
	if sm.Attempts == 0 {
		return 0.0
	}
	return float64(sm.CorrectAnswers) / float64(sm.Attempts)
}

// LevelFor computes the 0-100 mastery level for an (attempts, correct) pair:
// accuracy damped by a practice-volume factor that saturates at
// PracticeSaturation attempts.
func LevelFor(attempts, correct int) int {
	if attempts == 0 {
		return 0
	}
	accuracy := float64(correct) / float64(attempts) * 100
	volume := math.Min(float64(attempts)/float64(PracticeSaturation), 1.0)
	return int(math.Round(accuracy * volume))
}

// Update applies one answer to a mastery record and returns the new record.
// Pure function: current is not modified. For a skill's first attempt pass a
// zero-value record with SkillID set.
func Update(current SkillMastery, correct bool, now time.Time) SkillMastery {
	next := current
	next.Attempts++
	if correct {
		next.CorrectAnswers++
	}
	next.Level = LevelFor(next.Attempts, next.CorrectAnswers)
	next.LastPracticed = now

	if correct {
		prev := current.ReviewIntervalDays
		if prev < MinReviewIntervalDays {
			prev = MinReviewIntervalDays
		}
		next.ReviewIntervalDays = min(prev*2, MaxReviewIntervalDays)
	} else {
		next.ReviewIntervalDays = MinReviewIntervalDays
	}
	next.NextReview = now.AddDate(0, 0, next.ReviewIntervalDays)

	return next
}
