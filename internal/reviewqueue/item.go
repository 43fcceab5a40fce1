package reviewqueue

import "time"

const (
	// DefaultDifficulty is assigned to a question on its first attempt.
	DefaultDifficulty = 5

	// MinDifficulty and MaxDifficulty clamp per-question difficulty.
	MinDifficulty = 1
	MaxDifficulty = 10

	// EvictionStreak is the correct streak at which a question is considered
	// learned and drops out of spaced repetition.
	EvictionStreak = 2

	// MaxIntervalDays caps the review interval for queued questions.
	MaxIntervalDays = 30

	// HardDifficulty marks a question's skill as weak regardless of level.
	HardDifficulty = 7

	// WeakLevel is the mastery level below which a skill counts as weak.
	WeakLevel = 60
)

// Item is the spaced-repetition state for a single question in rotation.
// Exactly one of CorrectStreak/IncorrectStreak is non-zero at a time.
type Item struct {
	QuestionID      string
	SkillID         string
	Difficulty      int // 1-10
	LastAttempt     time.Time
	NextReview      time.Time
	CorrectStreak   int
	IncorrectStreak int
}

// IsDue returns true if the item is at or past its review date.
func (it *Item) IsDue(now time.Time) bool {
	return !now.Before(it.NextReview)
}
