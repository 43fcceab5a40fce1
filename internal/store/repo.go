package store

import (
	"context"
	"errors"
	"time"
)

// ErrSessionExpired is returned when the persistence boundary rejects the
// caller's credentials. Progress held by the session is unusable afterwards
// and the surrounding system must force re-authentication.
var ErrSessionExpired = errors.New("session expired")

// ProgressData is the serialized form of a learner's full progress record.
// Domain services own the live types; these DTOs exist only for storage.
type ProgressData struct {
	Version          int                          `json:"version"`
	LearnerID        string                       `json:"learner_id"`
	CompletedLessons []string                     `json:"completed_lessons"`
	Skills           map[string]*SkillMasteryData `json:"skills"`
	ReviewQueue      []*ReviewItemData            `json:"review_queue"`
	TotalPoints      int                          `json:"total_points"`
	Badges           []*BadgeAwardData            `json:"badges"`
	Stats            *StatsData                   `json:"stats"`
}

// SkillMasteryData is the serialized mastery record for one skill.
type SkillMasteryData struct {
	SkillID            string `json:"skill_id"`
	Level              int    `json:"level"`
	Attempts           int    `json:"attempts"`
	CorrectAnswers     int    `json:"correct_answers"`
	LastPracticed      string `json:"last_practiced"`
	NextReview         string `json:"next_review"`
	ReviewIntervalDays int    `json:"review_interval_days"`
}

// ReviewItemData is the serialized spaced-repetition state for one question.
type ReviewItemData struct {
	QuestionID      string `json:"question_id"`
	SkillID         string `json:"skill_id"`
	Difficulty      int    `json:"difficulty"`
	LastAttempt     string `json:"last_attempt"`
	NextReview      string `json:"next_review"`
	CorrectStreak   int    `json:"correct_streak"`
	IncorrectStreak int    `json:"incorrect_streak"`
}

// BadgeAwardData records an earned badge.
type BadgeAwardData struct {
	BadgeID  string `json:"badge_id"`
	EarnedAt string `json:"earned_at"`
}

// StatsData holds aggregate learner statistics.
type StatsData struct {
	TotalQuizzesCompleted int     `json:"total_quizzes_completed"`
	AverageAccuracy       float64 `json:"average_accuracy"`
	CurrentStreak         int     `json:"current_streak"`
	BestStreak            int     `json:"best_streak"`
	LastActive            string  `json:"last_active"`
}

// Snapshot is a point-in-time capture of a learner's progress.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      ProgressData
}

// ProgressRepo manages learner progress snapshots.
type ProgressRepo interface {
	// Save stores a new snapshot for the learner.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the learner's most recent snapshot, or nil if none exist.
	Latest(ctx context.Context, learnerID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots for the learner.
	Prune(ctx context.Context, learnerID string, keep int) error
}

// AnswerEventData captures a single resolved answer.
type AnswerEventData struct {
	SessionID   string
	LearnerID   string
	QuestionID  string
	SkillID     string
	Kind        string
	Correct     bool
	ChoiceIndex *int
	Attempt     int
	Points      int
	TimeMs      int
}

// BadgeEventData captures a badge award.
type BadgeEventData struct {
	SessionID string
	LearnerID string
	BadgeID   string
	BadgeType string
	Tier      int
}

// SkillTotals aggregates answer counts for one skill.
type SkillTotals struct {
	SkillID  string `db:"skill_id"`
	Attempts int    `db:"attempts"`
	Correct  int    `db:"correct"`
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records a resolved answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendBadgeEvent records a badge award.
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error

	// SkillAccuracy returns the historical accuracy ratio for a skill.
	SkillAccuracy(ctx context.Context, skillID string) (float64, error)

	// AnswerTotals returns lifetime attempt/correct counts per skill.
	AnswerTotals(ctx context.Context) ([]SkillTotals, error)

	// BadgeCounts returns earned badge counts keyed by badge type.
	BadgeCounts(ctx context.Context) (map[string]int, int, error)
}
