// Package progress owns the per-learner aggregate: completed lessons,
// skill mastery, the review queue, points, badges, and stats. All
// mutation flows through RecordAnswer and CompleteLesson; persistence
// is fire-and-forget so the UI always reflects the latest in-memory
// computation regardless of save latency.
package progress

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/saisha/letterly/internal/mastery"
	"github.com/saisha/letterly/internal/reviewqueue"
	"github.com/saisha/letterly/internal/rewards"
	"github.com/saisha/letterly/internal/store"
)

// SnapshotVersion is the current on-disk progress format.
const SnapshotVersion = 1

// snapshotsKept bounds how many historical snapshots survive pruning.
const snapshotsKept = 20

// ErrSessionExpired wraps the storage sentinel: once a save is rejected
// for credentials the aggregate is unusable and the caller must force
// re-authentication.
var ErrSessionExpired = store.ErrSessionExpired

// Stats are the learner's aggregate statistics.
type Stats struct {
	TotalQuizzesCompleted int
	AverageAccuracy       float64
	CurrentStreak         int
	BestStreak            int
	LastActive            time.Time
}

// Result describes everything one resolved answer changed.
type Result struct {
	Points    int
	Mastery   mastery.SkillMastery
	PrevLevel int
	QueueItem reviewqueue.Item
	Evicted   bool
	NewBadges []rewards.Award
}

// Service is the aggregate root for one learner's session.
type Service struct {
	learnerID string
	sessionID string

	tracker   *mastery.Tracker
	queue     *reviewqueue.Scheduler
	allocator *rewards.Allocator

	completed     map[string]bool
	completedList []string
	totalPoints   int
	earned        map[string]bool
	badges        []rewards.Award
	stats         Stats
	sessionStreak int

	progressRepo store.ProgressRepo
	eventRepo    store.EventRepo

	expired  atomic.Bool
	saveErrs chan error

	now func() time.Time
}

// NewService builds the aggregate from a stored snapshot (nil for a
// fresh learner). Counters are the source of truth: levels, streak
// bounds, and accuracy are renormalized here so a corrupted snapshot
// cannot poison later incremental updates.
func NewService(learnerID string, snap *store.ProgressData, catalog rewards.Catalog, progressRepo store.ProgressRepo, eventRepo store.EventRepo) *Service {
	s := &Service{
		learnerID:    learnerID,
		sessionID:    uuid.NewString(),
		tracker:      mastery.NewTracker(snap),
		queue:        reviewqueue.NewScheduler(snap),
		allocator:    rewards.NewAllocator(catalog, eventRepo),
		completed:    make(map[string]bool),
		earned:       make(map[string]bool),
		progressRepo: progressRepo,
		eventRepo:    eventRepo,
		saveErrs:     make(chan error, 8),
		now:          time.Now,
	}
	s.allocator.OnPersistError(s.reportSaveErr)

	if snap == nil {
		return s
	}

	for _, id := range snap.CompletedLessons {
		if !s.completed[id] {
			s.completed[id] = true
			s.completedList = append(s.completedList, id)
		}
	}
	s.totalPoints = max(snap.TotalPoints, 0)

	for _, b := range snap.Badges {
		if b == nil || s.earned[b.BadgeID] {
			continue
		}
		def := catalog.ByID(b.BadgeID)
		if def == nil {
			continue
		}
		award := rewards.Award{Badge: *def}
		if ts, err := time.Parse(time.RFC3339, b.EarnedAt); err == nil {
			award.EarnedAt = ts
		}
		s.earned[b.BadgeID] = true
		s.badges = append(s.badges, award)
	}

	if snap.Stats != nil {
		s.stats = Stats{
			TotalQuizzesCompleted: max(snap.Stats.TotalQuizzesCompleted, 0),
			AverageAccuracy:       clampAccuracy(snap.Stats.AverageAccuracy),
			CurrentStreak:         max(snap.Stats.CurrentStreak, 0),
			BestStreak:            max(snap.Stats.BestStreak, 0),
		}
		if s.stats.BestStreak < s.stats.CurrentStreak {
			s.stats.BestStreak = s.stats.CurrentStreak
		}
		if ts, err := time.Parse(time.RFC3339, snap.Stats.LastActive); err == nil {
			s.stats.LastActive = ts
		}
	}

	return s
}

// Load fetches the learner's latest snapshot and builds the aggregate.
func Load(ctx context.Context, learnerID string, catalog rewards.Catalog, progressRepo store.ProgressRepo, eventRepo store.EventRepo) (*Service, error) {
	snap, err := progressRepo.Latest(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	var data *store.ProgressData
	if snap != nil {
		data = &snap.Data
	}
	return NewService(learnerID, data, catalog, progressRepo, eventRepo), nil
}

// RecordAnswer applies one resolved answer to the whole aggregate:
// mastery, review queue, daily streak, points, accuracy, and badges,
// in that order, then issues an async save. took is how long the
// learner spent on the question, logged with the answer event.
func (s *Service) RecordAnswer(ctx context.Context, questionID, skillID, kind string, correct bool, choiceIndex *int, took time.Duration) (Result, error) {
	if s.expired.Load() {
		return Result{}, ErrSessionExpired
	}
	now := s.now()

	updated, prevLevel := s.tracker.RecordAnswer(skillID, correct, now)
	item, evicted := s.queue.RecordAnswer(questionID, skillID, correct, now)

	s.touchDailyStreak(now)

	points := rewards.CalculatePoints(correct, updated, prevLevel)
	s.totalPoints += points

	if correct {
		s.sessionStreak++
	} else {
		s.sessionStreak = 0
	}

	// Running mean over all answered quizzes; n is the count before
	// this answer.
	n := float64(s.stats.TotalQuizzesCompleted)
	score := 0.0
	if correct {
		score = 100
	}
	s.stats.AverageAccuracy = (s.stats.AverageAccuracy*n + score) / (n + 1)
	s.stats.TotalQuizzesCompleted++

	newBadges := s.awardBadges(ctx, now)

	if s.eventRepo != nil {
		attempt := updated.Attempts
		err := s.eventRepo.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:   s.sessionID,
			LearnerID:   s.learnerID,
			QuestionID:  questionID,
			SkillID:     skillID,
			Kind:        kind,
			Correct:     correct,
			ChoiceIndex: choiceIndex,
			Attempt:     attempt,
			Points:      points,
			TimeMs:      int(took.Milliseconds()),
		})
		if err != nil {
			s.reportSaveErr(fmt.Errorf("append answer event: %w", err))
		}
	}

	s.SaveAsync(ctx)

	return Result{
		Points:    points,
		Mastery:   updated,
		PrevLevel: prevLevel,
		QueueItem: item,
		Evicted:   evicted,
		NewBadges: newBadges,
	}, nil
}

// CompleteLesson marks a lesson finished. Idempotent; returns any
// completion badges the new total unlocked.
func (s *Service) CompleteLesson(ctx context.Context, lessonID string) ([]rewards.Award, error) {
	if s.expired.Load() {
		return nil, ErrSessionExpired
	}
	if s.completed[lessonID] {
		return nil, nil
	}
	s.completed[lessonID] = true
	s.completedList = append(s.completedList, lessonID)

	now := s.now()
	s.touchDailyStreak(now)
	newBadges := s.awardBadges(ctx, now)
	s.SaveAsync(ctx)
	return newBadges, nil
}

func (s *Service) touchDailyStreak(now time.Time) {
	if s.stats.LastActive.IsZero() {
		s.stats.CurrentStreak = 1
	} else {
		upd := rewards.UpdateStreak(s.stats.LastActive, now)
		if upd.ShouldReset {
			s.stats.CurrentStreak = upd.CurrentStreak
		} else {
			s.stats.CurrentStreak += upd.CurrentStreak
		}
	}
	if s.stats.CurrentStreak > s.stats.BestStreak {
		s.stats.BestStreak = s.stats.CurrentStreak
	}
	s.stats.LastActive = now
}

func (s *Service) awardBadges(ctx context.Context, now time.Time) []rewards.Award {
	facts := rewards.Facts{
		SessionStreak:    s.sessionStreak,
		SkillLevels:      s.tracker.Levels(),
		CompletedLessons: len(s.completed),
		DailyStreak:      s.stats.CurrentStreak,
		Earned:           s.earned,
	}
	awards := s.allocator.CheckAndAwardBadges(ctx, facts, s.sessionID, s.learnerID, now)
	for _, a := range awards {
		s.earned[a.Badge.ID] = true
		s.badges = append(s.badges, a)
	}
	return awards
}

// SaveAsync snapshots the aggregate synchronously and writes it in the
// background. Failures surface on SaveErrors; an expired session flips
// the aggregate into its terminal unusable state.
func (s *Service) SaveAsync(ctx context.Context) {
	if s.progressRepo == nil || s.expired.Load() {
		return
	}
	snap := &store.Snapshot{
		Timestamp: s.now(),
		Data:      *s.SnapshotData(),
	}
	go func() {
		if err := s.progressRepo.Save(ctx, snap); err != nil {
			if errors.Is(err, store.ErrSessionExpired) {
				s.expired.Store(true)
			}
			s.reportSaveErr(fmt.Errorf("save progress: %w", err))
			return
		}
		_ = s.progressRepo.Prune(ctx, s.learnerID, snapshotsKept)
	}()
}

// SaveErrors delivers persistence failures for the UI to surface as a
// transient notification. Non-fatal: in-memory progress is retained and
// the next successful save carries the cumulative state forward.
func (s *Service) SaveErrors() <-chan error {
	return s.saveErrs
}

func (s *Service) reportSaveErr(err error) {
	select {
	case s.saveErrs <- err:
	default:
	}
}

// SnapshotData exports the full aggregate for persistence.
func (s *Service) SnapshotData() *store.ProgressData {
	completed := make([]string, len(s.completedList))
	copy(completed, s.completedList)

	badges := make([]*store.BadgeAwardData, 0, len(s.badges))
	for _, a := range s.badges {
		badges = append(badges, &store.BadgeAwardData{
			BadgeID:  a.Badge.ID,
			EarnedAt: a.EarnedAt.Format(time.RFC3339),
		})
	}

	return &store.ProgressData{
		Version:          SnapshotVersion,
		LearnerID:        s.learnerID,
		CompletedLessons: completed,
		Skills:           s.tracker.SnapshotData(),
		ReviewQueue:      s.queue.SnapshotData(),
		TotalPoints:      s.totalPoints,
		Badges:           badges,
		Stats: &store.StatsData{
			TotalQuizzesCompleted: s.stats.TotalQuizzesCompleted,
			AverageAccuracy:       s.stats.AverageAccuracy,
			CurrentStreak:         s.stats.CurrentStreak,
			BestStreak:            s.stats.BestStreak,
			LastActive:            s.stats.LastActive.Format(time.RFC3339),
		},
	}
}

// SessionID identifies this session in appended events.
func (s *Service) SessionID() string { return s.sessionID }

// LearnerID returns the owning learner.
func (s *Service) LearnerID() string { return s.learnerID }

// TotalPoints returns the learner's cumulative points.
func (s *Service) TotalPoints() int { return s.totalPoints }

// Stats returns a copy of the aggregate statistics.
func (s *Service) Stats() Stats { return s.stats }

// Badges returns the earned badges in award order.
func (s *Service) Badges() []rewards.Award { return s.badges }

// SessionStreak returns the in-session consecutive correct count.
func (s *Service) SessionStreak() int { return s.sessionStreak }

// CompletedLessons returns the completed lesson ids in completion order.
func (s *Service) CompletedLessons() []string { return s.completedList }

// IsLessonCompleted reports whether a lesson has been finished.
func (s *Service) IsLessonCompleted(lessonID string) bool { return s.completed[lessonID] }

// Tracker exposes skill mastery state.
func (s *Service) Tracker() *mastery.Tracker { return s.tracker }

// Queue exposes the review queue scheduler.
func (s *Service) Queue() *reviewqueue.Scheduler { return s.queue }

// BadgeCatalog returns the badge catalog in use.
func (s *Service) BadgeCatalog() rewards.Catalog { return s.allocator.Catalog() }

// SetClock overrides the time source for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

func clampAccuracy(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
