package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/saisha/letterly/internal/store"
)

// Award is a badge earned by the learner.
type Award struct {
	Badge    Badge
	EarnedAt time.Time
}

// Allocator evaluates the badge catalog against learner progress and tracks
// awards within a session.
type Allocator struct {
	catalog    Catalog
	eventRepo  store.EventRepo
	persistErr func(error)

	// SessionAwards accumulates badges earned during the current session.
	SessionAwards []Award
}

// NewAllocator creates an allocator with an injected badge catalog.
// eventRepo may be nil (awards are then not persisted as events).
func NewAllocator(catalog Catalog, eventRepo store.EventRepo) *Allocator {
	return &Allocator{catalog: catalog, eventRepo: eventRepo}
}

// OnPersistError registers a sink for badge-event append failures. An award
// is still granted when its event fails to persist; the sink lets the caller
// report the loss instead of swallowing it.
func (a *Allocator) OnPersistError(fn func(error)) {
	a.persistErr = fn
}

// Catalog returns the allocator's badge catalog.
func (a *Allocator) Catalog() Catalog {
	return a.catalog
}

// CheckAndAwardBadges evaluates every catalog badge against the facts and
// returns the newly earned ones. Idempotent: badges in facts.Earned are
// never re-emitted, so a second call with identical facts returns nothing.
func (a *Allocator) CheckAndAwardBadges(ctx context.Context, f Facts, sessionID, learnerID string, now time.Time) []Award {
	var earned []Award
	for i := range a.catalog {
		b := a.catalog[i]
		if f.Earned[b.ID] {
			continue
		}
		if !b.Qualifies(f) {
			continue
		}
		award := Award{Badge: b, EarnedAt: now}
		earned = append(earned, award)
		a.SessionAwards = append(a.SessionAwards, award)
		a.persist(ctx, b, sessionID, learnerID)
	}
	return earned
}

// ResetSession clears the session award accumulator. Called at session start.
func (a *Allocator) ResetSession() {
	a.SessionAwards = nil
}

func (a *Allocator) persist(ctx context.Context, b Badge, sessionID, learnerID string) {
	if a.eventRepo == nil {
		return
	}
	err := a.eventRepo.AppendBadgeEvent(ctx, store.BadgeEventData{
		SessionID: sessionID,
		LearnerID: learnerID,
		BadgeID:   b.ID,
		BadgeType: string(b.Type),
		Tier:      b.Tier,
	})
	if err != nil && a.persistErr != nil {
		a.persistErr(fmt.Errorf("append badge event %s: %w", b.ID, err))
	}
}
