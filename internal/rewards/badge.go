package rewards

// BadgeType identifies the category of achievement.
type BadgeType string

const (
	BadgeAccuracy   BadgeType = "accuracy"
	BadgeMastery    BadgeType = "mastery"
	BadgeCompletion BadgeType = "completion"
	BadgeStreak     BadgeType = "streak"
)

// AllBadgeTypes returns all badge types in display order.
func AllBadgeTypes() []BadgeType {
	return []BadgeType{BadgeAccuracy, BadgeMastery, BadgeCompletion, BadgeStreak}
}

// DisplayName returns a human-readable label for the badge type.
func (t BadgeType) DisplayName() string {
	switch t {
	case BadgeAccuracy:
		return "Accuracy"
	case BadgeMastery:
		return "Mastery"
	case BadgeCompletion:
		return "Completion"
	case BadgeStreak:
		return "Streak"
	default:
		return string(t)
	}
}

// Badge is an immutable catalog entry. Threshold is the trigger value for
// the badge's type; MinLevel applies to mastery badges only and is the
// level a skill must reach to count toward Threshold.
type Badge struct {
	ID          string
	Type        BadgeType
	Tier        int // 1-3
	Name        string
	Description string
	Icon        string
	Threshold   int
	MinLevel    int
}

// Catalog is the fixed badge definition set, injected into the Allocator so
// the engine stays testable with fixture catalogs.
type Catalog []Badge

// DefaultCatalog returns the built-in badge definitions.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "accuracy-spark", Type: BadgeAccuracy, Tier: 1, Name: "Spark", Description: "5 correct answers in a row", Icon: "⚡", Threshold: 5},
		{ID: "accuracy-flame", Type: BadgeAccuracy, Tier: 2, Name: "Flame", Description: "10 correct answers in a row", Icon: "🔥", Threshold: 10},
		{ID: "accuracy-blaze", Type: BadgeAccuracy, Tier: 3, Name: "Blaze", Description: "20 correct answers in a row", Icon: "☄️", Threshold: 20},
		{ID: "mastery-bronze", Type: BadgeMastery, Tier: 1, Name: "Letter Learner", Description: "3 skills at level 80 or higher", Icon: "🥉", Threshold: 3, MinLevel: 80},
		{ID: "mastery-silver", Type: BadgeMastery, Tier: 2, Name: "Letter Expert", Description: "10 skills at level 80 or higher", Icon: "🥈", Threshold: 10, MinLevel: 80},
		{ID: "mastery-gold", Type: BadgeMastery, Tier: 3, Name: "Alphabet Master", Description: "20 skills at level 90 or higher", Icon: "🥇", Threshold: 20, MinLevel: 90},
		{ID: "completion-explorer", Type: BadgeCompletion, Tier: 1, Name: "Explorer", Description: "Complete 5 lessons", Icon: "🗺️", Threshold: 5},
		{ID: "completion-adventurer", Type: BadgeCompletion, Tier: 2, Name: "Adventurer", Description: "Complete 15 lessons", Icon: "⛰️", Threshold: 15},
		{ID: "completion-voyager", Type: BadgeCompletion, Tier: 3, Name: "Voyager", Description: "Complete 25 lessons", Icon: "🚀", Threshold: 25},
		{ID: "streak-3", Type: BadgeStreak, Tier: 1, Name: "Warming Up", Description: "Practice 3 days in a row", Icon: "🌱", Threshold: 3},
		{ID: "streak-7", Type: BadgeStreak, Tier: 2, Name: "Week Warrior", Description: "Practice 7 days in a row", Icon: "🌿", Threshold: 7},
		{ID: "streak-30", Type: BadgeStreak, Tier: 3, Name: "Unstoppable", Description: "Practice 30 days in a row", Icon: "🌳", Threshold: 30},
	}
}

// ByID returns the badge with the given id, or nil.
func (c Catalog) ByID(id string) *Badge {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// Facts is the progress view badges are evaluated against.
type Facts struct {
	// SessionStreak is the in-session consecutive correct answer count.
	SessionStreak int

	// SkillLevels maps skill id to current mastery level.
	SkillLevels map[string]int

	// CompletedLessons is the count of completed lesson ids.
	CompletedLessons int

	// DailyStreak is the consecutive-calendar-day activity streak.
	DailyStreak int

	// Earned is the set of badge ids already held by the learner.
	Earned map[string]bool
}

// Qualifies reports whether the facts satisfy the badge's trigger.
func (b *Badge) Qualifies(f Facts) bool {
	switch b.Type {
	case BadgeAccuracy:
		return f.SessionStreak >= b.Threshold
	case BadgeMastery:
		n := 0
		for _, level := range f.SkillLevels {
			if level >= b.MinLevel {
				n++
			}
		}
		return n >= b.Threshold
	case BadgeCompletion:
		return f.CompletedLessons >= b.Threshold
	case BadgeStreak:
		return f.DailyStreak >= b.Threshold
	}
	return false
}
