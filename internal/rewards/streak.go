package rewards

import "time"

// StreakUpdate describes how the daily-activity streak changes.
// CurrentStreak is the increment to apply (0 = no change); when ShouldReset
// is true the streak restarts at 1 instead.
type StreakUpdate struct {
	CurrentStreak int
	ShouldReset   bool
}

// UpdateStreak compares calendar-day boundaries of the last activity against
// now — not raw elapsed hours. Same day: no change. Exactly one day later:
// increment. More than one day later: reset to 1.
func UpdateStreak(lastActive, now time.Time) StreakUpdate {
	switch daysBetween(lastActive, now) {
	case 0:
		return StreakUpdate{CurrentStreak: 0, ShouldReset: false}
	case 1:
		return StreakUpdate{CurrentStreak: 1, ShouldReset: false}
	default:
		return StreakUpdate{CurrentStreak: 1, ShouldReset: true}
	}
}

// daysBetween counts whole calendar days between two instants, ignoring the
// time of day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
