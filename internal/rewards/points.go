package rewards

import (
	"math"

	"github.com/saisha/letterly/internal/mastery"
)

const (
	// BasePoints is awarded for any correct answer.
	BasePoints = 10

	// FirstAttemptBonus is awarded when the answer was the skill's very
	// first attempt.
	FirstAttemptBonus = 5
)

// CalculatePoints computes the points for one resolved answer. Wrong answers
// earn nothing; correct answers earn the base plus a mastery-improvement
// bonus and a first-attempt bonus. Never negative.
func CalculatePoints(correct bool, updated mastery.SkillMastery, prevLevel int) int {
	if !correct {
		return 0
	}

	points := BasePoints
	if updated.Level > prevLevel {
		points += int(math.Round(float64(updated.Level-prevLevel) / 10))
	}
	if updated.Attempts == 1 {
		points += FirstAttemptBonus
	}
	return points
}
