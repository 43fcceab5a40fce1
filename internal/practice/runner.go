package practice

import (
	"time"

	"github.com/saisha/letterly/internal/catalog"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/rewards"
)

// Summary describes one finished practice run.
type Summary struct {
	Mode     Mode
	Title    string
	Answered int
	Correct  int
	Points   int
	Evicted  int
	Badges   []rewards.Award
	Duration time.Duration
}

// Accuracy returns the run's correct percentage, 0 when nothing was
// answered.
func (s Summary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered) * 100
}

// Runner walks a plan's questions and accumulates the run summary.
type Runner struct {
	plan      *Plan
	index     int
	answered  int
	correct   int
	points    int
	evicted   int
	badges    []rewards.Award
	startedAt time.Time
}

// NewRunner starts a run at the plan's first question.
func NewRunner(plan *Plan) *Runner {
	return &Runner{plan: plan, startedAt: time.Now()}
}

// Plan returns the plan being run.
func (r *Runner) Plan() *Plan { return r.plan }

// Current returns the active question, or nil when the run is over.
func (r *Runner) Current() *catalog.Question {
	if r.index >= len(r.plan.Questions) {
		return nil
	}
	return &r.plan.Questions[r.index]
}

// Position returns the 1-based question number and the total count.
func (r *Runner) Position() (int, int) {
	return r.index + 1, len(r.plan.Questions)
}

// RecordResult folds one resolved answer into the run totals.
func (r *Runner) RecordResult(correct bool, res progress.Result) {
	r.answered++
	if correct {
		r.correct++
	}
	r.points += res.Points
	if res.Evicted {
		r.evicted++
	}
	r.badges = append(r.badges, res.NewBadges...)
}

// Advance moves to the next question; false means the run is finished.
func (r *Runner) Advance() bool {
	r.index++
	return r.index < len(r.plan.Questions)
}

// Done reports whether every question has been passed.
func (r *Runner) Done() bool {
	return r.index >= len(r.plan.Questions)
}

// Summary closes out the run.
func (r *Runner) Summary() Summary {
	return Summary{
		Mode:     r.plan.Mode,
		Title:    r.plan.Title,
		Answered: r.answered,
		Correct:  r.correct,
		Points:   r.points,
		Evicted:  r.evicted,
		Badges:   r.badges,
		Duration: time.Since(r.startedAt),
	}
}
