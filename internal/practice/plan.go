// Package practice builds and runs practice sessions: a plan selects
// which questions to ask, a runner walks through them and accumulates
// the session summary.
package practice

import (
	"errors"
	"fmt"

	"github.com/saisha/letterly/internal/catalog"
	"github.com/saisha/letterly/internal/reviewqueue"
)

// Mode identifies what kind of practice run a plan drives.
type Mode string

const (
	// ModeLesson walks one lesson front to back.
	ModeLesson Mode = "lesson"

	// ModeReview serves questions the scheduler says are due.
	ModeReview Mode = "review"

	// ModeWeak drills skills flagged as weak.
	ModeWeak Mode = "weak"
)

// DefaultRunLimit caps review and weak-area runs so a session stays
// short enough for a young learner.
const DefaultRunLimit = 10

// ErrNothingToPractice is returned when a plan would contain no
// questions.
var ErrNothingToPractice = errors.New("nothing to practice")

// Plan is an ordered set of questions for one run.
type Plan struct {
	Mode      Mode
	LessonID  string
	Title     string
	Questions []catalog.Question
}

// BuildLessonPlan selects every question of one lesson, in order.
func BuildLessonPlan(cat *catalog.Catalog, lessonID, locale string) (*Plan, error) {
	lesson := cat.Lesson(lessonID)
	if lesson == nil {
		return nil, fmt.Errorf("unknown lesson %q", lessonID)
	}
	if len(lesson.Questions) == 0 {
		return nil, ErrNothingToPractice
	}

	title := lesson.Title[locale]
	if title == "" {
		title = lesson.Title[catalog.FallbackLocale]
	}
	if title == "" {
		title = lesson.ID
	}

	return &Plan{
		Mode:      ModeLesson,
		LessonID:  lesson.ID,
		Title:     title,
		Questions: lesson.Questions,
	}, nil
}

// BuildReviewPlan selects the due review items, most overdue first,
// resolving each against the catalog. Items whose question no longer
// exists in the content are skipped, as are order-sequence questions,
// which don't work outside their lesson's flow.
func BuildReviewPlan(cat *catalog.Catalog, due []reviewqueue.Item, limit int) (*Plan, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}

	var questions []catalog.Question
	for _, it := range due {
		q := cat.Question(it.QuestionID)
		if q == nil || q.Kind == catalog.KindOrderSequence {
			continue
		}
		questions = append(questions, *q)
		if len(questions) >= limit {
			break
		}
	}
	if len(questions) == 0 {
		return nil, ErrNothingToPractice
	}

	return &Plan{
		Mode:      ModeReview,
		Title:     "Review",
		Questions: questions,
	}, nil
}

// BuildWeakPlan selects questions for the flagged weak skills, walking
// the catalog in lesson order and round-robining across skills so no
// single skill dominates the run.
func BuildWeakPlan(cat *catalog.Catalog, weakSkills []string, limit int) (*Plan, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}

	bySkill := make(map[string][]catalog.Question)
	for _, l := range cat.Lessons {
		for _, q := range l.Questions {
			if q.Kind == catalog.KindOrderSequence {
				continue
			}
			bySkill[q.SkillID] = append(bySkill[q.SkillID], q)
		}
	}

	var questions []catalog.Question
	for round := 0; len(questions) < limit; round++ {
		added := false
		for _, skillID := range weakSkills {
			pool := bySkill[skillID]
			if round >= len(pool) {
				continue
			}
			questions = append(questions, pool[round])
			added = true
			if len(questions) >= limit {
				break
			}
		}
		if !added {
			break
		}
	}
	if len(questions) == 0 {
		return nil, ErrNothingToPractice
	}

	return &Plan{
		Mode:      ModeWeak,
		Title:     "Weak Areas",
		Questions: questions,
	}, nil
}
