package catalog

// Mode selects how questions are presented, which affects which kinds are
// allowed through the validity filter.
type Mode string

const (
	// ModeSingle presents one lesson's questions in sequence.
	ModeSingle Mode = "single"

	// ModeBundle mixes questions across lessons. Order-sequence questions
	// don't survive mixing and are dropped unconditionally.
	ModeBundle Mode = "bundle"
)

// FilterQuestions drops invalid definitions so the engine only ever sees
// questions it can resolve:
//   - missing prompt text for any catalog locale
//   - option-based kinds with missing/empty options for any locale
//   - option-based kinds with an out-of-range correct index
//   - order-sequence kinds without a complete correct order
//   - order-sequence kinds in bundle mode, always
func FilterQuestions(questions []Question, locales []string, mode Mode) []Question {
	if len(locales) == 0 {
		locales = []string{FallbackLocale}
	}

	valid := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Kind == KindOrderSequence && mode == ModeBundle {
			continue
		}
		if !questionValid(&q, locales) {
			continue
		}
		valid = append(valid, q)
	}
	return valid
}

// FilterLessons applies FilterQuestions to every lesson and drops lessons
// left with no questions.
func FilterLessons(lessons []Lesson, locales []string, mode Mode) []Lesson {
	valid := make([]Lesson, 0, len(lessons))
	for _, l := range lessons {
		l.Questions = FilterQuestions(l.Questions, locales, mode)
		if len(l.Questions) == 0 {
			continue
		}
		valid = append(valid, l)
	}
	return valid
}

func questionValid(q *Question, locales []string) bool {
	if q.ID == "" || q.SkillID == "" {
		return false
	}

	for _, locale := range locales {
		if q.Text[locale] == "" {
			return false
		}
	}

	switch {
	case q.Kind.OptionBased():
		n := -1
		for _, locale := range locales {
			opts := q.Options[locale]
			if len(opts) == 0 {
				return false
			}
			if n >= 0 && len(opts) != n {
				return false
			}
			n = len(opts)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= n {
			return false
		}

	case q.Kind == KindDragMatch:
		if len(q.Pairs) == 0 {
			return false
		}

	case q.Kind == KindOrderSequence:
		if len(q.Sequence) == 0 || len(q.CorrectOrder) != len(q.Sequence) {
			return false
		}
		for _, idx := range q.CorrectOrder {
			if idx < 0 || idx >= len(q.Sequence) {
				return false
			}
		}

	case q.Kind == KindProduction:
		// Prompt-only; nothing further to check.

	default:
		return false
	}

	return true
}
