package catalog

// Kind identifies the quiz widget variant a question is rendered with.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindDragMatch      Kind = "drag_match"
	KindOrderSequence  Kind = "order_sequence"
	KindProduction     Kind = "production"
	KindAudioQuiz      Kind = "audio_quiz"
	KindErrorSpot      Kind = "error_spot"
)

// OptionBased reports whether the kind presents an option list with a single
// correct index.
func (k Kind) OptionBased() bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindAudioQuiz, KindErrorSpot:
		return true
	}
	return false
}

// AutoCommit reports whether selecting an option immediately evaluates it.
// Audio and error-spotting quizzes commit on selection; plain
// multiple-choice and true/false wait for an explicit confirm.
func (k Kind) AutoCommit() bool {
	return k == KindAudioQuiz || k == KindErrorSpot
}

// AlwaysShuffles reports whether the kind randomizes option order regardless
// of the per-question flag.
func (k Kind) AlwaysShuffles() bool {
	return k == KindAudioQuiz || k == KindErrorSpot
}

// Pair is one left/right match in a drag-match question.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is one immutable quiz definition. Only the fields for its Kind
// are populated: options and CorrectIndex for option-based kinds, Pairs for
// drag-match, Sequence and CorrectOrder for order-sequence. Production
// questions carry only a prompt.
type Question struct {
	ID           string              `json:"id"`
	SkillID      string              `json:"skill_id"`
	Kind         Kind                `json:"kind"`
	Text         map[string]string   `json:"text"`
	Options      map[string][]string `json:"options,omitempty"`
	Pairs        []Pair              `json:"pairs,omitempty"`
	Sequence     []string            `json:"sequence,omitempty"`
	CorrectIndex int                 `json:"correct_index"`
	CorrectOrder []int               `json:"correct_order,omitempty"`
	Shuffle      bool                `json:"shuffle,omitempty"`
	AudioKey     string              `json:"audio_key,omitempty"`
}

// TextFor returns the prompt for the locale, falling back to FallbackLocale.
func (q *Question) TextFor(locale string) string {
	if t, ok := q.Text[locale]; ok && t != "" {
		return t
	}
	return q.Text[FallbackLocale]
}

// OptionsFor returns the options for the locale, falling back to
// FallbackLocale.
func (q *Question) OptionsFor(locale string) []string {
	if opts, ok := q.Options[locale]; ok && len(opts) > 0 {
		return opts
	}
	return q.Options[FallbackLocale]
}

// Shuffled reports whether option order should be randomized for this
// question: the kind's default, or the explicit per-question flag.
func (q *Question) Shuffled() bool {
	return q.Kind.AlwaysShuffles() || q.Shuffle
}
