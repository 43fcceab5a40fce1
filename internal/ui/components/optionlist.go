package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/ui/theme"
)

// OptionFeedback tells the option list how to paint a resolved answer.
type OptionFeedback int

const (
	FeedbackNone OptionFeedback = iota

	// FeedbackCorrect highlights the chosen option as right.
	FeedbackCorrect

	// FeedbackRetry highlights the chosen option as wrong without
	// revealing the answer; the learner gets another try.
	FeedbackRetry

	// FeedbackReveal highlights the chosen option as wrong and shows
	// the correct one.
	FeedbackReveal
)

// OptionList renders a question's options in display order. The list
// owns cursor movement; the owning screen decides when a selection is
// committed and what feedback to show.
type OptionList struct {
	Prompt   string
	Options  []string
	Cursor   int
	Chosen   int // display index of the committed choice, -1 if none
	Correct  int // display index of the correct option, for reveal
	Feedback OptionFeedback
	Locked   bool
}

// NewOptionList creates an option list with the cursor on the first
// option.
func NewOptionList(prompt string, options []string, correctDisplay int) OptionList {
	return OptionList{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
		Correct: correctDisplay,
	}
}

// Update moves the cursor. Committing and feedback belong to the
// owning screen.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Locked {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	}

	return o, nil
}

// Clear resets the committed choice and feedback for a retry.
func (o *OptionList) Clear() {
	o.Chosen = -1
	o.Feedback = FeedbackNone
	o.Locked = false
}

// View renders the prompt and options.
func (o OptionList) View() string {
	promptStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := promptStyle.Render(o.Prompt) + "\n\n"

	for i, opt := range o.Options {
		label := optionLabel(i)
		prefix := "  "
		if i == o.Cursor && !o.Locked {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)
		s += o.styleLine(i, line) + "\n"
	}

	return s
}

func (o OptionList) styleLine(i int, line string) string {
	switch o.Feedback {
	case FeedbackCorrect:
		if i == o.Chosen {
			return theme.Correct.Render(line)
		}
	case FeedbackRetry:
		if i == o.Chosen {
			return theme.Incorrect.Render(line)
		}
	case FeedbackReveal:
		if i == o.Correct {
			return theme.Correct.Render(line)
		}
		if i == o.Chosen {
			return theme.Incorrect.Render(line)
		}
	default:
		if i == o.Cursor {
			return theme.Selected.Render(line)
		}
		return theme.Unselected.Render(line)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
}

func optionLabel(i int) string {
	return string(rune('A' + i))
}
