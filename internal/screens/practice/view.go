package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/catalog"
	"github.com/saisha/letterly/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingResult {
		return s.renderResult(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question display.
func (s *PracticeScreen) renderQuestion(width int) string {
	q := s.machine.Question()
	if q == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  All done!")
	}

	var b strings.Builder

	// Info line: run title and position.
	pos, total := s.runner.Position()
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.runner.Plan().Title))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			pos, total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.svc.SessionStreak(),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Sound cue: a terminal can't play audio, so spell the letter name.
	if cue := s.soundCue(q); cue != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(cue))
		b.WriteString("\n\n")
	}

	if q.Kind == catalog.KindProduction {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render(q.TextFor(s.locale)))
		b.WriteString("\n\n")
		if s.targetGlyph != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render("Say it out loud — typing it too is extra practice! Enter when done"))
			return b.String()
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Enter when you've said it out loud"))
		return b.String()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))

	if q.Kind.AutoCommit() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\nPick an answer — it counts right away!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\nSelect (1-4) or use arrows + Enter"))
	}

	if s.saveNote != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(s.saveNote))
	}

	return b.String()
}

// soundCue returns the "listen" hint for audio questions, resolved
// through the catalog's letter table.
func (s *PracticeScreen) soundCue(q *catalog.Question) string {
	if q.Kind != catalog.KindAudioQuiz && q.Kind != catalog.KindProduction {
		return ""
	}
	if q.AudioKey == "" {
		return ""
	}
	for i := range s.cat.Letters {
		if s.cat.Letters[i].AudioKey == q.AudioKey {
			return fmt.Sprintf("🔊  \"%s\"", s.cat.Letters[i].Name)
		}
	}
	return ""
}

// renderResult renders the post-answer reward panel.
func (s *PracticeScreen) renderResult(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite — we'll see that one again soon"))
	}
	b.WriteString("\n\n")

	if s.lastResult.Points > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("✦ +%d points", s.lastResult.Points)))
		b.WriteString("\n")
	}

	if delta := s.lastResult.Mastery.Level - s.lastResult.PrevLevel; delta > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(fmt.Sprintf("Mastery %d → %d", s.lastResult.PrevLevel, s.lastResult.Mastery.Level)))
		b.WriteString("\n")
	}

	if s.lastResult.Evicted {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Learned! This question leaves the review queue."))
		b.WriteString("\n")
	}

	for _, a := range s.lastResult.NewBadges {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("%s  New badge: %s!", a.Badge.Icon, a.Badge.Name)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(a.Badge.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key for the next one..."))

	return b.String()
}

// renderQuitConfirm renders the stop-practicing dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Stop practicing?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Everything you did so far is saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, I'm done"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
