// Package summary shows the results of a finished practice run.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/practice"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/router"
	"github.com/saisha/letterly/internal/screen"
	"github.com/saisha/letterly/internal/ui/components"
	"github.com/saisha/letterly/internal/ui/layout"
	"github.com/saisha/letterly/internal/ui/theme"
)

// SummaryScreen displays the practice run summary.
type SummaryScreen struct {
	summary practice.Summary
	svc     *progress.Service
	home    components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary practice.Summary, svc *progress.Service) *SummaryScreen {
	return &SummaryScreen{
		summary: summary,
		svc:     svc,
		home: components.NewButton("BACK HOME", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "All Done"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.home, cmd = s.home.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Great practicing!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s — %d:%02d", sum.Title, mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Answered, sum.Correct, sum.Accuracy())
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("✦ %d points earned", sum.Points)))
	b.WriteString("\n\n")

	if sum.Evicted > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render(fmt.Sprintf("%d question(s) fully learned!", sum.Evicted)))
		b.WriteString("\n\n")
	}

	if len(sum.Badges) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("New Badges")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, a := range sum.Badges {
			line := fmt.Sprintf("  %s %s — %s", a.Badge.Icon, a.Badge.Name, a.Badge.Description)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Accent).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Lifetime totals footer.
	st := s.svc.Stats()
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Total: %d pts   Streak: %d day(s)   All-time accuracy: %.0f%%",
			s.svc.TotalPoints(), st.CurrentStreak, st.AverageAccuracy)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.home.View()))

	return b.String()
}
