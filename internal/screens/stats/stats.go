// Package stats shows lifetime statistics drawn from the event log:
// per-skill accuracy, badge counts, and the aggregate totals.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/router"
	"github.com/saisha/letterly/internal/screen"
	"github.com/saisha/letterly/internal/store"
	"github.com/saisha/letterly/internal/ui/layout"
	"github.com/saisha/letterly/internal/ui/theme"
)

type statsLoadedMsg struct {
	Totals      []store.SkillTotals
	BadgeCounts map[string]int
	BadgeTotal  int
	Err         error
}

// StatsScreen displays lifetime learner statistics.
type StatsScreen struct {
	svc       *progress.Service
	eventRepo store.EventRepo

	totals      []store.SkillTotals
	badgeCounts map[string]int
	badgeTotal  int
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(svc *progress.Service, eventRepo store.EventRepo) *StatsScreen {
	return &StatsScreen{svc: svc, eventRepo: eventRepo}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		totals, err := s.eventRepo.AnswerTotals(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		counts, total, err := s.eventRepo.BadgeCounts(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Totals: totals, BadgeCounts: counts, BadgeTotal: total}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.totals = msg.Totals
			s.badgeCounts = msg.BadgeCounts
			s.badgeTotal = msg.BadgeTotal
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}

	st := s.svc.Stats()

	var b strings.Builder
	b.WriteString("\n")

	topLine := fmt.Sprintf("Quizzes: %d    Accuracy: %.0f%%    Streak: %d day(s)    Best: %d",
		st.TotalQuizzesCompleted, st.AverageAccuracy, st.CurrentStreak, st.BestStreak)
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render(topLine))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Accent).
		Render(fmt.Sprintf("✦ %d points    🏅 %d badges", s.svc.TotalPoints(), s.badgeTotal)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("By skill")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	if len(s.totals) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No answers recorded yet"))
		return b.String()
	}

	for _, t := range s.totals {
		pct := 0.0
		if t.Attempts > 0 {
			pct = float64(t.Correct) / float64(t.Attempts) * 100
		}
		line := fmt.Sprintf("  %-20s %4d answered   %4d correct   %3.0f%%",
			t.SkillID, t.Attempts, t.Correct, pct)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if pct < 60 && t.Attempts > 0 {
			style = style.Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
