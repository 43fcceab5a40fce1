// Package letters shows per-letter mastery: level, practice counts,
// and when each skill comes up for review.
package letters

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/catalog"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/router"
	"github.com/saisha/letterly/internal/screen"
	"github.com/saisha/letterly/internal/ui/components"
	"github.com/saisha/letterly/internal/ui/layout"
	"github.com/saisha/letterly/internal/ui/theme"
)

// LettersScreen displays mastery per skill.
type LettersScreen struct {
	svc    *progress.Service
	cat    *catalog.Catalog
	locale string
}

var _ screen.Screen = (*LettersScreen)(nil)
var _ screen.KeyHintProvider = (*LettersScreen)(nil)

// New creates a new LettersScreen.
func New(svc *progress.Service, cat *catalog.Catalog, locale string) *LettersScreen {
	return &LettersScreen{svc: svc, cat: cat, locale: locale}
}

func (s *LettersScreen) Init() tea.Cmd {
	return nil
}

func (s *LettersScreen) Title() string {
	return "My Letters"
}

func (s *LettersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LettersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *LettersScreen) View(width, height int) string {
	now := time.Now()
	tracker := s.svc.Tracker()
	weak := make(map[string]bool)
	for _, id := range s.svc.Queue().WeakSkills(tracker.Levels()) {
		weak[id] = true
	}

	var b strings.Builder
	b.WriteString("\n")

	for _, l := range s.cat.Lessons {
		sm := tracker.Get(l.SkillID)

		title := l.Title[s.locale]
		if title == "" {
			title = l.Title[catalog.FallbackLocale]
		}
		if title == "" {
			title = l.ID
		}
		if s.svc.IsLessonCompleted(l.ID) {
			title += " ✓"
		}

		name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("%-20s", title))

		bar := components.NewProgressBar("", float64(sm.Level)/100, true, 30).View()

		var note string
		switch {
		case sm.Attempts == 0:
			note = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("not practiced yet")
		case weak[l.SkillID]:
			note = lipgloss.NewStyle().Foreground(theme.Error).
				Render("needs practice")
		case !sm.NextReview.After(now):
			note = lipgloss.NewStyle().Foreground(theme.Accent).
				Render("review due")
		default:
			note = lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("review %s", sm.NextReview.Format("Jan 02")))
		}

		line := fmt.Sprintf("  %s  %s  %s", name, bar, note)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n\n")
	}

	// Review queue footer.
	due := len(s.svc.Queue().Due(now))
	inRotation := s.svc.Queue().Len()
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("Questions in rotation: %d   Due now: %d", inRotation, due)))

	return b.String()
}
