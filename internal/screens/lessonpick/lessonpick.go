// Package lessonpick lists the catalog's lessons so the learner can
// choose which letter to practice.
package lessonpick

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/catalog"
	runlib "github.com/saisha/letterly/internal/practice"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/router"
	"github.com/saisha/letterly/internal/screen"
	practicescreen "github.com/saisha/letterly/internal/screens/practice"
	"github.com/saisha/letterly/internal/ui/components"
	"github.com/saisha/letterly/internal/ui/layout"
	"github.com/saisha/letterly/internal/ui/theme"
)

// LessonPickScreen is a lesson selection menu.
type LessonPickScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*LessonPickScreen)(nil)
var _ screen.KeyHintProvider = (*LessonPickScreen)(nil)

// New creates a lesson picker over the catalog's lessons, in catalog
// order, with completed lessons marked.
func New(svc *progress.Service, cat *catalog.Catalog, locale string) *LessonPickScreen {
	items := make([]components.MenuItem, 0, len(cat.Lessons))
	for i := range cat.Lessons {
		l := &cat.Lessons[i]

		label := l.Title[locale]
		if label == "" {
			label = l.Title[catalog.FallbackLocale]
		}
		if label == "" {
			label = l.ID
		}
		if svc.IsLessonCompleted(l.ID) {
			label += " ✓"
		}

		lessonID := l.ID
		items = append(items, components.MenuItem{
			Label: label,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					plan, err := runlib.BuildLessonPlan(cat, lessonID, locale)
					if err != nil {
						return router.PopScreenMsg{}
					}
					return router.ReplaceScreenMsg{
						Screen: practicescreen.New(svc, cat, plan, locale),
					}
				}
			},
		})
	}

	return &LessonPickScreen{menu: components.NewMenu(items)}
}

func (s *LessonPickScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonPickScreen) Title() string {
	return "Pick a Letter"
}

func (s *LessonPickScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonPickScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LessonPickScreen) View(width, height int) string {
	header := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("\nWhich letter today?\n")

	return header + "\n" + lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(s.menu.View())
}
