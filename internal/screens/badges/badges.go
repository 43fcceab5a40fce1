// Package badges renders the learner's badge case: the full catalog
// with earned badges lit up and locked ones dimmed.
package badges

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/rewards"
	"github.com/saisha/letterly/internal/router"
	"github.com/saisha/letterly/internal/screen"
	"github.com/saisha/letterly/internal/ui/layout"
	"github.com/saisha/letterly/internal/ui/theme"
)

// BadgesScreen displays the badge case.
type BadgesScreen struct {
	svc          *progress.Service
	selectedType int // index into rewards.AllBadgeTypes()
}

var _ screen.Screen = (*BadgesScreen)(nil)
var _ screen.KeyHintProvider = (*BadgesScreen)(nil)

// New creates a new BadgesScreen.
func New(svc *progress.Service) *BadgesScreen {
	return &BadgesScreen{svc: svc}
}

func (s *BadgesScreen) Init() tea.Cmd {
	return nil
}

func (s *BadgesScreen) Title() string {
	return "Badge Case"
}

func (s *BadgesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch type"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		types := rewards.AllBadgeTypes()
		switch kmsg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.selectedType = (s.selectedType + 1) % len(types)
		case "shift+tab":
			s.selectedType = (s.selectedType - 1 + len(types)) % len(types)
		}
	}
	return s, nil
}

func (s *BadgesScreen) View(width, height int) string {
	earned := make(map[string]rewards.Award)
	for _, a := range s.svc.Badges() {
		earned[a.Badge.ID] = a
	}
	catalog := s.svc.BadgeCatalog()

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nEarned: %d of %d badges\n", len(earned), len(catalog))))
	b.WriteString("\n")

	// Type tabs.
	types := rewards.AllBadgeTypes()
	var tabs []string
	for i, t := range types {
		count := 0
		for _, a := range earned {
			if a.Badge.Type == t {
				count++
			}
		}
		label := fmt.Sprintf("%s (%d)", t.DisplayName(), count)
		if i == s.selectedType {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	selected := types[s.selectedType]
	shown := 0
	for _, badge := range catalog {
		if badge.Type != selected {
			continue
		}
		shown++

		if a, ok := earned[badge.ID]; ok {
			line := fmt.Sprintf("  %s %-22s %s   earned %s",
				badge.Icon, badge.Name, badge.Description,
				a.EarnedAt.Format("Jan 02, 2006"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Accent).Render(line)))
		} else {
			line := fmt.Sprintf("  🔒 %-22s %s", badge.Name, badge.Description)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		}
		b.WriteString("\n")
	}

	if shown == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No badges of this type"))
	}

	return b.String()
}
