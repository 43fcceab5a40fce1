// Package home is the main menu: start a lesson, review what's due,
// drill weak letters, or browse badges and stats.
package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/catalog"
	runlib "github.com/saisha/letterly/internal/practice"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/router"
	"github.com/saisha/letterly/internal/screen"
	"github.com/saisha/letterly/internal/screens/badges"
	"github.com/saisha/letterly/internal/screens/lessonpick"
	"github.com/saisha/letterly/internal/screens/letters"
	practicescreen "github.com/saisha/letterly/internal/screens/practice"
	"github.com/saisha/letterly/internal/screens/stats"
	"github.com/saisha/letterly/internal/store"
	"github.com/saisha/letterly/internal/ui/components"
	"github.com/saisha/letterly/internal/ui/theme"
)

const titleBanner = ` ██╗     ███████╗████████╗████████╗███████╗██████╗ ██╗  ██╗   ██╗
 ██║     ██╔════╝╚══██╔══╝╚══██╔══╝██╔════╝██╔══██╗██║  ╚██╗ ██╔╝
 ██║     █████╗     ██║      ██║   █████╗  ██████╔╝██║   ╚████╔╝
 ██║     ██╔══╝     ██║      ██║   ██╔══╝  ██╔══██╗██║    ╚██╔╝
 ███████╗███████╗   ██║      ██║   ███████╗██║  ██║███████╗██║
 ╚══════╝╚══════╝   ╚═╝      ╚═╝   ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝`

const titleCompact = "L · E · T · T · E · R · L · Y"

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu          components.Menu
	svc           *progress.Service
	cat           *catalog.Catalog
	reviewsDue    int
	weakSkills    int
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *progress.Service, cat *catalog.Catalog, eventRepo store.EventRepo, locale string) *HomeScreen {
	now := time.Now()
	due := svc.Queue().Due(now)
	weak := svc.Queue().WeakSkills(svc.Tracker().Levels())

	mascotVariant := MascotIdle
	if len(due) >= 3 {
		mascotVariant = MascotAlert
	} else {
		for _, a := range svc.Badges() {
			if now.Sub(a.EarnedAt) < 24*time.Hour {
				mascotVariant = MascotCelebrating
				break
			}
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE A LETTER", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: lessonpick.New(svc, cat, locale)}
			}
		}},
		{Label: "REVIEW TIME", Disabled: len(due) == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				plan, err := runlib.BuildReviewPlan(cat, svc.Queue().Due(time.Now()), 0)
				if err != nil {
					return router.PushScreenMsg{Screen: lessonpick.New(svc, cat, locale)}
				}
				return router.PushScreenMsg{Screen: practicescreen.New(svc, cat, plan, locale)}
			}
		}},
		{Label: "TRICKY LETTERS", Disabled: len(weak) == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				plan, err := runlib.BuildWeakPlan(cat, svc.Queue().WeakSkills(svc.Tracker().Levels()), 0)
				if err != nil {
					return router.PushScreenMsg{Screen: lessonpick.New(svc, cat, locale)}
				}
				return router.PushScreenMsg{Screen: practicescreen.New(svc, cat, plan, locale)}
			}
		}},
		{Label: "MY LETTERS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: letters.New(svc, cat, locale)}
			}
		}},
		{Label: "BADGE CASE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: badges.New(svc)}
			}
		}},
		{Label: "STATS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(svc, eventRepo)}
			}
		}},
		{Label: "BYE BYE", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		svc:           svc,
		cat:           cat,
		reviewsDue:    len(due),
		weakSkills:    len(weak),
		mascotVariant: mascotVariant,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 28 || width < 100

	var sections []string

	title := titleBanner
	if compact {
		title = titleCompact
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))

	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(RenderMascot(h.mascotVariant)))
	}

	sections = append(sections, h.renderStatsBar(width))
	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(h.menu.View()))

	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) renderStatsBar(width int) string {
	st := h.svc.Stats()

	pointsStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dueStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	due := dimStyle.Render("⚡ nothing due")
	if h.reviewsDue > 0 {
		due = dueStyle.Render(fmt.Sprintf("⚡ %d to review", h.reviewsDue))
	}

	bar := fmt.Sprintf("%s   %s   %s",
		pointsStyle.Render(fmt.Sprintf("✦ %d pts", h.svc.TotalPoints())),
		streakStyle.Render(fmt.Sprintf("★ %d day streak", st.CurrentStreak)),
		due,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(bar)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
