// Package app wires the Bubble Tea program: root model, screen router,
// and the shared frame around every screen.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/catalog"
	"github.com/saisha/letterly/internal/progress"
	"github.com/saisha/letterly/internal/router"
	"github.com/saisha/letterly/internal/screen"
	"github.com/saisha/letterly/internal/screens/home"
	"github.com/saisha/letterly/internal/screens/welcome"
	"github.com/saisha/letterly/internal/store"
	"github.com/saisha/letterly/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *progress.Service
	width  int
	height int
}

// newAppModel creates the root model: splash first, home after.
func newAppModel(svc *progress.Service, cat *catalog.Catalog, eventRepo store.EventRepo, locale string) AppModel {
	welcomeScreen := welcome.New(func() screen.Screen {
		return home.New(svc, cat, eventRepo, locale)
	})
	return AppModel{
		router: router.New(welcomeScreen),
		svc:    svc,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	// The splash has no title and renders frameless.
	if title == "" {
		v.SetContent(m.router.View(m.width, m.height))
		return v
	}

	stats := m.svc.Stats()
	header := layout.RenderHeader(title, m.svc.TotalPoints(), stats.CurrentStreak, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(svc *progress.Service, cat *catalog.Catalog, eventRepo store.EventRepo, locale string) error {
	p := tea.NewProgram(newAppModel(svc, cat, eventRepo, locale))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
