package home

import (
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default indigo
	MascotCelebrating                      // Amber, star eyes — new badge today
	MascotAlert                            // Reviews are waiting
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ Aa  │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ Aa  │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ Aa  │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Accent
	case MascotAlert:
		art = mascotAlert
		fg = theme.Secondary
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
