package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/saisha/letterly/internal/ui/theme"
)

const bannerArt = `
 ██╗     ███████╗████████╗████████╗███████╗██████╗ ██╗  ██╗   ██╗
 ██║     ██╔════╝╚══██╔══╝╚══██╔══╝██╔════╝██╔══██╗██║  ╚██╗ ██╔╝
 ██║     █████╗     ██║      ██║   █████╗  ██████╔╝██║   ╚████╔╝
 ██║     ██╔══╝     ██║      ██║   ██╔══╝  ██╔══██╗██║    ╚██╔╝
 ███████╗███████╗   ██║      ██║   ███████╗██║  ██║███████╗██║
 ╚══════╝╚══════╝   ╚═╝      ╚═╝   ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "L E T T E R L Y"

// RenderBanner returns the LETTERLY banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 68 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 68 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
