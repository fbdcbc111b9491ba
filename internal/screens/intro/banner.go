package intro

import (
	"charm.land/lipgloss/v2"

	"github.com/rajvimal/scorecard/internal/ui/theme"
)

const bannerArt = `
 ███████╗ ██████╗ ██████╗ ██████╗ ███████╗ ██████╗ █████╗ ██████╗ ██████╗
 ██╔════╝██╔════╝██╔═══██╗██╔══██╗██╔════╝██╔════╝██╔══██╗██╔══██╗██╔══██╗
 ███████╗██║     ██║   ██║██████╔╝█████╗  ██║     ███████║██████╔╝██║  ██║
 ╚════██║██║     ██║   ██║██╔══██╗██╔══╝  ██║     ██╔══██║██╔══██╗██║  ██║
 ███████║╚██████╗╚██████╔╝██║  ██║███████╗╚██████╗██║  ██║██║  ██║██████╔╝
 ╚══════╝ ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "S C O R E C A R D"

// RenderBanner returns the SCORECARD banner in the primary color, with a
// compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 78 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
