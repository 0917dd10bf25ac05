package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ███████╗ ██████╗██╗████████╗███████╗    ██╗  ██╗██╗███╗   ██╗ ██████╗
 ██╔══██╗██╔════╝██╔════╝██║╚══██╔══╝██╔════╝    ██║ ██╔╝██║████╗  ██║██╔════╝
 ██████╔╝█████╗  ██║     ██║   ██║   █████╗      █████╔╝ ██║██╔██╗ ██║██║  ███╗
 ██╔══██╗██╔══╝  ██║     ██║   ██║   ██╔══╝      ██╔═██╗ ██║██║╚██╗██║██║   ██║
 ██║  ██║███████╗╚██████╗██║   ██║   ███████╗    ██║  ██╗██║██║ ╚████║╚██████╔╝
 ╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝   ╚═╝   ╚══════╝    ╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝ ╚═════╝`

const bannerCompact = "R E C I T E   K I N G"

// RenderBanner returns the RECITE KING banner in the seal colour. Uses a
// compact fallback for terminals narrower than the block art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 82 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
