package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/reciteking/internal/ledger"
	"github.com/abhisek/reciteking/internal/ui/theme"
)

// Avatars are drawn as a student holding a scroll.
const avatarBoy = `  ▄▄▄▄▄
 █ ◕ ◕ █
 █  ▽  █  ┏━━┓
  ▀▀▀▀▀ ━━┫史┃
  ╱███╲   ┗━━┛`

const avatarGirl = ` ▄█▀▀▀█▄
▐█ ◕ ◕ █▌
▐█  ◡  █▌  ┏━━┓
 ▀▀▀▀▀▀▀ ━━┫史┃
  ╱███╲    ┗━━┛`

// RenderAvatar returns the avatar art for gender.
func RenderAvatar(gender ledger.Gender) string {
	art := avatarBoy
	c := theme.Secondary
	if gender == ledger.GenderGirl {
		art = avatarGirl
		c = theme.Primary
	}
	return lipgloss.NewStyle().Foreground(c).Render(art)
}
