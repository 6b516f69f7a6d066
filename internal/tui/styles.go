package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/folio/internal/components"
)

func mutedStyle() lipgloss.Style {
	return components.Style(lipgloss.NewStyle(), components.MutedForeground(components.PaletteSurface))
}

func panelStyle() lipgloss.Style {
	return components.Style(lipgloss.NewStyle(), components.PaddingX(components.SpacingSizeSmall), components.StyleFunc(
		func(s lipgloss.Style, t components.Theme) lipgloss.Style {
			return s.Background(t.Palette.Surface.Base).Foreground(t.Palette.Surface.OnBase)
		}))
}

func panelTitleStyle() lipgloss.Style {
	return components.Style(lipgloss.NewStyle(), components.Foreground(components.PaletteAccent), components.Bold())
}
