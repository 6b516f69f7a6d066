package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ChipVariant represents the visual state of a navigation chip.
type ChipVariant int

const (
	ChipVariantIdle ChipVariant = iota
	ChipVariantActive
	// ChipVariantPending marks a chip selected by the user before scrolling
	// has confirmed it.
	ChipVariantPending
)

// Chip is a short inline label, used for the navigation bar.
type Chip struct {
	label   string
	variant ChipVariant
}

// NewChip creates a chip with the given label and variant.
func NewChip(label string, variant ChipVariant) *Chip {
	return &Chip{label: label, variant: variant}
}

// WithVariant sets the chip variant
func (c *Chip) WithVariant(variant ChipVariant) *Chip {
	c.variant = variant
	return c
}

// Variant returns the chip variant.
func (c *Chip) Variant() ChipVariant {
	return c.variant
}

// View renders the chip
func (c *Chip) View() string {
	return c.buildStyle().Render(c.label)
}

func (c *Chip) buildStyle() lipgloss.Style {
	return Style(lipgloss.NewStyle(), chipVariantAppliers(c.variant)...)
}

func chipVariantAppliers(variant ChipVariant) []StyleApplier {
	base := []StyleApplier{PaddingX(SpacingSizeSmall)}
	switch variant {
	case ChipVariantActive:
		return cloneAppliers(base, Background(PaletteAccent), Bold())
	case ChipVariantPending:
		return cloneAppliers(base, Foreground(PaletteAccent), StyleFunc(func(s lipgloss.Style, _ Theme) lipgloss.Style {
			return s.Underline(true)
		}))
	default:
		return cloneAppliers(base, MutedForeground(PaletteSurface))
	}
}

// ChipGroup represents a horizontal group of chips
type ChipGroup struct {
	chips   []*Chip
	spacing int
}

// NewChipGroup creates a new chip group
func NewChipGroup(chips ...*Chip) *ChipGroup {
	return &ChipGroup{chips: chips, spacing: SpacingValue(SpacingSizeSmall)}
}

// WithSpacing sets the spacing between chips
func (g *ChipGroup) WithSpacing(spacing int) *ChipGroup {
	g.spacing = spacing
	return g
}

// Len returns the number of chips.
func (g *ChipGroup) Len() int {
	return len(g.chips)
}

// View renders the chip group
func (g *ChipGroup) View() string {
	if len(g.chips) == 0 {
		return ""
	}
	views := make([]string, 0, len(g.chips))
	for _, chip := range g.chips {
		views = append(views, chip.View())
	}
	return strings.Join(views, strings.Repeat(" ", g.spacing))
}
