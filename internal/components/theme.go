package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/folio/internal/scene"
)

// DefaultAccent is the Tailwind token used when no accent is configured.
const DefaultAccent = "blue-500"

// SpacingSize enumerates supported spacing size tokens.
type SpacingSize int

const (
	SpacingSizeNone SpacingSize = iota
	SpacingSizeExtraSmall
	SpacingSizeSmall
	SpacingSizeMedium
	SpacingSizeLarge
)

var spacingTable = [...]int{0, 1, 1, 2, 3}

type BorderVariant int

const (
	BorderVariantNormal BorderVariant = iota
	BorderVariantRounded
	BorderVariantThick
)

// ColourSet is one semantic colour slot resolved for the active mode.
type ColourSet struct {
	Base   lipgloss.Color
	OnBase lipgloss.Color
	Muted  lipgloss.Color
}

// Palette describes semantic colour slots used by components.
type Palette struct {
	Accent  ColourSet
	Surface ColourSet
	Success ColourSet
	Warning ColourSet
	Danger  ColourSet
	Info    ColourSet
}

// Theme is the chrome styling for one accent and colour mode.
type Theme struct {
	Mode    scene.ColorMode
	Accent  string
	Palette Palette
}

// NewTheme resolves accent ("family-shade", e.g. "purple-500") against the
// Tailwind table for mode. Unknown accents fall back to DefaultAccent.
func NewTheme(accent string, mode scene.ColorMode) Theme {
	family, ok := accentFamily(accent)
	if !ok {
		accent = DefaultAccent
		family = "blue"
	}

	base, onBase, muted := shade(family, 500), "#ffffff", shade(family, 300)
	surface := ColourSet{
		Base:   lipgloss.Color(shade("slate", 900)),
		OnBase: lipgloss.Color(shade("slate", 100)),
		Muted:  lipgloss.Color(shade("slate", 400)),
	}
	if mode == scene.ModeLight {
		base, muted = shade(family, 600), shade(family, 700)
		surface = ColourSet{
			Base:   lipgloss.Color(shade("slate", 50)),
			OnBase: lipgloss.Color(shade("slate", 900)),
			Muted:  lipgloss.Color(shade("slate", 500)),
		}
	}

	return Theme{
		Mode:   mode,
		Accent: accent,
		Palette: Palette{
			Accent:  ColourSet{Base: lipgloss.Color(base), OnBase: lipgloss.Color(onBase), Muted: lipgloss.Color(muted)},
			Surface: surface,
			Success: ColourSet{Base: lipgloss.Color(shade("green", 600)), OnBase: "#ffffff", Muted: lipgloss.Color(shade("green", 300))},
			Warning: ColourSet{Base: "#d97706", OnBase: "#ffffff", Muted: "#fcd34d"},
			Danger:  ColourSet{Base: lipgloss.Color(shade("pink", 600)), OnBase: "#ffffff", Muted: lipgloss.Color(shade("pink", 300))},
			Info:    ColourSet{Base: lipgloss.Color(shade("sky", 600)), OnBase: "#ffffff", Muted: lipgloss.Color(shade("sky", 300))},
		},
	}
}

// DefaultTheme returns the dark theme with the default accent.
func DefaultTheme() Theme {
	return NewTheme(DefaultAccent, scene.ModeDark)
}

func accentFamily(accent string) (string, bool) {
	stop, err := scene.ParseStop(accent)
	if err != nil || stop.Alpha < 1 {
		return "", false
	}
	idx := strings.LastIndex(accent, "-")
	if idx <= 0 {
		return "", false
	}
	return accent[:idx], true
}

func shade(family string, value int) string {
	hex, ok := scene.TailwindHex(family, value)
	if !ok {
		return "#808080"
	}
	return hex
}

// ThemeManager coordinates access to a Theme instance.
type ThemeManager struct {
	mu    sync.RWMutex
	theme Theme
}

// NewThemeManager allocates a ThemeManager with the provided theme.
func NewThemeManager(theme Theme) *ThemeManager {
	return &ThemeManager{theme: theme}
}

// SetTheme replaces the managed theme.
func (m *ThemeManager) SetTheme(theme Theme) {
	m.mu.Lock()
	m.theme = theme
	m.mu.Unlock()
}

// Theme returns a copy of the managed theme.
func (m *ThemeManager) Theme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme
}

// SetMode re-resolves the managed theme's accent for mode.
func (m *ThemeManager) SetMode(mode scene.ColorMode) {
	m.mu.Lock()
	m.theme = NewTheme(m.theme.Accent, mode)
	m.mu.Unlock()
}

var defaultThemeManager = NewThemeManager(DefaultTheme())

// SetTheme replaces the package-wide theme.
func SetTheme(theme Theme) {
	defaultThemeManager.SetTheme(theme)
}

// GetTheme returns the package-wide theme.
func GetTheme() Theme {
	return defaultThemeManager.Theme()
}

// SetMode switches the package-wide theme to mode, keeping its accent.
func SetMode(mode scene.ColorMode) {
	defaultThemeManager.SetMode(mode)
}

// BorderStyle returns the lipgloss border for a variant.
func BorderStyle(variant BorderVariant) lipgloss.Border {
	switch variant {
	case BorderVariantRounded:
		return lipgloss.RoundedBorder()
	case BorderVariantThick:
		return lipgloss.ThickBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// SpacingValue returns the cell count of a spacing token.
func SpacingValue(size SpacingSize) int {
	if size < 0 || int(size) >= len(spacingTable) {
		return 0
	}
	return spacingTable[size]
}

// StyleApplier mutates a style using the active theme.
type StyleApplier interface {
	Apply(lipgloss.Style, Theme) lipgloss.Style
}

// StyleFunc adapts a function to StyleApplier.
type StyleFunc func(lipgloss.Style, Theme) lipgloss.Style

func (fn StyleFunc) Apply(base lipgloss.Style, theme Theme) lipgloss.Style {
	return fn(base, theme)
}

// Style applies appliers to base using the package-wide theme.
func Style(base lipgloss.Style, appliers ...StyleApplier) lipgloss.Style {
	return StyleWith(GetTheme(), base, appliers...)
}

// StyleWith applies appliers to base using theme.
func StyleWith(theme Theme, base lipgloss.Style, appliers ...StyleApplier) lipgloss.Style {
	for _, applier := range appliers {
		base = applier.Apply(base, theme)
	}
	return base
}

func cloneAppliers(base []StyleApplier, extras ...StyleApplier) []StyleApplier {
	cloned := make([]StyleApplier, len(base)+len(extras))
	copy(cloned, base)
	copy(cloned[len(base):], extras)
	return cloned
}

// PaletteSlot provides access to a semantic colour slot.
type PaletteSlot func(Palette) ColourSet

var (
	PaletteAccent  PaletteSlot = func(p Palette) ColourSet { return p.Accent }
	PaletteSurface PaletteSlot = func(p Palette) ColourSet { return p.Surface }
	PaletteSuccess PaletteSlot = func(p Palette) ColourSet { return p.Success }
	PaletteWarning PaletteSlot = func(p Palette) ColourSet { return p.Warning }
	PaletteDanger  PaletteSlot = func(p Palette) ColourSet { return p.Danger }
	PaletteInfo    PaletteSlot = func(p Palette) ColourSet { return p.Info }
)

// Background sets the slot's base colour as background and its on-base
// colour as foreground.
func Background(slot PaletteSlot) StyleFunc {
	return func(style lipgloss.Style, theme Theme) lipgloss.Style {
		set := slot(theme.Palette)
		return style.Background(set.Base).Foreground(set.OnBase)
	}
}

// Foreground sets the slot's base colour as foreground.
func Foreground(slot PaletteSlot) StyleFunc {
	return func(style lipgloss.Style, theme Theme) lipgloss.Style {
		return style.Foreground(slot(theme.Palette).Base)
	}
}

// MutedForeground sets the slot's muted colour as foreground.
func MutedForeground(slot PaletteSlot) StyleFunc {
	return func(style lipgloss.Style, theme Theme) lipgloss.Style {
		return style.Foreground(slot(theme.Palette).Muted)
	}
}

// Border draws a border of variant in the slot's base colour.
func Border(variant BorderVariant, slot PaletteSlot) StyleFunc {
	return func(style lipgloss.Style, theme Theme) lipgloss.Style {
		return style.Border(BorderStyle(variant)).BorderForeground(slot(theme.Palette).Base)
	}
}

// PaddingX sets horizontal padding.
func PaddingX(size SpacingSize) StyleFunc {
	return func(style lipgloss.Style, _ Theme) lipgloss.Style {
		return style.PaddingLeft(SpacingValue(size)).PaddingRight(SpacingValue(size))
	}
}

// Bold sets the bold attribute.
func Bold() StyleFunc {
	return func(style lipgloss.Style, _ Theme) lipgloss.Style {
		return style.Bold(true)
	}
}
