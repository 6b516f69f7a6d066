package scene

import "github.com/alexisbeaulieu97/folio/internal/ports"

// ThemeSource is the read-only view of the external theme preference.
type ThemeSource interface {
	Mode() ColorMode
	OnModeChange(fn func(ColorMode)) ports.Cancel
}

// Boundary is a section's extent in document pixels, [Top, Bottom).
type Boundary struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// Height returns the boundary's extent.
func (b Boundary) Height() float64 {
	return b.Bottom - b.Top
}

// AnchorLocator resolves a section anchor name to its document boundary. The
// second result is false when the anchor is not present on the page.
type AnchorLocator interface {
	Locate(name string) (Boundary, bool)
}

// Viewport is the visible area in pixels.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}
