package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type AlertVariant int

const (
	AlertVariantInfo AlertVariant = iota
	AlertVariantSuccess
	AlertVariantWarning
	AlertVariantError
)

// String returns the variant name.
func (v AlertVariant) String() string {
	switch v {
	case AlertVariantSuccess:
		return "success"
	case AlertVariantWarning:
		return "warning"
	case AlertVariantError:
		return "error"
	default:
		return "info"
	}
}

// AlertOptions defines the configuration options for an alert
type AlertOptions struct {
	Variant AlertVariant
	Title   string
}

// Alert is a one-line status message shown in the footer.
type Alert struct {
	message string
	options AlertOptions
}

// NewAlert creates a new alert with the given message and options
func NewAlert(message string, opts AlertOptions) *Alert {
	return &Alert{message: message, options: opts}
}

// Message returns the alert text.
func (a *Alert) Message() string {
	if a == nil {
		return ""
	}
	return a.message
}

// Variant returns the alert variant.
func (a *Alert) Variant() AlertVariant {
	if a == nil {
		return AlertVariantInfo
	}
	return a.options.Variant
}

// View renders the alert
func (a *Alert) View() string {
	if a == nil || strings.TrimSpace(a.message) == "" {
		return ""
	}
	var parts []string
	if a.options.Title != "" {
		parts = append(parts, Style(lipgloss.NewStyle(), Bold()).Render(a.options.Title))
	}
	parts = append(parts, a.message)
	return Style(lipgloss.NewStyle(), alertVariantAppliers(a.options.Variant)...).Render(strings.Join(parts, " "))
}

func alertVariantAppliers(variant AlertVariant) []StyleApplier {
	base := []StyleApplier{PaddingX(SpacingSizeSmall)}
	switch variant {
	case AlertVariantSuccess:
		return cloneAppliers(base, Background(PaletteSuccess))
	case AlertVariantWarning:
		return cloneAppliers(base, Background(PaletteWarning))
	case AlertVariantError:
		return cloneAppliers(base, Background(PaletteDanger))
	default:
		return cloneAppliers(base, Background(PaletteInfo))
	}
}

// InfoAlert creates an info alert
func InfoAlert(message string) *Alert {
	return NewAlert(message, AlertOptions{Variant: AlertVariantInfo})
}

// SuccessAlert creates a success alert
func SuccessAlert(message string) *Alert {
	return NewAlert(message, AlertOptions{Variant: AlertVariantSuccess})
}

// WarningAlert creates a warning alert
func WarningAlert(message string) *Alert {
	return NewAlert(message, AlertOptions{Variant: AlertVariantWarning, Title: "Warning"})
}

// ErrorAlert creates an error alert
func ErrorAlert(message string) *Alert {
	return NewAlert(message, AlertOptions{Variant: AlertVariantError, Title: "Error"})
}
