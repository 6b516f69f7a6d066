package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/folio/internal/components"
	"github.com/alexisbeaulieu97/folio/internal/scene"
)

// View renders header, body and footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.background == nil || m.width == 0 {
		return "loading…"
	}

	rows := make([]string, 0, m.height)
	rows = append(rows, m.headerView())
	rows = append(rows, m.bodyView()...)
	rows = append(rows, m.footerView())
	return strings.Join(rows, "\n")
}

func (m Model) headerView() string {
	chips := make([]*components.Chip, 0, len(scene.Sections()))
	current := m.opts.Navigation.Current()
	pending := m.opts.Navigation.State() == scene.NavUserOverride
	for i, section := range scene.Sections() {
		if _, ok := m.page.Row(section); !ok {
			continue
		}
		variant := components.ChipVariantIdle
		if section == current {
			variant = components.ChipVariantActive
			if pending {
				variant = components.ChipVariantPending
			}
		}
		chips = append(chips, components.NewChip(fmt.Sprintf("%d %s", i+1, section.Title()), variant))
	}
	nav := components.NewChipGroup(chips...).View()

	frame := m.background.Frame()
	status := mutedStyle().Render(fmt.Sprintf("%s · %s · %s", m.opts.Classifier.Tier(), frame.Variant, frame.Mode))
	gap := max(m.width-lipgloss.Width(nav)-lipgloss.Width(status), 1)
	line := fit(nav+strings.Repeat(" ", gap)+status, m.width)

	style := lipgloss.NewStyle()
	if m.opts.Navigation.Scrolled() {
		style = components.Style(style, components.StyleFunc(func(s lipgloss.Style, t components.Theme) lipgloss.Style {
			return s.Background(t.Palette.Surface.Base)
		}))
	}
	return style.Render(line)
}

func (m Model) bodyView() []string {
	left, width := m.column()
	canvas := m.painter.Paint(m.background.Frame(), m.width, m.bodyRows())

	content := strings.Split(m.viewport.View(), "\n")
	overlay := m.overlay(width)
	start := len(content) - len(overlay)

	rows := make([]string, m.bodyRows())
	for row := range rows {
		line := ""
		if row < len(content) {
			line = content[row]
		}
		if len(overlay) > 0 && row >= start && row-start < len(overlay) {
			line = overlay[row-start]
		}
		rows[row] = m.painter.RenderRow(canvas, row, 0, left) +
			fit(line, width) +
			m.painter.RenderRow(canvas, row, left+width, m.width)
	}
	return rows
}

// overlay returns the panel drawn over the bottom of the content column:
// the full key help or the recent log entries.
func (m Model) overlay(width int) []string {
	var lines []string
	switch {
	case m.help.ShowAll:
		lines = strings.Split(m.help.View(m.keys), "\n")
	case m.showLog:
		lines = append(lines, panelTitleStyle().Render("recent log"))
		if m.opts.Ring == nil || m.opts.Ring.Len() == 0 {
			lines = append(lines, mutedStyle().Render("no entries"))
		}
		if m.opts.Ring != nil {
			for _, entry := range m.opts.Ring.Tail(logPanelRows - 1) {
				lines = append(lines, entry.String())
			}
		}
	default:
		return nil
	}
	if len(lines) > m.bodyRows() {
		lines = lines[len(lines)-m.bodyRows():]
	}
	panel := make([]string, len(lines))
	for i, line := range lines {
		panel[i] = fit(panelStyle().MaxWidth(width).Render(line), width)
	}
	return panel
}

func (m Model) footerView() string {
	var line string
	if m.alert != nil {
		line = m.alert.View()
	}
	if line == "" {
		line = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// fit pads or truncates an ANSI string to exactly width cells.
func fit(line string, width int) string {
	w := lipgloss.Width(line)
	switch {
	case w == width:
		return line
	case w < width:
		return line + strings.Repeat(" ", width-w)
	default:
		return lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
}
