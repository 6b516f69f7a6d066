package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/folio/internal/components"
	"github.com/alexisbeaulieu97/folio/internal/config"
	"github.com/alexisbeaulieu97/folio/internal/scene"
)

// Markdown renders a section body.
type Markdown interface {
	Render(body string) (string, error)
}

// NewMarkdown returns a glamour renderer for mode wrapping at width cells.
func NewMarkdown(mode scene.ColorMode, width int) (Markdown, error) {
	style := "dark"
	if mode == scene.ModeLight {
		style = "light"
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return r, nil
}

// plainMarkdown leaves the body as is.
type plainMarkdown struct{}

func (plainMarkdown) Render(body string) (string, error) { return body, nil }

type rowSpan struct {
	start, end int
}

// Page is the document laid out in rows: one block per configured section,
// each at least MinRows tall so every section can reach the top of the
// screen.
type Page struct {
	lines     []string
	spans     map[scene.Section]rowSpan
	cells     Cells
	fallbacks int
}

// PageOptions configures BuildPage.
type PageOptions struct {
	Width   int
	MinRows int
	Cells   Cells
}

// BuildPage lays out contents in document order. Sections missing from
// contents get no block and no anchor. Bodies the renderer rejects are shown
// verbatim.
func BuildPage(contents []config.SectionContent, md Markdown, opts PageOptions) *Page {
	if md == nil {
		md = plainMarkdown{}
	}
	page := &Page{spans: make(map[scene.Section]rowSpan), cells: opts.Cells}

	for _, section := range scene.Sections() {
		content, ok := findContent(contents, section)
		if !ok {
			continue
		}
		start := len(page.lines)
		page.lines = append(page.lines, "", headingLine(section, content.Title), "")

		body, err := md.Render(content.Body)
		if err != nil {
			page.fallbacks++
			body = content.Body
		}
		page.lines = append(page.lines, strings.Split(strings.TrimRight(body, "\n"), "\n")...)

		for len(page.lines)-start < opts.MinRows {
			page.lines = append(page.lines, "")
		}
		page.spans[section] = rowSpan{start: start, end: len(page.lines)}
	}
	return page
}

func findContent(contents []config.SectionContent, section scene.Section) (config.SectionContent, bool) {
	for _, content := range contents {
		parsed, err := scene.ParseSection(content.ID)
		if err != nil || parsed != section {
			continue
		}
		if content.Title == "" {
			content.Title = section.Title()
		}
		return content, true
	}
	return config.SectionContent{}, false
}

func headingLine(section scene.Section, title string) string {
	anchor := components.Style(lipgloss.NewStyle(), components.MutedForeground(components.PaletteSurface)).Render(section.Anchor())
	heading := components.Style(lipgloss.NewStyle(), components.Foreground(components.PaletteAccent), components.Bold()).Render(title)
	return "  " + heading + "  " + anchor
}

// Content returns the page as a single string for the viewport.
func (p *Page) Content() string {
	return strings.Join(p.lines, "\n")
}

// Rows returns the page height in rows.
func (p *Page) Rows() int {
	return len(p.lines)
}

// Fallbacks returns how many bodies were shown unrendered.
func (p *Page) Fallbacks() int {
	return p.fallbacks
}

// Row returns the first row of a section's block.
func (p *Page) Row(section scene.Section) (int, bool) {
	span, ok := p.spans[section]
	return span.start, ok
}

// Locate implements scene.AnchorLocator.
func (p *Page) Locate(name string) (scene.Boundary, bool) {
	section, err := scene.ParseSection(name)
	if err != nil {
		return scene.Boundary{}, false
	}
	span, ok := p.spans[section]
	if !ok {
		return scene.Boundary{}, false
	}
	return scene.Boundary{
		Top:    float64(span.start) * p.cells.Height,
		Bottom: float64(span.end) * p.cells.Height,
	}, true
}
