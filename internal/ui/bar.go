package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar paints header and command bar segments on one background. Each
// styled segment ends with a reset, so the gaps between segments are
// painted too.
type bar struct {
	styles Styles
	fill   lipgloss.Style
}

func (m Model) newBar() bar {
	return bar{
		styles: m.theme.Styles().OnBackground(m.theme.Surface),
		fill:   lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Surface)),
	}
}

// paint renders text in style, which should come from b.styles.
func (b bar) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Render(text)
}

// gap returns n background-colored cells.
func (b bar) gap(n int) string {
	return b.fill.Render(strings.Repeat(" ", max(n, 0)))
}

// pair renders a "key:desc" hint.
func (b bar) pair(k, desc string, descStyle lipgloss.Style) string {
	return b.paint(k, b.styles.AccentText) + b.fill.Render(":") + b.paint(desc, descStyle)
}
