package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderBanner draws a dismissible error line, or "" when text is empty.
func (m Model) renderBanner(text string, width int) string {
	if text == "" {
		return ""
	}
	styles := m.theme.Styles()
	line := "⚠ " + text + "  (x to dismiss)"
	return styles.Banner.Width(width).Render(truncate(line, max(width-2, 10)))
}

// renderTitle draws a page or section heading.
func (m Model) renderTitle(text string) string {
	return m.theme.Styles().AccentText.Bold(true).Render(text)
}

// renderInputBox frames a text input, highlighting it while focused.
func (m Model) renderInputBox(view string, focused bool, width int) string {
	border := m.theme.Border
	if focused {
		border = m.theme.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(max(width-4, 10)).
		Render(view)
}

// renderChips lays out labels as pills wrapped to width. The chip at cursor
// is highlighted when active.
func (m Model) renderChips(labels []string, cursor int, active bool, width int) string {
	styles := m.theme.Styles()
	chip := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Text)).
		Background(lipgloss.Color(m.theme.Raised)).
		Padding(0, 1)

	var lines []string
	var line []string
	used := 0
	for i, label := range labels {
		style := chip
		if active && i == cursor {
			style = styles.Selected.Padding(0, 1).Bold(true)
		}
		rendered := style.Render(label)
		w := lipgloss.Width(rendered) + 1
		if used > 0 && used+w > width {
			lines = append(lines, strings.Join(line, " "))
			line, used = nil, 0
		}
		line = append(line, rendered)
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

// stack joins non-empty blocks vertically and reports their total height.
func stack(blocks ...string) (string, int) {
	kept := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	out := strings.Join(kept, "\n")
	return out, lipgloss.Height(out)
}

// moveCursor shifts cursor by delta within n items, wrapping around.
func moveCursor(cursor, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((cursor+delta)%n + n) % n
}
