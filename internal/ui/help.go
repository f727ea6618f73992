package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpTitles names the groups of keyMap.FullHelp, in the same order.
var helpTitles = []string{"Pages", "Books", "Home & Search", "Recommend", "Logs", "General"}

const (
	helpKeyWidth   = 12
	helpModalWidth = 46
)

// renderHelp draws the key binding overlay centered on screen. It is built
// from the key map so it cannot drift from the real bindings.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(helpKeyWidth)

	lines := []string{
		styles.Text.Bold(true).Render("Keyboard Shortcuts"),
		styles.FaintText.Render(strings.Repeat("─", helpModalWidth-8)),
	}
	for i, group := range m.keys.FullHelp() {
		title := "More"
		if i < len(helpTitles) {
			title = helpTitles[i]
		}
		lines = append(lines, "", styles.AccentText.Bold(true).Render(title))
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			lines = append(lines, keyStyle.Render(b.Help().Key)+styles.Text.Render(b.Help().Desc))
		}
	}
	lines = append(lines, "", styles.FaintText.Render("Press any key to close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(helpModalWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)))
}

