package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/bookrecs/internal/pages"
)

// headerPages are the pages reachable from the header, in key order.
var headerPages = []Page{PageHome, PageSearch, PageRecommend, PageLogs}

// renderHeader renders the status bar: logo, API status, pages.
func (m Model) renderHeader() string {
	b := m.newBar()
	styles := b.styles
	compact := m.width < LayoutCompactWidth

	parts := []string{
		b.paint("📚 bookrecs", styles.Logo),
		m.renderAPIStatus(b),
	}

	if !compact && m.apiURL != "" {
		parts = append(parts, b.paint(truncateMiddle(m.apiURL, 40), styles.FaintText))
	}

	tabs := make([]string, 0, len(headerPages))
	for _, p := range headerPages {
		label := p.String()
		if p == m.current.page {
			tabs = append(tabs, b.paint(label, styles.AccentText.Bold(true).Underline(true)))
			continue
		}
		tabs = append(tabs, b.paint(label, styles.MutedText))
	}
	if m.current.page == PageBook {
		tabs = append(tabs, b.paint("Book", styles.AccentText.Bold(true).Underline(true)))
	}
	parts = append(parts, strings.Join(tabs, b.gap(2)))

	if ts := m.formatTimestamp(); ts != "" && !compact {
		parts = append(parts, b.paint(ts, styles.MutedText))
	}

	if err := m.snapshot.LastError; err != nil {
		maxErr := 60
		if compact {
			maxErr = 24
		}
		parts = append(parts,
			b.paint("ERROR", styles.DangerText.Bold(true))+b.gap(1)+
				b.paint(truncate(err.Error(), maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, b.gap(2)))
}

// renderAPIStatus shows whether the backend answered its last status poll.
func (m Model) renderAPIStatus(b bar) string {
	styles := b.styles
	snap := m.snapshot
	switch {
	case !m.statusPolling:
		return b.paint("● API", styles.FaintText)
	case snap.IsOffline():
		return b.paint("● API "+classifyConnectionError(snap.LastError), styles.DangerText)
	case snap.LastError != nil:
		return b.paint("● API RETRYING", styles.WarningText.Bold(true))
	case !snap.HasStatus:
		return b.paint("● Connecting...", styles.WarningText.Bold(true))
	case snap.Online():
		return b.paint("● API ONLINE", styles.SuccessText)
	default:
		return b.paint("● API "+strings.ToUpper(snap.Status.Status), styles.WarningText.Bold(true))
	}
}

// formatTimestamp formats the last poll time with a relative indicator.
func (m Model) formatTimestamp() string {
	last := m.snapshot.LastUpdated
	if last.IsZero() {
		return ""
	}

	since := time.Since(last)
	out := last.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

// classifyConnectionError returns a short description of the poll error.
func classifyConnectionError(err error) string {
	if err == nil {
		return "OFFLINE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the current page.
func (m Model) renderCommandBar() string {
	b := m.newBar()
	styles := b.styles

	type cmd struct{ key, desc string }
	var commands []cmd

	if m.input != focusNone {
		commands = []cmd{
			{"enter", "Submit"},
			{"esc", "Leave input"},
		}
	} else {
		switch m.current.page {
		case PageSearch:
			commands = []cmd{
				{"/", "Search"},
				{"tab", ternary(m.searchZone == zoneSuggestions, "Results", "Suggestions")},
				{"enter", ternary(m.searchZone == zoneSuggestions, "Run", "Open")},
				{"x", "Dismiss"},
			}
		case PageBook:
			commands = []cmd{
				{"hjkl", "Navigate"},
				{"enter", "Open similar"},
				{"esc", "Back"},
			}
		case PageRecommend:
			if m.recommend.Mode == pages.ModeGenre {
				commands = []cmd{
					{"m", "User mode"},
					{"/", "Genre"},
					{"tab", ternary(m.recZone == zoneGenres, "Results", "Genres")},
					{"enter", ternary(m.recZone == zoneGenres, "Pick", "Open")},
					{"x", "Dismiss"},
				}
			} else {
				commands = []cmd{
					{"m", "Genre mode"},
					{"/", "User ID"},
					{"R", "Random"},
					{"[ ]", "Tabs"},
					{"enter", "Open"},
					{"x", "Dismiss"},
				}
			}
		case PageLogs:
			commands = []cmd{
				{"f", ternary(m.logs.follow, "Pause", "Follow")},
				{"v", "Level"},
				{"j/k", "Scroll"},
				{"esc", "Back"},
			}
		default: // PageHome
			commands = []cmd{
				{"hjkl", "Navigate"},
				{"enter", "Open"},
				{"tab", ternary(m.shelf == shelfPopular, "Trending", "Popular")},
				{"r", "Refresh popular"},
			}
		}
		commands = append(commands,
			cmd{"1/2/3", "Pages"},
			cmd{"L", "Logs"},
			cmd{"?", "More"},
		)
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, b.pair(c.key, c.desc, styles.MutedText))
	}
	segments = append(segments, b.pair("T", m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, b.gap(2)))
}
