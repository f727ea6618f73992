package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookrecs/internal/pages"
)

func (m Model) renderSearch(width, height int) string {
	styles := m.theme.Styles()

	input := m.renderInputBox(m.searchInput.View(), m.input == focusSearch, width)
	suggestions := styles.MutedText.Render("Popular searches:") + "\n" +
		m.renderChips(pages.Suggestions, m.suggestion, m.searchZone == zoneSuggestions && m.input == focusNone, width)

	heading := ""
	if h := m.search.Heading(); h != "" {
		heading = styles.Text.Bold(true).Render(h)
	}

	top, used := stack(
		m.renderTitle("🔍 Search Books"),
		input,
		suggestions,
		m.renderBanner(m.search.Banner.Text(), width),
		heading,
	)
	// Nothing below the heading until a search has run.
	if !m.search.Searched() && !m.search.Results.IsLoading() {
		return top
	}
	body := m.renderGrid(m.search.Results.Data(), m.searchGrid, gridView{
		width:   width,
		height:  height - used - 1,
		loading: m.search.Results.IsLoading(),
		focused: m.searchZone == zoneGrid && m.input == focusNone,
	})
	return top + "\n" + body
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		return m, m.focusInput(focusSearch)
	case key.Matches(msg, m.keys.DismissBanner):
		m.search.Banner.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.NextZone):
		if m.searchZone == zoneSuggestions {
			m.searchZone = zoneGrid
		} else {
			m.searchZone = zoneSuggestions
		}
		return m, nil
	}

	if m.searchZone == zoneSuggestions {
		switch {
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
			m.suggestion = moveCursor(m.suggestion, -1, len(pages.Suggestions))
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
			m.suggestion = moveCursor(m.suggestion, 1, len(pages.Suggestions))
		case key.Matches(msg, m.keys.Open):
			m.searchInput.SetValue(pages.Suggestions[m.suggestion])
			m.searchZone = zoneGrid
			return m, m.search.Suggest(m.suggestion)
		}
		return m, nil
	}

	list := m.search.Results.Data()
	if key.Matches(msg, m.keys.Open) {
		if b, ok := m.searchGrid.current(list); ok {
			return m, openBookCmd(b.ISBN)
		}
		return m, nil
	}
	m.searchGrid.handleKey(msg, m.keys, list, gridColumns(m.width))
	return m, nil
}
