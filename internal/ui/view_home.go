package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookrecs/internal/books"
)

// homeList returns the list and grid of the shelf shown on Home.
func (m *Model) homeList() ([]books.Book, *grid) {
	if m.shelf == shelfPopular {
		return m.home.Popular.Data(), &m.popularGrid
	}
	return m.home.Trending(), &m.homeGrid
}

func (m Model) renderHome(width, height int) string {
	styles := m.theme.Styles()

	hero := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle("Discover Your Next Literary Adventure"),
		styles.MutedText.Render("Trending picks, popular reads and personal recommendations."),
	)

	trending := fmt.Sprintf("🔥 Trending Now (%d)", len(m.home.Trending()))
	popular := "⭐ Popular Now"
	if n := len(m.home.Popular.Data()); n > 0 {
		popular = fmt.Sprintf("⭐ Popular Now (%d)", n)
	}
	active := styles.AccentText.Bold(true).Underline(true)
	idle := styles.MutedText
	var tabs string
	if m.shelf == shelfPopular {
		tabs = idle.Render(trending) + "   " + active.Render(popular)
	} else {
		tabs = active.Render(trending) + "   " + idle.Render(popular)
	}

	top, used := stack(hero, "", tabs)
	list, g := m.homeList()
	body := m.renderGrid(list, *g, gridView{
		width:   width,
		height:  height - used - 1,
		loading: m.shelf == shelfPopular && m.home.Popular.IsLoading(),
		focused: true,
	})
	return top + "\n" + body
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Popular):
		m.shelf = shelfPopular
		return m, m.home.LoadPopular()
	case key.Matches(msg, m.keys.NextZone):
		if m.shelf == shelfPopular {
			m.shelf = shelfTrending
			return m, nil
		}
		m.shelf = shelfPopular
		if !m.home.Popular.HasData() {
			return m, m.home.LoadPopular()
		}
		return m, nil
	}

	list, g := m.homeList()
	if key.Matches(msg, m.keys.Open) {
		if b, ok := g.current(list); ok {
			return m, openBookCmd(b.ISBN)
		}
		return m, nil
	}
	g.handleKey(msg, m.keys, list, gridColumns(m.width))
	return m, nil
}
