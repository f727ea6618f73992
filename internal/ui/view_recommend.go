package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookrecs/internal/books"
	"github.com/five82/bookrecs/internal/pages"
)

func (m Model) renderRecommend(width, height int) string {
	styles := m.theme.Styles()
	r := m.recommend

	active := styles.Selected.Bold(true).Padding(0, 1)
	idle := styles.MutedText.Padding(0, 1)
	userLabel, genreLabel := "👤 "+pages.ModeUser.String(), "📖 "+pages.ModeGenre.String()
	var modes string
	if r.Mode == pages.ModeGenre {
		modes = idle.Render(userLabel) + " " + active.Render(genreLabel)
	} else {
		modes = active.Render(userLabel) + " " + idle.Render(genreLabel)
	}

	header, _ := stack(
		m.renderTitle("🎯 Recommendations"),
		modes,
		m.renderBanner(r.Banner.Text(), width),
	)

	var section string
	if r.Mode == pages.ModeGenre {
		section = m.renderGenreSection(width, height-lipgloss.Height(header)-1)
	} else {
		section = m.renderUserSection(width, height-lipgloss.Height(header)-1)
	}
	return header + "\n" + section
}

func (m Model) renderUserSection(width, height int) string {
	styles := m.theme.Styles()
	r := m.recommend

	inputLine := m.renderInputBox(m.userInput.View(), m.input == focusUser, min(width, 40))
	status := ""
	switch {
	case r.RandomUser.IsLoading():
		status = m.spinner.View() + " " + styles.MutedText.Render("Picking a random reader...")
	case r.UserID() == "":
		status = styles.MutedText.Render("Enter a user id with / or press R for a random reader.")
	}

	stats := ""
	if s := r.Stats(); s.Total > 0 {
		stats = m.renderTitle(fmt.Sprintf("📊 User #%s Statistics", r.UserID())) + "\n" + m.renderStats(s)
	}

	tabs := ""
	if r.UserID() != "" {
		tabs = m.renderTabs()
	}

	top, used := stack(
		m.renderTitle("👤 Personalized Recommendations"),
		inputLine,
		status,
		stats,
		tabs,
	)
	if r.UserID() == "" {
		return top
	}
	body := m.renderGrid(r.TabBooks(r.Tab), m.tabGrids[r.Tab], gridView{
		width:          width,
		height:         height - used - 1,
		loading:        r.TabLoading(r.Tab),
		focused:        m.input == focusNone,
		showUserRating: r.Tab == pages.TabRatings,
	})
	return top + "\n" + body
}

// renderStats draws the rating summary of the current user.
func (m Model) renderStats(s books.RatingStats) string {
	styles := m.theme.Styles()
	item := func(icon, label, value string) string {
		return icon + " " + styles.Text.Bold(true).Render(value) + " " + styles.MutedText.Render(label)
	}
	return strings.Join([]string{
		item("📚", "Total Ratings", formatThousands(s.Total)),
		item("⭐", "Average Rating", formatOneDecimal(s.Average)),
		item("🔥", fmt.Sprintf("High Ratings (%d+)", books.HighRatingThreshold), formatThousands(s.High)),
	}, "    ")
}

// renderTabs draws the user-mode tab strip with per-tab counts.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	r := m.recommend
	icons := map[pages.Tab]string{
		pages.TabUser:    "🤝",
		pages.TabSVD:     "🧠",
		pages.TabRatings: "⭐",
	}
	parts := make([]string, 0, len(pages.Tabs))
	for _, t := range pages.Tabs {
		label := fmt.Sprintf("%s %s (%d)", icons[t], t.String(), r.TabCount(t))
		if t == r.Tab {
			parts = append(parts, styles.Selected.Bold(true).Padding(0, 1).Render(label))
			continue
		}
		parts = append(parts, styles.MutedText.Padding(0, 1).Render(label))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderGenreSection(width, height int) string {
	styles := m.theme.Styles()
	r := m.recommend

	genres := ""
	switch {
	case r.Genres.IsLoading():
		genres = m.spinner.View() + " " + styles.MutedText.Render("Loading genres...")
	case len(r.Genres.Data()) > 0:
		genres = m.renderChips(r.Genres.Data(), m.genreCursor, m.recZone == zoneGenres && m.input == focusNone, width)
	}

	input := m.renderInputBox(m.genreInput.View(), m.input == focusGenre, width)

	heading := ""
	if r.Genre() != "" {
		heading = m.renderTitle(fmt.Sprintf("📚 Best Books in %q", r.Genre()))
	}

	top, used := stack(
		m.renderTitle("📖 Explore by Genre"),
		genres,
		input,
		heading,
	)
	if r.Genre() == "" {
		return top
	}
	body := m.renderGrid(r.GenreRecs.Data(), m.genreGrid, gridView{
		width:   width,
		height:  height - used - 1,
		loading: r.GenreRecs.IsLoading(),
		focused: m.recZone == zoneGrid && m.input == focusNone,
	})
	return top + "\n" + body
}

func (m Model) handleRecommendKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.recommend

	switch {
	case key.Matches(msg, m.keys.ToggleMode):
		if r.Mode == pages.ModeUser {
			r.SetMode(pages.ModeGenre)
			m.recZone = zoneGenres
		} else {
			r.SetMode(pages.ModeUser)
		}
		return m, nil
	case key.Matches(msg, m.keys.DismissBanner):
		r.Banner.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		if r.Mode == pages.ModeGenre {
			return m, m.focusInput(focusGenre)
		}
		return m, m.focusInput(focusUser)
	}

	if r.Mode == pages.ModeGenre {
		return m.handleGenreKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.RandomUser):
		return m, r.RollRandomUser()
	case key.Matches(msg, m.keys.NextTab):
		return m, r.SelectTab(nextTab(r.Tab, 1))
	case key.Matches(msg, m.keys.PrevTab):
		return m, r.SelectTab(nextTab(r.Tab, -1))
	}

	list := r.TabBooks(r.Tab)
	g := &m.tabGrids[r.Tab]
	if key.Matches(msg, m.keys.Open) {
		if b, ok := g.current(list); ok {
			return m, openBookCmd(b.ISBN)
		}
		return m, nil
	}
	g.handleKey(msg, m.keys, list, gridColumns(m.width))
	return m, nil
}

func (m Model) handleGenreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.recommend

	if key.Matches(msg, m.keys.NextZone) {
		if m.recZone == zoneGenres {
			m.recZone = zoneGrid
		} else {
			m.recZone = zoneGenres
		}
		return m, nil
	}

	if m.recZone == zoneGenres {
		n := len(r.Genres.Data())
		switch {
		case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
			m.genreCursor = moveCursor(m.genreCursor, -1, n)
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
			m.genreCursor = moveCursor(m.genreCursor, 1, n)
		case key.Matches(msg, m.keys.Top):
			m.genreCursor = 0
		case key.Matches(msg, m.keys.Bottom):
			m.genreCursor = max(n-1, 0)
		case key.Matches(msg, m.keys.Open):
			if m.genreCursor >= n {
				return m, nil
			}
			m.genreInput.SetValue(r.Genres.Data()[m.genreCursor])
			m.recZone = zoneGrid
			return m, r.SelectGenre(m.genreCursor)
		}
		return m, nil
	}

	list := r.GenreRecs.Data()
	if key.Matches(msg, m.keys.Open) {
		if b, ok := m.genreGrid.current(list); ok {
			return m, openBookCmd(b.ISBN)
		}
		return m, nil
	}
	m.genreGrid.handleKey(msg, m.keys, list, gridColumns(m.width))
	return m, nil
}

// nextTab steps through pages.Tabs, wrapping around.
func nextTab(t pages.Tab, delta int) pages.Tab {
	return pages.Tabs[moveCursor(int(t), delta, len(pages.Tabs))]
}
