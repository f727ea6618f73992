package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookrecs/internal/books"
	"github.com/five82/bookrecs/internal/state"
)

const (
	bookLoadingText  = "Loading book details..."
	bookNotFoundText = "Book Not Found"
	bookSimilarTitle = "📚 Readers Also Enjoyed"
	distributionBar  = 40
)

func (m Model) renderBook(width, height int) string {
	styles := m.theme.Styles()

	switch {
	case m.book.NotFound():
		msg := m.book.Detail.Message()
		if msg == "" {
			msg = "The requested book could not be found."
		}
		block := lipgloss.JoinVertical(lipgloss.Center,
			"📚❌",
			styles.DangerText.Render(bookNotFoundText),
			styles.MutedText.Render(msg),
			"",
			styles.FaintText.Render("Press esc to go back"),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
	case m.book.Detail.Phase() != state.Loaded:
		line := m.spinner.View() + " " + styles.Text.Render(bookLoadingText)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
	}

	detail := m.renderBookDetail(m.book.Detail.Data(), width)
	similar := ""
	switch {
	case m.book.Similar.IsLoading():
		similar = m.renderTitle(bookSimilarTitle) + "\n" + m.spinner.View() + " " + styles.MutedText.Render(gridLoadingText)
	case m.book.ShowSimilar():
		top, used := stack("", m.renderTitle(bookSimilarTitle))
		similar = top + "\n" + m.renderGrid(m.book.Similar.Data(), m.similarGrid, gridView{
			width:   width,
			height:  height - lipgloss.Height(detail) - used - 1,
			focused: true,
		})
	}
	out, _ := stack(detail, similar)
	return out
}

// renderBookDetail draws the metadata block, score summary and rating
// distribution of b.
func (m Model) renderBookDetail(b books.Book, width int) string {
	styles := m.theme.Styles()

	label := func(name, value string) string {
		if strings.TrimSpace(value) == "" {
			value = "Unknown"
		}
		return styles.MutedText.Render(name+": ") + styles.Text.Render(value)
	}

	lines := []string{
		styles.AccentText.Bold(true).Render(truncate(b.Title, width)),
		styles.Text.Render("by " + truncateText(b.Author, width)),
		"",
		strings.Join([]string{
			label("Year", b.Year),
			label("Publisher", b.Publisher),
			label("ISBN", b.ISBN),
		}, "   "),
		styles.WarningText.Render("★ "+formatAverage(b.AverageRating)) + styles.MutedText.Render(" Average Rating") +
			"   " + styles.InfoText.Render("👥 "+formatCount(b.RatingCount)) + styles.MutedText.Render(" Total Ratings"),
		styles.FaintText.Render("Cover: " + truncateMiddle(b.Images.Cover(), max(width-7, 10))),
	}

	if bars := b.Distribution(); len(bars) > 0 {
		lines = append(lines, "", styles.Text.Bold(true).Render("Rating Distribution"))
		barWidth := min(distributionBar, max(width-24, 5))
		fill := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
		for _, row := range bars {
			filled := min(max(int(row.Fraction*float64(barWidth)+0.5), 0), barWidth)
			lines = append(lines, fmt.Sprintf("%2d ★ %s%s %s",
				row.Rating,
				fill.Render(strings.Repeat("█", filled)),
				styles.FaintText.Render(strings.Repeat("░", barWidth-filled)),
				styles.MutedText.Render(formatThousands(row.Count)),
			))
		}
	}
	return strings.Join(lines, "\n")
}

// formatAverage renders an average rating as "x.x/10".
func formatAverage(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatOneDecimal(*v) + "/10"
}

// formatCount renders a rating count with thousands separators.
func formatCount(n *int) string {
	if n == nil {
		return "N/A"
	}
	return formatThousands(*n)
}

func (m Model) handleBookKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.book.ShowSimilar() {
		return m, nil
	}
	list := m.book.Similar.Data()
	if key.Matches(msg, m.keys.Open) {
		if b, ok := m.similarGrid.current(list); ok {
			return m, openBookCmd(b.ISBN)
		}
		return m, nil
	}
	m.similarGrid.handleKey(msg, m.keys, list, gridColumns(m.width))
	return m, nil
}
