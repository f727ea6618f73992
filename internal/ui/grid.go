package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookrecs/internal/books"
)

const (
	gridLoadingText = "Loading amazing books..."
	gridEmptyTitle  = "No books found"
	gridEmptyHint   = "Try a different search or recommendation method"
)

// grid is the selection state of one book grid. The selection follows the
// selected book's key when the list is replaced.
type grid struct {
	selected int
	key      string
}

// sync re-anchors the selection after list changed.
func (g *grid) sync(list []books.Book) {
	if g.key != "" {
		for i, b := range list {
			if books.Key(b, i) == g.key {
				g.selected = i
				return
			}
		}
	}
	g.clamp(list)
}

func (g *grid) clamp(list []books.Book) {
	switch {
	case len(list) == 0:
		g.selected = 0
		g.key = ""
		return
	case g.selected >= len(list):
		g.selected = len(list) - 1
	case g.selected < 0:
		g.selected = 0
	}
	g.key = books.Key(list[g.selected], g.selected)
}

// reset moves the selection back to the first card.
func (g *grid) reset() {
	g.selected = 0
	g.key = ""
}

// current returns the selected book.
func (g grid) current(list []books.Book) (books.Book, bool) {
	if g.selected < 0 || g.selected >= len(list) {
		return books.Book{}, false
	}
	return list[g.selected], true
}

// handleKey moves the selection for navigation keys and reports whether msg
// was consumed.
func (g *grid) handleKey(msg tea.KeyMsg, keys keyMap, list []books.Book, cols int) bool {
	n := len(list)
	if n == 0 {
		return false
	}
	cols = max(cols, 1)
	next := g.selected
	switch {
	case key.Matches(msg, keys.Left):
		next--
	case key.Matches(msg, keys.Right):
		next++
	case key.Matches(msg, keys.Up):
		next -= cols
	case key.Matches(msg, keys.Down):
		next += cols
	case key.Matches(msg, keys.Top):
		next = 0
	case key.Matches(msg, keys.Bottom):
		next = n - 1
	default:
		return false
	}
	g.selected = min(max(next, 0), n-1)
	g.key = books.Key(list[g.selected], g.selected)
	return true
}

// gridView describes how a grid is drawn.
type gridView struct {
	width          int
	height         int
	loading        bool
	focused        bool
	showUserRating bool
}

// renderGrid draws list as rows of cards. Rows scroll a page at a time so
// the selected card is always visible.
func (m Model) renderGrid(list []books.Book, g grid, v gridView) string {
	styles := m.theme.Styles()

	if v.loading {
		line := m.spinner.View() + " " + styles.Text.Render(gridLoadingText)
		return lipgloss.Place(v.width, max(v.height, 3), lipgloss.Center, lipgloss.Center, line)
	}
	if len(list) == 0 {
		block := lipgloss.JoinVertical(lipgloss.Center,
			"📚",
			styles.Text.Bold(true).Render(gridEmptyTitle),
			styles.MutedText.Render(gridEmptyHint),
		)
		return lipgloss.Place(v.width, max(v.height, 5), lipgloss.Center, lipgloss.Center, block)
	}

	cols := gridColumns(v.width)
	cardWidth := max((v.width-cardGap*(cols-1))/cols, 12)
	visibleRows := max(v.height/cardHeight, 1)
	totalRows := (len(list) + cols - 1) / cols
	if totalRows > visibleRows {
		// Leave a line for the position label.
		visibleRows = max((v.height-1)/cardHeight, 1)
	}

	selRow := g.selected / cols
	firstRow := (selRow / visibleRows) * visibleRows
	lastRow := min(firstRow+visibleRows, totalRows)

	rows := make([]string, 0, lastRow-firstRow)
	gap := strings.Repeat(" ", cardGap)
	for row := firstRow; row < lastRow; row++ {
		cells := make([]string, 0, cols*2)
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(list) {
				break
			}
			if col > 0 {
				cells = append(cells, gap)
			}
			selected := v.focused && i == g.selected
			cells = append(cells, m.renderCard(list[i], cardWidth, selected, v.showUserRating))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	out := strings.Join(rows, "\n")
	if totalRows > visibleRows {
		pos := styles.FaintText.Render(
			positionLabel(g.selected+1, len(list)))
		out += "\n" + pos
	}
	return out
}

func positionLabel(current, total int) string {
	return "book " + formatThousands(current) + " of " + formatThousands(total)
}
