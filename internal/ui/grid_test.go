package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/five82/bookrecs/internal/books"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleBooks(n int) []books.Book {
	out := make([]books.Book, n)
	for i := range out {
		out[i] = books.Book{ISBN: string(rune('a' + i)), Title: "Book"}
	}
	return out
}

func TestGridColumns(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{40, 1},
		{LayoutTwoColumns, 2},
		{LayoutThreeColumns, 3},
		{LayoutFourColumns - 1, 3},
		{LayoutFourColumns, 4},
		{LayoutFiveColumns, 5},
		{400, 5},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, gridColumns(tc.width), "width %d", tc.width)
	}
}

func TestGridHandleKey_MovesAndClamps(t *testing.T) {
	keys := DefaultKeyMap()
	list := sampleBooks(7)
	var g grid

	require.True(t, g.handleKey(keyRunes("l"), keys, list, 3))
	require.Equal(t, 1, g.selected)

	require.True(t, g.handleKey(keyRunes("j"), keys, list, 3))
	require.Equal(t, 4, g.selected)

	require.True(t, g.handleKey(keyRunes("j"), keys, list, 3))
	require.Equal(t, 6, g.selected, "moving past the last row stops at the last card")

	require.True(t, g.handleKey(keyRunes("g"), keys, list, 3))
	require.Equal(t, 0, g.selected)

	require.True(t, g.handleKey(keyRunes("h"), keys, list, 3))
	require.Equal(t, 0, g.selected)

	require.True(t, g.handleKey(keyRunes("G"), keys, list, 3))
	require.Equal(t, 6, g.selected)

	require.False(t, g.handleKey(keyRunes("z"), keys, list, 3))
	require.False(t, g.handleKey(keyRunes("j"), keys, nil, 3))
}

func TestGridSync_FollowsSelectedBook(t *testing.T) {
	keys := DefaultKeyMap()
	list := sampleBooks(5)
	var g grid
	g.handleKey(keyRunes("G"), keys, list, 1)
	require.Equal(t, "e", books.Key(list[g.selected], g.selected))

	// Same book moved to the front.
	reordered := append([]books.Book{list[4]}, list[:4]...)
	g.sync(reordered)
	require.Equal(t, 0, g.selected)

	// Selected book gone: clamp.
	g.sync(sampleBooks(2)[:1])
	require.Equal(t, 0, g.selected)

	g.sync(nil)
	_, ok := g.current(nil)
	require.False(t, ok)
}

func TestGridSync_PositionalKeys(t *testing.T) {
	list := []books.Book{{Title: "No ISBN"}, {Title: "Also none"}}
	g := grid{selected: 1}
	g.clamp(list)
	require.Equal(t, "book-1", g.key)
}

func TestMoveCursorWraps(t *testing.T) {
	require.Equal(t, 7, moveCursor(0, -1, 8))
	require.Equal(t, 0, moveCursor(7, 1, 8))
	require.Equal(t, 0, moveCursor(3, 1, 0))
}
