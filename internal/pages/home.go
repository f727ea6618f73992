package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookrecs/internal/bookapi"
	"github.com/five82/bookrecs/internal/books"
	"github.com/five82/bookrecs/internal/state"
)

// PopularShelfCount is how many books the Home popular shelf requests.
const PopularShelfCount = bookapi.DefaultPopularCount

// PopularMsg carries the result of a popular-shelf fetch.
type PopularMsg struct {
	Gen   uint64
	Books []books.Book
	Err   error
}

// Home shows the curated trending catalog and, on request, a shelf of
// popular books from the backend.
type Home struct {
	deps  Deps
	scope *state.Scope

	trending []books.Book
	Popular  state.Load[[]books.Book]
}

// NewHome builds the Home controller.
func NewHome(deps Deps) *Home {
	return &Home{
		deps:     deps,
		scope:    state.NewScope(deps.parent()),
		trending: books.Trending(),
	}
}

// Trending returns the curated catalog. No request is ever made for it.
func (h *Home) Trending() []books.Book { return h.trending }

// Enter is called when Home becomes visible.
func (h *Home) Enter() tea.Cmd {
	h.scope.Renew()
	return nil
}

// Leave abandons the popular fetch if one is in flight.
func (h *Home) Leave() {
	h.scope.Cancel()
	h.Popular.Abort()
}

// LoadPopular fetches the popular shelf. A second call while one is in
// flight is ignored.
func (h *Home) LoadPopular() tea.Cmd {
	if h.Popular.IsLoading() {
		return nil
	}
	ctx := h.scope.Context()
	gen := h.scope.Generation()
	h.Popular.Begin()

	api := h.deps.API
	return func() tea.Msg {
		return fetchPopular(ctx, api, gen)
	}
}

func fetchPopular(ctx context.Context, api bookapi.Fetcher, gen uint64) PopularMsg {
	resp, err := api.Popular(ctx, PopularShelfCount)
	if err != nil {
		return PopularMsg{Gen: gen, Err: err}
	}
	return PopularMsg{Gen: gen, Books: books.FromWireList(resp.Recommendations)}
}

// ApplyPopular folds a popular-shelf result into state. Failures are logged
// only.
func (h *Home) ApplyPopular(msg PopularMsg) {
	if !h.scope.Current(msg.Gen) {
		return
	}
	if canceled(msg.Err) {
		h.Popular.Abort()
		return
	}
	if msg.Err != nil {
		h.deps.Log.Warn().Err(msg.Err).Msg("popular shelf fetch failed")
		h.Popular.Fail(msg.Err, "")
		return
	}
	h.Popular.Succeed(msg.Books)
}
