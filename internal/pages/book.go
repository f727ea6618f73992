package pages

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/five82/bookrecs/internal/bookapi"
	"github.com/five82/bookrecs/internal/books"
	"github.com/five82/bookrecs/internal/state"
)

const (
	// BookNotFoundMessage is shown when the detail fetch fails.
	BookNotFoundMessage = "Failed to load book details."

	// SimilarCount is how many similar books the detail page requests.
	SimilarCount = 12
)

// BookMsg carries the joined detail and similar-books results for one ISBN.
type BookMsg struct {
	Gen        uint64
	ISBN       string
	Detail     books.Book
	DetailErr  error
	Similar    []books.Book
	SimilarErr error
}

// Book shows one book and the books readers also enjoyed.
type Book struct {
	deps  Deps
	scope *state.Scope

	isbn    string
	Detail  state.Load[books.Book]
	Similar state.Load[[]books.Book]
}

// NewBook builds the Book controller.
func NewBook(deps Deps) *Book {
	return &Book{deps: deps, scope: state.NewScope(deps.parent())}
}

// ISBN returns the identifier currently shown.
func (b *Book) ISBN() string { return b.isbn }

// Open loads isbn, abandoning whatever the page was loading before. Nothing
// from a previously shown book carries over.
func (b *Book) Open(isbn string) tea.Cmd {
	isbn = strings.TrimSpace(isbn)
	ctx, gen := b.scope.Renew()
	b.isbn = isbn
	b.Detail.Reset()
	b.Similar.Reset()

	if isbn == "" {
		b.Detail.Fail(nil, BookNotFoundMessage)
		return nil
	}

	b.Detail.Begin()
	b.Similar.Begin()

	api := b.deps.API
	return func() tea.Msg {
		return fetchBook(ctx, api, gen, isbn)
	}
}

// Leave abandons in-flight fetches.
func (b *Book) Leave() {
	b.scope.Cancel()
	b.Detail.Abort()
	b.Similar.Abort()
}

// fetchBook issues the detail and similar requests concurrently. A detail
// failure cancels the similar request since its result would be hidden.
func fetchBook(ctx context.Context, api bookapi.Fetcher, gen uint64, isbn string) BookMsg {
	msg := BookMsg{Gen: gen, ISBN: isbn}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := api.Book(gctx, isbn)
		if err != nil {
			return err
		}
		msg.Detail = books.FromWire(*resp)
		return nil
	})
	g.Go(func() error {
		resp, err := api.Similar(gctx, isbn, SimilarCount)
		if err != nil {
			msg.SimilarErr = err
			return nil
		}
		msg.Similar = books.FromWireList(resp.Recommendations)
		return nil
	})
	msg.DetailErr = g.Wait()
	return msg
}

// Apply folds a joined result into state.
func (b *Book) Apply(msg BookMsg) {
	if !b.scope.Current(msg.Gen) || msg.ISBN != b.isbn {
		return
	}
	if canceled(msg.DetailErr) {
		b.Detail.Abort()
		b.Similar.Abort()
		return
	}
	if msg.DetailErr != nil {
		b.deps.Log.Warn().Err(msg.DetailErr).Str("isbn", msg.ISBN).Msg("book detail fetch failed")
		b.Detail.Fail(msg.DetailErr, BookNotFoundMessage)
		b.Similar.Abort()
		return
	}
	b.Detail.Succeed(msg.Detail)

	if msg.SimilarErr != nil {
		b.deps.Log.Warn().Err(msg.SimilarErr).Str("isbn", msg.ISBN).Msg("similar books fetch failed")
		b.Similar.Fail(msg.SimilarErr, "")
		return
	}
	b.Similar.Succeed(msg.Similar)
}

// NotFound reports whether the page should render its not-found state.
func (b *Book) NotFound() bool {
	return b.Detail.Phase() == state.Failed
}

// ShowSimilar reports whether the similar-books section is rendered. It is
// never shown for a book that failed to load.
func (b *Book) ShowSimilar() bool {
	if b.Detail.Phase() != state.Loaded {
		return false
	}
	return len(b.Similar.Data()) > 0
}
