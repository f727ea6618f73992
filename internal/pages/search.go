package pages

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bookrecs/internal/bookapi"
	"github.com/five82/bookrecs/internal/books"
	"github.com/five82/bookrecs/internal/state"
)

// SearchFailedMessage is shown when a search fails without a server message.
const SearchFailedMessage = "Failed to search books. Please try again."

// Suggestions are the quick-pick queries offered under the search box.
var Suggestions = []string{
	"Harry Potter",
	"Stephen King",
	"Romance",
	"Mystery",
	"Science Fiction",
	"Fantasy",
	"Biography",
	"Thriller",
}

// SearchMsg carries the result of one search.
type SearchMsg struct {
	Gen   uint64
	Query string
	Books []books.Book
	Err   error
}

// Search runs free-text searches. Each submitted query replaces any search
// still in flight.
type Search struct {
	deps  Deps
	scope *state.Scope

	query    string // last submitted
	shown    string // query the current results belong to
	searched bool
	Results  state.Load[[]books.Book]
	Banner   Banner
}

// NewSearch builds the Search controller.
func NewSearch(deps Deps) *Search {
	return &Search{deps: deps, scope: state.NewScope(deps.parent())}
}

// Enter is called when Search becomes visible. Prior results stay on screen.
func (s *Search) Enter() tea.Cmd { return nil }

// Leave abandons a search in flight.
func (s *Search) Leave() {
	s.scope.Cancel()
	s.Results.Abort()
}

// Query returns the most recently submitted query.
func (s *Search) Query() string { return s.query }

// Searched reports whether any search has completed successfully.
func (s *Search) Searched() bool { return s.searched }

// Submit starts a search for query. Blank queries are ignored: no request,
// no error.
func (s *Search) Submit(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ctx, gen := s.scope.Renew()
	s.query = query
	s.Results.Begin()
	s.Banner.Dismiss()

	api := s.deps.API
	return func() tea.Msg {
		return runSearch(ctx, api, gen, query)
	}
}

// Suggest runs the quick-pick suggestion at index i.
func (s *Search) Suggest(i int) tea.Cmd {
	if i < 0 || i >= len(Suggestions) {
		return nil
	}
	return s.Submit(Suggestions[i])
}

func runSearch(ctx context.Context, api bookapi.Fetcher, gen uint64, query string) SearchMsg {
	resp, err := api.Search(ctx, query)
	if err != nil {
		return SearchMsg{Gen: gen, Query: query, Err: err}
	}
	return SearchMsg{Gen: gen, Query: query, Books: books.FromWireList(resp.Results)}
}

// Apply folds a search result into state.
func (s *Search) Apply(msg SearchMsg) {
	if !s.scope.Current(msg.Gen) {
		return
	}
	if canceled(msg.Err) {
		s.Results.Abort()
		return
	}
	if msg.Err != nil {
		s.deps.Log.Warn().Err(msg.Err).Str("query", msg.Query).Msg("search failed")
		text := failureMessage(msg.Err, SearchFailedMessage)
		s.Results.Fail(msg.Err, text)
		s.Banner.Set(text)
		return
	}
	s.Results.Succeed(msg.Books)
	s.shown = msg.Query
	s.searched = true
}

// Heading returns the results header, or "" when none should be shown.
func (s *Search) Heading() string {
	if !s.searched || s.Results.IsLoading() {
		return ""
	}
	if n := len(s.Results.Data()); n > 0 {
		return fmt.Sprintf("Found %d books for %q", n, s.shown)
	}
	return fmt.Sprintf("No books found for %q", s.shown)
}
