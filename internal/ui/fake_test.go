package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/five82/bookrecs/internal/bookapi"
	"github.com/five82/bookrecs/internal/pages"
	"github.com/five82/bookrecs/internal/state"
)

// stubAPI answers every call from fixed values and records what was asked.
type stubAPI struct {
	mu    sync.Mutex
	calls []string

	search     bookapi.SearchResponse
	book       bookapi.WireBook
	bookErr    error
	similar    bookapi.RecommendationsResponse
	popular    bookapi.RecommendationsResponse
	randomUser string
	userRecs   bookapi.RecommendationsResponse
	ratings    bookapi.RatingsResponse
	svd        bookapi.RecommendationsResponse
	genre      bookapi.RecommendationsResponse
	genres     []string
}

var _ bookapi.Fetcher = (*stubAPI)(nil)

func (s *stubAPI) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubAPI) called(call string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (s *stubAPI) Popular(_ context.Context, _ int) (*bookapi.RecommendationsResponse, error) {
	s.record("popular")
	return &s.popular, nil
}

func (s *stubAPI) Trending(_ context.Context, _ int) (*bookapi.RecommendationsResponse, error) {
	s.record("trending")
	return &bookapi.RecommendationsResponse{}, nil
}

func (s *stubAPI) Search(_ context.Context, query string) (*bookapi.SearchResponse, error) {
	s.record("search:" + query)
	return &s.search, nil
}

func (s *stubAPI) Book(_ context.Context, isbn string) (*bookapi.WireBook, error) {
	s.record("book:" + isbn)
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return &s.book, nil
}

func (s *stubAPI) Similar(_ context.Context, isbn string, _ int) (*bookapi.RecommendationsResponse, error) {
	s.record("similar:" + isbn)
	return &s.similar, nil
}

func (s *stubAPI) UserRecommendations(_ context.Context, userID string, _ int) (*bookapi.RecommendationsResponse, error) {
	s.record("user:" + userID)
	return &s.userRecs, nil
}

func (s *stubAPI) RandomUser(_ context.Context) (*bookapi.RandomUserResponse, error) {
	s.record("random-user")
	return &bookapi.RandomUserResponse{UserID: bookapi.FlexString(s.randomUser)}, nil
}

func (s *stubAPI) SVDRecommendations(_ context.Context, userID string, _ int) (*bookapi.RecommendationsResponse, error) {
	s.record("svd:" + userID)
	return &s.svd, nil
}

func (s *stubAPI) UserRatings(_ context.Context, userID string) (*bookapi.RatingsResponse, error) {
	s.record("ratings:" + userID)
	return &s.ratings, nil
}

func (s *stubAPI) GenreRecommendations(_ context.Context, genre string) (*bookapi.RecommendationsResponse, error) {
	s.record("genre:" + genre)
	return &s.genre, nil
}

func (s *stubAPI) Genres(_ context.Context) (*bookapi.GenresResponse, error) {
	s.record("genres")
	return &bookapi.GenresResponse{Genres: s.genres}, nil
}

func (s *stubAPI) Status(_ context.Context) (*bookapi.StatusResponse, error) {
	s.record("status")
	return &bookapi.StatusResponse{Status: "ok"}, nil
}

// newTestModel builds a sized model over api.
func newTestModel(t *testing.T, api *stubAPI, opts Options) Model {
	t.Helper()
	opts.API = api
	opts.Logger = zerolog.Nop()
	if opts.PrefsPath == "" {
		opts.PrefsPath = t.TempDir() + "/prefs.toml"
	}
	if opts.Store == nil {
		opts.Store = &state.StatusStore{}
	}
	m := New(opts)
	return apply(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

// apply feeds msg to m and then every message its commands produce.
func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "update loop did not settle")
		next := queue[0]
		queue = queue[1:]

		updated, cmd := m.Update(next)
		m = updated.(Model)
		for _, out := range collect(cmd) {
			if relevant(out) {
				queue = append(queue, out)
			}
		}
	}
	return m
}

// collect runs cmd, flattening batches. Commands that do not answer
// promptly (timers, cursor blinks) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func relevant(msg tea.Msg) bool {
	switch msg.(type) {
	case navigateMsg, snapshotMsg, logsMsg,
		pages.PopularMsg, pages.SearchMsg, pages.BookMsg,
		pages.RandomUserMsg, pages.UserDataMsg, pages.SVDMsg,
		pages.GenreMsg, pages.GenresMsg:
		return true
	}
	return false
}
