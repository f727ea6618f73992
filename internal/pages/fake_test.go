package pages

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/five82/bookrecs/internal/bookapi"
)

// fakeAPI records calls and answers from canned JSON bodies keyed by call.
type fakeAPI struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]string
	errs      map[string]error
	block     map[string]chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		responses: map[string]string{},
		errs:      map[string]error{},
		block:     map[string]chan struct{}{},
	}
}

func (f *fakeAPI) respond(call, body string) { f.responses[call] = body }

func (f *fakeAPI) fail(call string, err error) { f.errs[call] = err }

// hold makes call wait until the returned func is invoked or ctx ends.
func (f *fakeAPI) hold(call string) func() {
	ch := make(chan struct{})
	f.block[call] = ch
	return func() { close(ch) }
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) do(ctx context.Context, call string, dest any) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	ch := f.block[call]
	body, hasBody := f.responses[call]
	err := f.errs[call]
	f.mu.Unlock()

	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
			return &bookapi.Error{Kind: bookapi.KindCanceled, Path: call, Err: ctx.Err()}
		}
	}
	if err != nil {
		return err
	}
	if !hasBody {
		body = "{}"
	}
	return json.Unmarshal([]byte(body), dest)
}

func (f *fakeAPI) Popular(ctx context.Context, count int) (*bookapi.RecommendationsResponse, error) {
	var r bookapi.RecommendationsResponse
	return &r, f.do(ctx, fmt.Sprintf("popular?count=%d", count), &r)
}

func (f *fakeAPI) Trending(ctx context.Context, count int) (*bookapi.RecommendationsResponse, error) {
	var r bookapi.RecommendationsResponse
	return &r, f.do(ctx, fmt.Sprintf("trending?count=%d", count), &r)
}

func (f *fakeAPI) Search(ctx context.Context, q string) (*bookapi.SearchResponse, error) {
	var r bookapi.SearchResponse
	return &r, f.do(ctx, "search?q="+q, &r)
}

func (f *fakeAPI) Book(ctx context.Context, isbn string) (*bookapi.WireBook, error) {
	var r bookapi.WireBook
	return &r, f.do(ctx, "book/"+isbn, &r)
}

func (f *fakeAPI) Similar(ctx context.Context, isbn string, count int) (*bookapi.RecommendationsResponse, error) {
	var r bookapi.RecommendationsResponse
	return &r, f.do(ctx, fmt.Sprintf("similar/%s?count=%d", isbn, count), &r)
}

func (f *fakeAPI) UserRecommendations(ctx context.Context, userID string, count int) (*bookapi.RecommendationsResponse, error) {
	var r bookapi.RecommendationsResponse
	return &r, f.do(ctx, fmt.Sprintf("recommend/user/%s?count=%d", userID, count), &r)
}

func (f *fakeAPI) RandomUser(ctx context.Context) (*bookapi.RandomUserResponse, error) {
	var r bookapi.RandomUserResponse
	return &r, f.do(ctx, "random-user", &r)
}

func (f *fakeAPI) SVDRecommendations(ctx context.Context, userID string, count int) (*bookapi.RecommendationsResponse, error) {
	var r bookapi.RecommendationsResponse
	return &r, f.do(ctx, fmt.Sprintf("recommend/svd/%s?count=%d", userID, count), &r)
}

func (f *fakeAPI) UserRatings(ctx context.Context, userID string) (*bookapi.RatingsResponse, error) {
	var r bookapi.RatingsResponse
	return &r, f.do(ctx, "user/"+userID+"/ratings", &r)
}

func (f *fakeAPI) GenreRecommendations(ctx context.Context, genre string) (*bookapi.RecommendationsResponse, error) {
	var r bookapi.RecommendationsResponse
	return &r, f.do(ctx, "recommend/genre/"+genre, &r)
}

func (f *fakeAPI) Genres(ctx context.Context) (*bookapi.GenresResponse, error) {
	var r bookapi.GenresResponse
	return &r, f.do(ctx, "genres", &r)
}

func (f *fakeAPI) Status(ctx context.Context) (*bookapi.StatusResponse, error) {
	var r bookapi.StatusResponse
	return &r, f.do(ctx, "status", &r)
}

var _ bookapi.Fetcher = (*fakeAPI)(nil)

func testDeps(api bookapi.Fetcher) Deps {
	return Deps{API: api, Log: zerolog.Nop(), Context: context.Background()}
}

// run executes cmd and flattens batches into their messages.
func run(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// only runs cmd and requires exactly one message of type T.
func only[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	msgs := run(t, cmd)
	require.Len(t, msgs, 1)
	msg, ok := msgs[0].(T)
	require.True(t, ok, "message %T", msgs[0])
	return msg
}

func serverError(status int, message string) error {
	return &bookapi.Error{Kind: bookapi.KindServer, Status: status, Message: message}
}

var errNetwork = &bookapi.Error{Kind: bookapi.KindNetwork, Err: errors.New("connection refused")}
