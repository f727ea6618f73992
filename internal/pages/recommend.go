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

// Fallback banner texts for Recommend failures.
const (
	RandomUserFailedMessage = "Failed to fetch a random user"
	UserRecsFailedMessage   = "Failed to load user recommendations"
	SVDFailedMessage        = "Failed to load SVD recommendations"
	GenreFailedMessage      = "Failed to load genre recommendations"
)

// RecommendCount is how many books each user-based list requests.
const RecommendCount = 12

// Mode selects the Recommend page section.
type Mode int

const (
	ModeUser Mode = iota
	ModeGenre
)

func (m Mode) String() string {
	if m == ModeGenre {
		return "Genre-Based"
	}
	return "User-Based"
}

// Tab selects the list shown in user mode.
type Tab int

const (
	TabUser Tab = iota
	TabSVD
	TabRatings
)

// Tabs lists the user-mode tabs in display order.
var Tabs = []Tab{TabUser, TabSVD, TabRatings}

func (t Tab) String() string {
	switch t {
	case TabSVD:
		return "AI Predictions"
	case TabRatings:
		return "User's Ratings"
	default:
		return "Collaborative Filtering"
	}
}

// RandomUserMsg carries the result of a random-user fetch.
type RandomUserMsg struct {
	Gen    uint64
	UserID string
	Err    error
}

// UserDataMsg carries the jointly fetched recommendations and ratings for
// one user. Each half succeeds or fails on its own.
type UserDataMsg struct {
	Gen        uint64
	UserID     string
	Recs       []books.Book
	RecsErr    error
	Ratings    []books.Rating
	RatingsErr error
}

// SVDMsg carries SVD predictions for one user.
type SVDMsg struct {
	Gen    uint64
	UserID string
	Books  []books.Book
	Err    error
}

// GenreMsg carries top books for one genre.
type GenreMsg struct {
	Gen   uint64
	Genre string
	Books []books.Book
	Err   error
}

// GenresMsg carries the list of known genres.
type GenresMsg struct {
	Gen    uint64
	Genres []string
	Err    error
}

// Recommend drives the user-based and genre-based recommendation page.
type Recommend struct {
	deps Deps

	// Requests are grouped by what they belong to so that, say, a new user
	// id abandons that user's lists without touching the genre list.
	pageScope  *state.Scope
	userScope  *state.Scope
	genreScope *state.Scope

	Mode  Mode
	Tab   Tab
	user  string
	genre string

	RandomUser state.Load[string]
	UserRecs   state.Load[[]books.Book]
	Ratings    state.Load[[]books.Rating]
	SVD        state.Load[[]books.Book]
	GenreRecs  state.Load[[]books.Book]
	Genres     state.Load[[]string]

	Banner Banner
}

// NewRecommend builds the Recommend controller.
func NewRecommend(deps Deps) *Recommend {
	parent := deps.parent()
	return &Recommend{
		deps:       deps,
		pageScope:  state.NewScope(parent),
		userScope:  state.NewScope(parent),
		genreScope: state.NewScope(parent),
	}
}

// UserID returns the user whose lists are shown.
func (r *Recommend) UserID() string { return r.user }

// Genre returns the genre whose list is shown.
func (r *Recommend) Genre() string { return r.genre }

// Enter is called when the page becomes visible. The first visit picks a
// random user and loads the genre list; later visits only fill in what is
// missing, including an SVD or genre list abandoned by Leave.
func (r *Recommend) Enter() tea.Cmd {
	var cmds []tea.Cmd
	switch {
	case r.user == "" && !r.RandomUser.IsLoading():
		cmds = append(cmds, r.RollRandomUser())
	case r.user != "" && r.UserRecs.Phase() == state.Idle && r.Ratings.Phase() == state.Idle:
		// Left before the lists arrived.
		cmds = append(cmds, r.loadUser(r.user))
	}
	if r.Tab == TabSVD {
		cmds = append(cmds, r.loadSVD())
	}
	if r.genre != "" && r.GenreRecs.Phase() == state.Idle {
		cmds = append(cmds, r.SubmitGenre(r.genre))
	}
	if !r.Genres.HasData() && !r.Genres.IsLoading() {
		cmds = append(cmds, r.loadGenres())
	}
	return tea.Batch(cmds...)
}

// Leave abandons everything in flight.
func (r *Recommend) Leave() {
	r.pageScope.Cancel()
	r.userScope.Cancel()
	r.genreScope.Cancel()
	r.RandomUser.Abort()
	r.UserRecs.Abort()
	r.Ratings.Abort()
	r.SVD.Abort()
	r.GenreRecs.Abort()
	r.Genres.Abort()
}

// SetMode switches between the user and genre sections.
func (r *Recommend) SetMode(m Mode) { r.Mode = m }

// RollRandomUser asks the backend for a random user and, once it arrives,
// loads that user's lists.
func (r *Recommend) RollRandomUser() tea.Cmd {
	ctx, gen := r.userScope.Renew()
	r.RandomUser.Begin()
	r.Banner.Dismiss()

	api := r.deps.API
	return func() tea.Msg {
		resp, err := api.RandomUser(ctx)
		if err != nil {
			return RandomUserMsg{Gen: gen, Err: err}
		}
		return RandomUserMsg{Gen: gen, UserID: resp.UserID.String()}
	}
}

// ApplyRandomUser records the picked user and returns the command loading
// their recommendations and ratings.
func (r *Recommend) ApplyRandomUser(msg RandomUserMsg) tea.Cmd {
	if !r.userScope.Current(msg.Gen) {
		return nil
	}
	if canceled(msg.Err) {
		r.RandomUser.Abort()
		return nil
	}
	if msg.Err != nil {
		r.deps.Log.Warn().Err(msg.Err).Msg("random user fetch failed")
		r.RandomUser.Fail(msg.Err, RandomUserFailedMessage)
		r.Banner.Set(RandomUserFailedMessage)
		return nil
	}
	r.RandomUser.Succeed(msg.UserID)
	return r.loadUser(msg.UserID)
}

// SubmitUser loads lists for userID. Blank ids are ignored.
func (r *Recommend) SubmitUser(userID string) tea.Cmd {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil
	}
	r.userScope.Renew()
	r.RandomUser.Abort()
	r.Banner.Dismiss()
	return r.loadUser(userID)
}

// loadUser fetches recommendations and ratings for userID concurrently. The
// SVD list is reset so it reloads for the new user when its tab is shown.
func (r *Recommend) loadUser(userID string) tea.Cmd {
	ctx := r.userScope.Context()
	gen := r.userScope.Generation()

	r.user = userID
	r.SVD.Reset()
	r.UserRecs.Begin()
	r.Ratings.Begin()

	api := r.deps.API
	cmds := []tea.Cmd{func() tea.Msg {
		return fetchUserData(ctx, api, gen, userID)
	}}
	if r.Tab == TabSVD {
		cmds = append(cmds, r.loadSVD())
	}
	return tea.Batch(cmds...)
}

func fetchUserData(ctx context.Context, api bookapi.Fetcher, gen uint64, userID string) UserDataMsg {
	msg := UserDataMsg{Gen: gen, UserID: userID}

	var g errgroup.Group
	g.Go(func() error {
		resp, err := api.UserRecommendations(ctx, userID, RecommendCount)
		if err != nil {
			msg.RecsErr = err
			return nil
		}
		msg.Recs = books.FromWireList(resp.Recommendations)
		return nil
	})
	g.Go(func() error {
		resp, err := api.UserRatings(ctx, userID)
		if err != nil {
			msg.RatingsErr = err
			return nil
		}
		msg.Ratings = books.FromWireRatings(resp.Ratings)
		return nil
	})
	_ = g.Wait()
	return msg
}

// ApplyUserData folds a joined recommendations/ratings result into state.
// Both operations leave Loading whatever the other's outcome.
func (r *Recommend) ApplyUserData(msg UserDataMsg) {
	if !r.userScope.Current(msg.Gen) || msg.UserID != r.user {
		return
	}

	switch {
	case canceled(msg.RecsErr):
		r.UserRecs.Abort()
	case msg.RecsErr != nil:
		r.deps.Log.Warn().Err(msg.RecsErr).Str("user_id", msg.UserID).Msg("user recommendations fetch failed")
		text := failureMessage(msg.RecsErr, UserRecsFailedMessage)
		r.UserRecs.Fail(msg.RecsErr, text)
		r.Banner.Set(text)
	default:
		r.UserRecs.Succeed(msg.Recs)
	}

	switch {
	case canceled(msg.RatingsErr):
		r.Ratings.Abort()
	case msg.RatingsErr != nil:
		r.deps.Log.Warn().Err(msg.RatingsErr).Str("user_id", msg.UserID).Msg("user ratings fetch failed")
		r.Ratings.Fail(msg.RatingsErr, "")
	default:
		r.Ratings.Succeed(msg.Ratings)
	}
}

// SelectTab shows tab t. Showing the AI tab loads SVD predictions once per
// user; later visits reuse them.
func (r *Recommend) SelectTab(t Tab) tea.Cmd {
	r.Tab = t
	if t != TabSVD {
		return nil
	}
	return r.loadSVD()
}

func (r *Recommend) loadSVD() tea.Cmd {
	if r.user == "" || r.SVD.HasData() || r.SVD.IsLoading() {
		return nil
	}
	ctx := r.userScope.Context()
	gen := r.userScope.Generation()
	userID := r.user
	r.SVD.Begin()

	api := r.deps.API
	return func() tea.Msg {
		resp, err := api.SVDRecommendations(ctx, userID, RecommendCount)
		if err != nil {
			return SVDMsg{Gen: gen, UserID: userID, Err: err}
		}
		return SVDMsg{Gen: gen, UserID: userID, Books: books.FromWireList(resp.Recommendations)}
	}
}

// ApplySVD folds SVD predictions into state.
func (r *Recommend) ApplySVD(msg SVDMsg) {
	if !r.userScope.Current(msg.Gen) || msg.UserID != r.user {
		return
	}
	if canceled(msg.Err) {
		r.SVD.Abort()
		return
	}
	if msg.Err != nil {
		r.deps.Log.Warn().Err(msg.Err).Str("user_id", msg.UserID).Msg("svd recommendations fetch failed")
		text := failureMessage(msg.Err, SVDFailedMessage)
		r.SVD.Fail(msg.Err, text)
		r.Banner.Set(text)
		return
	}
	r.SVD.Succeed(msg.Books)
}

// SubmitGenre loads top books for genre. Blank genres are ignored.
func (r *Recommend) SubmitGenre(genre string) tea.Cmd {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil
	}
	ctx, gen := r.genreScope.Renew()
	r.genre = genre
	r.GenreRecs.Begin()
	r.Banner.Dismiss()

	api := r.deps.API
	return func() tea.Msg {
		resp, err := api.GenreRecommendations(ctx, genre)
		if err != nil {
			return GenreMsg{Gen: gen, Genre: genre, Err: err}
		}
		return GenreMsg{Gen: gen, Genre: genre, Books: books.FromWireList(resp.Recommendations)}
	}
}

// SelectGenre picks the i-th fetched genre and loads it immediately.
func (r *Recommend) SelectGenre(i int) tea.Cmd {
	list := r.Genres.Data()
	if i < 0 || i >= len(list) {
		return nil
	}
	return r.SubmitGenre(list[i])
}

// ApplyGenre folds a genre result into state.
func (r *Recommend) ApplyGenre(msg GenreMsg) {
	if !r.genreScope.Current(msg.Gen) || msg.Genre != r.genre {
		return
	}
	if canceled(msg.Err) {
		r.GenreRecs.Abort()
		return
	}
	if msg.Err != nil {
		r.deps.Log.Warn().Err(msg.Err).Str("genre", msg.Genre).Msg("genre recommendations fetch failed")
		r.GenreRecs.Fail(msg.Err, GenreFailedMessage)
		r.Banner.Set(GenreFailedMessage)
		return
	}
	r.GenreRecs.Succeed(msg.Books)
}

func (r *Recommend) loadGenres() tea.Cmd {
	ctx, gen := r.pageScope.Renew()
	r.Genres.Begin()

	api := r.deps.API
	return func() tea.Msg {
		resp, err := api.Genres(ctx)
		if err != nil {
			return GenresMsg{Gen: gen, Err: err}
		}
		genres := make([]string, 0, len(resp.Genres))
		for _, g := range resp.Genres {
			if g = strings.TrimSpace(g); g != "" {
				genres = append(genres, g)
			}
		}
		return GenresMsg{Gen: gen, Genres: genres}
	}
}

// ApplyGenres folds the genre list into state. Failures are logged only.
func (r *Recommend) ApplyGenres(msg GenresMsg) {
	if !r.pageScope.Current(msg.Gen) {
		return
	}
	if canceled(msg.Err) {
		r.Genres.Abort()
		return
	}
	if msg.Err != nil {
		r.deps.Log.Warn().Err(msg.Err).Msg("genre list fetch failed")
		r.Genres.Fail(msg.Err, "")
		return
	}
	r.Genres.Succeed(msg.Genres)
}

// Stats summarizes the current user's ratings.
func (r *Recommend) Stats() books.RatingStats {
	return books.Stats(r.Ratings.Data())
}

// TabBooks returns the books listed under tab t.
func (r *Recommend) TabBooks(t Tab) []books.Book {
	switch t {
	case TabSVD:
		return r.SVD.Data()
	case TabRatings:
		return books.RatingBooks(r.Ratings.Data())
	default:
		return r.UserRecs.Data()
	}
}

// TabCount returns the badge count shown on tab t.
func (r *Recommend) TabCount(t Tab) int {
	if t == TabRatings {
		return len(r.Ratings.Data())
	}
	return len(r.TabBooks(t))
}

// TabLoading reports whether tab t's list is in flight.
func (r *Recommend) TabLoading(t Tab) bool {
	switch t {
	case TabSVD:
		return r.SVD.IsLoading()
	case TabRatings:
		return r.Ratings.IsLoading()
	default:
		return r.UserRecs.IsLoading()
	}
}
