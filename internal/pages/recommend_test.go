package pages

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/bookrecs/internal/state"
)

const (
	recsBody    = `{"user_id":12345,"recommendations":[{"isbn":"1","recommendation_score":4.5},{"isbn":"2"},{"isbn":"3"}]}`
	ratingsBody = `{"user_id":"12345","ratings":[
		{"user_id":12345,"isbn":"a","rating":9},
		{"user_id":12345,"isbn":"b","rating":8},
		{"user_id":12345,"isbn":"c","rating":4}]}`
)

// deliver routes msgs to r the way the root model does and returns any
// follow-up commands.
func deliver(r *Recommend, msgs ...tea.Msg) []tea.Cmd {
	var next []tea.Cmd
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case RandomUserMsg:
			if cmd := r.ApplyRandomUser(msg); cmd != nil {
				next = append(next, cmd)
			}
		case UserDataMsg:
			r.ApplyUserData(msg)
		case SVDMsg:
			r.ApplySVD(msg)
		case GenreMsg:
			r.ApplyGenre(msg)
		case GenresMsg:
			r.ApplyGenres(msg)
		}
	}
	return next
}

func settle(t *testing.T, r *Recommend, cmd tea.Cmd) {
	t.Helper()
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		c := pending[0]
		pending = pending[1:]
		pending = append(pending, deliver(r, run(t, c)...)...)
	}
}

func TestRecommend_EntryLoadsRandomUserThenListsAndGenres(t *testing.T) {
	api := newFakeAPI()
	api.respond("random-user", `{"user_id":12345}`)
	api.respond("recommend/user/12345?count=12", recsBody)
	api.respond("user/12345/ratings", ratingsBody)
	api.respond("genres", `{"genres":["Fantasy"," ","Mystery"]}`)
	r := NewRecommend(testDeps(api))

	settle(t, r, r.Enter())

	assert.ElementsMatch(t, []string{
		"random-user", "genres", "recommend/user/12345?count=12", "user/12345/ratings",
	}, api.Calls())
	assert.Equal(t, "12345", r.UserID())
	assert.Equal(t, state.Loaded, r.RandomUser.Phase())
	assert.Len(t, r.UserRecs.Data(), 3)
	assert.Len(t, r.Ratings.Data(), 3)
	assert.Equal(t, []string{"Fantasy", "Mystery"}, r.Genres.Data())
	assert.Empty(t, r.Banner.Text())
	assert.Zero(t, api.count("recommend/svd/12345?count=12"), "SVD waits for its tab")

	// Re-entering keeps the session.
	assert.Nil(t, r.Enter())
}

func TestRecommend_RandomUserFailureSetsBanner(t *testing.T) {
	api := newFakeAPI()
	api.fail("random-user", errNetwork)
	api.fail("genres", errNetwork)
	r := NewRecommend(testDeps(api))

	settle(t, r, r.Enter())

	assert.Equal(t, RandomUserFailedMessage, r.Banner.Text())
	assert.Equal(t, state.Failed, r.RandomUser.Phase())
	assert.Equal(t, state.Failed, r.Genres.Phase(), "genre list failure is silent")
	assert.Empty(t, r.UserID())

	r.Banner.Dismiss()
	assert.Empty(t, r.Banner.Text())
}

func TestRecommend_BothFlagsClearWhenOneFails(t *testing.T) {
	for name, setup := range map[string]func(*fakeAPI){
		"recs fail": func(api *fakeAPI) {
			api.fail("recommend/user/7?count=12", errNetwork)
			api.respond("user/7/ratings", ratingsBody)
		},
		"ratings fail": func(api *fakeAPI) {
			api.respond("recommend/user/7?count=12", recsBody)
			api.fail("user/7/ratings", errNetwork)
		},
	} {
		t.Run(name, func(t *testing.T) {
			api := newFakeAPI()
			setup(api)
			r := NewRecommend(testDeps(api))

			cmd := r.SubmitUser("7")
			assert.True(t, r.UserRecs.IsLoading())
			assert.True(t, r.Ratings.IsLoading())

			settle(t, r, cmd)

			assert.False(t, r.UserRecs.IsLoading())
			assert.False(t, r.Ratings.IsLoading())
		})
	}
}

func TestRecommend_UserRecsFailurePrefersServerMessage(t *testing.T) {
	api := newFakeAPI()
	api.fail("recommend/user/1?count=12", serverError(404, "User 1 not found"))
	api.fail("recommend/user/2?count=12", errNetwork)
	api.fail("user/1/ratings", errNetwork)
	r := NewRecommend(testDeps(api))

	settle(t, r, r.SubmitUser("1"))
	assert.Equal(t, "User 1 not found", r.Banner.Text())

	settle(t, r, r.SubmitUser("2"))
	assert.Equal(t, UserRecsFailedMessage, r.Banner.Text())
}

func TestRecommend_SubmitUser12345(t *testing.T) {
	api := newFakeAPI()
	api.respond("recommend/user/12345?count=12", recsBody)
	api.respond("user/12345/ratings", ratingsBody)
	r := NewRecommend(testDeps(api))

	settle(t, r, r.SubmitUser(" 12345 "))

	assert.ElementsMatch(t, []string{"recommend/user/12345?count=12", "user/12345/ratings"}, api.Calls())
	assert.Equal(t, TabUser, r.Tab)
	assert.Equal(t, len(r.UserRecs.Data()), r.TabCount(TabUser))
	assert.Equal(t, 3, r.TabCount(TabUser))
	assert.Equal(t, 3, r.TabCount(TabRatings))
	assert.Equal(t, 0, r.TabCount(TabSVD))

	stats := r.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.InDelta(t, 7.0, stats.Average, 1e-9)
	assert.Equal(t, 2, stats.High)

	ratingBooks := r.TabBooks(TabRatings)
	require.Len(t, ratingBooks, 3)
	require.NotNil(t, ratingBooks[0].UserRating)
	assert.Equal(t, 9.0, *ratingBooks[0].UserRating)
}

func TestRecommend_BlankSubmissionsIgnored(t *testing.T) {
	api := newFakeAPI()
	r := NewRecommend(testDeps(api))

	assert.Nil(t, r.SubmitUser("  "))
	assert.Nil(t, r.SubmitGenre(""))
	assert.Nil(t, r.SelectGenre(0))
	assert.Empty(t, api.Calls())
}

func TestRecommend_SVDLoadsOnceAndResetsForNewUser(t *testing.T) {
	api := newFakeAPI()
	api.respond("recommend/svd/5?count=12", `{"recommendations":[{"isbn":"9","predicted_rating":8.7}]}`)
	api.respond("recommend/svd/6?count=12", `{"recommendations":[]}`)
	r := NewRecommend(testDeps(api))

	assert.Nil(t, r.SelectTab(TabSVD), "no user yet")
	r.Tab = TabUser

	settle(t, r, r.SubmitUser("5"))
	settle(t, r, r.SelectTab(TabSVD))
	assert.Equal(t, 1, api.count("recommend/svd/5?count=12"))
	assert.Len(t, r.SVD.Data(), 1)

	assert.Nil(t, r.SelectTab(TabUser))
	assert.Nil(t, r.SelectTab(TabSVD), "second visit reuses loaded predictions")
	assert.Equal(t, 1, api.count("recommend/svd/5?count=12"))

	// New user while on the AI tab reloads predictions for that user.
	settle(t, r, r.SubmitUser("6"))
	assert.Equal(t, 1, api.count("recommend/svd/6?count=12"))
	assert.Equal(t, state.Loaded, r.SVD.Phase())
	assert.Empty(t, r.SVD.Data())
}

func TestRecommend_SVDFailureSetsBanner(t *testing.T) {
	api := newFakeAPI()
	api.fail("recommend/svd/5?count=12", errNetwork)
	r := NewRecommend(testDeps(api))
	settle(t, r, r.SubmitUser("5"))

	settle(t, r, r.SelectTab(TabSVD))
	assert.Equal(t, SVDFailedMessage, r.Banner.Text())
	assert.False(t, r.SVD.IsLoading())

	// A failed load is retried on the next visit.
	r.SelectTab(TabUser)
	assert.NotNil(t, r.SelectTab(TabSVD))
}

func TestRecommend_GenreSelection(t *testing.T) {
	api := newFakeAPI()
	api.respond("genres", `{"genres":["Fantasy","Science Fiction"]}`)
	api.respond("recommend/genre/Science Fiction", `{"genre":"Science Fiction","recommendations":[{"isbn":"1","average_rating":8.1}]}`)
	api.fail("recommend/genre/Nope", serverError(404, "Genre not found"))
	api.fail("random-user", errNetwork)
	r := NewRecommend(testDeps(api))
	settle(t, r, r.Enter())
	r.Banner.Dismiss()
	r.SetMode(ModeGenre)

	settle(t, r, r.SelectGenre(1))
	assert.Equal(t, "Science Fiction", r.Genre())
	assert.Len(t, r.GenreRecs.Data(), 1)
	assert.Empty(t, r.Banner.Text())

	settle(t, r, r.SubmitGenre("Nope"))
	assert.Equal(t, GenreFailedMessage, r.Banner.Text())
	assert.Len(t, r.GenreRecs.Data(), 1, "errors do not wipe results")
}

func TestRecommend_StaleUserDataDropped(t *testing.T) {
	api := newFakeAPI()
	api.respond("recommend/user/1?count=12", recsBody)
	api.respond("recommend/user/2?count=12", `{"recommendations":[{"isbn":"x"}]}`)
	r := NewRecommend(testDeps(api))

	first := r.SubmitUser("1")
	second := r.SubmitUser("2")
	settle(t, r, second)
	settle(t, r, first)

	assert.Equal(t, "2", r.UserID())
	assert.Len(t, r.UserRecs.Data(), 1)
}

func TestRecommend_LeaveAndReturnReloadsMissingLists(t *testing.T) {
	api := newFakeAPI()
	api.respond("random-user", `{"user_id":"42"}`)
	api.respond("genres", `{"genres":["Fantasy"]}`)
	release := api.hold("recommend/user/42?count=12")
	defer release()
	r := NewRecommend(testDeps(api))

	msgs := run(t, r.Enter())
	follow := deliver(r, msgs...)
	require.Len(t, follow, 1)

	r.Leave()
	assert.False(t, r.UserRecs.IsLoading())
	assert.False(t, r.Ratings.IsLoading())
	deliver(r, run(t, follow[0])...)

	api.respond("recommend/user/42?count=12", recsBody)
	api.block = map[string]chan struct{}{}
	settle(t, r, r.Enter())
	assert.Len(t, r.UserRecs.Data(), 3)
}

func TestRecommend_LeaveAndReturnReloadsSVD(t *testing.T) {
	api := newFakeAPI()
	api.respond("recommend/user/5?count=12", recsBody)
	api.respond("user/5/ratings", ratingsBody)
	api.respond("recommend/svd/5?count=12", `{"recommendations":[{"isbn":"9","predicted_rating":8.7}]}`)
	api.respond("genres", `{"genres":["Fantasy"]}`)
	r := NewRecommend(testDeps(api))
	settle(t, r, r.SubmitUser("5"))

	release := api.hold("recommend/svd/5?count=12")
	pending := r.SelectTab(TabSVD)
	require.NotNil(t, pending)
	r.Leave()
	release()
	deliver(r, run(t, pending)...)
	assert.Equal(t, state.Idle, r.SVD.Phase(), "abandoned result is dropped")

	settle(t, r, r.Enter())
	assert.Equal(t, 2, api.count("recommend/svd/5?count=12"))
	assert.Equal(t, state.Loaded, r.SVD.Phase())
	assert.Len(t, r.SVD.Data(), 1)
}

func TestRecommend_LeaveAndReturnReloadsGenre(t *testing.T) {
	api := newFakeAPI()
	api.respond("genres", `{"genres":["Fantasy"]}`)
	api.respond("recommend/genre/Fantasy", `{"genre":"Fantasy","recommendations":[{"isbn":"1"},{"isbn":"2"}]}`)
	api.fail("random-user", errNetwork)
	r := NewRecommend(testDeps(api))
	settle(t, r, r.Enter())
	r.SetMode(ModeGenre)

	release := api.hold("recommend/genre/Fantasy")
	pending := r.SubmitGenre("Fantasy")
	r.Leave()
	release()
	deliver(r, run(t, pending)...)
	assert.Equal(t, state.Idle, r.GenreRecs.Phase())

	settle(t, r, r.Enter())
	assert.Equal(t, 2, api.count("recommend/genre/Fantasy"))
	assert.Equal(t, state.Loaded, r.GenreRecs.Phase())
	assert.Len(t, r.GenreRecs.Data(), 2)
}
