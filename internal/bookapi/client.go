package bookapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Fetcher is the read-only surface of the recommendation API. *Client
// implements it; page controllers depend on it so tests can substitute fakes.
type Fetcher interface {
	Popular(ctx context.Context, count int) (*RecommendationsResponse, error)
	Trending(ctx context.Context, count int) (*RecommendationsResponse, error)
	Search(ctx context.Context, query string) (*SearchResponse, error)
	Book(ctx context.Context, isbn string) (*WireBook, error)
	Similar(ctx context.Context, isbn string, count int) (*RecommendationsResponse, error)
	UserRecommendations(ctx context.Context, userID string, count int) (*RecommendationsResponse, error)
	RandomUser(ctx context.Context) (*RandomUserResponse, error)
	SVDRecommendations(ctx context.Context, userID string, count int) (*RecommendationsResponse, error)
	UserRatings(ctx context.Context, userID string) (*RatingsResponse, error)
	GenreRecommendations(ctx context.Context, genre string) (*RecommendationsResponse, error)
	Genres(ctx context.Context) (*GenresResponse, error)
	Status(ctx context.Context) (*StatusResponse, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the recommendation HTTP API.
type Client struct {
	baseURL *url.URL
	http    *resty.Client
	log     zerolog.Logger
}

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:5000"

	// RequestTimeout bounds every call.
	RequestTimeout = 10 * time.Second

	// HeaderRequestID carries the per-request correlation id.
	HeaderRequestID = "X-Request-ID"

	defaultUserAgent = "bookrecs/0.1"
)

// Default result counts, matching what the web front end asked for.
const (
	DefaultPopularCount  = 10
	DefaultTrendingCount = 15
	DefaultSimilarCount  = 10
	DefaultUserCount     = 10
	DefaultSVDCount      = 10
)

// Option customizes a Client.
type Option func(*Client)

// WithLogger routes request diagnostics to l.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout overrides RequestTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// NewClient builds a Client for the API at baseURL ("host:port" is accepted
// and treated as http).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: base,
		log:     zerolog.Nop(),
	}
	c.http = resty.New().
		SetBaseURL(base.String()).
		SetTimeout(RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", defaultUserAgent).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	for _, opt := range opts {
		opt(c)
	}

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.SetHeader(HeaderRequestID, uuid.NewString())
		}
		return nil
	})
	c.http.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
		c.log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_id", req.Header.Get(HeaderRequestID)).
			Msg("api request")
		return nil
	})
	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if !resp.IsError() {
			return nil
		}
		var payload errorPayload
		_ = json.Unmarshal(resp.Body(), &payload)
		c.log.Warn().
			Str("url", resp.Request.URL).
			Str("request_id", resp.Request.Header.Get(HeaderRequestID)).
			Int("status", resp.StatusCode()).
			Str("error", payload.text()).
			Dur("elapsed", resp.Time()).
			Msg("api error response")
		return nil
	})
	c.http.OnError(func(req *resty.Request, err error) {
		if _, ok := err.(*resty.ResponseError); ok {
			return // already logged by the response hook
		}
		c.log.Warn().
			Err(err).
			Str("url", req.URL).
			Str("request_id", req.Header.Get(HeaderRequestID)).
			Msg("api request failed")
	})

	return c, nil
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Popular returns the most-rated books.
func (c *Client) Popular(ctx context.Context, count int) (*RecommendationsResponse, error) {
	var payload RecommendationsResponse
	err := c.get(ctx, "/recommend/popular", nil, countQuery(count, DefaultPopularCount), &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Trending returns currently trending books.
func (c *Client) Trending(ctx context.Context, count int) (*RecommendationsResponse, error) {
	var payload RecommendationsResponse
	err := c.get(ctx, "/recommend/trending", nil, countQuery(count, DefaultTrendingCount), &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Search runs a free-text search over titles, authors and ISBNs.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &Error{Kind: KindInvalid, Path: "/search", Message: "query is empty"}
	}
	var payload SearchResponse
	if err := c.get(ctx, "/search", nil, map[string]string{"q": query}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Book returns the detail record for isbn.
func (c *Client) Book(ctx context.Context, isbn string) (*WireBook, error) {
	params, err := required("/book/{isbn}", "isbn", isbn)
	if err != nil {
		return nil, err
	}
	var payload WireBook
	if err := c.get(ctx, "/book/{isbn}", params, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Similar returns books similar to isbn.
func (c *Client) Similar(ctx context.Context, isbn string, count int) (*RecommendationsResponse, error) {
	params, err := required("/recommend/similar/{isbn}", "isbn", isbn)
	if err != nil {
		return nil, err
	}
	var payload RecommendationsResponse
	if err := c.get(ctx, "/recommend/similar/{isbn}", params, countQuery(count, DefaultSimilarCount), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UserRecommendations returns collaborative-filtering recommendations.
func (c *Client) UserRecommendations(ctx context.Context, userID string, count int) (*RecommendationsResponse, error) {
	params, err := required("/recommend/user/{user_id}", "user_id", userID)
	if err != nil {
		return nil, err
	}
	var payload RecommendationsResponse
	if err := c.get(ctx, "/recommend/user/{user_id}", params, countQuery(count, DefaultUserCount), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RandomUser returns the id of an arbitrary user with ratings.
func (c *Client) RandomUser(ctx context.Context) (*RandomUserResponse, error) {
	var payload RandomUserResponse
	if err := c.get(ctx, "/random-user", nil, nil, &payload); err != nil {
		return nil, err
	}
	if payload.UserID == "" {
		return nil, &Error{Kind: KindDecode, Path: "/random-user", Err: fmt.Errorf("response has no user_id")}
	}
	return &payload, nil
}

// SVDRecommendations returns matrix-factorization rating predictions.
func (c *Client) SVDRecommendations(ctx context.Context, userID string, count int) (*RecommendationsResponse, error) {
	params, err := required("/recommend/svd/{user_id}", "user_id", userID)
	if err != nil {
		return nil, err
	}
	var payload RecommendationsResponse
	if err := c.get(ctx, "/recommend/svd/{user_id}", params, countQuery(count, DefaultSVDCount), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UserRatings returns the books userID has rated.
func (c *Client) UserRatings(ctx context.Context, userID string) (*RatingsResponse, error) {
	params, err := required("/user/{user_id}/ratings", "user_id", userID)
	if err != nil {
		return nil, err
	}
	var payload RatingsResponse
	if err := c.get(ctx, "/user/{user_id}/ratings", params, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GenreRecommendations returns top books for genre.
func (c *Client) GenreRecommendations(ctx context.Context, genre string) (*RecommendationsResponse, error) {
	params, err := required("/recommend/genre/{genre}", "genre", genre)
	if err != nil {
		return nil, err
	}
	var payload RecommendationsResponse
	if err := c.get(ctx, "/recommend/genre/{genre}", params, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Genres returns the popular genre labels.
func (c *Client) Genres(ctx context.Context) (*GenresResponse, error) {
	var payload GenresResponse
	if err := c.get(ctx, "/genres", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Status returns the backend's self-reported status.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var payload StatusResponse
	if err := c.get(ctx, "/status", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// get issues one GET. path may contain {name} placeholders filled from
// params (resty path-escapes them). No retries are attempted.
func (c *Client) get(ctx context.Context, path string, params, query map[string]string, dest any) error {
	if c == nil || c.http == nil {
		return &Error{Kind: KindInvalid, Path: path, Message: "client is nil"}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetPathParams(params)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return transportError(path, err)
	}

	if resp.IsError() {
		var payload errorPayload
		_ = json.Unmarshal(resp.Body(), &payload)
		return &Error{Kind: KindServer, Path: path, Status: resp.StatusCode(), Message: payload.text()}
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return &Error{Kind: KindDecode, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func required(path, name, value string) (map[string]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, &Error{Kind: KindInvalid, Path: path, Message: name + " is required"}
	}
	return map[string]string{name: value}, nil
}

func countQuery(count, fallback int) map[string]string {
	if count <= 0 {
		count = fallback
	}
	return map[string]string{"count": strconv.Itoa(count)}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
