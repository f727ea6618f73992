package bookapi

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// FlexString decodes a JSON string or number into a string. The backend
// sends year and user_id as either depending on the endpoint.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	// 2003.0 -> "2003"
	if fl, err := n.Float64(); err == nil && fl == float64(int64(fl)) {
		*f = FlexString(strconv.FormatInt(int64(fl), 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the decoded value.
func (f FlexString) String() string { return string(f) }

// WireBook is a book record as any endpoint returns it. Scoring fields are
// pointers because their presence depends on the endpoint.
type WireBook struct {
	ISBN           string     `json:"isbn"`
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	Year           FlexString `json:"year"`
	Publisher      string     `json:"publisher"`
	ImageURL       string     `json:"image_url"`
	ImageURLSmall  string     `json:"image_url_small"`
	ImageURLMedium string     `json:"image_url_medium"`
	ImageURLLarge  string     `json:"image_url_large"`

	AverageRating       *float64 `json:"average_rating"`
	Rating              *float64 `json:"rating"`
	RatingCount         *float64 `json:"rating_count"`
	SimilarityScore     *float64 `json:"similarity_score"`
	RecommendationScore *float64 `json:"recommendation_score"`
	PredictedRating     *float64 `json:"predicted_rating"`
	PopularityScore     *float64 `json:"popularity_score"`

	// Only populated by /book/{isbn}. Keys are rating values ("0".."10").
	RatingDistribution map[string]float64 `json:"rating_distribution"`
}

// WireRating is one entry of /user/{user_id}/ratings: the rating tuple plus
// denormalized book fields.
type WireRating struct {
	UserID FlexString `json:"user_id"`
	WireBook
}

// SearchResponse mirrors /search.
type SearchResponse struct {
	Query   string     `json:"query"`
	Results []WireBook `json:"results"`
}

// RecommendationsResponse mirrors every /recommend/* endpoint.
type RecommendationsResponse struct {
	UserID          FlexString `json:"user_id"`
	Genre           string     `json:"genre"`
	Recommendations []WireBook `json:"recommendations"`
}

// RatingsResponse mirrors /user/{user_id}/ratings.
type RatingsResponse struct {
	UserID  FlexString   `json:"user_id"`
	Ratings []WireRating `json:"ratings"`
}

// GenresResponse mirrors /genres.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// RandomUserResponse mirrors /random-user.
type RandomUserResponse struct {
	UserID FlexString `json:"user_id"`
}

// StatusResponse mirrors /status. The payload is backend-defined; only the
// status string is interpreted and the rest is kept for display.
type StatusResponse struct {
	Status string
	Fields map[string]any
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StatusResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Fields = raw
	s.Status = ""
	if v, ok := raw["status"].(string); ok {
		s.Status = strings.TrimSpace(v)
	}
	return nil
}

// Healthy reports whether the backend describes itself as serving. A reply
// without a status field counts as healthy since the endpoint answered.
func (s StatusResponse) Healthy() bool {
	switch strings.ToLower(s.Status) {
	case "", "ok", "healthy", "running", "ready", "up", "online":
		return true
	default:
		return false
	}
}

// errorPayload is the structured body of a failed request.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (p errorPayload) text() string {
	for _, v := range []string{p.Error, p.Message, p.Detail} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
