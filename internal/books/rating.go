package books

import (
	"strings"

	"github.com/five82/bookrecs/internal/bookapi"
)

// HighRatingThreshold is the lowest score counted as a high rating.
const HighRatingThreshold = 8

// Rating is one entry of a user's reading history.
type Rating struct {
	UserID string
	Value  float64
	Book   Book
}

// FromWireRating normalizes one ratings entry.
func FromWireRating(w bookapi.WireRating) Rating {
	r := Rating{
		UserID: strings.TrimSpace(w.UserID.String()),
		Book:   FromWire(w.WireBook),
	}
	if r.Book.UserRating != nil {
		r.Value = *r.Book.UserRating
	}
	return r
}

// FromWireRatings normalizes a ratings collection; nil yields an empty slice.
func FromWireRatings(ws []bookapi.WireRating) []Rating {
	out := make([]Rating, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWireRating(w))
	}
	return out
}

// RatingBooks projects ratings onto their books for grid rendering. The
// user's score stays in UserRating.
func RatingBooks(rs []Rating) []Book {
	out := make([]Book, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Book)
	}
	return out
}

// RatingStats summarizes a user's reading history.
type RatingStats struct {
	Total   int
	Average float64
	High    int
}

// Stats computes summary statistics over rs.
func Stats(rs []Rating) RatingStats {
	var s RatingStats
	if len(rs) == 0 {
		return s
	}
	var sum float64
	for _, r := range rs {
		sum += r.Value
		if r.Value >= HighRatingThreshold {
			s.High++
		}
	}
	s.Total = len(rs)
	s.Average = sum / float64(len(rs))
	return s
}
