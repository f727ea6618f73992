// Package books holds the display model for book records returned by the
// recommendation API and the normalization from the wire variants.
package books

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/five82/bookrecs/internal/bookapi"
)

// Placeholder covers shown when a record has no image URL.
const (
	PlaceholderCard  = "https://via.placeholder.com/200x300/6366f1/ffffff?text=No+Image"
	PlaceholderCover = "https://via.placeholder.com/400x600/6366f1/ffffff?text=No+Image"
)

// Images holds the cover URLs a record may carry.
type Images struct {
	Default string
	Small   string
	Medium  string
	Large   string
}

// Card returns the URL used on a grid card.
func (i Images) Card() string {
	return firstNonEmpty(PlaceholderCard, i.Default, i.Medium)
}

// Cover returns the URL used on the detail page.
func (i Images) Cover() string {
	return firstNonEmpty(PlaceholderCover, i.Large, i.Medium, i.Small, i.Default)
}

// Book is the single internal representation of a book record. Scoring
// fields are nil when the producing endpoint did not send them.
//
// AverageRating is the canonical rating shown on cards. The wire "rating"
// field is a single user's score and lands in UserRating; it is only shown
// in a reading-history context.
type Book struct {
	ISBN      string
	Title     string
	Author    string
	Year      string
	Publisher string
	Images    Images

	AverageRating       *float64
	UserRating          *float64
	RatingCount         *int
	Similarity          *float64
	RecommendationScore *float64
	PredictedRating     *float64
	Popularity          *float64

	// Rating value (0-10) to number of ratings. Detail endpoint only;
	// negative counts are dropped.
	RatingDistribution map[int]int
}

// FromWire normalizes one wire record.
func FromWire(w bookapi.WireBook) Book {
	b := Book{
		ISBN:      strings.TrimSpace(w.ISBN),
		Title:     strings.TrimSpace(w.Title),
		Author:    strings.TrimSpace(w.Author),
		Year:      strings.TrimSpace(w.Year.String()),
		Publisher: strings.TrimSpace(w.Publisher),
		Images: Images{
			Default: strings.TrimSpace(w.ImageURL),
			Small:   strings.TrimSpace(w.ImageURLSmall),
			Medium:  strings.TrimSpace(w.ImageURLMedium),
			Large:   strings.TrimSpace(w.ImageURLLarge),
		},
		AverageRating:       finite(w.AverageRating),
		UserRating:          finite(w.Rating),
		Similarity:          finite(w.SimilarityScore),
		RecommendationScore: finite(w.RecommendationScore),
		PredictedRating:     finite(w.PredictedRating),
		Popularity:          finite(w.PopularityScore),
	}
	if c := finite(w.RatingCount); c != nil {
		n := int(math.Round(*c))
		b.RatingCount = &n
	}
	if len(w.RatingDistribution) > 0 {
		dist := make(map[int]int, len(w.RatingDistribution))
		for k, v := range w.RatingDistribution {
			r, err := strconv.Atoi(strings.TrimSpace(k))
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				continue
			}
			dist[r] = int(math.Round(v))
		}
		if len(dist) > 0 {
			b.RatingDistribution = dist
		}
	}
	return b
}

// FromWireList normalizes a response collection. A missing collection yields
// an empty, non-nil slice.
func FromWireList(ws []bookapi.WireBook) []Book {
	out := make([]Book, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWire(w))
	}
	return out
}

// Key returns the stable identity of b at position index in a list.
func Key(b Book, index int) string {
	if b.ISBN != "" {
		return b.ISBN
	}
	return "book-" + strconv.Itoa(index)
}

// DistributionBar is one row of a rating histogram.
type DistributionBar struct {
	Rating   int
	Count    int
	Fraction float64 // Count relative to the largest bucket, 0..1
}

// Distribution returns b's rating histogram sorted by rating, highest first.
func (b Book) Distribution() []DistributionBar {
	if len(b.RatingDistribution) == 0 {
		return nil
	}
	maxCount := 0
	for _, c := range b.RatingDistribution {
		if c > maxCount {
			maxCount = c
		}
	}
	bars := make([]DistributionBar, 0, len(b.RatingDistribution))
	for r, c := range b.RatingDistribution {
		bar := DistributionBar{Rating: r, Count: max(c, 0)}
		if maxCount > 0 {
			bar.Fraction = float64(bar.Count) / float64(maxCount)
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Rating > bars[j].Rating })
	return bars
}

func finite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	out := *v
	return &out
}

func firstNonEmpty(fallback string, values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return fallback
}
