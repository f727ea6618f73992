package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookrecs/internal/books"
)

// Badge kinds, also the keys of Theme.BadgeColors.
const (
	badgeMatch     = "match"
	badgeScore     = "score"
	badgePredicted = "predicted"
	badgePopular   = "popular"
	badgeRating    = "rating"
	badgeCount     = "count"
	badgeUser      = "user"
)

type badge struct {
	kind string
	text string
}

// cardBadges lists the badges for b. A badge appears only when its field is
// present and non-zero; the reader's own rating only when showUserRating.
func cardBadges(b books.Book, showUserRating bool) []badge {
	var out []badge
	if showUserRating && nonZero(b.UserRating) {
		out = append(out, badge{badgeUser, "★ " + formatPlain(*b.UserRating)})
	}
	if nonZero(b.AverageRating) {
		out = append(out, badge{badgeRating, "★ " + formatOneDecimal(*b.AverageRating)})
	}
	if b.RatingCount != nil && *b.RatingCount != 0 {
		out = append(out, badge{badgeCount, fmt.Sprintf("👥 %d", *b.RatingCount)})
	}
	if nonZero(b.Similarity) {
		out = append(out, badge{badgeMatch, fmt.Sprintf("%.0f%% match", *b.Similarity*100)})
	}
	if nonZero(b.RecommendationScore) {
		out = append(out, badge{badgeScore, "Score: " + formatOneDecimal(*b.RecommendationScore)})
	}
	if nonZero(b.PredictedRating) {
		out = append(out, badge{badgePredicted, "Predicted: " + formatOneDecimal(*b.PredictedRating) + "/10"})
	}
	if nonZero(b.Popularity) {
		out = append(out, badge{badgePopular, "Popular"})
	}
	return out
}

func nonZero(v *float64) bool {
	return v != nil && *v != 0
}

// cardLines returns the plain text body of a card: title, author,
// "year • publisher", cover URL. Badges are rendered separately.
func cardLines(b books.Book) []string {
	year := strings.TrimSpace(b.Year)
	if year == "" {
		year = "Unknown"
	}
	return []string{
		truncateText(b.Title, cardTitleLimit),
		"by " + truncateText(b.Author, cardAuthorLimit),
		year + " • " + truncateText(b.Publisher, cardPublisherLimit),
		b.Images.Card(),
	}
}

// renderCard draws one book card width cells wide, border included.
func (m Model) renderCard(b books.Book, width int, selected, showUserRating bool) string {
	styles := m.theme.Styles()
	box := styles.Card
	if selected {
		box = styles.CardSelected
	}
	inner := max(width-box.GetHorizontalFrameSize(), 4)

	lines := cardLines(b)
	body := []string{
		styles.Text.Bold(true).Render(truncate(lines[0], inner)),
		styles.MutedText.Render(truncate(lines[1], inner)),
		styles.FaintText.Render(truncate(lines[2], inner)),
		styles.FaintText.Render(truncateMiddle(lines[3], inner)),
		m.renderBadges(cardBadges(b, showUserRating), inner),
	}
	return box.
		Width(inner + box.GetHorizontalPadding()).
		Height(cardBodyLines).
		Render(strings.Join(body, "\n"))
}

// renderBadges lays out badges on one line, dropping those that do not fit.
func (m Model) renderBadges(badges []badge, width int) string {
	styles := m.theme.Styles()
	var parts []string
	used := 0
	for _, bd := range badges {
		pill := styles.BadgeStyle(bd.kind).Render(bd.text)
		w := lipgloss.Width(pill)
		if used > 0 {
			w++
		}
		if used+w > width {
			break
		}
		parts = append(parts, pill)
		used += w
	}
	return strings.Join(parts, " ")
}
