package ui

import "time"

// Terminal width thresholds for the book grid. Each step adds a column,
// mirroring the sm/md/lg/xl breakpoints of the web grid.
const (
	LayoutTwoColumns   = 70
	LayoutThreeColumns = 105
	LayoutFourColumns  = 140
	LayoutFiveColumns  = 175

	// LayoutCompactWidth is the threshold below which the header drops
	// secondary details.
	LayoutCompactWidth = 100
)

// Card geometry.
const (
	// cardBodyLines is the number of text lines inside a card border.
	cardBodyLines = 5
	// cardHeight includes the top and bottom border.
	cardHeight = cardBodyLines + 2
	// cardGap separates neighboring cards.
	cardGap = 1

	cardTitleLimit     = 50
	cardAuthorLimit    = 35
	cardPublisherLimit = 30
)

// Log display limits.
const (
	// LogFetchLimit is the number of trailing log lines read per refresh.
	LogFetchLimit = 2000
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI re-reads the status store and,
	// when following, the log file.
	DefaultUIInterval = time.Second
)

// gridColumns returns how many cards fit side by side at width.
func gridColumns(width int) int {
	switch {
	case width >= LayoutFiveColumns:
		return 5
	case width >= LayoutFourColumns:
		return 4
	case width >= LayoutThreeColumns:
		return 3
	case width >= LayoutTwoColumns:
		return 2
	default:
		return 1
	}
}
