package pages

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/five82/bookrecs/internal/bookapi"
)

// Deps are the collaborators shared by every controller.
type Deps struct {
	// API is the only way controllers reach the backend.
	API bookapi.Fetcher
	// Log receives failures that are not shown to the user.
	Log zerolog.Logger
	// Context is the parent of every page scope; canceling it abandons all
	// in-flight requests.
	Context context.Context
}

func (d Deps) parent() context.Context {
	if d.Context == nil {
		return context.Background()
	}
	return d.Context
}

// Banner is a dismissible user-facing error line.
type Banner struct {
	text string
}

// Text returns the current message, or "" when nothing is shown.
func (b Banner) Text() string { return b.text }

// Set shows msg.
func (b *Banner) Set(msg string) { b.text = msg }

// Dismiss hides the banner.
func (b *Banner) Dismiss() { b.text = "" }

// failureMessage picks what to show for err: the server's own message when
// the backend sent one, fallback otherwise.
func failureMessage(err error, fallback string) string {
	return bookapi.UserMessage(err, fallback)
}

// canceled reports whether err only says the request was abandoned. Such
// results end the operation without a user-facing failure.
func canceled(err error) bool {
	return err != nil && bookapi.IsCanceled(err)
}
