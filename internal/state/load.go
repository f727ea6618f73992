package state

// Phase is the lifecycle position of one fetch operation.
type Phase int

const (
	// Idle means the operation has never been started.
	Idle Phase = iota
	// Loading means a request is in flight.
	Loading
	// Loaded means the last request succeeded.
	Loaded
	// Failed means the last request failed.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Load tracks one fetch operation and the last data it produced. Data from
// an earlier success survives later Loading and Failed phases.
//
// Load is not safe for concurrent use; it is owned by the UI update loop.
type Load[T any] struct {
	phase   Phase
	data    T
	hasData bool
	err     error
	message string
}

// Begin marks a request as in flight and clears the previous error.
func (l *Load[T]) Begin() {
	l.phase = Loading
	l.err = nil
	l.message = ""
}

// Succeed records data from a completed request.
func (l *Load[T]) Succeed(data T) {
	l.phase = Loaded
	l.data = data
	l.hasData = true
	l.err = nil
	l.message = ""
}

// Fail records a failed request. message is the user-facing text; it may be
// empty for failures that are only logged.
func (l *Load[T]) Fail(err error, message string) {
	l.phase = Failed
	l.err = err
	l.message = message
}

// Abort ends an in-flight request whose result will never be applied. The
// phase falls back to Loaded when earlier data exists, otherwise Idle.
func (l *Load[T]) Abort() {
	if l.phase != Loading {
		return
	}
	if l.hasData {
		l.phase = Loaded
	} else {
		l.phase = Idle
	}
}

// Reset returns l to Idle and drops its data.
func (l *Load[T]) Reset() {
	*l = Load[T]{}
}

// Phase returns the current phase.
func (l Load[T]) Phase() Phase { return l.phase }

// IsLoading reports whether a request is in flight.
func (l Load[T]) IsLoading() bool { return l.phase == Loading }

// Data returns the last successful result, or the zero value.
func (l Load[T]) Data() T { return l.data }

// HasData reports whether any request has ever succeeded.
func (l Load[T]) HasData() bool { return l.hasData }

// Err returns the error of the last failed request.
func (l Load[T]) Err() error { return l.err }

// Message returns the user-facing text of the last failure.
func (l Load[T]) Message() string { return l.message }
