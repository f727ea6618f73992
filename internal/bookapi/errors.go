package bookapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindNetwork means no response was received.
	KindNetwork ErrorKind = iota
	// KindTimeout means the request exceeded the client timeout or deadline.
	KindTimeout
	// KindCanceled means the caller abandoned the request.
	KindCanceled
	// KindServer means the backend answered with a non-2xx status.
	KindServer
	// KindDecode means the response body was not the expected JSON.
	KindDecode
	// KindInvalid means the call was rejected before anything was sent.
	KindInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method on failure.
type Error struct {
	Kind    ErrorKind
	Path    string
	Status  int    // HTTP status for KindServer
	Message string // server-provided message, if any
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServer:
		if e.Message != "" {
			return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
		}
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
	case KindInvalid:
		return fmt.Sprintf("api %s: %s", e.Path, e.Message)
	default:
		if e.Err != nil {
			return fmt.Sprintf("api %s %s error: %v", e.Path, e.Kind, e.Err)
		}
		return fmt.Sprintf("api %s %s error", e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsCanceled reports whether err is a request abandoned by its caller.
func IsCanceled(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindCanceled
	}
	return errors.Is(err, context.Canceled)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindServer && apiErr.Status == 404
}

// UserMessage returns the backend's own message for err when it sent one,
// otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindServer {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
	}
	return fallback
}

func transportError(path string, err error) *Error {
	switch {
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCanceled, Path: path, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Path: path, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Path: path, Err: err}
	}
	return &Error{Kind: KindNetwork, Path: path, Err: err}
}
