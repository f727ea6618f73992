// Package bookapi provides an HTTP client for the book recommendation API.
//
// # Overview
//
// Client wraps a resty client configured with the API base URL, a
// 10-second timeout and JSON headers. Every method issues one GET, decodes
// the body with goccy/go-json into the wire types in types.go and returns
// it unchanged. Normalization into display records happens in the books
// package.
//
// # Endpoints
//
//   - GET /recommend/popular?count=N (default 10)
//   - GET /recommend/trending?count=N (default 15)
//   - GET /search?q=QUERY
//   - GET /book/{isbn}
//   - GET /recommend/similar/{isbn}?count=N (default 10)
//   - GET /recommend/user/{user_id}?count=N (default 10)
//   - GET /random-user
//   - GET /recommend/svd/{user_id}?count=N (default 10)
//   - GET /user/{user_id}/ratings
//   - GET /recommend/genre/{genre}
//   - GET /genres
//   - GET /status
//
// Path segments are escaped, so "Science Fiction" is sent as
// /recommend/genre/Science%20Fiction.
//
// # Request Handling
//
// Each request carries a fresh X-Request-ID (google/uuid). Hooks log the
// outgoing URL at debug level and every failure at warn level through the
// logger passed with WithLogger. The client never retries; callers decide
// what a failure means for the page.
//
// # Errors
//
// Failures are returned as *Error with a Kind:
//
//   - KindNetwork: no response (connection refused, DNS)
//   - KindTimeout: client timeout or context deadline
//   - KindCanceled: the caller's context was canceled
//   - KindServer: non-2xx status; Message holds the body's "error" field
//   - KindDecode: the body was not the expected JSON
//   - KindInvalid: rejected before sending (empty isbn, user id or query)
//
// UserMessage picks the server message when present and a caller-supplied
// fallback otherwise. IsCanceled lets callers drop abandoned results quietly.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package bookapi
