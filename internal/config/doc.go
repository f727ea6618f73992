// Package config loads bookrecs startup configuration.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. TOML file (explicit path, else ~/.config/bookrecs/config.toml); a
//     missing file is not an error
//  3. BOOKRECS_API_URL from the environment, with .env.local and .env in the
//     working directory loaded first (existing variables are never replaced)
//
// The -api flag in cmd/bookrecs is applied after Load and wins over all of
// the above.
//
// # Defaults
//
//   - api_url: http://localhost:5000
//   - log_file: ~/.local/state/bookrecs/bookrecs.log
//   - log_level: info
//   - status_poll_seconds: 15 (0 disables the status poller)
//
// # TOML Format
//
//	api_url = "http://books.internal:5000"
//	log_file = "~/.cache/bookrecs.log"
//	log_level = "debug"
//	status_poll_seconds = 30
//
// Every field is optional and blank strings fall back to defaults. Tilde
// expansion applies to log_file.
//
// # Validation
//
// The merged result is checked with go-playground/validator: api_url must be
// an absolute URL, log_level one of trace/debug/info/warn/error/disabled,
// and status_poll_seconds between 0 and 3600.
package config
