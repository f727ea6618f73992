// Package app is the composition root for bookrecs.
//
// Run loads configuration, applies command-line overrides, opens the log
// file, builds the API client and hands everything to the terminal UI:
//
//	Run()
//	  ├─> config.Load()        config.toml, .env files, BOOKRECS_API_URL
//	  ├─> logging.Init()       JSON lines to the configured log file
//	  ├─> prefs.Load()         theme and start page
//	  ├─> bookapi.NewClient()  resty client for the recommendation API
//	  ├─> StartPoller()        background /status checks
//	  └─> ui.Run()             Bubble Tea program (blocks)
//
// The poller is the only background goroutine. It calls /status on the
// configured interval and records the outcome in a state.StatusStore, which
// the header reads to show whether the API is online. Consecutive failures
// double the wait up to two minutes. A status_poll_seconds of 0 disables it.
//
// Errors from configuration and client setup are returned from Run. API
// failures never are; pages surface them as banners or empty states.
package app
