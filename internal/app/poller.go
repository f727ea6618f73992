package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/bookrecs/internal/bookapi"
	"github.com/five82/bookrecs/internal/state"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 2 * time.Minute
)

// statusSource is the slice of the API the poller needs.
type statusSource interface {
	Status(ctx context.Context) (*bookapi.StatusResponse, error)
}

// StartPoller launches a background goroutine that refreshes the store,
// backing off exponentially while the API keeps failing. It returns
// immediately; the goroutine exits when ctx is canceled.
func StartPoller(ctx context.Context, store *state.StatusStore, api statusSource, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			refresh(ctx, store, api, logger)
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer.Reset(wait)
		}
	}()
}

func refresh(ctx context.Context, store *state.StatusStore, api statusSource, logger zerolog.Logger) {
	status, err := api.Status(ctx)
	if err != nil {
		if bookapi.IsCanceled(err) {
			return
		}
		store.Update(nil, err)
		logger.Warn().Err(err).Msg("status poll failed")
		return
	}
	store.Update(status, nil)
	if !status.Healthy() {
		logger.Info().Str("status", status.Status).Msg("api reports unhealthy status")
	}
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
