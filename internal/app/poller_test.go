package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/bookrecs/internal/bookapi"
	"github.com/five82/bookrecs/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 15 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 15 * time.Second},
		{"negative failures", -1, 15 * time.Second},
		{"one failure", 1, 30 * time.Second},
		{"two failures", 2, 60 * time.Second},
		{"three failures capped", 3, 2 * time.Minute}, // Would be 120s, exactly the cap
		{"four failures capped", 4, 2 * time.Minute},
		{"many failures capped", 40, 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeStatus struct {
	calls atomic.Int32
	err   error
}

func (f *fakeStatus) Status(context.Context) (*bookapi.StatusResponse, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &bookapi.StatusResponse{Status: "ok"}, nil
}

func TestRefresh_RecordsSuccessAndFailure(t *testing.T) {
	store := &state.StatusStore{}
	ok := &fakeStatus{}
	refresh(context.Background(), store, ok, zerolog.Nop())
	if snap := store.Snapshot(); !snap.Online() {
		t.Fatalf("snapshot = %#v, want online", snap)
	}

	failing := &fakeStatus{err: errors.New("connection refused")}
	refresh(context.Background(), store, failing, zerolog.Nop())
	refresh(context.Background(), store, failing, zerolog.Nop())
	snap := store.Snapshot()
	if !snap.IsOffline() || snap.ConsecutiveFailures != 2 {
		t.Fatalf("snapshot = %#v, want offline after 2 failures", snap)
	}
}

func TestRefresh_IgnoresCanceledPoll(t *testing.T) {
	store := &state.StatusStore{}
	canceled := &fakeStatus{err: &bookapi.Error{Kind: bookapi.KindCanceled, Err: context.Canceled}}
	refresh(context.Background(), store, canceled, zerolog.Nop())
	if snap := store.Snapshot(); snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("canceled poll should not count as a failure: %#v", snap)
	}
}

func TestStartPoller_PollsImmediatelyAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &state.StatusStore{}
	src := &fakeStatus{}

	StartPoller(ctx, store, src, time.Hour, zerolog.Nop())

	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if src.calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1 immediate poll", src.calls.Load())
	}
	if !store.Snapshot().HasStatus {
		t.Fatalf("store not updated by first poll")
	}
}
