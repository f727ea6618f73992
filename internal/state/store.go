package state

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/five82/bookrecs/internal/bookapi"
)

// StatusSnapshot is the latest backend status known to the UI.
type StatusSnapshot struct {
	Status              bookapi.StatusResponse
	HasStatus           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s StatusSnapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Online reports whether the last poll succeeded and the backend called
// itself healthy.
func (s StatusSnapshot) Online() bool {
	return s.HasStatus && s.LastError == nil && s.Status.Healthy()
}

// StatusStore coordinates the poller's writes with the UI's reads.
type StatusStore struct {
	mu       sync.RWMutex
	snapshot StatusSnapshot
}

// Update records one poll result. When err is non-nil the previous status is
// kept but the error is recorded for visibility.
func (s *StatusStore) Update(status *bookapi.StatusResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if status != nil {
		s.snapshot.Status = cloneStatus(*status)
		s.snapshot.HasStatus = true
	} else {
		s.snapshot.HasStatus = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *StatusStore) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Status = cloneStatus(s.snapshot.Status)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneStatus(st bookapi.StatusResponse) bookapi.StatusResponse {
	st.Fields = maps.Clone(st.Fields)
	return st
}
