// Package state holds the UI-side state primitives for bookrecs.
//
// # Load
//
// Load[T] models one fetch operation as an explicit phase:
//
//	Idle → Loading → Loaded
//	          ↓
//	        Failed
//
// Begin is called before a request is issued and every result ends in
// Succeed or Fail, so no operation can stay in Loading. The last successful
// data is kept through later Loading and Failed phases; a failure never wipes
// results the user is already looking at.
//
// # Scope
//
// Scope ties requests to the visible lifetime of a page. Each Renew cancels
// the previous context and returns a new generation number. Commands tag
// their result messages with the generation they were started under, and
// controllers drop any message for which Current returns false.
//
// # StatusStore
//
// StatusStore shares the backend status between the background poller and
// the UI:
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ Status()       │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render header  │
//	└────────────────┘            └─────────────────┘
//
// Update with an error keeps the previous status and increments
// ConsecutiveFailures; a success resets the counter. IsOffline reports two
// or more failures in a row. Snapshot returns a copy safe to read without
// holding the lock.
//
// Load and Scope are owned by the single Bubble Tea update goroutine and are
// not safe for concurrent use. StatusStore is.
package state
