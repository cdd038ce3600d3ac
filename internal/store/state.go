package store

import (
	"sync"

	"shorecast/internal/conditions"
)

// StateStore is a concurrency-safe holder for the aggregator's single
// RequestState. Submissions are tagged with a monotonic generation so a
// completion belonging to a superseded submission is discarded instead of
// overwriting newer state.
type StateStore struct {
	mu    sync.RWMutex
	gen   uint64
	state conditions.RequestState
}

func NewStateStore() *StateStore {
	return &StateStore{
		state: conditions.RequestState{Status: conditions.StatusIdle},
	}
}

// Begin transitions to loading, clears any previous result, and returns the
// generation for this submission.
func (s *StateStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.state = conditions.RequestState{Status: conditions.StatusLoading}
	return s.gen
}

// Complete records a terminal state for the given generation. A stale
// generation is ignored and false is returned.
func (s *StateStore) Complete(gen uint64, state conditions.RequestState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}
	s.state = state
	return true
}

// Current returns a snapshot of the current state.
func (s *StateStore) Current() conditions.RequestState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}
