package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shorecast/internal/conditions"
)

func TestStateStoreLifecycle(t *testing.T) {
	s := NewStateStore()

	assert.Equal(t, conditions.StatusIdle, s.Current().Status)

	gen := s.Begin()
	assert.Equal(t, conditions.StatusLoading, s.Current().Status)

	ok := s.Complete(gen, conditions.RequestState{
		Status:     conditions.StatusSuccess,
		Conditions: &conditions.Conditions{},
	})
	assert.True(t, ok)
	assert.Equal(t, conditions.StatusSuccess, s.Current().Status)
}

func TestBeginClearsPreviousResult(t *testing.T) {
	s := NewStateStore()

	gen := s.Begin()
	s.Complete(gen, conditions.RequestState{
		Status:       conditions.StatusError,
		ErrorMessage: "boom",
	})

	s.Begin()
	state := s.Current()
	assert.Equal(t, conditions.StatusLoading, state.Status)
	assert.Empty(t, state.ErrorMessage)
	assert.Nil(t, state.Conditions)
}

// A completion belonging to a superseded submission must be discarded so a
// slow first request cannot overwrite the state of a newer one.
func TestStaleGenerationDiscarded(t *testing.T) {
	s := NewStateStore()

	first := s.Begin()
	second := s.Begin()

	ok := s.Complete(first, conditions.RequestState{
		Status:       conditions.StatusError,
		ErrorMessage: "stale",
	})
	assert.False(t, ok)
	assert.Equal(t, conditions.StatusLoading, s.Current().Status)

	ok = s.Complete(second, conditions.RequestState{Status: conditions.StatusSuccess})
	assert.True(t, ok)
	assert.Equal(t, conditions.StatusSuccess, s.Current().Status)
}
