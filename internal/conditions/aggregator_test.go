package conditions_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shorecast/internal/conditions"
	"shorecast/internal/forecast"
	"shorecast/internal/store"
)

type stubResolver struct {
	point     conditions.GeoPoint
	err       error
	calls     int
	lastQuery string
}

func (s *stubResolver) Resolve(_ context.Context, place string) (conditions.GeoPoint, error) {
	s.calls++
	s.lastQuery = place
	return s.point, s.err
}

type stubWeather struct {
	reading conditions.WeatherReading
	err     error
	calls   int
}

func (s *stubWeather) Current(context.Context, conditions.GeoPoint) (conditions.WeatherReading, error) {
	s.calls++
	return s.reading, s.err
}

type stubTides struct {
	events []conditions.TideEvent
	calls  int

	// onCall runs before returning, used to simulate a mid-flight event.
	onCall func()
}

func (s *stubTides) Extremes(context.Context, conditions.GeoPoint) []conditions.TideEvent {
	s.calls++
	if s.onCall != nil {
		s.onCall()
	}
	return s.events
}

func newAggregator(r *stubResolver, w *stubWeather, td *stubTides, states conditions.StateStore) *conditions.Aggregator {
	return conditions.NewAggregator(r, w, td, forecast.Interpret, states, zap.NewNop(), "")
}

func TestSubmitSuccessWithTides(t *testing.T) {
	paris := conditions.GeoPoint{Latitude: 48.8566, Longitude: 2.3522, DisplayName: "Paris, France"}
	resolver := &stubResolver{point: paris}
	weather := &stubWeather{reading: conditions.WeatherReading{Code: 1, IsDaytime: true, TemperatureC: 18.5}}
	tides := &stubTides{events: []conditions.TideEvent{
		{Kind: conditions.TideHigh, HeightMeters: 1.2, Timestamp: time.Now().UTC()},
	}}
	states := store.NewStateStore()

	agg := newAggregator(resolver, weather, tides, states)

	result, err := agg.Submit(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, "Paris", resolver.lastQuery)
	assert.Equal(t, paris, result.Place)
	assert.Equal(t, "Mainly clear", result.Weather.Description)
	require.Len(t, result.Tides, 1)

	state := agg.State()
	assert.Equal(t, conditions.StatusSuccess, state.Status)
	require.NotNil(t, state.Conditions)
	assert.Equal(t, result, state.Conditions)
	assert.Empty(t, state.ErrorMessage)
}

// Tide absence is a valid terminal state, never a failure.
func TestSubmitSuccessWithoutTides(t *testing.T) {
	resolver := &stubResolver{point: conditions.GeoPoint{DisplayName: "Marseille, France"}}
	weather := &stubWeather{reading: conditions.WeatherReading{Code: 0, IsDaytime: false}}
	tides := &stubTides{events: nil}
	states := store.NewStateStore()

	agg := newAggregator(resolver, weather, tides, states)

	result, err := agg.Submit(context.Background(), "Marseille")
	require.NoError(t, err)

	assert.Equal(t, 1, tides.calls)
	assert.Nil(t, result.Tides)
	assert.Equal(t, conditions.StatusSuccess, agg.State().Status)
}

func TestSubmitPlaceNotFound(t *testing.T) {
	resolver := &stubResolver{err: &conditions.NotFoundError{Query: "Zzzzznotaplace"}}
	weather := &stubWeather{}
	tides := &stubTides{}
	states := store.NewStateStore()

	agg := newAggregator(resolver, weather, tides, states)

	_, err := agg.Submit(context.Background(), "Zzzzznotaplace")
	require.Error(t, err)

	// Neither downstream source may be touched after a resolve failure.
	assert.Equal(t, 0, weather.calls)
	assert.Equal(t, 0, tides.calls)

	state := agg.State()
	assert.Equal(t, conditions.StatusError, state.Status)
	assert.Equal(t, "City not found. Please check the spelling.", state.ErrorMessage)
	assert.Nil(t, state.Conditions)
}

func TestSubmitWeatherFailureSkipsTides(t *testing.T) {
	resolver := &stubResolver{point: conditions.GeoPoint{DisplayName: "Paris, France"}}
	weather := &stubWeather{err: &conditions.UpstreamError{Source: "weather", Err: assert.AnError}}
	tides := &stubTides{}
	states := store.NewStateStore()

	agg := newAggregator(resolver, weather, tides, states)

	_, err := agg.Submit(context.Background(), "Paris")
	require.Error(t, err)

	// The resolved point is discarded; no partial result, no tide call.
	assert.Equal(t, 0, tides.calls)

	state := agg.State()
	assert.Equal(t, conditions.StatusError, state.Status)
	assert.Nil(t, state.Conditions)
	assert.NotEmpty(t, state.ErrorMessage)
}

// Empty and whitespace-only submissions behave exactly like submitting the
// default place name.
func TestSubmitEmptyPlaceUsesDefault(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		resolver := &stubResolver{point: conditions.GeoPoint{DisplayName: "Marseille, France"}}
		weather := &stubWeather{reading: conditions.WeatherReading{Code: 2, IsDaytime: true}}
		tides := &stubTides{}
		states := store.NewStateStore()

		agg := newAggregator(resolver, weather, tides, states)

		_, err := agg.Submit(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "Marseille", resolver.lastQuery, "input %q", input)
	}
}

// A submission superseded mid-flight must not overwrite the newer state.
func TestSupersededSubmissionDiscarded(t *testing.T) {
	resolver := &stubResolver{point: conditions.GeoPoint{DisplayName: "Paris, France"}}
	weather := &stubWeather{reading: conditions.WeatherReading{Code: 1, IsDaytime: true}}
	states := store.NewStateStore()

	tides := &stubTides{}
	tides.onCall = func() {
		// A newer submission arrives while the first is still in flight.
		states.Begin()
	}

	agg := newAggregator(resolver, weather, tides, states)

	result, err := agg.Submit(context.Background(), "Paris")
	require.NoError(t, err)
	require.NotNil(t, result)

	// The caller still gets its result, but the shared state belongs to
	// the newer submission.
	assert.Equal(t, conditions.StatusLoading, agg.State().Status)
}

func TestRefreshReusesLastPlace(t *testing.T) {
	resolver := &stubResolver{point: conditions.GeoPoint{DisplayName: "Paris, France"}}
	weather := &stubWeather{reading: conditions.WeatherReading{Code: 1, IsDaytime: true}}
	tides := &stubTides{}
	states := store.NewStateStore()

	agg := newAggregator(resolver, weather, tides, states)

	// Before any successful submission, refresh is a no-op.
	agg.Refresh(context.Background())
	assert.Equal(t, 0, resolver.calls)

	_, err := agg.Submit(context.Background(), "Paris")
	require.NoError(t, err)

	agg.Refresh(context.Background())
	assert.Equal(t, 2, resolver.calls)
	assert.Equal(t, "Paris", resolver.lastQuery)
}
