package conditions

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultPlace is used when the submitted place name is empty after
// trimming. Substitution is a policy of the aggregator, not of the
// resolver.
const DefaultPlace = "Marseille"

// InterpretFunc derives the display description and icon for a raw reading.
type InterpretFunc func(WeatherReading) InterpretedWeather

// Aggregator drives one submission through resolve -> weather -> tides and
// owns the observable RequestState.
type Aggregator struct {
	resolver  PlaceResolver
	weather   WeatherSource
	tides     TideSource
	interpret InterpretFunc
	states    StateStore
	log       *zap.Logger

	defaultPlace string

	mu        sync.Mutex
	lastPlace string
}

// NewAggregator creates an Aggregator. defaultPlace falls back to
// DefaultPlace when empty.
func NewAggregator(
	resolver PlaceResolver,
	weather WeatherSource,
	tides TideSource,
	interpret InterpretFunc,
	states StateStore,
	log *zap.Logger,
	defaultPlace string,
) *Aggregator {
	if defaultPlace == "" {
		defaultPlace = DefaultPlace
	}
	return &Aggregator{
		resolver:     resolver,
		weather:      weather,
		tides:        tides,
		interpret:    interpret,
		states:       states,
		log:          log,
		defaultPlace: defaultPlace,
	}
}

// Submit runs the full pipeline for one place-name query and returns the
// resulting Conditions or the error that terminated the pipeline. The
// shared RequestState goes through loading and ends in success or error;
// results of superseded submissions are discarded by the state store.
//
// The point must be resolved before any weather or tide call, and the tide
// call is only issued once weather has succeeded, so a weather failure
// costs no wasted tide call. Tide problems never fail the pipeline.
func (a *Aggregator) Submit(ctx context.Context, place string) (*Conditions, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		place = a.defaultPlace
	}

	gen := a.states.Begin()
	a.log.Info("resolving place", zap.String("place", place))

	point, err := a.resolver.Resolve(ctx, place)
	if err != nil {
		return nil, a.fail(gen, place, err)
	}

	reading, err := a.weather.Current(ctx, point)
	if err != nil {
		return nil, a.fail(gen, place, err)
	}

	result := &Conditions{
		Place:   point,
		Weather: a.interpret(reading),
		Tides:   a.tides.Extremes(ctx, point),
	}

	applied := a.states.Complete(gen, RequestState{
		Status:     StatusSuccess,
		Conditions: result,
	})
	if !applied {
		a.log.Debug("discarding superseded result", zap.String("place", place))
		return result, nil
	}

	a.mu.Lock()
	a.lastPlace = place
	a.mu.Unlock()

	a.log.Info("conditions ready",
		zap.String("place", point.DisplayName),
		zap.Int("tideEvents", len(result.Tides)))
	return result, nil
}

// Refresh re-runs the pipeline for the most recent successful place. It is
// a no-op before the first successful submission.
func (a *Aggregator) Refresh(ctx context.Context) {
	a.mu.Lock()
	place := a.lastPlace
	a.mu.Unlock()

	if place == "" {
		return
	}
	if _, err := a.Submit(ctx, place); err != nil {
		a.log.Warn("refresh failed", zap.String("place", place), zap.Error(err))
	}
}

// State returns a snapshot of the current request state.
func (a *Aggregator) State() RequestState {
	return a.states.Current()
}

func (a *Aggregator) fail(gen uint64, place string, err error) error {
	a.log.Warn("submission failed", zap.String("place", place), zap.Error(err))
	a.states.Complete(gen, RequestState{
		Status:       StatusError,
		ErrorMessage: err.Error(),
	})
	return err
}
