package conditions

import (
	"context"
)

// PlaceResolver turns a free-text place name into a single geographic point.
type PlaceResolver interface {
	Resolve(ctx context.Context, place string) (GeoPoint, error)
}

// WeatherSource retrieves current atmospheric conditions for a point.
type WeatherSource interface {
	Current(ctx context.Context, point GeoPoint) (WeatherReading, error)
}

// TideSource retrieves upcoming tide extremes for a point. It has no
// failure mode: any upstream problem is absorbed by the implementation and
// reported as a nil slice.
type TideSource interface {
	Extremes(ctx context.Context, point GeoPoint) []TideEvent
}

// StateStore is the contract for the single observable RequestState the
// aggregator writes and the presentation layer reads.
type StateStore interface {
	// Begin transitions to loading, clears any previous result, and returns
	// the generation for this submission.
	Begin() uint64

	// Complete records a terminal state for the given generation. It returns
	// false when the generation is stale (a newer submission has begun) and
	// the result was discarded.
	Complete(gen uint64, state RequestState) bool

	// Current returns a snapshot of the current state.
	Current() RequestState
}
