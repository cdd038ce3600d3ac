package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shorecast/internal/conditions"
	"shorecast/internal/upstream"
)

// DefaultBaseURL is the OpenStreetMap Nominatim search endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org/search"

// Resolver implements conditions.PlaceResolver against a Nominatim-style
// search endpoint.
type Resolver struct {
	baseURL  string
	endpoint upstream.Endpoint
}

func NewResolver(client *http.Client, baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{
		baseURL: baseURL,
		endpoint: upstream.Endpoint{
			Client:  client,
			Circuit: upstream.NewBreaker("geocode"),
		},
	}
}

// Resolve looks up the place name and returns the first ranked match.
// Zero matches is a NotFoundError; any transport or status problem is an
// UpstreamError. Exactly one outbound call is made.
func (r *Resolver) Resolve(ctx context.Context, place string) (conditions.GeoPoint, error) {
	values := url.Values{}
	values.Set("q", place)
	values.Set("format", "json")
	values.Set("limit", "1")

	u := fmt.Sprintf("%s?%s", r.baseURL, values.Encode())

	resp, err := r.endpoint.Get(ctx, u)
	if err != nil {
		return conditions.GeoPoint{}, &conditions.UpstreamError{Source: "geocoding", Err: err}
	}
	defer resp.Body.Close()

	var payload []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return conditions.GeoPoint{}, &conditions.UpstreamError{Source: "geocoding", Err: err}
	}

	if len(payload) == 0 {
		return conditions.GeoPoint{}, &conditions.NotFoundError{Query: place}
	}

	lat, err := strconv.ParseFloat(payload[0].Lat, 64)
	if err != nil {
		return conditions.GeoPoint{}, &conditions.UpstreamError{Source: "geocoding", Err: fmt.Errorf("invalid latitude %q: %w", payload[0].Lat, err)}
	}
	lon, err := strconv.ParseFloat(payload[0].Lon, 64)
	if err != nil {
		return conditions.GeoPoint{}, &conditions.UpstreamError{Source: "geocoding", Err: fmt.Errorf("invalid longitude %q: %w", payload[0].Lon, err)}
	}

	return conditions.GeoPoint{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: payload[0].DisplayName,
	}, nil
}
