package tides

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"shorecast/internal/conditions"
	"shorecast/internal/upstream"
)

// DefaultBaseURL is the WorldTides API endpoint.
const DefaultBaseURL = "https://www.worldtides.info/api/v3"

const (
	// lookaheadSeconds is the forward window over which extremes are requested.
	lookaheadSeconds = 172800

	// maxEvents caps how many extremes are kept, in upstream order.
	maxEvents = 6
)

// Client implements conditions.TideSource against a WorldTides-style
// extremes endpoint. Tide data is best effort: every failure is absorbed
// here and reported as a nil slice, never as an error.
type Client struct {
	baseURL  string
	apiKey   string
	endpoint upstream.Endpoint
	log      *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewClient(client *http.Client, baseURL, apiKey string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		endpoint: upstream.Endpoint{
			Client:  client,
			Circuit: upstream.NewBreaker("tides"),
		},
		log: log,
		now: time.Now,
	}
}

// Extremes returns up to six upcoming tide extremes over the next 48 hours,
// or nil when the upstream fails or has no data for the point.
func (c *Client) Extremes(ctx context.Context, point conditions.GeoPoint) []conditions.TideEvent {
	events, err := c.fetch(ctx, point)
	if err != nil {
		c.log.Warn("tide fetch failed; continuing without tide data",
			zap.Float64("lat", point.Latitude),
			zap.Float64("lon", point.Longitude),
			zap.Error(err))
		return nil
	}
	return events
}

func (c *Client) fetch(ctx context.Context, point conditions.GeoPoint) ([]conditions.TideEvent, error) {
	values := url.Values{}
	values.Set("extremes", "")
	values.Set("lat", fmt.Sprintf("%f", point.Latitude))
	values.Set("lon", fmt.Sprintf("%f", point.Longitude))
	values.Set("start", strconv.FormatInt(c.now().Unix(), 10))
	values.Set("length", strconv.Itoa(lookaheadSeconds))
	if c.apiKey != "" {
		values.Set("key", c.apiKey)
	}

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())

	resp, err := c.endpoint.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Extremes []struct {
			Type   string  `json:"type"`
			Height float64 `json:"height"`
			Dt     int64   `json:"dt"`
		} `json:"extremes"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if len(payload.Extremes) == 0 {
		return nil, nil
	}

	// Upstream order is assumed chronological; keep the first maxEvents.
	extremes := payload.Extremes
	if len(extremes) > maxEvents {
		extremes = extremes[:maxEvents]
	}

	events := make([]conditions.TideEvent, 0, len(extremes))
	for _, e := range extremes {
		kind := conditions.TideLow
		if e.Type == "High" {
			kind = conditions.TideHigh
		}
		events = append(events, conditions.TideEvent{
			Kind:         kind,
			HeightMeters: e.Height,
			Timestamp:    time.Unix(e.Dt, 0).UTC(),
		})
	}

	return events, nil
}
