package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"shorecast/internal/conditions"
	"shorecast/internal/upstream"
)

// DefaultBaseURL is the Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// currentFields are the instantaneous fields requested from the upstream.
// Precipitation is fetched alongside the rest but not surfaced in the
// reading.
const currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m,pressure_msl,is_day"

// Client implements conditions.WeatherSource against Open-Meteo.
type Client struct {
	baseURL  string
	endpoint upstream.Endpoint
}

func NewClient(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		endpoint: upstream.Endpoint{
			Client:  client,
			Circuit: upstream.NewBreaker("forecast"),
		},
	}
}

// Current fetches the current conditions for the exact coordinate pair.
// Exactly one outbound call is made; any failure is an UpstreamError.
func (c *Client) Current(ctx context.Context, point conditions.GeoPoint) (conditions.WeatherReading, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", point.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", point.Longitude))
	values.Set("current", currentFields)
	values.Set("timezone", "auto")

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())

	resp, err := c.endpoint.Get(ctx, u)
	if err != nil {
		return conditions.WeatherReading{}, &conditions.UpstreamError{Source: "weather", Err: err}
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Temperature   float64 `json:"temperature_2m"`
			Humidity      int     `json:"relative_humidity_2m"`
			FeelsLike     float64 `json:"apparent_temperature"`
			Precipitation float64 `json:"precipitation"`
			WeatherCode   int     `json:"weather_code"`
			WindSpeed     float64 `json:"wind_speed_10m"`
			PressureMsl   float64 `json:"pressure_msl"`
			IsDay         int     `json:"is_day"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return conditions.WeatherReading{}, &conditions.UpstreamError{Source: "weather", Err: err}
	}

	return conditions.WeatherReading{
		TemperatureC: payload.Current.Temperature,
		FeelsLikeC:   payload.Current.FeelsLike,
		HumidityPct:  payload.Current.Humidity,
		WindSpeedKmh: payload.Current.WindSpeed,
		PressureHpa:  payload.Current.PressureMsl,
		Code:         payload.Current.WeatherCode,
		IsDaytime:    payload.Current.IsDay == 1,
	}, nil
}
