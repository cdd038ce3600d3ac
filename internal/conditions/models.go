package conditions

import (
	"time"
)

// GeoPoint is a resolved geographic location.
// It is produced once per query by the place resolver and never mutated.
type GeoPoint struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
}

// WeatherReading holds the raw current-conditions values from the forecast
// upstream, already converted to the units we present (°C, %, km/h, hPa).
type WeatherReading struct {
	TemperatureC float64 `json:"temperatureC"`
	FeelsLikeC   float64 `json:"feelsLikeC"`
	HumidityPct  int     `json:"humidityPercent"`
	WindSpeedKmh float64 `json:"windSpeedKmh"`
	PressureHpa  float64 `json:"pressureHpa"`
	Code         int     `json:"conditionCode"`
	IsDaytime    bool    `json:"isDaytime"`
}

// Icon is an iconographic symbol for a weather condition.
type Icon string

// InterpretedWeather is a WeatherReading plus the human-readable description
// and icon derived from its condition code and day/night flag.
type InterpretedWeather struct {
	WeatherReading
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
}

// TideKind distinguishes high and low tide extremes.
type TideKind string

const (
	TideHigh TideKind = "High"
	TideLow  TideKind = "Low"
)

// TideEvent is a single upcoming tide extreme.
type TideEvent struct {
	Kind         TideKind  `json:"kind"`
	HeightMeters float64   `json:"heightMeters"`
	Timestamp    time.Time `json:"timestamp"`
}

// Conditions is the aggregate view model handed to the presentation layer.
// It is only ever constructed around a valid weather reading; Tides may be
// nil even on success.
type Conditions struct {
	Place   GeoPoint           `json:"place"`
	Weather InterpretedWeather `json:"weather"`
	Tides   []TideEvent        `json:"tides,omitempty"`
}

// Status enumerates the aggregator's request states.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// RequestState is the single piece of observable state the aggregator owns.
// Exactly one of Conditions/ErrorMessage is set, and only in the
// success/error states respectively.
type RequestState struct {
	Status       Status      `json:"status"`
	Conditions   *Conditions `json:"conditions,omitempty"`
	ErrorMessage string      `json:"error,omitempty"`
}
