package forecast

import (
	"shorecast/internal/conditions"
)

// Icon symbols for the presentation layer.
const (
	IconClearDay     conditions.Icon = "☀️"
	IconClearNight   conditions.Icon = "🌙"
	IconCloudyDay    conditions.Icon = "⛅"
	IconCloudyNight  conditions.Icon = "☁️"
	IconFog          conditions.Icon = "🌫️"
	IconDrizzle      conditions.Icon = "💧"
	IconRain         conditions.Icon = "🌧️"
	IconSnow         conditions.Icon = "❄️"
	IconRainShower   conditions.Icon = "🌦️"
	IconSnowShower   conditions.Icon = "🌨️"
	IconThunderstorm conditions.Icon = "⛈️"
	IconFallback     conditions.Icon = "🌡️"
)

// descriptions maps the WMO weather codes used by Open-Meteo to display
// text.
var descriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Describe returns the display text for a weather code. Codes outside the
// known set map to "Unknown".
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Unknown"
}

// IconFor picks the icon for a weather code. The thresholds are tested in
// ascending order and the first match wins; gaps in the code numbering fall
// into the nearest range above them, so e.g. codes 4-44 get the fog icon.
func IconFor(code int, isDaytime bool) conditions.Icon {
	switch {
	case code == 0:
		if isDaytime {
			return IconClearDay
		}
		return IconClearNight
	case code <= 3:
		if isDaytime {
			return IconCloudyDay
		}
		return IconCloudyNight
	case code <= 48:
		return IconFog
	case code <= 55:
		return IconDrizzle
	case code <= 65:
		return IconRain
	case code <= 77:
		return IconSnow
	case code <= 82:
		return IconRainShower
	case code <= 86:
		return IconSnowShower
	case code >= 95:
		return IconThunderstorm
	default:
		return IconFallback
	}
}

// Interpret derives the description and icon for a raw reading.
func Interpret(r conditions.WeatherReading) conditions.InterpretedWeather {
	return conditions.InterpretedWeather{
		WeatherReading: r,
		Description:    Describe(r.Code),
		Icon:           IconFor(r.Code, r.IsDaytime),
	}
}
