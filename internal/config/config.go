package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Outbound HTTP timeout shared by all upstream calls.
	HTTPTimeout time.Duration

	// Place substituted for empty submissions.
	DefaultPlace string

	// RefreshInterval controls how often the last successful query is
	// re-run. Zero disables the refresh job.
	RefreshInterval time.Duration

	// Upstream base URLs; empty means the client's built-in default.
	GeocodeBaseURL  string
	ForecastBaseURL string
	TidesBaseURL    string

	// Optional WorldTides key passed through when set.
	TidesAPIKey string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	refreshStr := getenvDefault("REFRESH_INTERVAL", "15m")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.DefaultPlace = getenvDefault("DEFAULT_PLACE", "Marseille")
	cfg.GeocodeBaseURL = os.Getenv("GEOCODE_BASE_URL")
	cfg.ForecastBaseURL = os.Getenv("FORECAST_BASE_URL")
	cfg.TidesBaseURL = os.Getenv("TIDES_BASE_URL")
	cfg.TidesAPIKey = os.Getenv("TIDES_API_KEY")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
