package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration
	UserAgent   string

	IPInfoBaseURL        string
	NominatimBaseURL     string
	OpenMeteoBaseURL     string
	SunriseSunsetBaseURL string
	WttrBaseURL          string

	// GoogleGeocodingAPIKey switches place search from Nominatim to Google.
	GoogleGeocodingAPIKey string
	GoogleGeocodingURL    string

	ZipkinEndpoint string

	// Places logged periodically by the watch job; empty disables it.
	WatchPlaces   []string
	WatchInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	cfg.HTTPTimeout = timeout
	cfg.UserAgent = getenvDefault("USER_AGENT", "weather-lookup/1.0")

	cfg.IPInfoBaseURL = getenvDefault("IPINFO_BASE_URL", "https://ipinfo.io")
	cfg.NominatimBaseURL = getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	cfg.OpenMeteoBaseURL = getenvDefault("OPEN_METEO_BASE_URL", "https://api.open-meteo.com")
	cfg.SunriseSunsetBaseURL = getenvDefault("SUNRISE_SUNSET_BASE_URL", "https://api.sunrise-sunset.org")
	cfg.WttrBaseURL = getenvDefault("WTTR_BASE_URL", "https://wttr.in")

	cfg.GoogleGeocodingAPIKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")
	cfg.GoogleGeocodingURL = os.Getenv("GOOGLE_GEOCODING_URL")
	cfg.ZipkinEndpoint = os.Getenv("ZIPKIN_ENDPOINT")

	cfg.WatchPlaces = splitList(os.Getenv("WATCH_PLACES"))
	interval, err := getenvDuration("WATCH_INTERVAL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.WatchInterval = interval

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

// getenvDuration accepts Go durations ("30s") or plain seconds ("30").
func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	if secs := getenvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid %s: %q", key, v)
}
