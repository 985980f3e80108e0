// Package config reads server settings from the environment and an optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hperssn/mapty/internal/domain"
)

type Config struct {
	HTTPAddress        string
	StorageDriver      string
	StorageDSN         string
	StaticDir          string
	GeolocationTimeout time.Duration
	FormCollapseDelay  time.Duration
	MapZoom            int
	EventHistory       int

	// Home, when set, replaces browser geolocation.
	Home *domain.Coords
}

// Load reads configuration from .env and environment variables, applying
// defaults for local use.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddress:        getEnv("HTTP_ADDRESS", ":8080"),
		StorageDriver:      getEnv("STORAGE_DRIVER", "sqlite"),
		StorageDSN:         getEnv("STORAGE_DSN", "./mapty.db"),
		StaticDir:          getEnv("STATIC_DIR", "./static"),
		GeolocationTimeout: getDurationEnv("GEOLOCATION_TIMEOUT", 0),
		FormCollapseDelay:  getDurationEnv("FORM_COLLAPSE_DELAY", time.Second),
		MapZoom:            getIntEnv("MAP_ZOOM", 13),
		EventHistory:       getIntEnv("EVENT_HISTORY", 2000),
	}

	lat, latOK := getFloatEnv("HOME_LAT")
	lng, lngOK := getFloatEnv("HOME_LNG")
	if latOK && lngOK {
		cfg.Home = &domain.Coords{Lat: lat, Lng: lng}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string) (float64, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
