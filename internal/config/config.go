// Package config loads service settings from environment variables. The rest
// of the service receives already-resolved values; no env parsing happens
// outside this package.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Placeholder credentials shipped in .env templates. Either value means the
// key is not configured, which collectors treat as a self-skip, not an error.
const (
	weatherKeyPlaceholder = "your_openweathermap_api_key_here"
	eventsKeyPlaceholder  = "your_ticketmaster_api_key_here"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatabasePath    string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	Weather  WeatherConfig
	Events   EventsConfig
	Calendar CalendarConfig
	Social   SocialConfig
}

// WeatherConfig configures the weather collector. APIKey is empty when unset
// or left at the placeholder value. HasCoords reports whether an explicit
// coordinate pair was configured; without one the collector queries by the
// Location place name.
type WeatherConfig struct {
	APIKey         string
	Location       string
	Lat            float64
	Lon            float64
	HasCoords      bool
	Interval       time.Duration
	RequestTimeout time.Duration
}

// EventsConfig configures the events collector. ReferenceLat/Lon is the venue
// of interest that distances and impact scores are computed against; it reuses
// the weather coordinates, falling back to downtown Manhattan.
type EventsConfig struct {
	APIKey         string
	City           string
	RadiusMiles    int
	ReferenceLat   float64
	ReferenceLon   float64
	Interval       time.Duration
	RequestTimeout time.Duration
}

// CalendarConfig configures the calendar collector's daily trigger time.
type CalendarConfig struct {
	AtHour   int
	AtMinute int
}

// SocialConfig configures the social-sentiment stub's trigger.
type SocialConfig struct {
	Interval time.Duration
}

// Load reads configuration from environment variables, applying defaults where
// unset.
func Load() (*Config, error) {
	calendarAt := getEnv("CALENDAR_AT", "00:00")
	atHour, atMinute, err := parseTimeOfDay(calendarAt)
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_AT %q: %w", calendarAt, err)
	}

	refLat := getEnvFloat("WEATHER_LAT", 40.7128)
	refLon := getEnvFloat("WEATHER_LON", -74.0060)
	hasCoords := os.Getenv("WEATHER_LAT") != "" && os.Getenv("WEATHER_LON") != ""

	cfg := &Config{
		DatabasePath:    getEnv("DATABASE_PATH", "./data/signals.db"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		Weather: WeatherConfig{
			APIKey:         resolveKey(os.Getenv("WEATHER_API_KEY"), weatherKeyPlaceholder),
			Location:       getEnv("WEATHER_LOCATION", "New York"),
			Lat:            refLat,
			Lon:            refLon,
			HasCoords:      hasCoords,
			Interval:       getEnvDuration("WEATHER_INTERVAL", 15*time.Minute),
			RequestTimeout: getEnvDuration("WEATHER_TIMEOUT", 10*time.Second),
		},
		Events: EventsConfig{
			APIKey:         resolveKey(os.Getenv("EVENTS_API_KEY"), eventsKeyPlaceholder),
			City:           getEnv("EVENTS_CITY", "New York"),
			RadiusMiles:    getEnvInt("EVENTS_RADIUS", 10),
			ReferenceLat:   refLat,
			ReferenceLon:   refLon,
			Interval:       getEnvDuration("EVENTS_INTERVAL", 6*time.Hour),
			RequestTimeout: getEnvDuration("EVENTS_TIMEOUT", 15*time.Second),
		},
		Calendar: CalendarConfig{
			AtHour:   atHour,
			AtMinute: atMinute,
		},
		Social: SocialConfig{
			Interval: getEnvDuration("SOCIAL_INTERVAL", time.Hour),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid LOG_LEVEL: %s", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid LOG_FORMAT: %s", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Weather.Interval < time.Minute {
		return fmt.Errorf("WEATHER_INTERVAL must be at least 1 minute")
	}
	if c.Events.Interval < time.Minute {
		return fmt.Errorf("EVENTS_INTERVAL must be at least 1 minute")
	}
	if c.Social.Interval < time.Minute {
		return fmt.Errorf("SOCIAL_INTERVAL must be at least 1 minute")
	}
	if c.Events.RadiusMiles <= 0 {
		return fmt.Errorf("EVENTS_RADIUS must be positive")
	}
	return nil
}

// resolveKey normalizes a credential: the documented placeholder value is the
// same as not setting the key at all.
func resolveKey(key, placeholder string) string {
	if key == placeholder {
		return ""
	}
	return key
}

// parseTimeOfDay parses "HH:MM" in 24-hour notation.
func parseTimeOfDay(s string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM: %w", err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("out of range")
	}
	return hour, minute, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
