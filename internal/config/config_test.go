package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_PATH", "HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
		"WEATHER_API_KEY", "WEATHER_LOCATION", "WEATHER_LAT", "WEATHER_LON",
		"WEATHER_INTERVAL", "WEATHER_TIMEOUT",
		"EVENTS_API_KEY", "EVENTS_CITY", "EVENTS_RADIUS", "EVENTS_INTERVAL", "EVENTS_TIMEOUT",
		"CALENDAR_AT", "SOCIAL_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/signals.db", cfg.DatabasePath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Empty(t, cfg.Weather.APIKey)
	assert.Equal(t, "New York", cfg.Weather.Location)
	assert.False(t, cfg.Weather.HasCoords)
	assert.Equal(t, 15*time.Minute, cfg.Weather.Interval)
	assert.Equal(t, 10*time.Second, cfg.Weather.RequestTimeout)

	assert.Empty(t, cfg.Events.APIKey)
	assert.Equal(t, "New York", cfg.Events.City)
	assert.Equal(t, 10, cfg.Events.RadiusMiles)
	assert.Equal(t, 40.7128, cfg.Events.ReferenceLat)
	assert.Equal(t, -74.0060, cfg.Events.ReferenceLon)
	assert.Equal(t, 6*time.Hour, cfg.Events.Interval)

	assert.Equal(t, 0, cfg.Calendar.AtHour)
	assert.Equal(t, 0, cfg.Calendar.AtMinute)
	assert.Equal(t, time.Hour, cfg.Social.Interval)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_PATH", "/var/lib/signals/db.sqlite")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("WEATHER_API_KEY", "owm-key")
	t.Setenv("WEATHER_LAT", "34.0522")
	t.Setenv("WEATHER_LON", "-118.2437")
	t.Setenv("WEATHER_INTERVAL", "5m")
	t.Setenv("EVENTS_API_KEY", "tm-key")
	t.Setenv("EVENTS_CITY", "Los Angeles")
	t.Setenv("EVENTS_RADIUS", "25")
	t.Setenv("CALENDAR_AT", "06:30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/signals/db.sqlite", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "owm-key", cfg.Weather.APIKey)
	assert.True(t, cfg.Weather.HasCoords)
	assert.Equal(t, 34.0522, cfg.Weather.Lat)
	assert.Equal(t, 5*time.Minute, cfg.Weather.Interval)

	assert.Equal(t, "tm-key", cfg.Events.APIKey)
	assert.Equal(t, "Los Angeles", cfg.Events.City)
	assert.Equal(t, 25, cfg.Events.RadiusMiles)
	assert.Equal(t, 34.0522, cfg.Events.ReferenceLat, "events reuse the weather coordinates")
	assert.Equal(t, -118.2437, cfg.Events.ReferenceLon)

	assert.Equal(t, 6, cfg.Calendar.AtHour)
	assert.Equal(t, 30, cfg.Calendar.AtMinute)
}

func TestLoad_PlaceholderKeysResolveToEmpty(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_API_KEY", "your_openweathermap_api_key_here")
	t.Setenv("EVENTS_API_KEY", "your_ticketmaster_api_key_here")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Weather.APIKey)
	assert.Empty(t, cfg.Events.APIKey)
}

func TestLoad_PartialCoordinatesIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_LAT", "34.0522")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Weather.HasCoords, "both coordinates must be set")
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "yaml"},
		{"weather interval too short", "WEATHER_INTERVAL", "10s"},
		{"events interval too short", "EVENTS_INTERVAL", "30s"},
		{"social interval too short", "SOCIAL_INTERVAL", "5s"},
		{"radius not positive", "EVENTS_RADIUS", "-5"},
		{"calendar time malformed", "CALENDAR_AT", "midnight"},
		{"calendar hour out of range", "CALENDAR_AT", "25:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnparseableValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENTS_RADIUS", "ten")
	t.Setenv("WEATHER_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Events.RadiusMiles)
	assert.Equal(t, 15*time.Minute, cfg.Weather.Interval)
}

func TestParseTimeOfDay(t *testing.T) {
	hour, minute, err := parseTimeOfDay("06:30")
	require.NoError(t, err)
	assert.Equal(t, 6, hour)
	assert.Equal(t, 30, minute)

	_, _, err = parseTimeOfDay("23:60")
	assert.Error(t, err)
	_, _, err = parseTimeOfDay("")
	assert.Error(t, err)
}
