package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/signal-collector/internal/adapter/provider"
)

const sampleBody = `{
	"main": {"temp": 22.5, "feels_like": 21.9, "humidity": 60, "pressure": 1013},
	"weather": [{"main": "Clouds", "description": "scattered clouds"}],
	"wind": {"speed": 3.4},
	"clouds": {"all": 40},
	"rain": {"1h": 0.3},
	"visibility": 10000
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.baseURL = srv.URL
	return c
}

func TestCurrentByCoords(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"lat":   r.URL.Query().Get("lat"),
			"lon":   r.URL.Query().Get("lon"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Write([]byte(sampleBody))
	})

	cond, err := c.CurrentByCoords(context.Background(), 40.7128, -74.006)
	require.NoError(t, err)

	assert.Equal(t, "40.7128", gotQuery["lat"])
	assert.Equal(t, "-74.006", gotQuery["lon"])
	assert.Equal(t, "test-key", gotQuery["appid"])
	assert.Equal(t, "metric", gotQuery["units"])

	assert.Equal(t, 22.5, cond.Temperature)
	assert.Equal(t, 21.9, cond.FeelsLike)
	assert.Equal(t, 60.0, cond.Humidity)
	assert.Equal(t, "Clouds", cond.Condition)
	assert.Equal(t, "scattered clouds", cond.Description)
	assert.Equal(t, 3.4, cond.WindSpeed)
	assert.Equal(t, 40.0, cond.CloudCover)
	assert.Equal(t, 0.3, cond.Precipitation)
	require.NotNil(t, cond.Visibility)
	assert.Equal(t, 10000.0, *cond.Visibility)
}

func TestCurrentByCity(t *testing.T) {
	var gotCity string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("q")
		w.Write([]byte(sampleBody))
	})

	_, err := c.CurrentByCity(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, "New York", gotCity)
}

func TestCurrent_NoRainNoVisibility(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main": {"temp": 5}, "weather": [], "wind": {}, "clouds": {}}`))
	})

	cond, err := c.CurrentByCity(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, 0.0, cond.Precipitation)
	assert.Nil(t, cond.Visibility)
	assert.Empty(t, cond.Condition)
}

func TestCurrent_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	})

	_, err := c.CurrentByCity(context.Background(), "New York")
	require.Error(t, err)

	var apiErr *provider.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "openweathermap", apiErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Invalid API key")
}

func TestCurrent_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main": `))
	})

	_, err := c.CurrentByCity(context.Background(), "New York")
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode response")
}
