// Package openweather implements the weather provider against the
// OpenWeatherMap current-conditions API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tablewise/signal-collector/internal/adapter/provider"
	"github.com/tablewise/signal-collector/internal/domain"
)

const providerName = "openweathermap"

// Client queries OpenWeatherMap for current conditions in metric units.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client with a bounded request timeout.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		logger:  logger,
	}
}

// CurrentByCoords fetches current conditions for a coordinate pair.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (domain.Conditions, error) {
	params := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
	return c.doRequest(ctx, params)
}

// CurrentByCity fetches current conditions for a place name.
func (c *Client) CurrentByCity(ctx context.Context, city string) (domain.Conditions, error) {
	params := url.Values{
		"q": {city},
	}
	return c.doRequest(ctx, params)
}

func (c *Client) doRequest(ctx context.Context, params url.Values) (domain.Conditions, error) {
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Conditions{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Conditions{}, fmt.Errorf("current conditions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Conditions{}, provider.NewAPIError(providerName, resp)
	}

	var owm response
	if err := json.NewDecoder(resp.Body).Decode(&owm); err != nil {
		return domain.Conditions{}, fmt.Errorf("decode response: %w", err)
	}

	cond := domain.Conditions{
		Temperature: owm.Main.Temp,
		FeelsLike:   owm.Main.FeelsLike,
		Humidity:    owm.Main.Humidity,
		Pressure:    owm.Main.Pressure,
		WindSpeed:   owm.Wind.Speed,
		CloudCover:  owm.Clouds.All,
	}
	if len(owm.Weather) > 0 {
		cond.Condition = owm.Weather[0].Main
		cond.Description = owm.Weather[0].Description
	}
	if owm.Rain != nil {
		cond.Precipitation = owm.Rain.OneHour
	}
	if owm.Visibility != nil {
		v := float64(*owm.Visibility)
		cond.Visibility = &v
	}
	return cond, nil
}

// OpenWeatherMap API response types.

type response struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Rain *struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Visibility *int `json:"visibility"`
}
