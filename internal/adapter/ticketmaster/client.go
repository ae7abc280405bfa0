// Package ticketmaster implements the events provider against the
// Ticketmaster Discovery API.
package ticketmaster

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

const (
	providerName = "ticketmaster"

	// pageSize caps how many events one windowed query returns.
	pageSize = 50
)

// Client queries the Ticketmaster Discovery API for upcoming events.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Ticketmaster client with a bounded request timeout.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://app.ticketmaster.com/discovery/v2/events.json",
		logger:  logger,
	}
}

// Upcoming fetches events matching the query window. Venue coordinates are
// passed through as the raw strings the API returned; callers decide how to
// handle malformed pairs.
func (c *Client) Upcoming(ctx context.Context, q domain.EventQuery) ([]domain.UpcomingEvent, error) {
	params := url.Values{
		"apikey":        {c.apiKey},
		"city":          {q.City},
		"radius":        {strconv.Itoa(q.RadiusMiles)},
		"unit":          {"miles"},
		"startDateTime": {q.Start.UTC().Format("2006-01-02T15:04:05Z")},
		"endDateTime":   {q.End.UTC().Format("2006-01-02T15:04:05Z")},
		"size":          {strconv.Itoa(pageSize)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("event search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.NewAPIError(providerName, resp)
	}

	var tm response
	if err := json.NewDecoder(resp.Body).Decode(&tm); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	events := make([]domain.UpcomingEvent, 0, len(tm.Embedded.Events))
	for _, e := range tm.Embedded.Events {
		ev := domain.UpcomingEvent{
			ID:       e.ID,
			Name:     e.Name,
			Category: domain.CategoryUnknown,
			Date:     e.Dates.Start.LocalDate,
			Time:     e.Dates.Start.LocalTime,
		}
		if len(e.Classifications) > 0 {
			ev.Category = e.Classifications[0].Segment.Name
		}
		if len(e.Embedded.Venues) > 0 {
			v := e.Embedded.Venues[0]
			ev.Venue = v.Name
			ev.VenueLat = v.Location.Latitude
			ev.VenueLon = v.Location.Longitude
		}
		events = append(events, ev)
	}
	return events, nil
}

// Ticketmaster Discovery API response types. The `_embedded` envelope is
// absent entirely when the window contains no events.

type response struct {
	Embedded struct {
		Events []event `json:"events"`
	} `json:"_embedded"`
}

type event struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Classifications []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
	} `json:"classifications"`
	Embedded struct {
		Venues []struct {
			Name     string `json:"name"`
			Location struct {
				Latitude  string `json:"latitude"`
				Longitude string `json:"longitude"`
			} `json:"location"`
		} `json:"venues"`
	} `json:"_embedded"`
}
