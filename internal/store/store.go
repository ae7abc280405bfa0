// Package store persists collected signals. Collectors receive a Store at
// construction rather than reaching for ambient state, so tests can substitute
// a fake and concurrent collectors can share one safe implementation.
package store

import (
	"context"

	"github.com/tablewise/signal-collector/internal/domain"
)

// Store is the persistence collaborator shared by all collectors. Implementations
// must be safe for concurrent callers: different collectors' upserts interleave.
type Store interface {
	// InsertWeatherObservation appends one observation to the weather time series.
	InsertWeatherObservation(ctx context.Context, obs domain.WeatherObservation) error

	// UpsertEventRecord inserts or updates an event keyed by its provider ID.
	// On conflict only date, time, impact score, and expected attendance are
	// refreshed; name, category, venue, and location keep first-insert values.
	UpsertEventRecord(ctx context.Context, rec domain.EventRecord) error

	// UpsertCalendarDay inserts or updates a calendar day keyed by date.
	// On conflict only the holiday flag and name are refreshed; the facts
	// fixed by the date itself never change.
	UpsertCalendarDay(ctx context.Context, day domain.CalendarDay) error

	// HealthCheck verifies the store is reachable. Called once at startup;
	// failure there is the one unrecoverable error the process has.
	HealthCheck(ctx context.Context) error

	Close() error
}
