package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tablewise/signal-collector/internal/config"
	"github.com/tablewise/signal-collector/internal/domain"
	"github.com/tablewise/signal-collector/internal/observability"
	"github.com/tablewise/signal-collector/internal/store"
)

// eventsWindow is the forward window each run asks the provider for.
const eventsWindow = 7 * 24 * time.Hour

// EventSource fetches upcoming events from an events provider.
type EventSource interface {
	Upcoming(ctx context.Context, q domain.EventQuery) ([]domain.UpcomingEvent, error)
}

// Events collects upcoming events near the configured city, scores each one
// against the reference coordinate, and upserts them keyed by provider event
// ID. A malformed or unpersistable event is logged and dropped; the batch
// continues and still reports success with a reduced count.
type Events struct {
	cfg     config.EventsConfig
	source  EventSource
	store   store.Store
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewEvents(cfg config.EventsConfig, source EventSource, st store.Store, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Events {
	return &Events{
		cfg:     cfg,
		source:  source,
		store:   st,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

func (e *Events) Name() string { return "events" }

func (e *Events) Configured() (bool, string) {
	if e.cfg.APIKey == "" {
		return false, "events API key not configured"
	}
	return true, ""
}

func (e *Events) Run(ctx context.Context) Outcome {
	if ok, reason := e.Configured(); !ok {
		return Skipped(reason)
	}

	start := e.clock.Now()

	now := e.clock.Now()
	events, err := e.source.Upcoming(ctx, domain.EventQuery{
		City:        e.cfg.City,
		RadiusMiles: e.cfg.RadiusMiles,
		Start:       now,
		End:         now.Add(eventsWindow),
	})
	if err != nil {
		return Failed(fmt.Errorf("fetch upcoming events: %w", err), e.clock.Since(start))
	}

	count := 0
	for _, ev := range events {
		rec, err := e.enrich(ev)
		if err != nil {
			e.logger.Warn("dropping event",
				"event_id", ev.ID, "name", ev.Name, "error", err)
			e.metrics.ItemErrors.WithLabelValues(e.Name()).Inc()
			continue
		}

		if err := e.store.UpsertEventRecord(ctx, rec); err != nil {
			e.logger.Warn("dropping event",
				"event_id", ev.ID, "name", ev.Name, "error", err)
			e.metrics.ItemErrors.WithLabelValues(e.Name()).Inc()
			continue
		}
		e.metrics.ItemsPersisted.WithLabelValues(e.Name()).Inc()
		count++

		e.logger.Debug("event upserted",
			"event_id", rec.ID,
			"name", rec.Name,
			"category", rec.Category,
			"distance_km", rec.DistanceKm,
			"impact_score", rec.ImpactScore,
		)
	}

	e.logger.Info("events window processed",
		"fetched", len(events), "persisted", count)
	return Success(count, e.clock.Since(start))
}

// enrich turns a provider event into a persistable record: parse the venue
// coordinates, compute distance to the reference point, derive the impact
// score. Coordinate parse failures fail only this event.
func (e *Events) enrich(ev domain.UpcomingEvent) (domain.EventRecord, error) {
	lat, err := strconv.ParseFloat(ev.VenueLat, 64)
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("parse venue latitude %q: %w", ev.VenueLat, err)
	}
	lon, err := strconv.ParseFloat(ev.VenueLon, 64)
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("parse venue longitude %q: %w", ev.VenueLon, err)
	}

	category := ev.Category
	if category == "" {
		category = domain.CategoryUnknown
	}

	distance := domain.DistanceKm(e.cfg.ReferenceLat, e.cfg.ReferenceLon, lat, lon)

	rec := domain.EventRecord{
		ID:          ev.ID,
		Date:        ev.Date,
		Name:        ev.Name,
		Category:    category,
		Venue:       ev.Venue,
		Location:    e.cfg.City,
		DistanceKm:  distance,
		ImpactScore: domain.ImpactScore(category, distance),
	}
	if ev.Time != "" {
		t := ev.Time
		rec.Time = &t
	}
	return rec, nil
}
