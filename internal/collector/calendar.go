package collector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/tablewise/signal-collector/internal/domain"
	"github.com/tablewise/signal-collector/internal/observability"
	"github.com/tablewise/signal-collector/internal/store"
)

// calendarWindowDays is how far forward the calendar window extends from
// today. The window is inclusive of both endpoints, so each run touches
// calendarWindowDays+1 dates.
const calendarWindowDays = 90

// Calendar regenerates the forward calendar window on every run, deriving
// weekday/quarter facts and resolving holidays for each date. The whole window
// is upserted each time, so repeated runs converge instead of duplicating.
type Calendar struct {
	store    store.Store
	resolver domain.HolidayResolver
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func NewCalendar(st store.Store, resolver domain.HolidayResolver, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Calendar {
	return &Calendar{
		store:    st,
		resolver: resolver,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

func (c *Calendar) Name() string { return "calendar" }

func (c *Calendar) Run(ctx context.Context) Outcome {
	start := c.clock.Now()
	today := domain.CivilDate(c.clock.Now())

	count := 0
	holidays := 0
	for i := 0; i <= calendarWindowDays; i++ {
		day := domain.NewCalendarDay(today.AddDate(0, 0, i), c.resolver)

		if err := c.store.UpsertCalendarDay(ctx, day); err != nil {
			c.logger.Warn("dropping calendar day",
				"date", day.Date.Format("2006-01-02"),
				"error", fmt.Errorf("persist: %w", err))
			c.metrics.ItemErrors.WithLabelValues(c.Name()).Inc()
			continue
		}
		c.metrics.ItemsPersisted.WithLabelValues(c.Name()).Inc()
		count++

		if day.IsHoliday {
			holidays++
			c.logger.Debug("holiday in window",
				"date", day.Date.Format("2006-01-02"), "name", *day.HolidayName)
		}
	}

	c.logger.Info("calendar window refreshed", "days", count, "holidays", holidays)
	return Success(count, c.clock.Since(start))
}
