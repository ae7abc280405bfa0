package collector_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/tablewise/signal-collector/internal/domain"
	"github.com/tablewise/signal-collector/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

// fakeStore is an in-memory store.Store capturing upserts for assertions.
type fakeStore struct {
	mu       sync.Mutex
	weather  []domain.WeatherObservation
	events   map[string]domain.EventRecord
	calendar map[string]domain.CalendarDay

	insertWeatherErr error
	failEventIDs     map[string]error
	failDates        map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:   make(map[string]domain.EventRecord),
		calendar: make(map[string]domain.CalendarDay),
	}
}

func (f *fakeStore) InsertWeatherObservation(_ context.Context, obs domain.WeatherObservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertWeatherErr != nil {
		return f.insertWeatherErr
	}
	f.weather = append(f.weather, obs)
	return nil
}

func (f *fakeStore) UpsertEventRecord(_ context.Context, rec domain.EventRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failEventIDs[rec.ID]; ok {
		return err
	}
	if existing, ok := f.events[rec.ID]; ok {
		// Mirror the real store's conflict clause: only the mutable
		// fields refresh.
		existing.Date = rec.Date
		existing.Time = rec.Time
		existing.ImpactScore = rec.ImpactScore
		existing.ExpectedAttendance = rec.ExpectedAttendance
		f.events[rec.ID] = existing
		return nil
	}
	f.events[rec.ID] = rec
	return nil
}

func (f *fakeStore) UpsertCalendarDay(_ context.Context, day domain.CalendarDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := day.Date.Format("2006-01-02")
	if err, ok := f.failDates[key]; ok {
		return err
	}
	if existing, ok := f.calendar[key]; ok {
		existing.IsHoliday = day.IsHoliday
		existing.HolidayName = day.HolidayName
		f.calendar[key] = existing
		return nil
	}
	f.calendar[key] = day
	return nil
}

func (f *fakeStore) HealthCheck(_ context.Context) error { return nil }
func (f *fakeStore) Close() error                        { return nil }

func (f *fakeStore) weatherCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.weather)
}

func (f *fakeStore) event(id string) (domain.EventRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.events[id]
	return rec, ok
}

func (f *fakeStore) calendarDay(key string) (domain.CalendarDay, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.calendar[key]
	return day, ok
}

func (f *fakeStore) calendarSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calendar)
}
