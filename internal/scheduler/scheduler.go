// Package scheduler runs registered collectors on independent recurring
// triggers. Each collector gets its own timer goroutine and each firing runs
// in its own goroutine, so one collector's slowness or failure never delays
// another's cadence. A firing that overlaps a still-running previous
// firing of the same collector is tolerated, which is safe because every
// collector's writes are idempotent upserts.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tablewise/signal-collector/internal/collector"
	"github.com/tablewise/signal-collector/internal/observability"
)

// TimeOfDay is a wall-clock firing time for daily triggers.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Trigger describes a collector's cadence: either a fixed interval or a fixed
// time once per day.
type Trigger struct {
	every   time.Duration
	dailyAt *TimeOfDay
}

// Every fires each time the interval elapses.
func Every(d time.Duration) Trigger {
	return Trigger{every: d}
}

// DailyAt fires once per day at the given wall-clock time.
func DailyAt(hour, minute int) Trigger {
	return Trigger{dailyAt: &TimeOfDay{Hour: hour, Minute: minute}}
}

func (t Trigger) String() string {
	if t.dailyAt != nil {
		return fmt.Sprintf("daily at %02d:%02d", t.dailyAt.Hour, t.dailyAt.Minute)
	}
	return fmt.Sprintf("every %s", t.every)
}

type entry struct {
	trigger   Trigger
	collector collector.Collector

	mu     sync.Mutex
	last   collector.Outcome
	hasRun bool
}

func (e *entry) setLast(o collector.Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = o
	e.hasRun = true
}

func (e *entry) lastOutcome() (collector.Outcome, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.hasRun
}

// Scheduler owns the set of named recurring triggers. Register collectors
// before Start; the mapping then lives for the process lifetime.
type Scheduler struct {
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	entries map[string]*entry
	order   []string

	wg sync.WaitGroup
}

func New(clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		entries: make(map[string]*entry),
	}
}

// Register binds a collector to a trigger under the collector's name.
// Re-registering a name replaces its trigger.
func (s *Scheduler) Register(trig Trigger, c collector.Collector) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := c.Name()
	if _, exists := s.entries[name]; !exists {
		s.order = append(s.order, name)
	}
	s.entries[name] = &entry{trigger: trig, collector: c}
}

// Start launches one timer goroutine per registered collector. Triggers stop
// firing when ctx is cancelled; call Drain afterwards to wait for in-flight
// runs.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range s.order {
		e := s.entries[name]
		s.logger.Info("trigger installed",
			"collector", name, "schedule", e.trigger.String())
		s.metrics.TriggersActive.Inc()

		s.wg.Add(1)
		go s.runLoop(ctx, name, e)
	}
}

func (s *Scheduler) runLoop(ctx context.Context, name string, e *entry) {
	defer s.wg.Done()
	defer s.metrics.TriggersActive.Dec()

	if e.trigger.dailyAt != nil {
		s.runDailyLoop(ctx, name, e)
		return
	}

	ticker := s.clock.NewTicker(e.trigger.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("trigger stopping", "collector", name)
			return
		case <-ticker.Chan():
			s.fire(ctx, name, e)
		}
	}
}

func (s *Scheduler) runDailyLoop(ctx context.Context, name string, e *entry) {
	for {
		wait := nextDaily(s.clock.Now(), *e.trigger.dailyAt).Sub(s.clock.Now())
		select {
		case <-ctx.Done():
			s.logger.Info("trigger stopping", "collector", name)
			return
		case <-s.clock.After(wait):
			s.fire(ctx, name, e)
		}
	}
}

// fire invokes the collector in its own goroutine so a slow run never delays
// this collector's next tick.
func (s *Scheduler) fire(ctx context.Context, name string, e *entry) {
	s.logger.Debug("trigger fired", "collector", name)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		o := collector.SafeRun(ctx, e.collector)
		e.setLast(o)
		collector.ReportOutcome(s.logger, s.metrics, name, o)
	}()
}

// LastOutcome returns the most recent outcome recorded for the named
// collector, reporting false until its first run completes.
func (s *Scheduler) LastOutcome(name string) (collector.Outcome, bool) {
	s.mu.Lock()
	e, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return collector.Outcome{}, false
	}
	return e.lastOutcome()
}

// Drain blocks until every timer loop and in-flight run has finished, or until
// ctx expires; in-flight runs are abandoned once the grace period ends.
func (s *Scheduler) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler drain: %w", ctx.Err())
	}
}

// nextDaily returns the next occurrence of tod strictly after now.
func nextDaily(now time.Time, tod TimeOfDay) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
