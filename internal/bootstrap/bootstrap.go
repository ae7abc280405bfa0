// Package bootstrap seeds baseline data at process start. It reports which
// collectors are configured, runs each concrete collector once synchronously
// in a fixed order, and then flips readiness so the ops endpoints report the
// service live. Recurring schedules take over afterwards.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/tablewise/signal-collector/internal/collector"
	"github.com/tablewise/signal-collector/internal/observability"
)

// Sequencer runs the startup sequence once.
type Sequencer struct {
	collectors []collector.Collector
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Sequencer over the given collectors; Run preserves their
// order.
func New(logger *slog.Logger, metrics *observability.Metrics, collectors ...collector.Collector) *Sequencer {
	return &Sequencer{
		collectors: collectors,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run logs configuration diagnostics and executes every collector once,
// synchronously, in registration order, to establish baseline data before any
// schedule exists.
func (s *Sequencer) Run(ctx context.Context) {
	for _, c := range s.collectors {
		if check, ok := c.(collector.ConfigCheck); ok {
			if configured, reason := check.Configured(); !configured {
				s.logger.Warn("collector will self-skip",
					"collector", c.Name(), "reason", reason)
				continue
			}
		}
		s.logger.Info("collector configured", "collector", c.Name())
	}

	s.logger.Info("running baseline collection", "collectors", len(s.collectors))
	for _, c := range s.collectors {
		o := collector.SafeRun(ctx, c)
		collector.ReportOutcome(s.logger, s.metrics, c.Name(), o)
	}

	s.ready.Store(true)
	s.logger.Info("baseline collection complete")
}

// CheckReadiness reports nil once the baseline pass has completed. It backs
// the ops server's readiness endpoint.
func (s *Sequencer) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("baseline collection has not completed yet")
	}
	return nil
}
