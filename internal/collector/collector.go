// Package collector implements the collection jobs that fetch one external
// data source each, enrich it, and persist it. All collectors honor one
// contract: Run never lets an error escape. Failures are classified into the
// three-way outcome and the caller (scheduler or bootstrap) takes no corrective
// action beyond recording it; a failed or skipped run simply waits for its
// next tick.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tablewise/signal-collector/internal/adapter/provider"
	"github.com/tablewise/signal-collector/internal/observability"
)

// Status classifies one collector invocation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the terminal result of one Run invocation.
type Outcome struct {
	Status  Status
	Count   int    // items persisted, set on success
	Reason  string // why the run was skipped
	Err     error  // what failed
	Elapsed time.Duration
}

// Success reports a completed run that persisted count items.
func Success(count int, elapsed time.Duration) Outcome {
	return Outcome{Status: StatusSuccess, Count: count, Elapsed: elapsed}
}

// Skipped reports an intentional no-op, e.g. a missing credential. Skips are
// a degraded mode, not an error, and never count toward failure metrics.
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

// Failed reports an unexpected error during the run.
func Failed(err error, elapsed time.Duration) Outcome {
	return Outcome{Status: StatusFailed, Err: err, Elapsed: elapsed}
}

// Collector is one collection job. Run must contain every failure: it returns
// an Outcome, never panics, and never blocks beyond its external calls.
type Collector interface {
	Name() string
	Run(ctx context.Context) Outcome
}

// ConfigCheck is optionally implemented by collectors that can tell at startup
// whether they will self-skip. Bootstrap uses it for configuration diagnostics.
type ConfigCheck interface {
	// Configured returns false and a reason when every Run will skip.
	Configured() (ok bool, reason string)
}

// SafeRun invokes c.Run and converts a panic into a Failed outcome, keeping
// the never-propagate contract even against a misbehaving collector.
func SafeRun(ctx context.Context, c Collector) (o Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o = Failed(fmt.Errorf("panic: %v", r), time.Since(start))
		}
	}()
	return c.Run(ctx)
}

// ReportOutcome records one run's outcome in the logs and metrics. Upstream
// API errors (a non-2xx response arrived) are logged distinctly from transport
// errors (no response received).
func ReportOutcome(logger *slog.Logger, metrics *observability.Metrics, name string, o Outcome) {
	metrics.CollectorRuns.WithLabelValues(name, string(o.Status)).Inc()

	switch o.Status {
	case StatusSuccess:
		metrics.CollectorDuration.WithLabelValues(name).Observe(o.Elapsed.Seconds())
		metrics.LastSuccess.WithLabelValues(name).SetToCurrentTime()
		logger.Info("collector run succeeded",
			"collector", name, "count", o.Count, "elapsed", o.Elapsed)
	case StatusSkipped:
		logger.Warn("collector run skipped", "collector", name, "reason", o.Reason)
	case StatusFailed:
		metrics.CollectorDuration.WithLabelValues(name).Observe(o.Elapsed.Seconds())
		var apiErr *provider.APIError
		if errors.As(o.Err, &apiErr) {
			logger.Error("collector run failed: upstream API error",
				"collector", name,
				"provider", apiErr.Provider,
				"status", apiErr.StatusCode,
				"body", apiErr.Body,
				"elapsed", o.Elapsed)
			return
		}
		logger.Error("collector run failed",
			"collector", name, "error", o.Err, "elapsed", o.Elapsed)
	}
}
