package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/tablewise/signal-collector/internal/adapter/openweather"
	"github.com/tablewise/signal-collector/internal/adapter/ops"
	"github.com/tablewise/signal-collector/internal/adapter/ticketmaster"
	"github.com/tablewise/signal-collector/internal/bootstrap"
	"github.com/tablewise/signal-collector/internal/collector"
	"github.com/tablewise/signal-collector/internal/config"
	"github.com/tablewise/signal-collector/internal/domain"
	"github.com/tablewise/signal-collector/internal/observability"
	"github.com/tablewise/signal-collector/internal/scheduler"
	"github.com/tablewise/signal-collector/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// The one unrecoverable startup error: without a reachable store no
	// collector's output is durable.
	st, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = st.HealthCheck(pingCtx)
	cancelPing()
	if err != nil {
		logger.Error("store health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("store ready", "path", cfg.DatabasePath)

	weatherSource := openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.RequestTimeout, logger)
	eventSource := ticketmaster.NewClient(cfg.Events.APIKey, cfg.Events.RequestTimeout, logger)
	holidays := domain.NewStaticHolidayResolver(nil)

	weather := collector.NewWeather(cfg.Weather, weatherSource, st, clock, logger, metrics)
	events := collector.NewEvents(cfg.Events, eventSource, st, clock, logger, metrics)
	calendar := collector.NewCalendar(st, holidays, clock, logger, metrics)
	social := collector.NewSocial()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Seed baseline data synchronously before any schedule exists.
	seq := bootstrap.New(logger, metrics, weather, events, calendar)
	seq.Run(ctx)

	sched := scheduler.New(clock, logger, metrics)
	sched.Register(scheduler.Every(cfg.Weather.Interval), weather)
	sched.Register(scheduler.Every(cfg.Events.Interval), events)
	sched.Register(scheduler.DailyAt(cfg.Calendar.AtHour, cfg.Calendar.AtMinute), calendar)
	sched.Register(scheduler.Every(cfg.Social.Interval), social)
	sched.Start(ctx)

	srv := ops.NewServer(cfg.HTTPAddr, seq, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown error", "error", err)
	}
	if err := sched.Drain(shutdownCtx); err != nil {
		logger.Warn("abandoning in-flight collector runs", "error", err)
	}

	logger.Info("shutdown complete")
}
