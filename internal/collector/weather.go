package collector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/tablewise/signal-collector/internal/config"
	"github.com/tablewise/signal-collector/internal/domain"
	"github.com/tablewise/signal-collector/internal/observability"
	"github.com/tablewise/signal-collector/internal/store"
)

// WeatherSource fetches current conditions from a weather provider. Queries go
// by coordinate pair when one is configured, by place name otherwise.
type WeatherSource interface {
	CurrentByCoords(ctx context.Context, lat, lon float64) (domain.Conditions, error)
	CurrentByCity(ctx context.Context, city string) (domain.Conditions, error)
}

// Weather collects one current-conditions observation per run for the
// configured location.
type Weather struct {
	cfg     config.WeatherConfig
	source  WeatherSource
	store   store.Store
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewWeather(cfg config.WeatherConfig, source WeatherSource, st store.Store, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Weather {
	return &Weather{
		cfg:     cfg,
		source:  source,
		store:   st,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

func (w *Weather) Name() string { return "weather" }

func (w *Weather) Configured() (bool, string) {
	if w.cfg.APIKey == "" {
		return false, "weather API key not configured"
	}
	return true, ""
}

func (w *Weather) Run(ctx context.Context) Outcome {
	if ok, reason := w.Configured(); !ok {
		return Skipped(reason)
	}

	start := w.clock.Now()

	var (
		cond domain.Conditions
		err  error
	)
	if w.cfg.HasCoords {
		cond, err = w.source.CurrentByCoords(ctx, w.cfg.Lat, w.cfg.Lon)
	} else {
		cond, err = w.source.CurrentByCity(ctx, w.cfg.Location)
	}
	if err != nil {
		return Failed(fmt.Errorf("fetch current conditions: %w", err), w.clock.Since(start))
	}

	obs := domain.WeatherObservation{
		Time:       w.clock.Now(),
		Location:   w.cfg.Location,
		Conditions: cond,
	}

	if err := w.store.InsertWeatherObservation(ctx, obs); err != nil {
		return Failed(fmt.Errorf("persist observation: %w", err), w.clock.Since(start))
	}
	w.metrics.ItemsPersisted.WithLabelValues(w.Name()).Inc()

	w.logger.Info("weather observation stored",
		"location", obs.Location,
		"temperature_c", obs.Temperature,
		"description", obs.Description,
		"humidity", obs.Humidity,
	)
	return Success(1, w.clock.Since(start))
}
