package domain

import "time"

// Conditions is a provider-neutral snapshot of current weather returned by a
// weather adapter. Values use metric units: °C, hPa, m/s, percent, meters.
type Conditions struct {
	Temperature   float64
	FeelsLike     float64
	Humidity      float64 // 0–100
	Pressure      float64 // hPa
	Condition     string  // short code, e.g. "Rain"
	Description   string  // e.g. "light rain"
	WindSpeed     float64
	CloudCover    float64  // 0–100
	Precipitation float64  // mm over the last hour, 0 when unreported
	Visibility    *float64 // meters, nil when unreported
}

// WeatherObservation is one timestamped weather record for the configured
// location. Observations form an append-only time series with no natural key;
// they are never updated after insertion.
type WeatherObservation struct {
	Time     time.Time
	Location string
	Conditions
}
