package domain

import "time"

// UpcomingEvent is a provider-neutral event as returned by an events adapter,
// before enrichment. Venue coordinates are kept as the raw strings the provider
// sent; parsing happens during enrichment so a malformed pair fails only that
// event, not the batch.
type UpcomingEvent struct {
	ID       string // provider-assigned, globally unique per provider
	Name     string
	Category string // classification segment, "Unknown" when absent
	Date     string // local date, YYYY-MM-DD
	Time     string // local time HH:MM:SS, empty when unscheduled
	Venue    string
	VenueLat string
	VenueLon string
}

// EventQuery describes the forward window an events collector asks a provider
// for: events near City within RadiusMiles between Start and End.
type EventQuery struct {
	City        string
	RadiusMiles int
	Start       time.Time
	End         time.Time
}

// EventRecord is an enriched event ready for persistence, keyed by the
// provider's event ID. On conflict only Date, Time, ImpactScore, and
// ExpectedAttendance are refreshed; Name, Category, Venue, and Location keep
// their first-insert values.
type EventRecord struct {
	ID                 string
	Date               string  // YYYY-MM-DD
	Time               *string // HH:MM:SS, nil when unscheduled
	Name               string
	Category           string
	Venue              string
	Location           string  // configured city label
	DistanceKm         float64 // to the reference point, one decimal
	ImpactScore        float64 // 0.0–1.0, two decimals
	ExpectedAttendance *int
}
