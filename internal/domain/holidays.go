package domain

import "time"

// HolidayResolver reports whether a civil date is a named holiday. Resolvers
// are data, not logic: swapping the table per locale or year span must not
// touch collector code, and dates beyond the known span degrade to "not a
// holiday" rather than erroring.
type HolidayResolver interface {
	Resolve(date time.Time) (name string, ok bool)
}

// StaticHolidayResolver resolves holidays from a fixed table keyed by ISO date
// string (YYYY-MM-DD).
type StaticHolidayResolver struct {
	table map[string]string
}

// NewStaticHolidayResolver builds a resolver over the given table. Pass nil to
// use the built-in US holidays and observances for 2025–2026.
func NewStaticHolidayResolver(table map[string]string) *StaticHolidayResolver {
	if table == nil {
		table = usHolidays
	}
	return &StaticHolidayResolver{table: table}
}

func (r *StaticHolidayResolver) Resolve(date time.Time) (string, bool) {
	name, ok := r.table[CivilDate(date).Format("2006-01-02")]
	return name, ok
}

// usHolidays covers US federal holidays and common observances relevant to
// restaurant demand for 2025–2026.
var usHolidays = map[string]string{
	"2025-01-01": "New Year's Day",
	"2025-01-20": "Martin Luther King Jr. Day",
	"2025-02-14": "Valentine's Day",
	"2025-02-17": "Presidents' Day",
	"2025-03-17": "St. Patrick's Day",
	"2025-04-20": "Easter Sunday",
	"2025-05-11": "Mother's Day",
	"2025-05-26": "Memorial Day",
	"2025-06-15": "Father's Day",
	"2025-06-19": "Juneteenth",
	"2025-07-04": "Independence Day",
	"2025-09-01": "Labor Day",
	"2025-10-13": "Columbus Day",
	"2025-10-31": "Halloween",
	"2025-11-11": "Veterans Day",
	"2025-11-27": "Thanksgiving",
	"2025-12-24": "Christmas Eve",
	"2025-12-25": "Christmas Day",
	"2025-12-31": "New Year's Eve",

	"2026-01-01": "New Year's Day",
	"2026-01-19": "Martin Luther King Jr. Day",
	"2026-02-14": "Valentine's Day",
	"2026-02-16": "Presidents' Day",
	"2026-03-17": "St. Patrick's Day",
	"2026-04-05": "Easter Sunday",
	"2026-05-10": "Mother's Day",
	"2026-05-25": "Memorial Day",
	"2026-06-19": "Juneteenth",
	"2026-06-21": "Father's Day",
	"2026-07-04": "Independence Day",
	"2026-09-07": "Labor Day",
	"2026-10-12": "Columbus Day",
	"2026-10-31": "Halloween",
	"2026-11-11": "Veterans Day",
	"2026-11-26": "Thanksgiving",
	"2026-12-24": "Christmas Eve",
	"2026-12-25": "Christmas Day",
	"2026-12-31": "New Year's Eve",
}
