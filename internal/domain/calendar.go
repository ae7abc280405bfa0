package domain

import "time"

// CalendarDay holds the derived facts for one civil date, keyed by Date.
// Weekday, weekend flag, month, quarter, and year are fixed by the date; on
// conflict only IsHoliday and HolidayName are refreshed.
type CalendarDay struct {
	Date        time.Time // midnight UTC
	DayOfWeek   int       // 0=Sunday … 6=Saturday
	IsWeekend   bool
	IsHoliday   bool
	HolidayName *string
	Month       int
	Quarter     int // ceil(month/3)
	Year        int
}

// CivilDate normalizes a time to its civil date: midnight UTC of the same
// year/month/day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewCalendarDay derives all calendar facts for the given date. The resolver
// supplies holiday names; a nil resolver means no date is a holiday.
func NewCalendarDay(date time.Time, resolver HolidayResolver) CalendarDay {
	date = CivilDate(date)

	day := CalendarDay{
		Date:      date,
		DayOfWeek: int(date.Weekday()),
		Month:     int(date.Month()),
		Year:      date.Year(),
	}
	day.IsWeekend = day.DayOfWeek == 0 || day.DayOfWeek == 6
	day.Quarter = (day.Month + 2) / 3

	if resolver != nil {
		if name, ok := resolver.Resolve(date); ok {
			day.IsHoliday = true
			day.HolidayName = &name
		}
	}
	return day
}
