// Package domain models the demand signals collected for a single venue of
// interest (a restaurant location) and the pure enrichment applied to them.
//
// # Data Sources
//
// Weather observations come from the OpenWeatherMap current-conditions API,
// events from the Ticketmaster Discovery API, and calendar facts are generated
// locally. Provider-specific wire formats live in the adapter packages; this
// package only sees provider-neutral values.
//
// # Impact Scoring
//
// Each upcoming event gets a 0.0–1.0 impact score estimating its effect on
// foot traffic at the reference location:
//
//	impact = base(category) × decay(distance)
//
// Base scores are a fixed lookup over Ticketmaster segment names:
//
//	Sports 0.85 | Music 0.75 | Family 0.70 | Arts & Theatre 0.65
//	Film 0.55 | Miscellaneous 0.50 | anything else 0.40 (Unknown)
//
// The lookup never fails; unrecognized categories fall back to Unknown.
//
// Distance decay is a step function of great-circle distance in km, inclusive
// on the lower bucket (exactly 1.0 km decays at 1.00, not 0.85):
//
//	≤1 km → 1.00 | ≤3 km → 0.85 | ≤5 km → 0.65 | ≤8 km → 0.45 | else → 0.25
//
// Scores are rounded to two decimals, distances to one. Both are deterministic
// pure functions, so recomputing them on a later collection run produces
// bit-identical values and repeated upserts converge.
//
// # Calendar Facts
//
// Dates are civil dates, midnight-normalized in UTC; no timezone arithmetic is
// involved. Weekday, weekend flag, month, quarter (ceil(month/3)), and year are
// fixed by the date itself and never independently settable. Holidays come from
// an injected HolidayResolver so the table can be swapped per locale or year
// span; dates outside the table are simply non-holidays.
package domain
