package domain

import "math"

// CategoryUnknown is the fallback category for events whose classification is
// missing or not in the base-score table.
const CategoryUnknown = "Unknown"

// baseScores maps Ticketmaster classification segments to base impact scores.
// Lookups never fail: anything not listed here scores as CategoryUnknown.
var baseScores = map[string]float64{
	"Sports":         0.85,
	"Music":          0.75,
	"Family":         0.70,
	"Arts & Theatre": 0.65,
	"Film":           0.55,
	"Miscellaneous":  0.50,
	CategoryUnknown:  0.40,
}

// ImpactScore estimates an event's effect on the reference location from its
// category and great-circle distance in km. The result is base(category) ×
// decay(distance), rounded to two decimals, and is monotonically non-increasing
// in distance for a fixed category.
func ImpactScore(category string, distanceKm float64) float64 {
	base, ok := baseScores[category]
	if !ok {
		base = baseScores[CategoryUnknown]
	}
	return math.Round(base*distanceDecay(distanceKm)*100) / 100
}

// distanceDecay is a step function of distance; boundaries are inclusive on
// the lower bucket, so exactly 1.0 km still decays at 1.00.
func distanceDecay(distanceKm float64) float64 {
	switch {
	case distanceKm <= 1:
		return 1.00
	case distanceKm <= 3:
		return 0.85
	case distanceKm <= 5:
		return 0.65
	case distanceKm <= 8:
		return 0.45
	default:
		return 0.25
	}
}
