// Package value computes the cents-per-mile metric and its qualitative tier.
// All functions are pure and safe to call from any goroutine.
package value

import "math"

// Tier classifies a cents-per-mile figure relative to a program threshold.
type Tier string

// Tier values, ordered from no-data to best.
const (
	TierUnknown   Tier = "unknown"
	TierPoor      Tier = "poor"
	TierDecent    Tier = "decent"
	TierGood      Tier = "good"
	TierExcellent Tier = "excellent"
)

// ExcellentMultiplier scales the program threshold to the "excellent" floor.
const ExcellentMultiplier = 1.5

// DecentFloor is the CPP below which a redemption is poor value regardless
// of the program threshold.
const DecentFloor = 1.0

// Verdict is the presentation-ready classification of a CPP figure.
type Verdict struct {
	Tier      Tier   `json:"tier"`
	Label     string `json:"label"`
	Indicator string `json:"indicator"`
}

// CentsPerMile returns the cash price expressed in cents per mile required,
// rounded to two decimal places. A missing price or mileage yields 0 rather
// than an error: the caller renders it as "no data".
func CentsPerMile(cashPrice float64, miles int) float64 {
	if cashPrice <= 0 || miles <= 0 {
		return 0
	}
	return round2((cashPrice / float64(miles)) * 100)
}

// NetCentsPerMile returns the cents-per-mile after subtracting cash co-pay
// fees from the fare being avoided. Floors at 0 when fees meet or exceed the
// cash price: a redemption that saves no cash is poor value, not an error.
func NetCentsPerMile(cashPrice, fees float64, miles int) float64 {
	if cashPrice <= 0 || miles <= 0 {
		return 0
	}
	net := cashPrice - fees
	if net < 0 {
		net = 0
	}
	return round2((net / float64(miles)) * 100)
}

// TierFor bands a CPP figure against the program threshold. Bands are closed
// on their lower bound and exhaustive over cpp >= 0. Thresholds below 1.0
// are degenerate (the decent band becomes unreachable) but still band
// deterministically.
func TierFor(cpp, threshold float64) Verdict {
	switch {
	case cpp <= 0:
		return Verdict{Tier: TierUnknown, Label: "N/A", Indicator: "—"}
	case cpp >= threshold*ExcellentMultiplier:
		return Verdict{Tier: TierExcellent, Label: "Excellent", Indicator: "🔥"}
	case cpp >= threshold:
		return Verdict{Tier: TierGood, Label: "Good", Indicator: "✅"}
	case cpp >= DecentFloor:
		return Verdict{Tier: TierDecent, Label: "Decent", Indicator: "🟡"}
	default:
		return Verdict{Tier: TierPoor, Label: "Poor", Indicator: "❌"}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
