// Package verdict assembles the per-route comparison: cash fare, resolved
// award mileage per program, and the value classification of each redemption.
package verdict

import (
	"time"

	"github.com/awardpilot/awardpilot/internal/availability"
	"github.com/awardpilot/awardpilot/internal/award"
	"github.com/awardpilot/awardpilot/internal/pricing"
	"github.com/awardpilot/awardpilot/internal/settings"
	"github.com/awardpilot/awardpilot/internal/value"
)

// ProgramVerdict is the full valuation of one reward program on one route.
type ProgramVerdict struct {
	ProgramID   string `json:"programId"`
	ProgramName string `json:"programName"`
	BookURL     string `json:"bookUrl,omitempty"`
	Color       string `json:"color,omitempty"`

	// Miles, Fees, and MilesSource come from the precedence resolution over
	// manual override, live availability, search estimate, and baseline.
	Miles       int          `json:"miles"`
	Fees        float64      `json:"fees"`
	MilesSource award.Source `json:"milesSource"`

	// EstimateConfidence is only set when MilesSource is "estimated".
	EstimateConfidence string `json:"estimateConfidence,omitempty"`

	CentsPerMile    float64       `json:"centsPerMile"`
	NetCentsPerMile float64       `json:"netCentsPerMile"`
	Verdict         value.Verdict `json:"verdict"`
	BeatsThreshold  bool          `json:"beatsThreshold"`

	// BookableOneWays is how many one-way redemptions the stored balance
	// covers, nil when no balance is recorded.
	BookableOneWays *int `json:"bookableOneWays,omitempty"`

	// LiveAvailability is the cheapest live entry for this program when the
	// availability gateway returned one, regardless of which source won the
	// mileage resolution.
	LiveAvailability *availability.Entry `json:"liveAvailability,omitempty"`
}

// RouteVerdict is the comparison for one saved route across all programs.
type RouteVerdict struct {
	Route settings.Route `json:"route"`
	Price pricing.Quote  `json:"price"`

	AvailabilityStatus  availability.Status `json:"availabilityStatus"`
	AvailabilityMessage string              `json:"availabilityMessage,omitempty"`

	Programs    []ProgramVerdict `json:"programs"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
