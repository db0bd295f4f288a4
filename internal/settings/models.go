// Package settings manages the durable configuration: saved routes, reward
// programs, and manual mileage overrides.
package settings

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrSettingsNotFound = errors.New("settings document not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrOverrideNotFound = errors.New("override not found")
)

// SchemaVersion is the current settings document version. Loads validate
// the document shape and fall back to defaults on any mismatch.
const SchemaVersion = 1

// Route is a saved origin/destination pair with a travel date.
type Route struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Origin      string `json:"origin"`
	OriginCity  string `json:"originCity"`
	Destination string `json:"destination"`
	DestCity    string `json:"destCity"`
	Date        string `json:"date"`
}

// RewardProgram is a redemption scheme with its published baseline rate.
// Balance is a pointer so an absent balance stays distinct from zero across
// persistence round-trips.
type RewardProgram struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Miles     int     `json:"miles"`
	Balance   *int    `json:"balance,omitempty"`
	Threshold float64 `json:"threshold"`
	BookURL   string  `json:"bookUrl"`
	Color     string  `json:"color"`

	// AvailabilitySource is the program's code on the availability provider,
	// empty when the program has no live availability coverage.
	AvailabilitySource string `json:"availabilitySource,omitempty"`
}

// AppSettings is the aggregate root: the whole document is persisted on
// every mutation, never partially.
type AppSettings struct {
	Version  int             `json:"version"`
	Routes   []Route         `json:"routes"`
	Programs []RewardProgram `json:"programs"`
}

// Override is a user-entered mileage quote for a (route, program) pair,
// persisted until explicitly cleared. Fees is the cash co-pay quoted
// alongside the miles.
type Override struct {
	RouteID   string    `json:"routeId"`
	ProgramID string    `json:"programId"`
	Miles     int       `json:"miles"`
	Fees      float64   `json:"fees"`
	UpdatedAt time.Time `json:"updatedAt"`
}
