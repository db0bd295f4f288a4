// Package availability provides the live award availability gateway.
package availability

import (
	"context"
	"errors"
	"time"
)

// ErrKeyRequired signals that the provider has no API credentials. It is
// deliberately distinct from an upstream failure so the UI can show a setup
// hint instead of an error.
var ErrKeyRequired = errors.New("availability API key required")

// Status is the gateway's tri-state outcome.
type Status string

// Gateway statuses.
const (
	StatusOK          Status = "ok"
	StatusKeyRequired Status = "key_required"
	StatusError       Status = "error"
)

// Entry is one bookable award option on a route and date. Upstream only
// distinguishes direct from non-direct itineraries, so Stops is 0 or 1.
type Entry struct {
	Program        string `json:"program"`
	Miles          int    `json:"miles"`
	SeatsRemaining int    `json:"seatsRemaining"`
	Stops          int    `json:"stops"`
	Carriers       string `json:"carriers"`
}

// Result is the gateway result: economy-available entries sorted ascending
// by mileage cost, or a degraded status with a message.
type Result struct {
	Status    Status    `json:"status"`
	Entries   []Entry   `json:"results"`
	Source    string    `json:"source"`
	Message   string    `json:"message,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Provider fetches raw award availability for a route and date.
type Provider interface {
	Search(ctx context.Context, origin, destination, date string) ([]Entry, error)
	Name() string
}
