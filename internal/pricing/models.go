// Package pricing provides the cash fare gateway: lowest one-way economy
// fares from an upstream flight-offer search, cached per route and date.
package pricing

import (
	"context"
	"fmt"
	"time"
)

// Kind classifies an upstream pricing failure for user-facing messaging.
type Kind string

// Upstream failure kinds.
const (
	KindRateLimited Kind = "rate_limited"
	KindAuthFailed  Kind = "auth_failed"
	KindNoResults   Kind = "no_results"
	KindServerError Kind = "server_error"
	KindUnknown     Kind = "unknown"
)

// UpstreamError is a classified failure from the fare provider.
type UpstreamError struct {
	Kind   Kind
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("pricing upstream: %s (status %d)", e.Kind, e.Status)
}

// Provider fetches the lowest one-way economy fare for a route and date.
type Provider interface {
	LowestFare(ctx context.Context, origin, destination, date string) (float64, error)
	Name() string
}

// Quote is the gateway's result. It is always populated; upstream failures
// degrade to a nil price with a human-readable Error, or to a stale cached
// price with a Warning. Handlers never see a transport error from here.
type Quote struct {
	Price     *float64  `json:"price"`
	Currency  string    `json:"currency"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
	Warning   string    `json:"warning,omitempty"`
	Error     string    `json:"error,omitempty"`
}
