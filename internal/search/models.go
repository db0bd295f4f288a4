// Package search provides the award estimate gateway: phrased web searches
// whose result snippets are mined for a plausible mileage figure.
package search

import (
	"context"
	"time"
)

// Estimate sources and confidence labels. The extractor's output is never
// labeled higher than low confidence.
const (
	SourceCommunityEstimate = "community-estimate"
	SourceNotFound          = "not-found"

	ConfidenceLow  = "low"
	ConfidenceNone = "none"
)

// Result is one web search hit.
type Result struct {
	Title       string
	Description string
}

// Provider runs a single phrased web search.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
	Name() string
}

// EstimateRequest describes the (route, program) pair to estimate.
type EstimateRequest struct {
	Origin      string
	Destination string
	OriginCity  string
	DestCity    string
	ProgramID   string
	ProgramName string
	Date        string
}

// Estimate is the gateway result. Miles is only meaningful when Found is
// true; Source and Confidence always carry the trust labels the UI must
// show alongside the figure.
type Estimate struct {
	Miles      int
	Found      bool
	Source     string
	Confidence string
	FetchedAt  time.Time
}
