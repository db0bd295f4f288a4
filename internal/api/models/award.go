package models

import (
	"time"

	"github.com/awardpilot/awardpilot/internal/search"
)

// EstimateResponse is the wire shape of a search-derived mileage estimate.
type EstimateResponse struct {
	Found      bool      `json:"found"`
	Miles      int       `json:"miles,omitempty"`
	Source     string    `json:"source"`
	Confidence string    `json:"confidence"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// NewEstimateResponse converts a gateway estimate to its wire shape.
func NewEstimateResponse(est search.Estimate) EstimateResponse {
	return EstimateResponse{
		Found:      est.Found,
		Miles:      est.Miles,
		Source:     est.Source,
		Confidence: est.Confidence,
		FetchedAt:  est.FetchedAt,
	}
}
