package handler

import (
	"net/http"

	"github.com/awardpilot/awardpilot/internal/api/models"
	"github.com/awardpilot/awardpilot/internal/api/response"
	"github.com/awardpilot/awardpilot/internal/availability"
	"github.com/awardpilot/awardpilot/internal/search"
)

// AwardHandler handles award mileage estimates and live availability.
type AwardHandler struct {
	estimates    *search.Service
	availability *availability.Service
}

// NewAwardHandler creates a new AwardHandler.
func NewAwardHandler(estimates *search.Service, avail *availability.Service) *AwardHandler {
	return &AwardHandler{estimates: estimates, availability: avail}
}

// GetEstimate handles GET /v1/awards/estimate. Requires the route triple
// plus the program ID; the city and program name parameters only improve
// search phrasing and are optional.
func (h *AwardHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	origin, destination, date, errs := routeParams(r)

	q := r.URL.Query()
	programID := q.Get("program")
	if programID == "" {
		errs = append(errs, models.FieldError{Field: "program", Message: "required", Code: "required"})
	}
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid estimate parameters", errs)
		return
	}

	est := h.estimates.MilesEstimate(r.Context(), search.EstimateRequest{
		Origin:      origin,
		Destination: destination,
		OriginCity:  q.Get("originCity"),
		DestCity:    q.Get("destCity"),
		ProgramID:   programID,
		ProgramName: q.Get("programName"),
		Date:        date,
	})
	response.JSON(w, r, http.StatusOK, models.NewEstimateResponse(est))
}

// GetAvailability handles GET /v1/awards/availability. The tri-state status
// in the body distinguishes missing credentials from upstream failure, so
// the HTTP status is 200 either way.
func (h *AwardHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	origin, destination, date, errs := routeParams(r)
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid route parameters", errs)
		return
	}

	result := h.availability.Search(r.Context(), origin, destination, date)
	response.JSON(w, r, http.StatusOK, result)
}
