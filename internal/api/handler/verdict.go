package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awardpilot/awardpilot/internal/api/response"
	"github.com/awardpilot/awardpilot/internal/settings"
	"github.com/awardpilot/awardpilot/internal/verdict"
)

// VerdictHandler handles the per-route comparison endpoint.
type VerdictHandler struct {
	verdicts *verdict.Service
}

// NewVerdictHandler creates a new VerdictHandler.
func NewVerdictHandler(svc *verdict.Service) *VerdictHandler {
	return &VerdictHandler{verdicts: svc}
}

// GetRouteVerdict handles GET /v1/routes/{routeId}/verdict. Gateway
// degradation shows up inside the body; only an unknown route is an HTTP
// error.
func (h *VerdictHandler) GetRouteVerdict(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeId")

	rv, err := h.verdicts.ForRoute(r.Context(), routeID)
	if errors.Is(err, settings.ErrRouteNotFound) {
		response.NotFound(w, r, "unknown route")
		return
	}
	if err != nil {
		response.InternalError(w, r, "failed to compute verdict")
		return
	}

	response.JSON(w, r, http.StatusOK, rv)
}
