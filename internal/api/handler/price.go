package handler

import (
	"net/http"

	"github.com/awardpilot/awardpilot/internal/api/response"
	"github.com/awardpilot/awardpilot/internal/pricing"
)

// PriceHandler handles cash fare lookups.
type PriceHandler struct {
	pricing *pricing.Service
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(svc *pricing.Service) *PriceHandler {
	return &PriceHandler{pricing: svc}
}

// GetPrice handles GET /v1/price?origin=&destination=&date=. Upstream
// failures are a 200 with an error message in the body; the gateway never
// surfaces them as transport errors.
func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	origin, destination, date, errs := routeParams(r)
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid route parameters", errs)
		return
	}

	quote := h.pricing.Quote(r.Context(), origin, destination, date)
	response.JSON(w, r, http.StatusOK, quote)
}
