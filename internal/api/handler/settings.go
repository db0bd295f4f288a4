package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awardpilot/awardpilot/internal/api/models"
	"github.com/awardpilot/awardpilot/internal/api/response"
	"github.com/awardpilot/awardpilot/internal/settings"
)

// SettingsHandler handles the settings document and manual overrides.
type SettingsHandler struct {
	settings *settings.Service
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

// GetSettings handles GET /v1/settings.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.settings.Load(r.Context()))
}

// PutSettings handles PUT /v1/settings. The whole document is replaced;
// partial updates are not supported.
func (h *SettingsHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var doc settings.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if err := h.settings.Save(r.Context(), &doc); err != nil {
		var ve *settings.ValidationError
		if errors.As(err, &ve) {
			response.BadRequest(w, r, "settings validation failed", fieldErrors(ve.Fields))
			return
		}
		response.InternalError(w, r, "failed to save settings")
		return
	}

	response.JSON(w, r, http.StatusOK, &doc)
}

// ListOverrides handles GET /v1/settings/overrides.
func (h *SettingsHandler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.settings.ListOverrides(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list overrides")
		return
	}
	if overrides == nil {
		overrides = []settings.Override{}
	}
	response.JSON(w, r, http.StatusOK, overrides)
}

// GetOverride handles GET /v1/settings/overrides/{routeId}/{programId}.
func (h *SettingsHandler) GetOverride(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeId")
	programID := chi.URLParam(r, "programId")

	o, err := h.settings.Override(r.Context(), routeID, programID)
	if errors.Is(err, settings.ErrOverrideNotFound) {
		response.NotFound(w, r, "no override for this route and program")
		return
	}
	if err != nil {
		response.InternalError(w, r, "failed to load override")
		return
	}
	response.JSON(w, r, http.StatusOK, o)
}

// PutOverride handles PUT /v1/settings/overrides/{routeId}/{programId}.
func (h *SettingsHandler) PutOverride(w http.ResponseWriter, r *http.Request) {
	var req models.OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	o := &settings.Override{
		RouteID:   chi.URLParam(r, "routeId"),
		ProgramID: chi.URLParam(r, "programId"),
		Miles:     req.Miles,
		Fees:      req.Fees,
	}
	if err := h.settings.SetOverride(r.Context(), o); err != nil {
		var ve *settings.ValidationError
		if errors.As(err, &ve) {
			response.BadRequest(w, r, "override validation failed", fieldErrors(ve.Fields))
			return
		}
		response.InternalError(w, r, "failed to save override")
		return
	}

	response.JSON(w, r, http.StatusOK, o)
}

// DeleteOverride handles DELETE /v1/settings/overrides/{routeId}/{programId}.
// Deleting an absent override is a no-op 204.
func (h *SettingsHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeId")
	programID := chi.URLParam(r, "programId")

	if err := h.settings.ClearOverride(r.Context(), routeID, programID); err != nil {
		response.InternalError(w, r, "failed to clear override")
		return
	}
	response.NoContent(w, r)
}
