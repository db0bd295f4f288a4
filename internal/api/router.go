// Package api provides the HTTP API for AwardPilot.
package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/awardpilot/awardpilot/internal/api/handler"
	"github.com/awardpilot/awardpilot/internal/api/middleware"
	"github.com/awardpilot/awardpilot/internal/availability"
	"github.com/awardpilot/awardpilot/internal/pricing"
	"github.com/awardpilot/awardpilot/internal/search"
	"github.com/awardpilot/awardpilot/internal/settings"
	"github.com/awardpilot/awardpilot/internal/verdict"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	DB          *sql.DB

	Settings     *settings.Service
	Pricing      *pricing.Service
	Estimates    *search.Service
	Availability *availability.Service
	Verdicts     *verdict.Service
}

// NewRouter creates a chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "awardpilot-api"
	}

	// Global middleware. Order matters: the request ID must exist before
	// anything that logs or traces.
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequireJSON)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	priceHandler := handler.NewPriceHandler(cfg.Pricing)
	awardHandler := handler.NewAwardHandler(cfg.Estimates, cfg.Availability)
	settingsHandler := handler.NewSettingsHandler(cfg.Settings)
	verdictHandler := handler.NewVerdictHandler(cfg.Verdicts)

	// Endpoints that hit metered upstream APIs get the tighter budget; the
	// gateway caches absorb most of the rest.
	upstreamRateLimit := middleware.RateLimitByIP(middleware.UpstreamRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		r.With(upstreamRateLimit).Get("/price", priceHandler.GetPrice)

		r.Route("/awards", func(r chi.Router) {
			r.Use(upstreamRateLimit)
			r.Get("/estimate", awardHandler.GetEstimate)
			r.Get("/availability", awardHandler.GetAvailability)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/", settingsHandler.PutSettings)

			r.Get("/overrides", settingsHandler.ListOverrides)
			r.Route("/overrides/{routeId}/{programId}", func(r chi.Router) {
				r.Get("/", settingsHandler.GetOverride)
				r.Put("/", settingsHandler.PutOverride)
				r.Delete("/", settingsHandler.DeleteOverride)
			})
		})

		r.With(upstreamRateLimit).Get("/routes/{routeId}/verdict", verdictHandler.GetRouteVerdict)
	})

	return r
}
