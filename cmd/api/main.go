// Package main provides the entrypoint for the AwardPilot API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/awardpilot/awardpilot/internal/api"
	"github.com/awardpilot/awardpilot/internal/api/middleware"
	"github.com/awardpilot/awardpilot/internal/availability"
	"github.com/awardpilot/awardpilot/internal/availability/seatsaero"
	"github.com/awardpilot/awardpilot/internal/database"
	"github.com/awardpilot/awardpilot/internal/pricing"
	"github.com/awardpilot/awardpilot/internal/pricing/amadeus"
	"github.com/awardpilot/awardpilot/internal/search"
	"github.com/awardpilot/awardpilot/internal/search/brave"
	"github.com/awardpilot/awardpilot/internal/settings"
	"github.com/awardpilot/awardpilot/internal/telemetry"
	"github.com/awardpilot/awardpilot/internal/verdict"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "awardpilot-api"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AwardPilot API")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Open the local settings store.
	db, err := database.Open(os.Getenv("SETTINGS_DB_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open settings database")
	}
	defer db.Close()
	log.Info().Msg("settings database opened")

	settingsService := settings.NewService(settings.NewSQLiteRepository(db), log)

	// Fare gateway. Missing credentials degrade per request instead of
	// blocking startup; this tool stays useful offline.
	amadeusClientID := os.Getenv("AMADEUS_CLIENT_ID")
	amadeusClientSecret := os.Getenv("AMADEUS_CLIENT_SECRET")
	if amadeusClientID == "" || amadeusClientSecret == "" {
		log.Warn().Msg("Amadeus credentials not configured - fare lookups will fail")
	}
	pricingService := pricing.NewService(pricing.ServiceConfig{
		Provider: amadeus.NewClient(amadeus.ClientConfig{
			ClientID:     amadeusClientID,
			ClientSecret: amadeusClientSecret,
			BaseURL:      os.Getenv("AMADEUS_BASE_URL"),
			Logger:       log,
		}),
		Logger: log,
	})
	log.Info().Msg("pricing service initialized")

	// Award estimate gateway.
	braveAPIKey := os.Getenv("BRAVE_API_KEY")
	if braveAPIKey == "" {
		log.Warn().Msg("Brave Search API key not configured - estimates will be unavailable")
	}
	searchService := search.NewService(search.ServiceConfig{
		Provider: brave.NewClient(brave.ClientConfig{
			APIKey: braveAPIKey,
			Logger: log,
		}),
		Logger: log,
	})
	log.Info().Msg("estimate service initialized")

	// Live availability gateway.
	seatsAeroAPIKey := os.Getenv("SEATSAERO_API_KEY")
	if seatsAeroAPIKey == "" {
		log.Warn().Msg("seats.aero API key not configured - availability will report key_required")
	}
	availabilityService := availability.NewService(availability.ServiceConfig{
		Provider: seatsaero.NewClient(seatsaero.ClientConfig{
			APIKey: seatsAeroAPIKey,
			Logger: log,
		}),
		Logger: log,
	})
	log.Info().Msg("availability service initialized")

	verdictService := verdict.NewService(verdict.ServiceConfig{
		Settings:     settingsService,
		Pricing:      pricingService,
		Estimates:    searchService,
		Availability: availabilityService,
		Logger:       log,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:      Version,
		BuildTime:    BuildTime,
		Logger:       log,
		ServiceName:  serviceName,
		Metrics:      metrics,
		DB:           db,
		Settings:     settingsService,
		Pricing:      pricingService,
		Estimates:    searchService,
		Availability: availabilityService,
		Verdicts:     verdictService,
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
