// Package api provides the HTTP API for Altura.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/andinolabs/altura/internal/altitude"
	"github.com/andinolabs/altura/internal/api/handler"
	"github.com/andinolabs/altura/internal/api/middleware"
	"github.com/andinolabs/altura/internal/fatigue"
	"github.com/andinolabs/altura/internal/physio"
	"github.com/andinolabs/altura/internal/pipeline"
	"github.com/andinolabs/altura/internal/plan"
	"github.com/andinolabs/altura/internal/profile"
	"github.com/andinolabs/altura/internal/records"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	AltitudeService *altitude.Service
	ProfileService  *profile.Service
	PhysioService   *physio.Service
	FatigueService  *fatigue.Service
	PlanService     *plan.Service
	Runner          *pipeline.Runner
	Records         records.Repository

	// Subsystems are pinged by the readiness endpoint.
	Subsystems []handler.Subsystem
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "altura-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Subsystems...)
	altitudeHandler := handler.NewAltitudeHandler(cfg.AltitudeService)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService)
	analysisHandler := handler.NewAnalysisHandler(
		cfg.PhysioService,
		cfg.FatigueService,
		cfg.PlanService,
		cfg.Runner,
		cfg.Records,
	)

	// Endpoints backed by the reasoning service get the stricter tier.
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public, unlimited)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// City altitude table
		r.Route("/altitudes", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", altitudeHandler.ListCities)
			r.Get("/{city}", altitudeHandler.GetAltitude)
			r.Put("/{city}", altitudeHandler.SetAltitude)
		})

		// Profiles
		r.Route("/profiles", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Post("/", profileHandler.Create)
			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Patch("/", profileHandler.Update)
				r.Delete("/", profileHandler.Delete)
			})
		})

		// Per-user analysis
		r.Route("/users/{userId}", func(r chi.Router) {
			r.With(standardRateLimit).Post("/physio", analysisHandler.EvaluatePhysio)
			r.With(expensiveRateLimit).Post("/fatigue", analysisHandler.AnalyzeFatigue)
			r.With(expensiveRateLimit).Post("/plan", analysisHandler.GeneratePlan)
			r.With(expensiveRateLimit).Post("/analysis:run", analysisHandler.RunAnalysis)
			r.With(standardRateLimit).Get("/history", analysisHandler.History)
		})
	})

	return r
}
