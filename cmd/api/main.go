// Package main provides the entrypoint for the Altura API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/andinolabs/altura/internal/altitude"
	"github.com/andinolabs/altura/internal/api"
	"github.com/andinolabs/altura/internal/api/handler"
	"github.com/andinolabs/altura/internal/api/middleware"
	"github.com/andinolabs/altura/internal/database"
	"github.com/andinolabs/altura/internal/fatigue"
	"github.com/andinolabs/altura/internal/physio"
	"github.com/andinolabs/altura/internal/pipeline"
	"github.com/andinolabs/altura/internal/plan"
	"github.com/andinolabs/altura/internal/profile"
	"github.com/andinolabs/altura/internal/reasoning"
	"github.com/andinolabs/altura/internal/reasoning/openai"
	"github.com/andinolabs/altura/internal/records"
	"github.com/andinolabs/altura/internal/resilience"
	"github.com/andinolabs/altura/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "altura-api"

	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Altura API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
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

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to Postgres (profiles and the altitude table)
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Connect to MongoDB (append-only analysis records)
	mongoConfig := database.MongoConfigFromEnv()
	mongoClient, mongoDB, err := database.ConnectMongo(ctx, mongoConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if disconnectErr := mongoClient.Disconnect(disconnectCtx); disconnectErr != nil {
			log.Error().Err(disconnectErr).Msg("failed to disconnect mongodb")
		}
	}()
	log.Info().
		Str("database", mongoConfig.Database).
		Msg("mongodb connected")

	// Repositories
	altitudeRepo := altitude.NewPostgresRepository(pool)
	profileRepo := profile.NewPostgresRepository(pool)
	recordsRepo := records.NewMongoRepository(mongoDB)

	// Reasoning client: OpenAI when a key is configured, otherwise the
	// stub that routes every analysis onto the deterministic fallback.
	var reasoner reasoning.Client
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		reasoner = openai.NewClient(openai.ClientConfig{
			APIKey:     apiKey,
			BaseURL:    os.Getenv("OPENAI_BASE_URL"),
			Model:      os.Getenv("OPENAI_MODEL"),
			HTTPClient: resilience.NewClient(resilience.DefaultClientConfig(openai.ProviderName)),
			Logger:     log,
		})
		log.Info().Msg("openai reasoning client initialized")
	} else {
		reasoner = reasoning.NewStub()
		log.Warn().Msg("OPENAI_API_KEY not set - analyses will use deterministic fallbacks")
	}

	// Services
	altitudeService := altitude.NewService(altitudeRepo)
	profileService := profile.NewService(profile.ServiceConfig{
		Repository: profileRepo,
		Altitude:   altitudeService,
		Logger:     log,
	})
	physioService := physio.NewService(physio.ServiceConfig{
		Profiles: profileRepo,
		Records:  recordsRepo,
		Logger:   log,
	})
	fatigueService := fatigue.NewService(fatigue.ServiceConfig{
		Records:  recordsRepo,
		Reasoner: reasoner,
		Logger:   log,
	})
	planService := plan.NewService(plan.ServiceConfig{
		Profiles: profileRepo,
		Records:  recordsRepo,
		Reasoner: reasoner,
		Logger:   log,
	})
	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		Profiles: profileService,
		Physio:   physioService,
		Fatigue:  fatigueService,
		Plans:    planService,
		Logger:   log,
	})
	log.Info().Msg("analysis pipeline initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:         Version,
		BuildTime:       BuildTime,
		Logger:          log,
		ServiceName:     serviceName,
		Metrics:         metrics,
		AltitudeService: altitudeService,
		ProfileService:  profileService,
		PhysioService:   physioService,
		FatigueService:  fatigueService,
		PlanService:     planService,
		Runner:          runner,
		Records:         recordsRepo,
		Subsystems: []handler.Subsystem{
			{Name: "postgres", Ping: pool.Ping},
			{Name: "mongodb", Ping: func(ctx context.Context) error {
				return mongoClient.Ping(ctx, readpref.Primary())
			}},
		},
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
