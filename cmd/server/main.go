package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldtrack/dashboard-api/internal/api"
	"github.com/fieldtrack/dashboard-api/internal/core/service"
	mongodb "github.com/fieldtrack/dashboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fieldtrack/dashboard-api/internal/infrastructure/db/redis"
	"github.com/fieldtrack/dashboard-api/internal/infrastructure/geocoding"
	"github.com/fieldtrack/dashboard-api/internal/infrastructure/schedule"
	"github.com/fieldtrack/dashboard-api/internal/pkg/config"
	"github.com/fieldtrack/dashboard-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// main is the application composition root: it wires the MongoDB and Redis
// adapters and the geocoding client behind the core ports and starts the
// HTTP server.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)
	shipmentRepo := mongodb.NewShipmentRepository(db)
	snapshotRepo := mongodb.NewSnapshotRepository(db)

	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}

	// --- Core services ---
	geocodeCache := redisdb.NewGeocodeCache(rdb, cfg.Geocoder.CacheExpiry, log)
	geocoder := geocoding.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey, cfg.Geocoder.Language)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour, log)
	ticketService := service.NewTicketService(ticketRepo, log)
	shipmentService := service.NewShipmentService(shipmentRepo, log)
	statsService := service.NewStatsService(ticketRepo, shipmentRepo, snapshotRepo, log)
	geocodeService := service.NewGeocodeOrchestrator(geocodeCache, geocoder, log)

	// Daily snapshot baseline over all configured sectors.
	schedule.NewSnapshotScheduler(statsService, cfg.Sectors, log).Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
		Auth:      authService,
		Tickets:   ticketService,
		Shipments: shipmentService,
		Stats:     statsService,
		Geocode:   geocodeService,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
