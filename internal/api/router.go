package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldtrack/dashboard-api/internal/api/handler"
	"github.com/fieldtrack/dashboard-api/internal/api/middleware"
	"github.com/fieldtrack/dashboard-api/internal/core/domain"
	"github.com/fieldtrack/dashboard-api/internal/core/ports"
)

// Deps carries the constructed services and clients the router wires up.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger

	Auth      ports.AuthService
	Tickets   ports.TicketService
	Shipments ports.ShipmentService
	Stats     ports.StatsService
	Geocode   ports.GeocodeService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	dashboardHandler := handler.NewDashboardHandler(d.Stats)
	ticketHandler := handler.NewTicketHandler(d.Tickets)
	shipmentHandler := handler.NewShipmentHandler(d.Shipments)
	geocodeHandler := handler.NewGeocodeHandler(d.Geocode)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(d.JWTSecret))
	v1.GET("/me", authHandler.Me)
	v1.GET("/dashboard/overview", dashboardHandler.Overview)
	v1.GET("/tickets/recent", ticketHandler.Recent)
	v1.GET("/shipments", shipmentHandler.Board)
	v1.POST("/geocode", geocodeHandler.Resolve)

	admin := middleware.RBAC(domain.RoleAdmin)
	v1.POST("/snapshots", dashboardHandler.RecordSnapshot, admin)
	v1.PUT("/users/:id/sectors", authHandler.UpdateSectors, admin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
