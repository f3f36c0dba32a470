package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportsfed/federation-api/internal/api/handler"
	"github.com/sportsfed/federation-api/internal/api/middleware"
	"github.com/sportsfed/federation-api/internal/core/domain"
	"github.com/sportsfed/federation-api/internal/core/ports"
	"github.com/sportsfed/federation-api/internal/core/service"
)

// Deps bundles everything the router needs. The Redis client may be nil when
// the memory code backend is selected; the readiness probe then skips it.
type Deps struct {
	AuthService    ports.AuthService
	ManagerService ports.ManagerService
	Tokens         *service.TokenIssuer
	Mongo          *mongo.Database
	Redis          *redis.Client
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("federation_http"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	managerHandler := handler.NewManagerHandler(deps.ManagerService)

	// --- Auth routes (public) ---
	e.POST("/v1/auth/login", authHandler.InitiateLogin)
	e.POST("/v1/auth/verify", authHandler.CompleteLogin)
	e.POST("/v1/auth/password", authHandler.SetPassword)

	// --- Manager lifecycle (administrators only) ---
	managers := e.Group("/v1/managers",
		middleware.Auth(deps.Tokens),
		middleware.RBAC(domain.RoleAdministrator),
	)
	managers.POST("", managerHandler.Provision)
	managers.GET("/:id", managerHandler.Get)
	managers.POST("/:id/regenerate", managerHandler.Regenerate)
	managers.POST("/:id/activate", managerHandler.Activate)
	managers.POST("/:id/deactivate", managerHandler.Deactivate)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
