package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/storekit/storefront-api/internal/api/handler"
	"github.com/storekit/storefront-api/internal/api/middleware"
	"github.com/storekit/storefront-api/internal/core/domain"
	"github.com/storekit/storefront-api/internal/core/ports"
)

// Deps carries the constructed components the router wires into routes.
type Deps struct {
	AuthService       ports.AuthService
	CollectionService ports.CollectionService
	AccountRepo       ports.AccountRepository
	SessionIssuer     ports.SessionIssuer
	Health            *handler.HealthHandler
	Readiness         *handler.ReadinessHandler
	Log               zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	collectionHandler := handler.NewCollectionHandler(deps.CollectionService)
	authenticate := middleware.Authenticate(deps.SessionIssuer, deps.AccountRepo)

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authenticate)

	// --- Collection routes: mutations are admin-only, listing is open ---
	collections := e.Group("/api/v1/collections")
	collections.GET("", collectionHandler.List)
	collections.POST("", collectionHandler.Create, authenticate, middleware.RequireRoles(domain.RoleAdmin))
	collections.PUT("/:id", collectionHandler.Update, authenticate, middleware.RequireRoles(domain.RoleAdmin))
	collections.DELETE("/:id", collectionHandler.Delete, authenticate, middleware.RequireRoles(domain.RoleAdmin))

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	if deps.Health != nil {
		e.GET("/health", deps.Health.Liveness)
	}
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}

	return e
}
