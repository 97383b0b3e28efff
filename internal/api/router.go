package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/studyhub/tutoring-gateway/internal/api/handler"
	"github.com/studyhub/tutoring-gateway/internal/api/middleware"
	"github.com/studyhub/tutoring-gateway/internal/api/validation"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

const defaultReadyTimeout = 10 * time.Second

// Dependencies are the services the router exposes.
type Dependencies struct {
	Auth        ports.AuthService
	Directory   ports.DirectoryService
	Profile     ports.ProfileService
	Projections handler.Pinger
	Log         zerolog.Logger

	// ReadyTimeout bounds how long a request waits for the auth store to
	// leave the initializing state.
	ReadyTimeout time.Duration
	// Registry receives the HTTP metrics. Nil uses the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "studyhub",
		Subsystem:  "gateway",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
		},
	}))

	readyTimeout := deps.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = defaultReadyTimeout
	}
	waitReady := middleware.RequireReady(deps.Auth, readyTimeout)
	requireUser := middleware.RequireIdentity(deps.Auth)

	authHandler := handler.NewAuthHandler(deps.Auth)
	profileHandler := handler.NewProfileHandler(deps.Profile)
	sessionHandler := handler.NewSessionHandler(deps.Directory)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Auth, deps.Projections)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – auth resolved, projection store up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	api.GET("/auth/state", authHandler.State)
	api.POST("/auth/login", authHandler.Login, waitReady)
	api.POST("/auth/register", authHandler.Register, waitReady)
	api.POST("/auth/logout", authHandler.Logout, waitReady)

	// --- Profile ---
	api.PATCH("/me", profileHandler.Update, waitReady, requireUser)

	// --- Session directory ---
	api.GET("/sessions", sessionHandler.List, waitReady)
	api.POST("/sessions/refresh", sessionHandler.Refresh, waitReady)
	api.POST("/sessions/:id/join", sessionHandler.Join, waitReady, requireUser, middleware.RBAC(domain.RoleLearner))
	api.GET("/subjects", sessionHandler.Subjects, waitReady)

	return e
}
