package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskboard/taskboard-api/docs"
	"github.com/taskboard/taskboard-api/internal/api/handler"
	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// WebSessions is the web session manager as used by the router.
type WebSessions interface {
	middleware.SessionLoaders
	handler.WebSessions
}

// Deps carries everything NewRouter wires into routes.
type Deps struct {
	Log          zerolog.Logger
	Resolver     ports.IdentityResolver
	Sessions     WebSessions
	AuthService  ports.AuthService
	StatsService ports.StatsService
	Readiness    []handler.Dependency
	// Metrics receives the HTTP collectors. Nil means the default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.CORS(middleware.CORSConfig{
		PathMethods: map[string]string{
			"/api/auth/login":  "POST, OPTIONS",
			"/api/auth/logout": "POST, OPTIONS",
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(d.Metrics)))

	authMW := middleware.Auth(d.Resolver, d.Sessions)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Sessions, d.Log)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout, authMW)

	// --- Stats routes ---
	statsHandler := handler.NewStatsHandler(d.StatsService)
	e.GET("/api/stats", statsHandler.TaskStats, authMW)
	e.GET("/api/tasks/stats", statsHandler.TaskStats, authMW)
	e.GET("/api/admin/users/stats", statsHandler.UserStats, authMW, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Readiness...).Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerConfig(d.Metrics)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "taskboard",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Request().Method == http.MethodOptions
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func handlerConfig(reg *prometheus.Registry) echoprometheus.HandlerConfig {
	if reg == nil {
		return echoprometheus.HandlerConfig{}
	}
	return echoprometheus.HandlerConfig{Gatherer: reg}
}
