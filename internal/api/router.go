package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gazette-dev/gazette/docs"
	"github.com/gazette-dev/gazette/internal/api/handler"
	"github.com/gazette-dev/gazette/internal/api/middleware"
	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
	"github.com/gazette-dev/gazette/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Articles ports.ArticleService
	Codec    ports.SessionCodec

	// Schema gates /api until migrations have been applied.
	Schema handlers.SchemaState
	Checks map[string]handlers.Check

	SessionMaxAge time.Duration
	CookieSecure  bool

	Logger zerolog.Logger

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Outside the request logger, whose error handling commits the status
	// recorded here.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "gazette",
		Registerer:                deps.Registerer,
		DoNotUseRequestPathFor404: true,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(middleware.Identity(deps.Codec))

	authHandler := handler.NewAuthHandler(deps.Auth, handler.SessionSettings{
		MaxAge: deps.SessionMaxAge,
		Secure: deps.CookieSecure,
	})
	articleHandler := handler.NewArticleHandler(deps.Articles)
	pageHandler := handler.NewPageHandler("Gazette")

	// --- API routes (unavailable until the schema is ready) ---
	api := e.Group("/api", middleware.RequireReady(deps.Schema))
	api.POST("/login", authHandler.Login)
	api.POST("/register", authHandler.Register)
	api.GET("/confirm/:token", authHandler.Confirm)
	api.POST("/logout", authHandler.Logout)
	api.GET("/whoami", authHandler.Whoami)

	api.GET("/articles", articleHandler.List)
	api.GET("/article/:id", articleHandler.Get)
	api.GET("/articles/in-progress", articleHandler.InProgress,
		middleware.RequireCapability(domain.CapabilityAuthorContent))

	// --- SPA bootstrap ---
	e.GET("/", pageHandler.Index)

	// --- Health checks (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Schema, deps.Checks, deps.Logger)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: schema applied, dependencies up

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
