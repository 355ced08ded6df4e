package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/lumenhub/appliance-portal/internal/api/handler"
	"github.com/lumenhub/appliance-portal/internal/api/middleware"
	"github.com/lumenhub/appliance-portal/internal/api/view"
	"github.com/lumenhub/appliance-portal/internal/core/ports"
	"github.com/lumenhub/appliance-portal/internal/pkg/config"
	"github.com/lumenhub/appliance-portal/pkg/logger"
)

// Deps carries everything the router needs. Throttle may be nil; Ready lists
// the dependencies checked by /health/ready.
type Deps struct {
	Auth      ports.AuthService
	Sessions  ports.SessionService
	Throttle  ports.LoginThrottle
	Appliance ports.ApplianceService
	Cookie    middleware.SessionCookie
	Hash      config.HashEndpointConfig
	Ready     map[string]handler.Pinger
	Log       zerolog.Logger

	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "appliance_portal",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Ready)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Login flow ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Throttle, d.Cookie, d.Log)
	authMiddleware := middleware.Auth(d.Sessions, d.Cookie)

	e.GET(middleware.LoginPath, authHandler.LoginForm)
	e.POST(middleware.LoginPath, authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Appliance control (session required) ---
	applianceHandler := handler.NewApplianceHandler(d.Appliance, hashAllowed(d.Hash))

	e.GET("/", applianceHandler.Index, authMiddleware)
	appliance := e.Group("/appliance/status", authMiddleware)
	appliance.GET("", applianceHandler.Status)
	appliance.POST("/toggle", applianceHandler.Toggle)

	// --- Hash helper ---
	if guard, ok := hashGuard(d.Hash, authMiddleware); ok {
		e.GET("/hash", authHandler.HashForm, guard...)
		e.POST("/hash", authHandler.Hash, guard...)
	}

	return e, nil
}

// hashGuard returns the middleware chain protecting /hash, or false when the
// route must not be registered at all.
func hashGuard(cfg config.HashEndpointConfig, auth echo.MiddlewareFunc) ([]echo.MiddlewareFunc, bool) {
	switch cfg.Mode {
	case config.HashEndpointOpen:
		return nil, true
	case config.HashEndpointAuthenticated:
		return []echo.MiddlewareFunc{auth}, true
	case config.HashEndpointAdmin:
		return []echo.MiddlewareFunc{auth, middleware.RequireUsers(cfg.Admins...)}, true
	default:
		return nil, false
	}
}

// hashAllowed decides whether the index page links to /hash for a user.
func hashAllowed(cfg config.HashEndpointConfig) func(string) bool {
	admins := make(map[string]struct{}, len(cfg.Admins))
	for _, a := range cfg.Admins {
		admins[a] = struct{}{}
	}
	return func(username string) bool {
		switch cfg.Mode {
		case config.HashEndpointOpen, config.HashEndpointAuthenticated:
			return true
		case config.HashEndpointAdmin:
			_, ok := admins[username]
			return ok
		default:
			return false
		}
	}
}

// requestLogger attaches a request-scoped logger to the request context and
// writes one access log line per request.
func requestLogger(base zerolog.Logger) echo.MiddlewareFunc {
	access := echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := base.Info()
			if v.Status >= 500 {
				ev = base.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})

	scoped := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			l := base.With().Str("request_id", rid).Logger()
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), l)))
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return access(scoped(next))
	}
}
