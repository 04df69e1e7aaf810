package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/renova/storefront/docs"
	"github.com/renova/storefront/internal/api/handler"
	"github.com/renova/storefront/internal/api/middleware"
	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Session  ports.SessionService
	Accounts ports.AccountService
	Cart     ports.CartService
	Checkout ports.CheckoutService
	// Checks are the readiness probes keyed by dependency name.
	Checks map[string]handler.Check
	Log    zerolog.Logger

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storefront",
		Registerer: d.Registerer,
	}))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(d.Session, d.Accounts)
	cartHandler := handler.NewCartHandler(d.Cart)
	checkoutHandler := handler.NewCheckoutHandler(d.Checkout)
	healthHandler := handler.NewHealthHandler(d.Checks)

	requireSession := middleware.RequireSession(d.Session)

	// --- Session routes ---
	e.GET("/session", sessionHandler.Get)
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/register", sessionHandler.Register)
	e.PATCH("/session/profile", sessionHandler.UpdateProfile, requireSession)
	e.DELETE("/session", sessionHandler.Logout)

	// --- Cart routes (anonymous carts are local only) ---
	cart := e.Group("/cart")
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:id", cartHandler.UpdateItem)
	cart.DELETE("/items/:id", cartHandler.RemoveItem)
	cart.POST("/refresh", cartHandler.Refresh)

	// --- Orders ---
	e.POST("/checkout", checkoutHandler.Checkout, requireSession)
	e.GET("/orders/:id/ticket", checkoutHandler.Ticket, requireSession)

	admin := e.Group("/admin", requireSession, middleware.RBAC(d.Session, domain.RoleAdmin))
	admin.GET("/orders", checkoutHandler.AdminOrders)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

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
			ev.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
