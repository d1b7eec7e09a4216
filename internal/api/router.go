package api

import (
	"net"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/rasulmamishov/portfolio-api/docs"
	"github.com/rasulmamishov/portfolio-api/internal/api/handler"
	"github.com/rasulmamishov/portfolio-api/internal/api/middleware"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
	"github.com/rasulmamishov/portfolio-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Services are required; the
// rest is optional.
type Deps struct {
	Log zerolog.Logger

	Auth         ports.AuthService
	Gate         ports.AccessGate
	Testimonials ports.TestimonialService
	Contacts     ports.ContactService
	Admin        ports.AdminService

	// DatabaseCheck backs /health; ReadyChecks backs /health/ready.
	DatabaseCheck handlers.Check
	ReadyChecks   map[string]handlers.Check

	CORSOrigins   []string
	EnableSwagger bool

	// TrustedProxies lists the networks whose X-Forwarded-For entries are
	// believed. Empty means the socket peer address is the client IP.
	TrustedProxies []*net.IPNet

	// Registerer enables HTTP metrics and /metrics when non-nil.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()
	e.IPExtractor = clientIPExtractor(d.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:                 "portfolio",
			Subsystem:                 "http",
			Registerer:                d.Registerer,
			DoNotUseRequestPathFor404: true,
		}))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Health checks (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler(d.DatabaseCheck).Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.ReadyChecks).Readiness)

	if d.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	authHandler := handler.NewAuthHandler(d.Auth)
	testimonialHandler := handler.NewTestimonialHandler(d.Testimonials, d.Gate)
	contactHandler := handler.NewContactHandler(d.Contacts)
	adminHandler := handler.NewAdminHandler(d.Admin, d.Testimonials, d.Contacts)

	apiGroup := e.Group("/api")

	// --- Auth routes ---
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.GET("/auth/me", authHandler.Me, middleware.Auth(d.Gate))

	// --- Public content ---
	apiGroup.GET("/testimonials", testimonialHandler.List)
	apiGroup.POST("/testimonials", testimonialHandler.Submit)
	apiGroup.POST("/contact", contactHandler.Submit)

	// --- Admin (role re-read from the store on every request) ---
	admin := apiGroup.Group("/admin", middleware.RequireAdmin(d.Gate))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/testimonials", adminHandler.ListTestimonials)
	admin.PUT("/testimonials/:id", adminHandler.UpdateTestimonialStatus)
	admin.DELETE("/testimonials/:id", adminHandler.DeleteTestimonial)
	admin.GET("/messages", adminHandler.ListMessages)
	admin.PUT("/messages/:id", adminHandler.UpdateMessageStatus)
	admin.PATCH("/contact-messages/:id", adminHandler.UpdateMessageStatus)
	admin.GET("/users", adminHandler.ListUsers)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
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
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// clientIPExtractor decides what c.RealIP returns, and with it the key of the
// per-IP login counter. Forwarding headers are ignored unless the request
// arrived through one of the trusted networks.
func clientIPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
