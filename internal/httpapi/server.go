package httpapi

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/storage"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/usecase"
)

// Options configures the HTTP server.
type Options struct {
	Port           int
	MetricsEnabled bool
}

// Server wraps the echo instance with its routes registered. It owns the
// HTTP surface only; storage lifecycle belongs to the caller.
type Server struct {
	echo    *echo.Echo
	addr    string
	service *usecase.ArchiveService
	pinger  storage.Pinger
}

// NewServer builds the server with middleware and all routes registered.
func NewServer(opts Options, service *usecase.ArchiveService, pinger storage.Pinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		addr:    fmt.Sprintf(":%d", opts.Port),
		service: service,
		pinger:  pinger,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(RequestObserver())

	s.registerRoutes(opts.MetricsEnabled)
	return s
}

func (s *Server) registerRoutes(metricsEnabled bool) {
	api := s.echo.Group("/api")
	api.POST("/messages", s.handleCreateMessage)
	api.GET("/messages", s.handleListMessages)
	api.GET("/messages/:id", s.handleGetMessage)
	api.PUT("/messages/:id/status", s.handleUpdateMessageStatus)
	api.POST("/users", s.handleUpsertUser)
	api.GET("/users", s.handleListUsers)
	api.GET("/users/:phone_number", s.handleGetUser)

	s.echo.POST("/webhook/whatsapp", s.handleWebhook)
	s.echo.GET("/health", s.handleHealth)

	if metricsEnabled {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
}

// Addr returns the listen address the server was configured with.
func (s *Server) Addr() string {
	return s.addr
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
