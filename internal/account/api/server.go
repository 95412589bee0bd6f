// Package api is the HTTP user resource of the account service.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

type Server struct {
	addr            string
	shutdownTimeout time.Duration
	logger          logging.Logger
	echo            *echo.Echo
}

func NewServer(addr string, svc UserService, shutdownTimeout time.Duration, logger logging.Logger) *Server {
	logger = logger.With("module", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = (&errorHandler{logger: logger}).handle

	e.Use(requestIDMiddleware)
	e.Use(loggerMiddleware(logger))
	e.Use(middleware.Recover())

	registerRoutes(e, NewUserHandler(svc), authMiddleware(svc))

	return &Server{
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		echo:            e,
	}
}

func registerRoutes(e *echo.Echo, h *UserHandler, auth echo.MiddlewareFunc) {
	e.GET("/health", HealthCheck)

	g := e.Group("/users")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/me", h.Me, auth)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/login/:id", h.Login)
	g.GET("/login/:id", h.LoginBasic)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then shuts down gracefully,
// giving in-flight requests up to the shutdown timeout.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.echo.Listener = lis

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "addr", lis.Addr().String())
		if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Wrap(err, "failed to serve http")
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return errors.WithStack(err)
	}
	return <-errCh
}
