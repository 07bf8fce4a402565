package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Server runs the echo instance with bounded timeouts.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger zerolog.Logger
}

func NewServer(addr string, e *echo.Echo, logger zerolog.Logger) *Server {
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.IdleTimeout = 60 * time.Second
	return &Server{echo: e, addr: addr, logger: logger}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.addr).Msg("HTTP server starting")
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("HTTP server shutting down")
	return s.echo.Shutdown(ctx)
}
