// Package api serves a read-only JSON view of the latest scan.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"HSScanner/internal/model"
	"HSScanner/internal/recorder"
)

const (
	ServiceName         = "hsscan"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// ServiceVersion is reported by /health. Set from the CLI at start-up.
var ServiceVersion = "dev"

// ReportSource provides the most recent report.
type ReportSource interface {
	Latest() (*model.Report, bool)
}

// HistorySource provides recorded signals.
type HistorySource interface {
	RecentSignals(limit int) ([]recorder.StoredSignal, error)
}

// Handler handles HTTP requests using Gin.
type Handler struct {
	reports ReportSource
	history HistorySource
	logger  zerolog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(reports ReportSource, history HistorySource, logger zerolog.Logger) *Handler {
	return &Handler{reports: reports, history: history, logger: logger}
}

// SetupRoutes configures all API routes.
func (h *Handler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(h.logger))
	router.Use(gin.Recovery())

	router.GET("/health", h.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.GET("/signals", h.GetSignals)
	v1.GET("/signals/:symbol", h.GetSignal)
	v1.GET("/history", h.GetHistory)

	return router
}

// Server wraps http.Server around the Gin router.
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, h *Handler, logger zerolog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           h.SetupRoutes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("http api listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info().Msg("http api shutting down")
	return s.srv.Shutdown(shutdownCtx)
}
