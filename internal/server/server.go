package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-venues/internal/app/domain/venues"
	"github.com/FACorreiaa/go-venues/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-venues/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.AppMetrics
	service venues.Service
	router  http.Handler
}

// New wires the places provider and the venue pipeline
func New(cfg *config.Config, m *metrics.AppMetrics, logger *zap.Logger) *Server {
	provider := venues.NewGoogleClient(cfg.Places.BaseURL, cfg.Places.APIKey, nil)

	service := venues.NewServiceImpl(
		venues.NewSearcher(provider, cfg.Places.SearchTimeout, logger),
		venues.NewEnricher(provider, logger),
		venues.Options{
			DetailTimeout:  cfg.Places.DetailTimeout,
			MaxConcurrency: cfg.Places.MaxConcurrency,
		},
		m,
		logger,
	)

	logger.Info("Venue pipeline ready",
		zap.String("places_base_url", cfg.Places.BaseURL),
		zap.Duration("detail_timeout", cfg.Places.DetailTimeout),
		zap.Int("max_concurrency", cfg.Places.MaxConcurrency))

	return &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		service: service,
	}
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Service returns the venue pipeline
func (s *Server) Service() venues.Service {
	return s.service
}

// Metrics returns the metric instruments, which may be nil
func (s *Server) Metrics() *metrics.AppMetrics {
	return s.metrics
}

// Config returns the configuration
func (s *Server) Config() *config.Config {
	return s.cfg
}
