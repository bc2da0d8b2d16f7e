package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-venues/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-venues/internal/app/observability/tracer"
	"github.com/FACorreiaa/go-venues/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability initializes OpenTelemetry and application metrics
func InitObservability(cfg config.ObservabilityConfig, logger *zap.Logger) (*metrics.AppMetrics, ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(tracer.Config{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		MetricsAddr:  cfg.MetricsAddr,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	m, err := metrics.InitAppMetrics()
	if err != nil {
		_ = otelShutdown(context.Background())
		return nil, nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	logger.Info("Observability initialized", zap.String("metrics_endpoint", cfg.MetricsAddr+"/metrics"))

	return m, otelShutdown, nil
}
