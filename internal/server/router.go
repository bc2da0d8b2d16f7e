package server

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/go-venues/internal/app/domain/venues"
	"github.com/FACorreiaa/go-venues/internal/app/middleware"
	"github.com/FACorreiaa/go-venues/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-venues/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(service venues.Service, defaults venues.Defaults, serviceName string, m *metrics.AppMetrics, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.OTELGinMiddleware(serviceName))
	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.MetricsMiddleware(m))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	routes.Setup(r, routes.AppHandlers{
		Venues: venues.NewVenueHandlers(service, defaults, logger),
	})

	return r
}

// zapContextFunc adds request and trace ids to access log entries
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get(middleware.RequestIDHeader); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		return fields
	}
}
