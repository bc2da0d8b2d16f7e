package metrics

import (
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	VenueSearchesTotal  metric.Int64Counter
	DetailLookupsTotal  metric.Int64Counter
	DetailFailuresTotal metric.Int64Counter
	PipelineDuration    metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	initErr    error
	once       sync.Once
)

// InitAppMetrics creates the instruments once from the global MeterProvider.
func InitAppMetrics() (*AppMetrics, error) {
	once.Do(func() {
		appMetrics, initErr = New(otel.GetMeterProvider().Meter("venues"))
	})
	return appMetrics, initErr
}

// New builds a fresh set of instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests completed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_requests_total: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create http_request_duration_seconds: %w", err)
	}

	m.VenueSearchesTotal, err = meter.Int64Counter(
		"venue_searches_total",
		metric.WithDescription("Total number of candidate searches issued to the provider"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create venue_searches_total: %w", err)
	}

	m.DetailLookupsTotal, err = meter.Int64Counter(
		"venue_detail_lookups_total",
		metric.WithDescription("Total number of per-venue detail lookups"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create venue_detail_lookups_total: %w", err)
	}

	m.DetailFailuresTotal, err = meter.Int64Counter(
		"venue_detail_failures_total",
		metric.WithDescription("Detail lookups that failed or timed out and were dropped"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create venue_detail_failures_total: %w", err)
	}

	m.PipelineDuration, err = meter.Float64Histogram(
		"venue_pipeline_duration_seconds",
		metric.WithDescription("Duration of a full search and enrichment run in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create venue_pipeline_duration_seconds: %w", err)
	}

	return m, nil
}

// Get returns the instruments created by InitAppMetrics.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
