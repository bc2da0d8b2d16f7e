package venues

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-venues/internal/app/models"
	"github.com/FACorreiaa/go-venues/internal/app/observability/metrics"
)

// DefaultDetailTimeout bounds each detail lookup when no timeout is configured.
const DefaultDetailTimeout = 5 * time.Second

var _ Service = (*ServiceImpl)(nil)

// Service defines the nearby venue pipeline.
type Service interface {
	// FindVenues searches once, enriches every candidate concurrently and
	// returns the successful records in completion order. It fails only on
	// invalid input or when the search itself fails.
	FindVenues(ctx context.Context, query models.SearchQuery) ([]models.VenueRecord, error)
}

// Options tunes the enrichment fan-out.
type Options struct {
	// DetailTimeout is applied to each detail lookup independently.
	DetailTimeout time.Duration
	// MaxConcurrency caps in-flight detail lookups. Zero means one per candidate.
	MaxConcurrency int
}

type ServiceImpl struct {
	logger   *zap.Logger
	searcher *Searcher
	enricher *Enricher
	opts     Options
	metrics  *metrics.AppMetrics
}

func NewServiceImpl(searcher *Searcher, enricher *Enricher, opts Options, m *metrics.AppMetrics, logger *zap.Logger) *ServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DetailTimeout <= 0 {
		opts.DetailTimeout = DefaultDetailTimeout
	}
	return &ServiceImpl{
		logger:   logger,
		searcher: searcher,
		enricher: enricher,
		opts:     opts,
		metrics:  m,
	}
}

// enrichOutcome is the tagged result of one detail lookup.
type enrichOutcome struct {
	candidateID string
	record      models.VenueRecord
	err         error
}

func (s *ServiceImpl) FindVenues(ctx context.Context, query models.SearchQuery) ([]models.VenueRecord, error) {
	ctx, span := otel.Tracer("VenueService").Start(ctx, "FindVenues", trace.WithAttributes(
		attribute.Float64("query.radius_meters", query.RadiusMeters),
		attribute.String("query.category", query.Category),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.PipelineDuration.Record(ctx, time.Since(start).Seconds())
		}
	}()

	candidates, err := s.searcher.Search(ctx, query)
	s.countSearch(ctx, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Candidate search failed")
		s.logger.Warn("Candidate search failed", zap.Error(err))
		return nil, err
	}

	outcomes := s.enrichAll(ctx, candidates, query.Origin)

	records := make([]models.VenueRecord, 0, len(outcomes))
	dropped := 0
	for _, o := range outcomes {
		if o.err != nil {
			dropped++
			s.logger.Warn("Dropping venue after failed detail lookup",
				zap.String("place_id", o.candidateID),
				zap.Error(o.err))
			continue
		}
		records = append(records, o.record)
	}

	span.SetAttributes(
		attribute.Int("candidates.count", len(candidates)),
		attribute.Int("venues.count", len(records)),
		attribute.Int("venues.dropped", dropped),
	)
	span.SetStatus(codes.Ok, "Venue search completed")
	s.logger.Info("Venue search completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("venues", len(records)),
		zap.Int("dropped", dropped),
		zap.Duration("elapsed", time.Since(start)))

	return records, nil
}

// enrichAll runs one detail lookup per candidate and waits for all of them.
// Every task reports through its outcome, so the group never cancels siblings.
func (s *ServiceImpl) enrichAll(ctx context.Context, candidates []models.Candidate, origin models.GeoPoint) []enrichOutcome {
	var g errgroup.Group
	if s.opts.MaxConcurrency > 0 {
		g.SetLimit(s.opts.MaxConcurrency)
	}

	completed := make(chan enrichOutcome, len(candidates))
	for _, c := range candidates {
		g.Go(func() error {
			detailCtx, cancel := context.WithTimeout(ctx, s.opts.DetailTimeout)
			defer cancel()

			record, err := s.enricher.Enrich(detailCtx, c, origin)
			s.countDetail(ctx, err)
			completed <- enrichOutcome{candidateID: c.ID, record: record, err: err}
			return nil
		})
	}
	_ = g.Wait()
	close(completed)

	outcomes := make([]enrichOutcome, 0, len(candidates))
	for o := range completed {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// countSearch skips invalid queries since they never reach the provider.
func (s *ServiceImpl) countSearch(ctx context.Context, err error) {
	if s.metrics == nil || errors.Is(err, models.ErrInvalidQuery) {
		return
	}
	s.metrics.VenueSearchesTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", err == nil)))
}

func (s *ServiceImpl) countDetail(ctx context.Context, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.DetailLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", err == nil)))
	if err != nil {
		s.metrics.DetailFailuresTotal.Add(ctx, 1)
	}
}
