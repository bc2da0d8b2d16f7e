package venues

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-venues/internal/app/models"
)

// Searcher runs the candidate search stage.
type Searcher struct {
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
}

func NewSearcher(provider Provider, timeout time.Duration, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{provider: provider, timeout: timeout, logger: logger}
}

// Search validates the query and issues exactly one nearby search call.
// Invalid queries fail with models.ErrInvalidQuery before any call is made;
// every upstream failure is wrapped in models.ErrProviderUnavailable.
func (s *Searcher) Search(ctx context.Context, query models.SearchQuery) ([]models.Candidate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer("VenueService").Start(ctx, "Search", trace.WithAttributes(
		attribute.Float64("query.latitude", query.Origin.Latitude),
		attribute.Float64("query.longitude", query.Origin.Longitude),
		attribute.Float64("query.radius_meters", query.RadiusMeters),
		attribute.String("query.category", query.Category),
		attribute.String("query.keyword", query.Keyword),
	))
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.provider.NearbySearch(ctx, NearbySearchRequest{
		Latitude:     query.Origin.Latitude,
		Longitude:    query.Origin.Longitude,
		RadiusMeters: query.RadiusMeters,
		Category:     query.Category,
		Keyword:      query.Keyword,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Nearby search failed")
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}
	if resp == nil {
		span.SetStatus(codes.Error, "Empty nearby search response")
		return nil, fmt.Errorf("%w: empty response", models.ErrProviderUnavailable)
	}

	switch resp.Status {
	case StatusOK, StatusZeroResults:
	default:
		err := fmt.Errorf("%w: status %q %s", models.ErrProviderUnavailable, resp.Status, resp.ErrorMessage)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Nearby search returned non-OK status")
		return nil, err
	}

	candidates := toCandidates(resp.Results)
	span.SetAttributes(attribute.Int("candidates.count", len(candidates)))
	span.SetStatus(codes.Ok, "Nearby search completed")
	s.logger.Debug("Nearby search completed",
		zap.Int("raw_results", len(resp.Results)),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// toCandidates maps raw hits to candidates. Hits without an id or a location
// are skipped and duplicate ids are collapsed.
func toCandidates(results []PlaceResult) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if r.PlaceID == "" || r.Geometry.Location == nil {
			continue
		}
		if _, dup := seen[r.PlaceID]; dup {
			continue
		}
		seen[r.PlaceID] = struct{}{}

		candidates = append(candidates, models.Candidate{
			ID: r.PlaceID,
			ApproxLocation: models.GeoPoint{
				Latitude:  r.Geometry.Location.Lat,
				Longitude: r.Geometry.Location.Lng,
			},
		})
	}
	return candidates
}
