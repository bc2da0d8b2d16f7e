package venues

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-venues/internal/app/models"
	"github.com/FACorreiaa/go-venues/internal/pkg/debugger"
)

// Enricher runs the per-candidate detail stage.
type Enricher struct {
	provider Provider
	logger   *zap.Logger
}

func NewEnricher(provider Provider, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{provider: provider, logger: logger}
}

// Enrich fetches details for one candidate and builds its VenueRecord.
// Any failure is wrapped in models.ErrDetailUnavailable.
func (e *Enricher) Enrich(ctx context.Context, candidate models.Candidate, origin models.GeoPoint) (models.VenueRecord, error) {
	ctx, span := otel.Tracer("VenueService").Start(ctx, "Enrich", trace.WithAttributes(
		attribute.String("candidate.id", candidate.ID),
	))
	defer span.End()

	resp, err := e.provider.PlaceDetails(ctx, candidate.ID, DetailFields)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Place details failed")
		return models.VenueRecord{}, fmt.Errorf("%w: %s: %v", models.ErrDetailUnavailable, candidate.ID, err)
	}
	if resp == nil || resp.Result == nil {
		span.SetStatus(codes.Error, "Place details returned no result")
		return models.VenueRecord{}, fmt.Errorf("%w: %s: no result", models.ErrDetailUnavailable, candidate.ID)
	}
	if resp.Status != StatusOK {
		span.SetStatus(codes.Error, "Place details returned non-OK status")
		return models.VenueRecord{}, fmt.Errorf("%w: %s: status %q %s",
			models.ErrDetailUnavailable, candidate.ID, resp.Status, resp.ErrorMessage)
	}

	record := buildRecord(candidate, origin, resp.Result, e.logger)
	span.SetAttributes(attribute.Float64("venue.distance_meters", record.DistanceMeters))
	span.SetStatus(codes.Ok, "Place details completed")
	return record, nil
}

func buildRecord(candidate models.Candidate, origin models.GeoPoint, d *PlaceDetails, logger *zap.Logger) models.VenueRecord {
	location := candidate.ApproxLocation
	if d.Geometry != nil && d.Geometry.Location != nil {
		location = models.GeoPoint{
			Latitude:  d.Geometry.Location.Lat,
			Longitude: d.Geometry.Location.Lng,
		}
	} else {
		logger.Debug("Place details missing geometry, using search location",
			zap.String("place_id", candidate.ID))
	}

	hours, err := normalizeOpeningHours(d.OpeningHours)
	if err != nil {
		debugger.DebugPayload(logger, "Unrecognised opening hours payload", d.OpeningHours,
			zap.String("place_id", candidate.ID), zap.Error(err))
	}

	return models.VenueRecord{
		ID:               candidate.ID,
		Name:             d.Name,
		FormattedAddress: d.FormattedAddress,
		OpeningHours:     hours,
		Rating:           d.Rating,
		RatingCount:      d.UserRatingsTotal,
		DistanceMeters:   Haversine(origin, location),
		Location:         location,
	}
}

// normalizeOpeningHours converts the provider's opening hours payload into the
// canonical shape. The payload may be absent, null, a bare string, a list of
// strings, or an object with open_now and weekday_text/text. The result is
// never nil and its TextLines is never nil. An error is returned alongside the
// empty value when the payload has an unrecognised shape.
func normalizeOpeningHours(raw json.RawMessage) (*models.OpeningHours, error) {
	hours := &models.OpeningHours{TextLines: []string{}}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return hours, nil
	}

	switch raw[0] {
	case '"', '[':
		lines, err := textLines(raw)
		if err != nil {
			return hours, err
		}
		hours.TextLines = lines
		return hours, nil
	case '{':
	default:
		return hours, fmt.Errorf("unexpected opening_hours payload %s", truncate(raw))
	}

	var obj struct {
		OpenNow     json.RawMessage `json:"open_now"`
		WeekdayText json.RawMessage `json:"weekday_text"`
		Text        json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return hours, fmt.Errorf("decode opening_hours: %w", err)
	}

	if !isEmptyJSON(obj.OpenNow) {
		var openNow bool
		if err := json.Unmarshal(obj.OpenNow, &openNow); err == nil {
			hours.OpenNow = &openNow
		}
	}

	source := obj.WeekdayText
	if isEmptyJSON(source) {
		source = obj.Text
	}
	lines, err := textLines(source)
	if err != nil {
		return hours, err
	}
	hours.TextLines = lines
	return hours, nil
}

// textLines accepts a JSON string, a list of strings, or nothing.
func textLines(raw json.RawMessage) ([]string, error) {
	if isEmptyJSON(raw) {
		return []string{}, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return []string{}, fmt.Errorf("decode opening hours text %s: %w", truncate(raw), err)
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func truncate(raw []byte) string {
	const limit = 64
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
