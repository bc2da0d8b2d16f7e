package venues

import (
	"context"
	"encoding/json"
)

// Provider statuses returned in the body of a successful HTTP response.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// DetailFields is the field mask requested for every detail lookup.
var DetailFields = []string{
	"name",
	"formatted_address",
	"opening_hours",
	"rating",
	"user_ratings_total",
	"geometry",
}

// Provider is the upstream places API used by the pipeline.
type Provider interface {
	NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error)
	PlaceDetails(ctx context.Context, placeID string, fields []string) (*PlaceDetailsResponse, error)
}

// NearbySearchRequest holds the search parameters sent upstream
type NearbySearchRequest struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Category     string
	Keyword      string
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

// NearbySearchResponse is the raw nearby search payload.
type NearbySearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []PlaceResult `json:"results"`
}

// PlaceResult is one raw search hit.
type PlaceResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name,omitempty"`
	Geometry Geometry `json:"geometry"`
}

// PlaceDetailsResponse is the raw place details payload.
type PlaceDetailsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Result       *PlaceDetails `json:"result,omitempty"`
}

// PlaceDetails holds the detail attributes. OpeningHours is kept raw because
// the provider sends it in several shapes; see normalizeOpeningHours.
type PlaceDetails struct {
	Name             string          `json:"name"`
	FormattedAddress string          `json:"formatted_address"`
	OpeningHours     json.RawMessage `json:"opening_hours,omitempty"`
	Rating           *float64        `json:"rating,omitempty"`
	UserRatingsTotal *int            `json:"user_ratings_total,omitempty"`
	Geometry         *Geometry       `json:"geometry,omitempty"`
}
