package models

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate reports whether the point lies within the valid coordinate ranges
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return fmt.Errorf("%w: coordinates must be numbers", ErrInvalidQuery)
	}
	if !s2.LatLngFromDegrees(p.Latitude, p.Longitude).IsValid() {
		return fmt.Errorf("%w: coordinates (%f, %f) out of range", ErrInvalidQuery, p.Latitude, p.Longitude)
	}
	return nil
}

// SearchQuery describes one nearby venue lookup.
type SearchQuery struct {
	Origin       GeoPoint `json:"origin"`
	RadiusMeters float64  `json:"radius_meters"`
	Category     string   `json:"category,omitempty"`
	Keyword      string   `json:"keyword,omitempty"`
}

// Validate checks the radius and origin. It never touches the network.
func (q SearchQuery) Validate() error {
	if math.IsNaN(q.RadiusMeters) || q.RadiusMeters <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidQuery, q.RadiusMeters)
	}
	return q.Origin.Validate()
}

// Candidate is a coarse search hit awaiting detail enrichment.
type Candidate struct {
	ID             string
	ApproxLocation GeoPoint
}

// OpeningHours is the canonical opening hours shape.
// OpenNow is nil when the provider did not say whether the venue is open.
type OpeningHours struct {
	OpenNow   *bool    `json:"open_now"`
	TextLines []string `json:"text"`
}

// VenueRecord is the enriched, normalized venue returned to callers.
// Pointer fields are nil when the provider omitted them.
type VenueRecord struct {
	ID               string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	Rating           *float64      `json:"rating,omitempty"`
	RatingCount      *int          `json:"user_ratings_total,omitempty"`
	DistanceMeters   float64       `json:"distance"`
	Location         GeoPoint      `json:"location"`
}

// IsOpenNow returns true only when the provider explicitly reported the venue as open
func (v VenueRecord) IsOpenNow() bool {
	return v.OpeningHours != nil && v.OpeningHours.OpenNow != nil && *v.OpeningHours.OpenNow
}
