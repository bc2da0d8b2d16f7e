package venues

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-venues/internal/app/models"
)

// MockProvider is a mock implementation of Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*NearbySearchResponse), args.Error(1)
}

func (m *MockProvider) PlaceDetails(ctx context.Context, placeID string, fields []string) (*PlaceDetailsResponse, error) {
	args := m.Called(ctx, placeID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlaceDetailsResponse), args.Error(1)
}

// MockService is a mock implementation of Service
type MockService struct {
	mock.Mock
}

func (m *MockService) FindVenues(ctx context.Context, query models.SearchQuery) ([]models.VenueRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VenueRecord), args.Error(1)
}

func hit(id string, lat, lng float64) PlaceResult {
	return PlaceResult{PlaceID: id, Geometry: Geometry{Location: &LatLng{Lat: lat, Lng: lng}}}
}

func details(name string, lat, lng float64, hours string, rating *float64, count *int) *PlaceDetailsResponse {
	d := &PlaceDetails{
		Name:             name,
		FormattedAddress: name + " Street 1",
		Rating:           rating,
		UserRatingsTotal: count,
		Geometry:         &Geometry{Location: &LatLng{Lat: lat, Lng: lng}},
	}
	if hours != "" {
		d.OpeningHours = json.RawMessage(hours)
	}
	return &PlaceDetailsResponse{Status: StatusOK, Result: d}
}

func ptr[T any](v T) *T {
	return &v
}
