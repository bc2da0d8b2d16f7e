package venues

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-venues/internal/app/models"
)

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewVenueHandlers(svc, Defaults{Category: "bar", Keyword: "pub"}, nil)
	r := gin.New()
	r.GET("/api/places", h.HandleGetPlaces)
	r.POST("/api/places/search", h.HandleSearch)
	return r
}

func sampleRecords() []models.VenueRecord {
	return []models.VenueRecord{
		{ID: "far", Name: "Far", DistanceMeters: 900, Rating: ptr(3.9),
			OpeningHours: &models.OpeningHours{OpenNow: ptr(true), TextLines: []string{}}},
		{ID: "near", Name: "Near", DistanceMeters: 100,
			OpeningHours: &models.OpeningHours{TextLines: []string{}}},
		{ID: "mid", Name: "Mid", DistanceMeters: 500, Rating: ptr(4.6),
			OpeningHours: &models.OpeningHours{OpenNow: ptr(false), TextLines: []string{"Mon: 12-23"}}},
	}
}

func decodeIDs(t *testing.T, body []byte) []string {
	t.Helper()
	var records []models.VenueRecord
	require.NoError(t, json.Unmarshal(body, &records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestHandleGetPlaces(t *testing.T) {
	wantQuery := models.SearchQuery{
		Origin:       models.GeoPoint{Latitude: 40, Longitude: -75},
		RadiusMeters: 3000,
		Category:     "bar",
		Keyword:      "pub",
	}

	t.Run("returns records with defaults applied", func(t *testing.T) {
		svc := new(MockService)
		svc.On("FindVenues", mock.Anything, wantQuery).Return(sampleRecords(), nil)

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/places?lat=40&lng=-75&radius=3000", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"far", "near", "mid"}, decodeIDs(t, w.Body.Bytes()))
		svc.AssertExpectations(t)
	})

	t.Run("sorts and filters", func(t *testing.T) {
		svc := new(MockService)
		svc.On("FindVenues", mock.Anything, mock.Anything).Return(sampleRecords(), nil)
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/places?lat=40&lng=-75&radius=3000&sort=distance", nil))
		assert.Equal(t, []string{"near", "mid", "far"}, decodeIDs(t, w.Body.Bytes()))

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/places?lat=40&lng=-75&radius=3000&sort=rating", nil))
		assert.Equal(t, []string{"mid", "far", "near"}, decodeIDs(t, w.Body.Bytes()))

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/places?lat=40&lng=-75&radius=3000&open_now=true", nil))
		assert.Equal(t, []string{"far"}, decodeIDs(t, w.Body.Bytes()))

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/places?lat=40&lng=-75&radius=3000&min_rating=4", nil))
		assert.Equal(t, []string{"mid"}, decodeIDs(t, w.Body.Bytes()))
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		svc := new(MockService)
		svc.On("FindVenues", mock.Anything, mock.Anything).Return([]models.VenueRecord{}, nil)

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/places?lat=40&lng=-75&radius=3000", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	badRequests := []string{
		"/api/places?lng=-75&radius=3000",
		"/api/places?lat=40&radius=3000",
		"/api/places?lat=40&lng=-75",
		"/api/places?lat=north&lng=-75&radius=3000",
		"/api/places?lat=40&lng=-75&radius=3000&sort=name",
		"/api/places?lat=40&lng=-75&radius=3000&open_now=maybe",
	}
	for _, target := range badRequests {
		t.Run("bad request "+target, func(t *testing.T) {
			svc := new(MockService)
			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "FindVenues", mock.Anything, mock.Anything)
		})
	}

	errorCases := []struct {
		err  error
		code int
	}{
		{err: fmt.Errorf("%w: radius must be positive", models.ErrInvalidQuery), code: http.StatusBadRequest},
		{err: fmt.Errorf("%w: status 503", models.ErrProviderUnavailable), code: http.StatusBadGateway},
		{err: errors.New("unexpected"), code: http.StatusInternalServerError},
	}
	for _, tt := range errorCases {
		t.Run(fmt.Sprintf("maps error to %d", tt.code), func(t *testing.T) {
			svc := new(MockService)
			svc.On("FindVenues", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/places?lat=40&lng=-75&radius=-1", nil))

			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestHandleSearch(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		svc := new(MockService)
		svc.On("FindVenues", mock.Anything, models.SearchQuery{
			Origin:       models.GeoPoint{Latitude: 51.5, Longitude: -0.12},
			RadiusMeters: 800,
			Category:     "cafe",
			Keyword:      "pub",
		}).Return(sampleRecords(), nil)

		body := `{"lat": 51.5, "lng": -0.12, "radius": 800, "category": "cafe", "sort": "distance"}`
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/places/search", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"near", "mid", "far"}, decodeIDs(t, w.Body.Bytes()))
		svc.AssertExpectations(t)
	})

	invalid := map[string]string{
		"missing radius":   `{"lat": 51.5, "lng": -0.12}`,
		"zero radius":      `{"lat": 51.5, "lng": -0.12, "radius": 0}`,
		"lat out of range": `{"lat": 95, "lng": -0.12, "radius": 100}`,
		"wrong type":       `{"lat": "51.5", "lng": -0.12, "radius": 100}`,
		"unknown sort":     `{"lat": 51.5, "lng": -0.12, "radius": 100, "sort": "name"}`,
		"not json":         `lat=51.5`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			svc := new(MockService)
			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/places/search", strings.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "FindVenues", mock.Anything, mock.Anything)
		})
	}
}
