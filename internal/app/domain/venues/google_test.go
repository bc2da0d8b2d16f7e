package venues

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-secret-key"

func TestGoogleClient_NearbySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "40.000000,-75.000000", q.Get("location"))
		assert.Equal(t, "3000", q.Get("radius"))
		assert.Equal(t, "bar", q.Get("type"))
		assert.Equal(t, "pub", q.Get("keyword"))
		assert.Equal(t, testAPIKey, q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"place_id":"abc","name":"The Anchor","geometry":{"location":{"lat":40.01,"lng":-75.02}}}]}`))
	}))
	defer srv.Close()

	client := NewGoogleClient(srv.URL, testAPIKey, srv.Client())
	resp, err := client.NearbySearch(context.Background(), NearbySearchRequest{
		Latitude: 40, Longitude: -75, RadiusMeters: 3000, Category: "bar", Keyword: "pub",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "abc", resp.Results[0].PlaceID)
	require.NotNil(t, resp.Results[0].Geometry.Location)
	assert.Equal(t, 40.01, resp.Results[0].Geometry.Location.Lat)
}

func TestGoogleClient_PlaceDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "abc", q.Get("place_id"))
		assert.Equal(t, "name,formatted_address,opening_hours,rating,user_ratings_total,geometry", q.Get("fields"))

		_, _ = w.Write([]byte(`{"status":"OK","result":{
			"name":"The Anchor",
			"formatted_address":"1 Dock St",
			"opening_hours":{"open_now":false,"weekday_text":["Mon: 12-23"]},
			"rating":4.5,
			"user_ratings_total":88,
			"geometry":{"location":{"lat":40.011,"lng":-75.021}}}}`))
	}))
	defer srv.Close()

	resp, err := NewGoogleClient(srv.URL, testAPIKey, srv.Client()).PlaceDetails(context.Background(), "abc", DetailFields)
	require.NoError(t, err)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "1 Dock St", resp.Result.FormattedAddress)
	require.NotNil(t, resp.Result.Rating)
	assert.Equal(t, 4.5, *resp.Result.Rating)
	require.NotNil(t, resp.Result.UserRatingsTotal)
	assert.Equal(t, 88, *resp.Result.UserRatingsTotal)
	assert.JSONEq(t, `{"open_now":false,"weekday_text":["Mon: 12-23"]}`, string(resp.Result.OpeningHours))
}

func TestGoogleClient_Errors(t *testing.T) {
	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewGoogleClient(srv.URL, testAPIKey, srv.Client()).NearbySearch(context.Background(), NearbySearchRequest{RadiusMeters: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
		assert.NotContains(t, err.Error(), testAPIKey)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":`))
		}))
		defer srv.Close()

		_, err := NewGoogleClient(srv.URL, testAPIKey, srv.Client()).PlaceDetails(context.Background(), "abc", DetailFields)
		assert.Error(t, err)
	})

	t.Run("transport errors do not leak the key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := NewGoogleClient(srv.URL, testAPIKey, srv.Client()).PlaceDetails(ctx, "abc", DetailFields)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotContains(t, err.Error(), testAPIKey)
	})
}
