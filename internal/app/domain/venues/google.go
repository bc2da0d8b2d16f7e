package venues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

var _ Provider = (*GoogleClient)(nil)

// GoogleClient talks to the Places nearby search and details endpoints.
type GoogleClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGoogleClient creates a Places client. The API key is only ever placed in
// request URLs and is stripped from returned errors.
func NewGoogleClient(baseURL, apiKey string, httpClient *http.Client) *GoogleClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &GoogleClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// NearbySearch fetches the first page of nearby results.
func (c *GoogleClient) NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", req.Latitude, req.Longitude))
	params.Set("radius", strconv.FormatFloat(req.RadiusMeters, 'f', -1, 64))
	if req.Category != "" {
		params.Set("type", req.Category)
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}
	params.Set("key", c.apiKey)

	var out NearbySearchResponse
	if err := c.getJSON(ctx, "/nearbysearch/json", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceDetails fetches the requested fields for a single place.
func (c *GoogleClient) PlaceDetails(ctx context.Context, placeID string, fields []string) (*PlaceDetailsResponse, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", strings.Join(fields, ","))
	params.Set("key", c.apiKey)

	var out PlaceDetailsResponse
	if err := c.getJSON(ctx, "/details/json", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GoogleClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build places request: %w", redactURLError(err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call places API %s: %w", path, redactURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("places API %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse places response from %s: %w", path, err)
	}
	return nil
}

// redactURLError drops the request URL, which carries the API key, from transport errors.
func redactURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
