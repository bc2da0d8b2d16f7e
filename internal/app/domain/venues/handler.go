package venues

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-venues/internal/app/models"
)

const searchRequestSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-04/schema#",
	"type": "object",
	"required": [ "lat", "lng", "radius" ],
	"properties": {
		"lat": { "type": "number", "minimum": -90.0, "maximum": 90.0 },
		"lng": { "type": "number", "minimum": -180.0, "maximum": 180.0 },
		"radius": { "type": "number", "minimum": 0.0, "exclusiveMinimum": true },
		"category": { "type": "string" },
		"keyword": { "type": "string" },
		"sort": { "type": "string", "enum": [ "", "distance", "rating" ] },
		"open_now": { "type": "boolean" },
		"min_rating": { "type": "number", "minimum": 0.0, "maximum": 5.0 }
	}
}`

var searchRequestSchema = mustSchema(searchRequestSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid search request schema: %v", err))
	}
	return schema
}

// SearchRequest is the JSON body accepted by the search endpoint.
type SearchRequest struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Radius    float64  `json:"radius"`
	Category  string   `json:"category"`
	Keyword   string   `json:"keyword"`
	Sort      string   `json:"sort"`
	OpenNow   bool     `json:"open_now"`
	MinRating *float64 `json:"min_rating"`
}

// Defaults fills in the filter when the caller leaves it empty.
type Defaults struct {
	Category string
	Keyword  string
}

type VenueHandlers struct {
	service  Service
	defaults Defaults
	logger   *zap.Logger
}

func NewVenueHandlers(service Service, defaults Defaults, logger *zap.Logger) *VenueHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VenueHandlers{service: service, defaults: defaults, logger: logger}
}

// HandleGetPlaces serves GET /api/places?lat=&lng=&radius=
func (h *VenueHandlers) HandleGetPlaces(c *gin.Context) {
	latStr, lngStr, radiusStr := c.Query("lat"), c.Query("lng"), c.Query("radius")
	if latStr == "" || lngStr == "" || radiusStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
		return
	}

	req := SearchRequest{
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
		Sort:     c.Query("sort"),
	}
	var err error
	if req.Lat, err = strconv.ParseFloat(latStr, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lat"})
		return
	}
	if req.Lng, err = strconv.ParseFloat(lngStr, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lng"})
		return
	}
	if req.Radius, err = strconv.ParseFloat(radiusStr, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
		return
	}
	if v := c.Query("open_now"); v != "" {
		if req.OpenNow, err = strconv.ParseBool(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid open_now"})
			return
		}
	}
	if v := c.Query("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_rating"})
			return
		}
		req.MinRating = &rating
	}

	h.respond(c, req)
}

// HandleSearch serves POST /api/places/search with a JSON body.
func (h *VenueHandlers) HandleSearch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read request body"})
		return
	}

	result, err := searchRequestSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON body"})
		return
	}
	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			errs = append(errs, e.String())
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
		return
	}

	var req SearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON body"})
		return
	}

	h.respond(c, req)
}

func (h *VenueHandlers) respond(c *gin.Context, req SearchRequest) {
	switch req.Sort {
	case "", SortByDistance, SortByRating:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort"})
		return
	}

	query := models.SearchQuery{
		Origin:       models.GeoPoint{Latitude: req.Lat, Longitude: req.Lng},
		RadiusMeters: req.Radius,
		Category:     req.Category,
		Keyword:      req.Keyword,
	}
	if query.Category == "" {
		query.Category = h.defaults.Category
	}
	if query.Keyword == "" {
		query.Keyword = h.defaults.Keyword
	}

	records, err := h.service.FindVenues(c.Request.Context(), query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	records = Filter{OpenNowOnly: req.OpenNow, MinRating: req.MinRating}.Apply(records)
	SortVenues(records, req.Sort)

	c.JSON(http.StatusOK, records)
}

func (h *VenueHandlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrProviderUnavailable):
		h.logger.Error("Places search unavailable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Search provider unavailable"})
	default:
		h.logger.Error("Places API error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
