package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/go-venues/internal/app/domain/venues"
)

type AppHandlers struct {
	Venues *venues.VenueHandlers
}

// Setup registers every HTTP route on r.
func Setup(r *gin.Engine, h AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/places", h.Venues.HandleGetPlaces)
		api.POST("/places/search", h.Venues.HandleSearch)
	}
}
