package places

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /api/bars?lat=<float>&lng=<float>
// --------------------------------------------------
func (h *Handler) FindNearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)

	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing coordinates"})
		return
	}

	// ParseFloat accepts "NaN", which slips past plain range checks
	if math.IsNaN(lat) || math.IsNaN(lng) ||
		lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
		return
	}

	result, err := h.service.FindNearbyBars(c.Request.Context(), lat, lng)
	if err != nil {
		log.Printf("BARS_SEARCH_FAILED lat=%v lng=%v err=%v", lat, lng, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch places"})
		return
	}

	log.Printf(
		"BARS_FOUND count=%d source=%s radius=%v",
		len(result.Places), result.Source, result.RadiusUsedKm,
	)

	c.JSON(http.StatusOK, result)
}
