package prices

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fxdvs/maturitna-praca-spevak/internal/places"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type resolveRequest struct {
	Bars      []*places.Place `json:"bars"`
	DrinkType string          `json:"drinkType"`
}

// --------------------------------------------------
// POST /api/prices
// --------------------------------------------------
func (h *Handler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"bars": []*PricedPlace{}, "error": "invalid request"})
		return
	}

	if len(req.Bars) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"bars": []*PricedPlace{}, "error": "Missing bars"})
		return
	}

	result, err := h.service.ResolvePrices(c.Request.Context(), req.Bars, req.DrinkType)
	if err != nil {
		log.Printf("PRICES_RESOLVE_FAILED bars=%d err=%v", len(req.Bars), err)
		c.JSON(http.StatusInternalServerError, gin.H{"bars": []*PricedPlace{}, "error": "Failed to fetch prices"})
		return
	}

	log.Printf(
		"PRICES_RESOLVED total=%d stored=%d scraped=%d ocr=%d generated=%d",
		result.Stats.Total,
		result.Stats.ByProvenance[ProvenanceStored],
		result.Stats.ByProvenance[ProvenanceScraped],
		result.Stats.ByProvenance[ProvenanceOCR],
		result.Stats.ByProvenance[ProvenanceGenerated],
	)

	c.JSON(http.StatusOK, result)
}
