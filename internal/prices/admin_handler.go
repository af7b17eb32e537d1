package prices

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminHandler manages curated quotes, the pipeline's first resolution
// tier. Routes are guarded by the admin JWT middleware.
type AdminHandler struct {
	repo Repository
}

func NewAdminHandler(repo Repository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

type upsertQuoteRequest struct {
	BarID     string  `json:"barId"`
	DrinkName string  `json:"drinkName"`
	Price     float64 `json:"price"`
}

// --------------------------------------------------
// PUT /api/admin/quotes
// --------------------------------------------------
func (h *AdminHandler) UpsertQuote(c *gin.Context) {
	var req upsertQuoteRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.BarID == "" || req.DrinkName == "" || req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barId, drinkName and a positive price are required"})
		return
	}

	quote := &Quote{
		BarID:      req.BarID,
		DrinkName:  req.DrinkName,
		Price:      round2(req.Price),
		Provenance: ProvenanceStored,
	}

	if err := h.repo.Upsert(c.Request.Context(), quote); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store quote"})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// --------------------------------------------------
// GET /api/admin/quotes/:barId
// --------------------------------------------------
func (h *AdminHandler) GetQuote(c *gin.Context) {
	barID := c.Param("barId")

	quotes, err := h.repo.GetByBars(c.Request.Context(), []string{barID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quote"})
		return
	}

	quote, ok := quotes[barID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no quote for bar"})
		return
	}

	c.JSON(http.StatusOK, quote)
}
