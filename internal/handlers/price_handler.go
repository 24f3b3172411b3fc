package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pricewatch/internal/errors"
	"pricewatch/internal/store"
)

// PriceHandler serves the stored price history. All endpoints are
// read-only: the store is append-only and only the monitor writes to it.
type PriceHandler struct {
	store *store.Store
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(s *store.Store) *PriceHandler {
	return &PriceHandler{store: s}
}

// GetProducts lists every tracked product with its latest observation.
func (h *PriceHandler) GetProducts(c *gin.Context) {
	products, err := h.store.Products()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

// GetHistory returns the paginated observation rows for one product,
// newest first.
func (h *PriceHandler) GetHistory(c *gin.Context) {
	name, err := requiredQuery(c, "product_name")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q store.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	page, err := h.store.History(name, q)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetMaxPrice returns the historical maximum for one product.
func (h *PriceHandler) GetMaxPrice(c *gin.Context) {
	name, err := requiredQuery(c, "product_name")
	if err != nil {
		respondWithError(c, err)
		return
	}

	max, err := h.store.MaxPrice(name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if max == nil {
		respondWithError(c, apperrors.ErrProductNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_name": name, "max": max})
}
