package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	stockapp "github.com/shelfsync/backend/internal/application/stock"
	"github.com/shelfsync/backend/internal/domain/stock"
)

// AvailabilityChecker answers nearby stock lookups
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, catalogItemID, externalProductID string, latitude, longitude float64) ([]stock.AvailabilityResult, error)
}

// StockHandler handles consumer stock lookup endpoints
type StockHandler struct {
	BaseHandler
	lookup AvailabilityChecker
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(lookup AvailabilityChecker) *StockHandler {
	return &StockHandler{lookup: lookup}
}

// CheckAvailability returns the stores near a location that carry a product, nearest first.
// POST /stock/availability. A newer lookup for the same product and location
// supersedes a pending one, which then answers 409.
//
// @ID           checkStockAvailability
// @Summary      Check nearby stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body stockapp.AvailabilityRequest true "Product and location"
// @Success      200 {object} dto.Response{data=[]stockapp.StoreAvailabilityResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      429 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Failure      504 {object} dto.Response
// @Router       /stock/availability [post]
func (h *StockHandler) CheckAvailability(c *gin.Context) {
	var req stockapp.AvailabilityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	results, err := h.lookup.CheckAvailability(c.Request.Context(),
		req.CatalogItemID, req.ExternalProductID, req.Latitude, req.Longitude)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stockapp.ToStoreAvailabilityResponses(results))
}
