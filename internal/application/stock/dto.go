package stock

import (
	"time"

	"github.com/shelfsync/backend/internal/domain/stock"
)

// AvailabilityRequest is a consumer stock lookup
type AvailabilityRequest struct {
	CatalogItemID     string  `json:"catalog_item_id" binding:"required"`
	ExternalProductID string  `json:"external_product_id"`
	Latitude          float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude         float64 `json:"longitude" binding:"min=-180,max=180"`
}

// StoreAvailabilityResponse is the stock state of one nearby store
type StoreAvailabilityResponse struct {
	StoreID      string    `json:"store_id"`
	StoreName    string    `json:"store_name"`
	StoreAddress string    `json:"store_address,omitempty"`
	DistanceKm   *float64  `json:"distance_km,omitempty"`
	InStock      bool      `json:"in_stock"`
	CheckedAt    time.Time `json:"checked_at"`
}

// ToStoreAvailabilityResponses converts results to responses, keeping their order
func ToStoreAvailabilityResponses(results []stock.AvailabilityResult) []StoreAvailabilityResponse {
	out := make([]StoreAvailabilityResponse, len(results))
	for i, r := range results {
		out[i] = StoreAvailabilityResponse{
			StoreID:      r.StoreID,
			StoreName:    r.StoreName,
			StoreAddress: r.StoreAddress,
			DistanceKm:   r.DistanceKm,
			InStock:      r.InStock,
			CheckedAt:    r.CheckedAt,
		}
	}
	return out
}
