package stock

import "context"

// StoreStockLevel is the provider's stock answer for one SKU at one store
type StoreStockLevel struct {
	SKU     string
	InStock bool
}

// InventoryProvider is the port to the external retail inventory service.
// Implementations map transport failures to ErrNetwork, deadline hits to ErrTimeout
// and non-success or malformed responses to ErrService.
type InventoryProvider interface {
	// CheckNearbyAvailability returns the stock of a product at stores near a location
	CheckNearbyAvailability(ctx context.Context, query AvailabilityQuery) ([]AvailabilityResult, error)

	// CheckStoreStock returns the stock of the given SKUs at one store
	CheckStoreStock(ctx context.Context, externalStoreID string, skus []string) ([]StoreStockLevel, error)
}
