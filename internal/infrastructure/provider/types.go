package provider

// availabilityRequest is the body of POST /availability
type availabilityRequest struct {
	ProductID         string  `json:"productId"`
	ExternalProductID string  `json:"externalProductId,omitempty"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
}

// availabilityResponse is the answer of POST /availability
type availabilityResponse struct {
	Success bool                `json:"success"`
	Cached  bool                `json:"cached"`
	Error   string              `json:"error,omitempty"`
	Stores  []storeAvailability `json:"stores" validate:"dive"`
}

type storeAvailability struct {
	StoreID      string   `json:"storeId" validate:"required"`
	StoreName    string   `json:"storeName" validate:"required"`
	StoreAddress string   `json:"storeAddress,omitempty"`
	InStock      bool     `json:"inStock"`
	Distance     *float64 `json:"distance,omitempty" validate:"omitempty,gte=0"`
	LastChecked  string   `json:"lastChecked,omitempty"`
}

// storeStockRequest is the body of POST /store-stock
type storeStockRequest struct {
	ExternalStoreID string   `json:"externalStoreId"`
	SKUs            []string `json:"skus"`
}

// storeStockResponse is the answer of POST /store-stock
type storeStockResponse struct {
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
	Inventory []skuStockResult `json:"inventory" validate:"dive"`
}

type skuStockResult struct {
	SKU     string `json:"sku" validate:"required"`
	InStock bool   `json:"inStock"`
}

// envelope is implemented by responses carrying a success flag
type envelope interface {
	ok() (bool, string)
}

func (r *availabilityResponse) ok() (bool, string) { return r.Success, r.Error }
func (r *storeStockResponse) ok() (bool, string)   { return r.Success, r.Error }
