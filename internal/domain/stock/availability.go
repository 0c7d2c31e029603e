package stock

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// AvailabilityResult is the stock state of one nearby store for a product
type AvailabilityResult struct {
	StoreID      string
	StoreName    string
	StoreAddress string
	DistanceKm   *float64
	InStock      bool
	CheckedAt    time.Time
}

// HasDistance returns true if the provider reported a distance
func (r AvailabilityResult) HasDistance() bool {
	return r.DistanceKm != nil
}

// SortNearestFirst orders results by distance. Results without a distance go last,
// ties are broken by store name.
func SortNearestFirst(results []AvailabilityResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch {
		case a.HasDistance() && !b.HasDistance():
			return true
		case !a.HasDistance() && b.HasDistance():
			return false
		case a.HasDistance() && b.HasDistance() && *a.DistanceKm != *b.DistanceKm:
			return *a.DistanceKm < *b.DistanceKm
		}
		return a.StoreName < b.StoreName
	})
}

// AvailabilityQuery is a consumer lookup for a product near a location
type AvailabilityQuery struct {
	CatalogItemID     string
	ExternalProductID string
	Latitude          float64
	Longitude         float64
}

// HasLocation returns false when both coordinates are zero
func (q AvailabilityQuery) HasLocation() bool {
	return q.Latitude != 0 || q.Longitude != 0
}

// Key returns the supersession key of the query
func (q AvailabilityQuery) Key() QueryKey {
	return NewQueryKey(q.CatalogItemID, q.Latitude, q.Longitude)
}

// QueryKey identifies a logical lookup: a product at a location.
// Coordinates are rounded to 5 decimals (about one metre).
type QueryKey struct {
	CatalogItemID string
	Latitude      float64
	Longitude     float64
}

// NewQueryKey creates a query key with rounded coordinates
func NewQueryKey(catalogItemID string, lat, lng float64) QueryKey {
	return QueryKey{
		CatalogItemID: catalogItemID,
		Latitude:      roundCoordinate(lat),
		Longitude:     roundCoordinate(lng),
	}
}

// String returns the key's canonical form
func (k QueryKey) String() string {
	return fmt.Sprintf("%s@%.5f,%.5f", k.CatalogItemID, k.Latitude, k.Longitude)
}

func roundCoordinate(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
