package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// BrandTagOf returns the brand tag of a store name: its first whitespace-separated token.
func BrandTagOf(brandName string) string {
	fields := strings.Fields(brandName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// FoldBrandTag returns the case-folded form of a brand tag, used as its comparison key.
func FoldBrandTag(tag string) string {
	return cases.Fold().String(strings.TrimSpace(tag))
}

// MatchesBrand reports whether an item tagged itemTag belongs to the sync scope
// of a store tagged storeTag. Untagged items are shared across all brands.
func MatchesBrand(itemTag, storeTag string) bool {
	itemKey := FoldBrandTag(itemTag)
	if itemKey == "" {
		return true
	}
	return itemKey == FoldBrandTag(storeTag)
}
