// Package catalog contains the Catalog bounded context.
// It holds the shared product catalog and the physical stores whose
// inventory is reconciled against an external retail inventory service.
//
// Key concepts:
//   - CatalogItem: a sellable SKU, scoped to a retail chain by its brand tag
//   - StoreRecord: a physical store, linked to the provider by its external store id
//   - Brand tag: first token of a store's brand name, compared case-insensitively
package catalog
