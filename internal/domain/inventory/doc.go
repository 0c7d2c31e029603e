// Package inventory contains the reconciliation model: the report of one sweep
// of a store's SKU universe against the external inventory, and the lease that
// serializes sweeps per store.
package inventory
