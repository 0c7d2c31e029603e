// Package stock contains the consumer-facing stock lookup model.
// Availability results are ephemeral: they are computed per query and never persisted.
//
// Design Pattern: Ports & Adapters
//   - InventoryProvider is the port to the external retail inventory service
//   - Adapters live in the infrastructure layer
package stock
