// Package sibling models owner-scoped sets of entities of which at most one
// may be flagged as the default, such as saved addresses or payment methods.
//
// All changes to a set are expressed as a Batch of version-checked writes that a
// Store commits atomically. A batch whose observed versions are stale fails as a
// whole with shared.ErrConcurrencyConflict.
package sibling
