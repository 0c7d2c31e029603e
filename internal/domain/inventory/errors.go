package inventory

import (
	"errors"

	"github.com/shelfsync/backend/internal/domain/shared"
)

// Precondition and coordination errors of a reconciliation sweep
var (
	ErrMissingExternalID = shared.NewDomainError("MISSING_EXTERNAL_STORE_ID", "Store is not linked to an external inventory store")
	ErrMissingBrandTag   = shared.NewDomainError("MISSING_BRAND_TAG", "Store brand name has no brand tag")
	ErrSyncInProgress    = shared.NewDomainError("SYNC_IN_PROGRESS", "A sync for this store is already running")
)

// IsPrecondition returns true for errors raised before any network call
func IsPrecondition(err error) bool {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == ErrMissingExternalID.Code || de.Code == ErrMissingBrandTag.Code
}
