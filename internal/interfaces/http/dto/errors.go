package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Identity error codes
const (
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeForbidden     = "ERR_FORBIDDEN"
	ErrCodeOwnerMismatch = "ERR_OWNER_MISMATCH"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeMultipleDefaults    = "ERR_MULTIPLE_DEFAULTS"
	ErrCodeEmptyBatch          = "ERR_EMPTY_BATCH"
	ErrCodeDuplicateWrite      = "ERR_DUPLICATE_WRITE"
)

// Business rule error codes
const (
	ErrCodeInvalidState           = "ERR_INVALID_STATE"
	ErrCodePreconditionFailed     = "ERR_PRECONDITION_FAILED"
	ErrCodeMissingExternalStoreID = "ERR_MISSING_EXTERNAL_STORE_ID"
	ErrCodeMissingBrandTag        = "ERR_MISSING_BRAND_TAG"
	ErrCodeSyncInProgress         = "ERR_SYNC_IN_PROGRESS"
)

// Upstream provider error codes
const (
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamInvalid     = "ERR_UPSTREAM_INVALID_RESPONSE"
	ErrCodeUpstreamTimeout     = "ERR_UPSTREAM_TIMEOUT"
	ErrCodeSuperseded          = "ERR_SUPERSEDED"
)

// Capacity error codes
const (
	ErrCodeQueueFull          = "ERR_QUEUE_FULL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeRateLimited        = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeOwnerMismatch: http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeMultipleDefaults:    http.StatusConflict,
	ErrCodeEmptyBatch:          http.StatusBadRequest,
	ErrCodeDuplicateWrite:      http.StatusBadRequest,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:           http.StatusUnprocessableEntity,
	ErrCodePreconditionFailed:     http.StatusUnprocessableEntity,
	ErrCodeMissingExternalStoreID: http.StatusUnprocessableEntity,
	ErrCodeMissingBrandTag:        http.StatusUnprocessableEntity,
	ErrCodeSyncInProgress:         http.StatusConflict,

	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
	ErrCodeUpstreamInvalid:     http.StatusBadGateway,
	ErrCodeUpstreamTimeout:     http.StatusGatewayTimeout,
	ErrCodeSuperseded:          http.StatusConflict,

	ErrCodeQueueFull:          http.StatusServiceUnavailable,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Field validation codes (ERR_INVALID_*) map to 400, unknown codes to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "ERR_INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode converts a domain error code to the ERR_ format
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}
