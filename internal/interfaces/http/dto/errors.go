package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeAssignedCountExceedsAvailable is used when a ledger write would
	// drive an item's running count below zero
	ErrCodeAssignedCountExceedsAvailable = "ERR_ASSIGNED_COUNT_EXCEEDS_AVAILABLE"
	// ErrCodeItemDeleted is used when mutating an item that is soft-deleted
	ErrCodeItemDeleted = "ERR_ITEM_DELETED"
	// ErrCodeItemNotDeleted is used when restoring an item that is not deleted
	ErrCodeItemNotDeleted = "ERR_ITEM_NOT_DELETED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:                  http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:                  http.StatusUnprocessableEntity,
	ErrCodeAssignedCountExceedsAvailable: http.StatusUnprocessableEntity,
	ErrCodeItemDeleted:                   http.StatusUnprocessableEntity,
	ErrCodeItemNotDeleted:                http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the standardized codes
// carried on the wire
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":                        ErrCodeNotFound,
	"ALREADY_EXISTS":                   ErrCodeAlreadyExists,
	"INVALID_INPUT":                    ErrCodeInvalidInput,
	"INVALID_NAME":                     ErrCodeInvalidInput,
	"INVALID_COUNT":                    ErrCodeInvalidInput,
	"INVALID_COMMENT":                  ErrCodeInvalidInput,
	"INVALID_ITEM":                     ErrCodeInvalidInput,
	"INVALID_SHIPMENT":                 ErrCodeInvalidInput,
	"INVALID_EXTERNAL_ASSIGNMENT":      ErrCodeInvalidInput,
	"INVALID_STATE":                    ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":             ErrCodeConcurrencyConflict,
	"ASSIGNED_COUNT_EXCEEDS_AVAILABLE": ErrCodeAssignedCountExceedsAvailable,
	"ITEM_DELETED":                     ErrCodeItemDeleted,
	"ITEM_NOT_DELETED":                 ErrCodeItemNotDeleted,
	"VALIDATION_ERROR":                 ErrCodeValidation,
	"BAD_REQUEST":                      ErrCodeBadRequest,
	"INTERNAL_ERROR":                   ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
