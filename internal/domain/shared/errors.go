package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// ErrAssignedCountExceedsAvailable is raised when a ledger write would
	// drive an item's running assigned count below zero. The check lives in
	// the database so it holds under concurrent writers.
	ErrAssignedCountExceedsAvailable = NewDomainError("ASSIGNED_COUNT_EXCEEDS_AVAILABLE", "assigned count larger than available count")

	ErrItemDeleted    = NewDomainError("ITEM_DELETED", "Item is marked as deleted")
	ErrItemNotDeleted = NewDomainError("ITEM_NOT_DELETED", "Item is not marked as deleted")
)
