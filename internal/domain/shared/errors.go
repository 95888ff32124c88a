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
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// Shipping configuration errors
	ErrSystemRecordReadOnly  = NewDomainError("SYSTEM_READ_ONLY", "System records cannot be modified by store operations")
	ErrMethodAlreadyEnabled  = NewDomainError("ALREADY_ENABLED", "Shipping method is already enabled for this store")
	ErrMethodNotEnabled      = NewDomainError("NOT_ENABLED", "Shipping method is not enabled for this store")
	ErrNotSystemRecord       = NewDomainError("NOT_SYSTEM_RECORD", "Operation requires a system record")
	ErrZoneNotSyncable       = NewDomainError("NOT_SYNCABLE", "Zone is not a system copy and cannot be synchronized")
	ErrStoreContextRequired  = NewDomainError("STORE_CONTEXT_REQUIRED", "A store context is required for this operation")
	ErrInactiveSystemMethod  = NewDomainError("INACTIVE_SYSTEM_METHOD", "System shipping method is inactive")
	ErrTargetZoneNotWritable = NewDomainError("TARGET_ZONE_NOT_WRITABLE", "Target zone does not accept store-owned rates")
)
