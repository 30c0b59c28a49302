package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// Common domain error codes
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeUpstreamAuth        = "UPSTREAM_AUTH"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingUserID        = NewDomainError(ErrCodeValidation, "userId is required")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrInvalidResourceType  = NewDomainError(ErrCodeValidation, "invalid resource type")
)

// Not found errors
var (
	ErrWorkspaceResourceNotFound = NewDomainError(ErrCodeNotFound, "workspace resource not found")
)

// Upstream errors. Auth failures mean the caller's Graph credentials were
// rejected; they are not retried here.
var (
	ErrUpstreamAuth        = NewDomainError(ErrCodeUpstreamAuth, "upstream rejected credentials")
	ErrUpstreamUnavailable = NewDomainError(ErrCodeUpstreamUnavailable, "upstream search backend unavailable")
)
