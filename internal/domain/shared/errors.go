package shared

// DomainError is a business-rule refusal with a machine-readable code.
// Handlers map codes to HTTP statuses; messages are safe to surface.
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

// ErrNotFound is returned by repositories when a lookup misses.
// Callers check it with errors.Is.
var ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")
