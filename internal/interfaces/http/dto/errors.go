package dto

import "net/http"

// Transport-level error codes for failures that never reach the domain
const (
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to 422: the request was well-formed
// but a business rule refused it.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":         http.StatusNotFound,
	"ACCOUNT_NOT_FOUND": http.StatusNotFound,
	"PARENT_NOT_FOUND":  http.StatusNotFound,

	"DUPLICATE_ACCOUNT_CODE": http.StatusConflict,
	"ALREADY_EXISTS":         http.StatusConflict,
	"ALREADY_REVERSED":       http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,

	"VALIDATION_ERROR":      http.StatusBadRequest,
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_ACCOUNT_TYPE":  http.StatusBadRequest,
	"INVALID_ENTRY_DATE":    http.StatusBadRequest,
	"INVALID_LINE_ACCOUNT":  http.StatusBadRequest,
	"INVALID_LINE_AMOUNT":   http.StatusBadRequest,
	"INVALID_REFERENCE":     http.StatusBadRequest,
	"INVALID_REPORT_PARAMS": http.StatusBadRequest,
	"INVALID_COST_METHOD":   http.StatusBadRequest,
	"INVALID_UNIT_TYPE":     http.StatusBadRequest,
	"INVALID_UNIT_COST":     http.StatusBadRequest,
	"INVALID_PRODUCT":       http.StatusBadRequest,
	"TOO_FEW_LINES":         http.StatusBadRequest,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// HTTPStatusForDomainCode returns the HTTP status for a domain error code
func HTTPStatusForDomainCode(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
