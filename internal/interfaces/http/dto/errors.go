package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain codes come through verbatim from
// shared.DomainError.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,

	// authentication
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,

	// resources
	ErrCodeNotFound:  http.StatusNotFound,
	"USER_NOT_FOUND": http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	// business rules
	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"NO_SNAPSHOT":      http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":   http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE": http.StatusUnprocessableEntity,
	"CANNOT_DELETE":    http.StatusUnprocessableEntity,

	// payload limits
	"FILE_TOO_LARGE": http.StatusRequestEntityTooLarge,

	// collaborators
	"EXTERNAL_SERVICE":       http.StatusBadGateway,
	"EXTERNAL_SERVICE_ERROR": http.StatusBadGateway,
	"STORAGE_DOWN":           http.StatusBadGateway,

	// internals that should never leak as 4xx
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus resolves the HTTP status for an error code. Validation
// codes (INVALID_*) default to 400; anything unknown is a 500 so bugs
// surface as server errors rather than client mistakes.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
