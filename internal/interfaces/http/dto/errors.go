package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here are treated as client input errors.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,
	"REPORT_ERROR":  http.StatusInternalServerError,

	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeTokenExpired:      http.StatusUnauthorized,
	ErrCodeTokenInvalid:      http.StatusUnauthorized,
	"INVALID_CREDENTIALS":    http.StatusUnauthorized,
	"INVALID_PROVIDER_TOKEN": http.StatusUnauthorized,

	ErrCodeForbidden: http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeAlreadyExists:   http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"USERNAME_TAKEN":       http.StatusConflict,
	"DUPLICATE_INVOICE_NO": http.StatusConflict,

	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"PRODUCT_NOT_FOUND":    http.StatusUnprocessableEntity,
	"INVOICE_RENDER_ERROR": http.StatusInternalServerError,

	"FEDERATED_DISABLED":   http.StatusServiceUnavailable,
	"PROVIDER_UNAVAILABLE": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
