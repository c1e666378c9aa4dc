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
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeAccountInactive is used when the account has been deactivated
	ErrCodeAccountInactive = "ERR_ACCOUNT_INACTIVE"
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
	// ErrCodeDuplicatePeriod is used when a score already exists for a
	// subject, indicator, and period
	ErrCodeDuplicatePeriod = "ERR_DUPLICATE_PERIOD"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeWeightExceeded is used when indicator weights would exceed a
	// role's budget
	ErrCodeWeightExceeded = "ERR_WEIGHT_EXCEEDED"
	// ErrCodeRoleMismatch is used when an indicator does not apply to the
	// subject's role
	ErrCodeRoleMismatch = "ERR_ROLE_MISMATCH"
	// ErrCodeAlreadyVerified is used when editing or re-verifying a verified
	// score record
	ErrCodeAlreadyVerified = "ERR_ALREADY_VERIFIED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeValidationFormat: http.StatusBadRequest,
	ErrCodeValidationRange:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeAccountInactive: http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicatePeriod:     http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:    http.StatusUnprocessableEntity,
	ErrCodeWeightExceeded:  http.StatusUnprocessableEntity,
	ErrCodeRoleMismatch:    http.StatusUnprocessableEntity,
	ErrCodeAlreadyVerified: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized HTTP
// error codes above. Domain errors carry codes describing the violated rule;
// this table decides how each surfaces over HTTP.
var DomainErrorCodeMapping = map[string]string{
	// Score lifecycle
	"DUPLICATE_PERIOD": ErrCodeDuplicatePeriod,
	"ROLE_MISMATCH":    ErrCodeRoleMismatch,
	"ALREADY_VERIFIED": ErrCodeAlreadyVerified,
	"WEIGHT_EXCEEDED":  ErrCodeWeightExceeded,
	"INVALID_SUBJECT":  ErrCodeBusinessRule,

	// Authentication
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"INVALID_TOKEN":       ErrCodeTokenInvalid,
	"ACCOUNT_INACTIVE":    ErrCodeAccountInactive,
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,

	// Resources
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	// State transitions
	"INVALID_STATE":    ErrCodeInvalidState,
	"ALREADY_ACTIVE":   ErrCodeInvalidState,
	"ALREADY_INACTIVE": ErrCodeInvalidState,

	// Field-level validation caught below the HTTP binding layer
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_NAME":            ErrCodeValidation,
	"INVALID_WEIGHT":          ErrCodeValidationRange,
	"INVALID_KIND":            ErrCodeValidation,
	"INVALID_TARGET":          ErrCodeValidationRange,
	"INVALID_VALUE":           ErrCodeValidationRange,
	"INVALID_PERIOD":          ErrCodeValidationRange,
	"INVALID_ROLE":            ErrCodeValidation,
	"INVALID_SCOPE":           ErrCodeValidation,
	"INVALID_USERNAME":        ErrCodeValidation,
	"INVALID_PASSWORD":        ErrCodeValidation,
	"INVALID_EMAIL":           ErrCodeValidationFormat,
	"INVALID_DEPARTMENT":      ErrCodeBusinessRule,
	"INVALID_DEPARTMENT_CODE": ErrCodeValidation,
	"INVALID_DEPARTMENT_NAME": ErrCodeValidation,
	"INVALID_VERIFIER":        ErrCodeValidation,

	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
