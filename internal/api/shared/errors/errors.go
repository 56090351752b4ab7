package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-land-rentals/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest           ErrorCode = "bad_request"
	ErrCodeNotFound             ErrorCode = "not_found"
	ErrCodeValidationFailed     ErrorCode = "validation_failed"
	ErrCodeUnauthorized         ErrorCode = "unauthorized"
	ErrCodeInvalidSignature     ErrorCode = "invalid_signature"
	ErrCodeRentalAlreadyExpired ErrorCode = "rental_already_expired"
	ErrCodeRentalAlreadyExists  ErrorCode = "rental_already_exists"
	ErrCodeNFTNotFound          ErrorCode = "nft_not_found"
	ErrCodeUnauthorizedToRent   ErrorCode = "unauthorized_to_rent"
	ErrCodeInvalidEstate        ErrorCode = "invalid_estate"
	ErrCodeRentalNotFound       ErrorCode = "rental_not_found"

	// Server errors (5xx)
	ErrCodeInternalError  ErrorCode = "internal_error"
	ErrCodeCreationFailed ErrorCode = "creation_failed"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Response is the body of every error response
type Response struct {
	Error *APIError `json:"error"`
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newError(ErrCodeBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(ErrCodeNotFound, message, details)
}

func NewValidationError(details ...string) *APIError {
	return newError(ErrCodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newError(ErrCodeUnauthorized, message, details)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(ErrCodeInternalError, message, details)
}

func newError(code ErrorCode, message string, details []string) *APIError {
	apiErr := &APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		apiErr.Details = strings.Join(details, ", ")
	}
	return apiErr
}

var kindStatus = map[domain.ErrorKind]int{
	domain.KindInvalidSignature:     http.StatusBadRequest,
	domain.KindRentalAlreadyExpired: http.StatusBadRequest,
	domain.KindInvalidEstate:        http.StatusBadRequest,
	domain.KindUnauthorizedToRent:   http.StatusUnauthorized,
	domain.KindNFTNotFound:          http.StatusNotFound,
	domain.KindRentalNotFound:       http.StatusNotFound,
	domain.KindRentalAlreadyExists:  http.StatusConflict,
}

// FromDomainError maps a component error to its HTTP status and API error.
// Errors outside the client-facing kinds become a 500 without leaking the cause.
func FromDomainError(err error) (int, *APIError) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}

	status, ok := kindStatus[domainErr.Kind]
	if !ok {
		if domainErr.Kind == domain.KindCreationFailed {
			return http.StatusInternalServerError, &APIError{
				Code:    ErrCodeCreationFailed,
				Message: domainErr.Error(),
			}
		}
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}

	apiErr := &APIError{
		Code:    ErrorCode(domainErr.Kind),
		Message: domainErr.Error(),
	}
	if len(domainErr.Data) > 0 {
		apiErr.Details = domainErr.Data
	}
	return status, apiErr
}
