package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for the booking core. Conflicts and rate limits are expected,
// routine outcomes and travel as ordinary return values.
const (
	CodeNotFound    = "not_found"
	CodeConflict    = "conflict"
	CodeForbidden   = "forbidden"
	CodeValidation  = "validation"
	CodeRateLimited = "rate_limited"
	CodeInternal    = "internal"
)

// Error is a coded booking error. Handlers map codes to HTTP statuses.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFound(msg string) error   { return &Error{Code: CodeNotFound, Message: msg} }
func NewConflict(msg string) error   { return &Error{Code: CodeConflict, Message: msg} }
func NewForbidden(msg string) error  { return &Error{Code: CodeForbidden, Message: msg} }
func NewValidation(msg string) error { return &Error{Code: CodeValidation, Message: msg} }
func NewInternal(msg string) error   { return &Error{Code: CodeInternal, Message: msg} }

// CodeOf extracts the booking error code, defaulting to internal.
func CodeOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeInternal
}

// HTTPStatus maps a booking error to its response status.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
