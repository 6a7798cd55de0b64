package types

import (
	"fmt"
	"net/http"
)

// Error type identifiers, reported in the "type" field of error responses.
const (
	TypeNotFound   = "not_found"
	TypeShape      = "shape"
	TypeValidation = "validation"
	TypeReference  = "reference"
	TypeConstraint = "constraint"
	TypeBridge     = "bridge"
	TypeBadRequest = "bad_request"
	TypeInternal   = "internal"
)

// CustomError is a classified failure that maps directly to an HTTP status.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Is matches on code and type so callers can test against the sentinel-like
// values returned by the constructors.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Type == t.Type
}

func newError(code int, typ, format string, args ...any) *CustomError {
	return &CustomError{Code: code, Message: fmt.Sprintf(format, args...), Type: typ}
}

// NotFound reports a missing row.
func NotFound(format string, args ...any) *CustomError {
	return newError(http.StatusNotFound, TypeNotFound, format, args...)
}

// Shape reports missing or unexpected JSON properties.
func Shape(format string, args ...any) *CustomError {
	return newError(http.StatusBadRequest, TypeShape, format, args...)
}

// Validation reports a field that is out of bounds, of the wrong type, or unparseable.
func Validation(format string, args ...any) *CustomError {
	return newError(http.StatusBadRequest, TypeValidation, format, args...)
}

// Reference reports a foreign key that does not resolve to a row.
func Reference(format string, args ...any) *CustomError {
	return newError(http.StatusBadRequest, TypeReference, format, args...)
}

// Constraint reports a store constraint violation such as a duplicate unique value.
func Constraint(format string, args ...any) *CustomError {
	return newError(http.StatusBadRequest, TypeConstraint, format, args...)
}

// Bridge reports a nested inner row that is not associated with its outer row.
func Bridge(format string, args ...any) *CustomError {
	return newError(http.StatusNotFound, TypeBridge, format, args...)
}

// BadRequest reports a malformed request that fits no finer category.
func BadRequest(format string, args ...any) *CustomError {
	return newError(http.StatusBadRequest, TypeBadRequest, format, args...)
}
