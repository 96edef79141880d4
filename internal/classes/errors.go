package classes

import (
	"errors"
	"net/http"
)

// Domain errors for class operations.
var (
	ErrNotFound  = errors.New("class not found")
	ErrDuplicate = errors.New("class code already exists")
	ErrInvalid   = errors.New("invalid class")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
