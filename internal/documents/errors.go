package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicate       = errors.New("document already exists")
	ErrClassNotFound   = errors.New("class not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoFile          = errors.New("no file uploaded")
	ErrTooManyFiles    = errors.New("too many files: only one file allowed")
	ErrUnexpectedField = errors.New("unexpected file field")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidMetadata = errors.New("invalid document metadata")
	ErrFileMissing     = errors.New("document file not found on disk")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrClassNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrFileMissing):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNoFile),
		errors.Is(err, ErrTooManyFiles),
		errors.Is(err, ErrUnexpectedField),
		errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrInvalidMetadata):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
