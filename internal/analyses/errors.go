package analyses

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/nyaysetu/internal/classifier"
)

// Domain errors for analysis operations.
var (
	ErrNotFound         = errors.New("analysis not found")
	ErrDuplicate        = errors.New("analysis already exists")
	ErrEmptyDescription = errors.New("description is required")
	ErrBatchTooLarge    = errors.New("batch exceeds maximum size")
	ErrInvalidRequest   = errors.New("invalid analysis request")
)

// MapHTTPStatus maps analysis domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyDescription),
		errors.Is(err, ErrBatchTooLarge),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, classifier.ErrUnknownQuestion):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
