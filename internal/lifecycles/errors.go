package lifecycles

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/nyaysetu/pkg/repository"
)

// Domain errors for lifecycle operations.
var (
	ErrNotFound     = errors.New("lifecycle not found")
	ErrDuplicate    = errors.New("lifecycle already exists")
	ErrInvalidState = errors.New("invalid lifecycle state")
)

// MapHTTPStatus maps lifecycle domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, repository.ErrConstraint):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
