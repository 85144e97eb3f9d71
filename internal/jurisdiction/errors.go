package jurisdiction

import (
	"errors"
	"net/http"
)

var (
	ErrUnknownState = errors.New("unknown state")
	ErrInvalidData  = errors.New("invalid jurisdiction data")
)

// MapHTTPStatus maps jurisdiction errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnknownState) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
