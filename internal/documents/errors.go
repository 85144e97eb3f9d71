package documents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/nyaysetu/internal/drafting"
	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/validation"
	"github.com/JaimeStill/nyaysetu/pkg/repository"
)

// Domain errors for document operations.
var (
	ErrNotFound         = errors.New("document not found")
	ErrDuplicate        = errors.New("document already exists")
	ErrInvalidRequest   = errors.New("invalid document request")
	ErrNotAppealable    = errors.New("only RTI applications can be appealed")
	ErrValidationFailed = errors.New("document failed validation")
)

// RejectedError carries the validation report of a refused generation.
type RejectedError struct {
	Report *validation.Report
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf(
		"%s: %d blocking, %d errors",
		ErrValidationFailed, len(e.Report.Blocking), len(e.Report.Errors),
	)
}

func (e *RejectedError) Unwrap() error {
	return ErrValidationFailed
}

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, repository.ErrConstraint):
		return http.StatusConflict
	case errors.Is(err, ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrNotAppealable),
		errors.Is(err, drafting.ErrInvalidInput),
		errors.Is(err, forms.ErrUnknownReason):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
