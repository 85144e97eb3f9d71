package validation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/pkg/handlers"
	"github.com/JaimeStill/nyaysetu/pkg/routes"
)

// Response is the body returned by the validation endpoints.
type Response struct {
	Passed     bool                `json:"passed"`
	Report     *Report             `json:"report"`
	Rendered   string              `json:"rendered"`
	Complexity ComplexityBreakdown `json:"complexity"`
}

// Handler exposes the validator over HTTP.
type Handler struct {
	v      *Validator
	logger *slog.Logger
}

func NewHandler(v *Validator, logger *slog.Logger) *Handler {
	return &Handler{
		v:      v,
		logger: logger.With("handler", "validation"),
	}
}

// Routes returns the route group for validation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/validate",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/rti", Summary: "Validate RTI application fields", Handler: h.RTI},
			{Method: "POST", Pattern: "/affidavit", Summary: "Validate affidavit fields", Handler: h.Affidavit},
		},
	}
}

// RTI validates an RTI application body.
func (h *Handler) RTI(w http.ResponseWriter, r *http.Request) {
	var app forms.RTIApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	report := h.v.RTI(app)
	handlers.RespondJSON(w, http.StatusOK, Response{
		Passed:     report.Passed(),
		Report:     report,
		Rendered:   report.String(),
		Complexity: h.v.Complexity(keywords.RTI, report, app.State, app.Info),
	})
}

// Affidavit validates an affidavit body.
func (h *Handler) Affidavit(w http.ResponseWriter, r *http.Request) {
	var aff forms.Affidavit
	if err := json.NewDecoder(r.Body).Decode(&aff); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	report := h.v.Affidavit(aff)
	handlers.RespondJSON(w, http.StatusOK, Response{
		Passed:     report.Passed(),
		Report:     report,
		Rendered:   report.String(),
		Complexity: h.v.Complexity(keywords.Affidavit, report, aff.State, ""),
	})
}
