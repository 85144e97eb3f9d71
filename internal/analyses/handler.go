package analyses

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/nyaysetu/internal/classifier"
	"github.com/JaimeStill/nyaysetu/pkg/handlers"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
	"github.com/JaimeStill/nyaysetu/pkg/routes"
)

// Handler provides HTTP endpoints for requirement analysis.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "analyses"),
		pagination: pagination,
	}
}

// Routes returns the route groups for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/complexity", Summary: "Score the complexity of a document type", Handler: h.Complexity},
		},
		Children: []routes.Group{
			{
				Prefix: "/analyze",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Summary: "Suggest the document type for a description", Handler: h.Analyze},
					{Method: "POST", Pattern: "/refine", Summary: "Refine a suggestion with clarification answers", Handler: h.Refine},
					{Method: "POST", Pattern: "/batch", Summary: "Classify several descriptions", Handler: h.Batch},
				},
			},
			{
				Prefix: "/analyses",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Summary: "List recorded analyses", Handler: h.List},
					{Method: "GET", Pattern: "/{id}", Summary: "Get a recorded analysis", Handler: h.Find},
				},
			},
		},
	}
}

// Analyze classifies a free-text requirement.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	out, err := h.sys.Analyze(r.Context(), req.Description)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, out)
}

// Refine re-classifies a requirement using clarification answers.
func (h *Handler) Refine(w http.ResponseWriter, r *http.Request) {
	var req RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	out, err := h.sys.Refine(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, out)
}

// Batch classifies several requirements concurrently.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	items, err := h.sys.Batch(r.Context(), req.Descriptions)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Complexity estimates drafting complexity for a document type.
func (h *Handler) Complexity(w http.ResponseWriter, r *http.Request) {
	var req classifier.ComplexityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.sys.Complexity(req))
}

// List returns a paginated list of recorded analyses.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a recorded analysis by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}
