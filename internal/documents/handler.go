package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/validation"
	"github.com/JaimeStill/nyaysetu/pkg/handlers"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
	"github.com/JaimeStill/nyaysetu/pkg/routes"
)

// Handler provides HTTP endpoints for document operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// RejectedResponse is the 422 body of a generation refused by validation.
type RejectedResponse struct {
	Error    string             `json:"error"`
	Report   *validation.Report `json:"report"`
	Rendered string             `json:"rendered"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "documents"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for document endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/documents",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Summary: "List generated documents", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Summary: "Get a generated document", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/download", Summary: "Download the document PDF", Handler: h.Download},
			{Method: "POST", Pattern: "/rti", Summary: "Validate and generate an RTI application", Handler: h.GenerateRTI},
			{Method: "POST", Pattern: "/affidavit", Summary: "Validate and generate an affidavit", Handler: h.GenerateAffidavit},
			{Method: "POST", Pattern: "/{id}/appeal", Summary: "Generate a first appeal against an RTI application", Handler: h.GenerateAppeal},
			{Method: "POST", Pattern: "/search", Summary: "Search documents with filters in the body", Handler: h.Search},
			{Method: "DELETE", Pattern: "/{id}", Summary: "Delete a document and its PDF", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of documents with optional query parameter filters.
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

// Find returns a single document by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	doc, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

// Download streams the generated PDF as an attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	doc, body, err := h.sys.Download(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", ContentType)
	if doc.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	}
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", doc.Filename()),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching documents.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GenerateRTI validates, drafts, and stores an RTI application.
func (h *Handler) GenerateRTI(w http.ResponseWriter, r *http.Request) {
	var app forms.RTIApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	doc, err := h.sys.GenerateRTI(r.Context(), app)
	h.respondGenerated(w, doc, err)
}

// GenerateAffidavit validates, drafts, and stores an affidavit.
func (h *Handler) GenerateAffidavit(w http.ResponseWriter, r *http.Request) {
	var aff forms.Affidavit
	if err := json.NewDecoder(r.Body).Decode(&aff); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	doc, err := h.sys.GenerateAffidavit(r.Context(), aff)
	h.respondGenerated(w, doc, err)
}

// GenerateAppeal drafts a first appeal against a stored RTI application.
func (h *Handler) GenerateAppeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var cmd AppealCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	doc, err := h.sys.GenerateAppeal(r.Context(), id, cmd)
	h.respondGenerated(w, doc, err)
}

// Delete removes a document by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondGenerated(w http.ResponseWriter, doc *Document, err error) {
	var rejected *RejectedError
	switch {
	case errors.As(err, &rejected):
		h.logger.Warn("document rejected by validation", "error", err)
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, RejectedResponse{
			Error:    err.Error(),
			Report:   rejected.Report,
			Rendered: rejected.Report.String(),
		})
	case err != nil:
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
	default:
		handlers.RespondJSON(w, http.StatusCreated, doc)
	}
}
