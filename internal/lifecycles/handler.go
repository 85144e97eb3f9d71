package lifecycles

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/nyaysetu/pkg/handlers"
	"github.com/JaimeStill/nyaysetu/pkg/pagination"
	"github.com/JaimeStill/nyaysetu/pkg/routes"
)

// Handler provides HTTP endpoints for lifecycle tracking.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "lifecycles"),
		pagination: pagination,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for pending deadlines.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// Routes returns the route group definition for lifecycle endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/lifecycles",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Summary: "List tracked document lifecycles", Handler: h.List},
			{Method: "GET", Pattern: "/deadlines", Summary: "List upcoming deadlines of open lifecycles", Handler: h.Deadlines},
			{Method: "GET", Pattern: "/{hash}", Summary: "Get a lifecycle with its events and deadlines", Handler: h.Find},
			{Method: "PUT", Pattern: "/{hash}/state", Summary: "Move a lifecycle to a new state", Handler: h.UpdateState},
		},
	}
}

// List returns a paginated list of lifecycles.
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

// Find returns the lifecycle of a document hash with its history.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	l, err := h.sys.Find(r.Context(), r.PathValue("hash"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, l)
}

// UpdateState applies a state transition from the JSON body.
func (h *Handler) UpdateState(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidState)
		return
	}

	l, err := h.sys.UpdateState(r.Context(), r.PathValue("hash"), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, l)
}

// Deadlines returns pending deadlines across open lifecycles.
func (h *Handler) Deadlines(w http.ResponseWriter, r *http.Request) {
	pending, err := h.sys.Pending(r.Context(), h.now().UTC())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pending)
}
