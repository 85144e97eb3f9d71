package jurisdiction

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/nyaysetu/pkg/handlers"
	"github.com/JaimeStill/nyaysetu/pkg/routes"
)

// StateResponse is the detail view of a state. Profiled is false when the
// returned rules come from the fallback state.
type StateResponse struct {
	State    string  `json:"state"`
	Profiled bool    `json:"profiled"`
	Profile  Profile `json:"profile"`
}

// Handler exposes the jurisdiction registry over HTTP.
type Handler struct {
	reg    *Registry
	logger *slog.Logger
}

func NewHandler(reg *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		reg:    reg,
		logger: logger.With("handler", "jurisdiction"),
	}
}

// Routes returns the route group for state endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/states",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Summary: "List profiled states", Handler: h.List},
			{Method: "GET", Pattern: "/{state}", Summary: "Get the rules for a state", Handler: h.Find},
		},
	}
}

// List returns the summaries of all profiled states.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.reg.Summaries())
}

// Find returns the rules that apply to a single state.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("state")
	state, ok := h.reg.Canonical(name)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownState, name)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	_, profiled := h.reg.Profile(state)
	handlers.RespondJSON(w, http.StatusOK, StateResponse{
		State:    state,
		Profiled: profiled,
		Profile:  h.reg.Resolve(state),
	})
}
