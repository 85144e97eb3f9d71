package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler. Summary is a
// one-line description published in the endpoint index.
type Route struct {
	Method  string
	Pattern string
	Summary string
	Handler http.HandlerFunc
}

// Endpoint is a registered route with its fully joined path.
type Endpoint struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

func (e Endpoint) pattern() string {
	return e.Method + " " + e.Path
}
