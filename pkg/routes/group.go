// Package routes declares HTTP route tables as nested groups and registers
// them on a ServeMux.
package routes

import (
	"cmp"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
)

// Group organizes routes under a common prefix. Child prefixes are joined
// to the parent prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Endpoints flattens the group into its registered endpoints.
func (g Group) Endpoints() []Endpoint {
	var out []Endpoint
	g.walk("", func(e Endpoint, _ http.HandlerFunc) {
		out = append(out, e)
	})
	return out
}

func (g Group) walk(parent string, fn func(Endpoint, http.HandlerFunc)) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		fn(Endpoint{
			Method:  strings.ToUpper(r.Method),
			Path:    prefix + r.Pattern,
			Summary: r.Summary,
		}, r.Handler)
	}
	for _, child := range g.Children {
		child.walk(prefix, fn)
	}
}

// Register adds all routes from the given groups to the mux and returns the
// registered endpoints ordered by path then method.
func Register(mux *http.ServeMux, groups ...Group) []Endpoint {
	var endpoints []Endpoint
	for _, group := range groups {
		group.walk("", func(e Endpoint, h http.HandlerFunc) {
			mux.HandleFunc(e.pattern(), h)
			endpoints = append(endpoints, e)
		})
	}

	slices.SortFunc(endpoints, func(a, b Endpoint) int {
		return cmp.Or(
			strings.Compare(a.Path, b.Path),
			strings.Compare(a.Method, b.Method),
		)
	})
	return endpoints
}

// Index returns a handler that lists endpoints as JSON. base is prepended
// to every path so the listing reflects where the mux is mounted.
func Index(base string, endpoints []Endpoint) http.HandlerFunc {
	listed := make([]Endpoint, len(endpoints))
	for i, e := range endpoints {
		e.Path = base + e.Path
		listed[i] = e
	}
	body, _ := json.Marshal(map[string]any{"endpoints": listed})

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
